package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cqlconf/internal/harness"
)

var (
	runTestCase    string
	runAll         bool
	runRefOptions  []string
	runCandOptions []string
)

var runCmd = &cobra.Command{
	Use:   "run [file.cql]",
	Short: "Run the conformance comparison on files or test cases",
	Long: `Run both translators on CQL inputs and compare their ELM outputs.

Examples:
  # Compare a single CQL file
  cqlconf run path/to/query.cql

  # Run a named test-case directory
  cqlconf run --test-case aggregates

  # Run every test-case directory
  cqlconf run --all

  # Forward extra options to either translator
  cqlconf run query.cql --reference-options --validate --candidate-options --strict`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runTestCase, "test-case", "t", "", "Name of test case directory to run")
	runCmd.Flags().BoolVarP(&runAll, "all", "a", false, "Run all test case directories")
	runCmd.Flags().StringArrayVar(&runRefOptions, "reference-options", nil, "Extra options for the reference translator")
	runCmd.Flags().StringArrayVar(&runCandOptions, "candidate-options", nil, "Extra options for the candidate translator")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	h := harness.New(cfg, logger, harness.Options{
		SummaryOnly:      summaryOnlyFlag,
		ReferenceOptions: runRefOptions,
		CandidateOptions: runCandOptions,
	})
	ctx := context.Background()

	switch {
	case runAll:
		summary, err := h.RunAll(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		recordRun(cfg, logger, summary)

	case runTestCase != "":
		summary, err := h.RunTestCase(ctx, runTestCase)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		recordRun(cfg, logger, summary)

	case len(args) == 1:
		cqlFile := args[0]
		if _, err := os.Stat(cqlFile); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: CQL file not found: %s\n", cqlFile)
			os.Exit(1)
		}
		summary := harness.NewRunSummary("file:" + filepath.Base(cqlFile))
		summary.Record(h.RunFile(ctx, cqlFile, ""))
		summary.Finalize()
		recordRun(cfg, logger, summary)
		if summary.Passed != 1 {
			os.Exit(1)
		}

	default:
		_ = cmd.Help()
		os.Exit(1)
	}
}
