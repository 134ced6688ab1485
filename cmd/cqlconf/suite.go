package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cqlconf/internal/config"
	"cqlconf/internal/harness"
	"cqlconf/internal/history"
	"cqlconf/internal/logging"
	"cqlconf/internal/suites"
)

var (
	suiteRefOptions  []string
	suiteCandOptions []string
)

var suiteCmd = &cobra.Command{
	Use:   "suite <name> [test-name...]",
	Short: "Run a named external test suite",
	Long: `Run every CQL file of a suite declared in the suites manifest, or only
the tests matching the given names (exact file name first, substring
match otherwise).

Examples:
  # Run the whole operator-tests suite
  cqlconf suite operator-tests

  # Run only the arithmetic operator tests
  cqlconf suite operator-tests ArithmeticOperators`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSuite,
}

func init() {
	suiteCmd.Flags().StringArrayVar(&suiteRefOptions, "reference-options", nil, "Extra options for the reference translator")
	suiteCmd.Flags().StringArrayVar(&suiteCandOptions, "candidate-options", nil, "Extra options for the candidate translator")

	rootCmd.AddCommand(suiteCmd)
}

func runSuite(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	manifest, err := suites.Load(cfg.Paths.SuitesManifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	h := harness.New(cfg, logger, harness.Options{
		SummaryOnly:      summaryOnlyFlag,
		ReferenceOptions: suiteRefOptions,
		CandidateOptions: suiteCandOptions,
	})

	summary, err := h.RunSuite(context.Background(), manifest, args[0], args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	recordRun(cfg, logger, summary)

	fmt.Printf("\nSummary saved to: %s\n", cfg.Paths.ResultsDir)
}

// recordRun saves a finished run to the history database. History is
// best effort; a storage problem must not fail a batch that already
// completed.
func recordRun(cfg *config.Config, logger *logging.Logger, summary *harness.RunSummary) {
	store, err := history.Open(cfg.Paths.HistoryDB, logger)
	if err != nil {
		logger.Warn("Failed to open history database", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer store.Close()

	if err := store.SaveRun(summary); err != nil {
		logger.Warn("Failed to record run in history", map[string]interface{}{
			"run_id": summary.RunID,
			"error":  err.Error(),
		})
	}
}
