package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cqlconf/internal/harness"
	"cqlconf/internal/suites"
)

var (
	sessionsModel       string
	sessionsRefOptions  []string
	sessionsCandOptions []string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [session...]",
	Short: "Run example-session sets (e.g. Cooking with CQL)",
	Long: `Run the CQL files of one or more example sessions from the sessions
root declared in the suites manifest. With no arguments (or "all"),
every session is run in sorted order.

Examples:
  # Run sessions 01 through 03
  cqlconf sessions 01 02 03

  # Run every session, FHIR-model files only
  cqlconf sessions --model fhir

  # Run everything, printing only the final summary
  cqlconf sessions --summary-only`,
	Run: runSessions,
}

func init() {
	sessionsCmd.Flags().StringVarP(&sessionsModel, "model", "m", "", "Filter by model declaration: fhir, qdm, or none")
	sessionsCmd.Flags().StringArrayVar(&sessionsRefOptions, "reference-options", nil, "Extra options for the reference translator")
	sessionsCmd.Flags().StringArrayVar(&sessionsCandOptions, "candidate-options", nil, "Extra options for the candidate translator")

	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	filter, err := harness.ParseModelFilter(sessionsModel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	manifest, err := suites.Load(cfg.Paths.SuitesManifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	h := harness.New(cfg, logger, harness.Options{
		SummaryOnly:      summaryOnlyFlag,
		ReferenceOptions: sessionsRefOptions,
		CandidateOptions: sessionsCandOptions,
	})

	summary, err := h.RunSessions(context.Background(), manifest, args, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	recordRun(cfg, logger, summary)

	fmt.Printf("\nSummary saved to: %s\n", cfg.Paths.ResultsDir)
}
