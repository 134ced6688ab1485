package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cqlconf/internal/config"
	"cqlconf/internal/logging"
	"cqlconf/internal/version"
)

var (
	// rootFlag is the workspace root holding .cqlconf/ and the corpus
	rootFlag string
	// summaryOnlyFlag suppresses per-file printing in batch runs
	summaryOnlyFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "cqlconf",
	Short: "cqlconf - CQL translator conformance harness",
	Long: `cqlconf validates a candidate CQL-to-ELM translator against the trusted
reference translator by running both on the same CQL files and structurally
comparing their ELM JSON outputs. Differences are classified, reported, and
aggregated across batches for regression triage.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("cqlconf version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".",
		"Workspace root containing .cqlconf/ and the conformance corpus")
	rootCmd.PersistentFlags().BoolVarP(&summaryOnlyFlag, "summary-only", "s", false,
		"Only print the aggregate summary (for batch runs)")
}

// loadConfig loads and validates the workspace configuration, exiting
// on configuration errors since no batch can proceed without it.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(rootFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the logger configured in the workspace config.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}
