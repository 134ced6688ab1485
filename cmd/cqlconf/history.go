package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cqlconf/internal/history"
)

var (
	historyLimit int
	historyRunID string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conformance runs",
	Long: `List recent runs recorded in the history database, or show the full
stored summary of one run.

Examples:
  # Last 20 runs
  cqlconf history

  # Full summary of a specific run
  cqlconf history --run 5f3a...`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list")
	historyCmd.Flags().StringVar(&historyRunID, "run", "", "Show the full summary for one run ID")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	store, err := history.Open(cfg.Paths.HistoryDB, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if historyRunID != "" {
		summary, err := store.GetRun(historyRunID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	records, err := store.ListRuns(historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	for _, r := range records {
		fmt.Printf("%s  %-24s  total=%d passed=%d failed=%d translation_failures=%d  %s\n",
			r.StartedAt, r.Mode, r.Total, r.Passed, r.Failed, r.TranslationFailures, r.RunID)
	}
}
