package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cqlconf/internal/export"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Archive the results directory as a tar.gz",
	Long: `Pack the results directory (comparison.json, summary.txt, and batch
summaries) into a compressed archive for sharing or offline triage.

Examples:
  cqlconf export --output results.tar.gz`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "results.tar.gz", "Archive output path")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	archiver := export.NewArchiver(logger)
	count, err := archiver.Archive(cfg.Paths.ResultsDir, exportOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Archived %d files to %s\n", count, exportOutput)
}
