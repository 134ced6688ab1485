// Package harness drives the conformance batch: it invokes both
// translators per file, compares their outputs, persists per-file
// artifacts, and folds outcomes into a run summary. Execution is
// strictly sequential; the corpus sizes involved do not justify
// concurrency risk.
package harness

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cqlconf/internal/compare"
	"cqlconf/internal/config"
	"cqlconf/internal/errors"
	"cqlconf/internal/logging"
	"cqlconf/internal/report"
	"cqlconf/internal/translator"
)

// Options configures a Harness beyond its Config.
type Options struct {
	// SummaryOnly suppresses per-file reports and the long failure
	// lists, keeping only aggregate counts.
	SummaryOnly bool
	// ReferenceOptions are forwarded verbatim to every reference
	// invocation, CandidateOptions to every candidate invocation.
	ReferenceOptions []string
	CandidateOptions []string
	// Out receives console output (default os.Stdout).
	Out io.Writer
	// Reference and Candidate override the configured translators,
	// used by tests to inject fakes.
	Reference translator.Translator
	Candidate translator.Translator
}

// Harness orchestrates translator invocation and comparison for one
// batch mode.
type Harness struct {
	cfg       *config.Config
	logger    *logging.Logger
	reference translator.Translator
	candidate translator.Translator
	out       io.Writer
	printer   *report.Printer
	opts      Options
}

// New builds a harness from configuration.
func New(cfg *config.Config, logger *logging.Logger, opts Options) *Harness {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	ref := opts.Reference
	if ref == nil {
		ref = translator.NewReference(cfg.Reference, logger)
	}
	cand := opts.Candidate
	if cand == nil {
		cand = translator.NewCandidate(cfg.Candidate, logger)
	}
	return &Harness{
		cfg:       cfg,
		logger:    logger,
		reference: ref,
		candidate: cand,
		out:       out,
		printer:   report.NewPrinter(out),
		opts:      opts,
	}
}

const bannerWidth = 60

func (h *Harness) banner(title string) {
	if h.opts.SummaryOnly {
		return
	}
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(h.out, "\n%s\nTest case: %s\n%s\n", rule, title, rule)
}

// RunFile processes one CQL file to its terminal state. Results are
// written under <resultsDir>/[<prefix>/]<stem>/. Translator failures
// are recorded, never propagated; the batch always continues.
func (h *Harness) RunFile(ctx context.Context, cqlFile, prefix string) FileOutcome {
	name := filepath.Base(cqlFile)
	testName := strings.TrimSuffix(name, filepath.Ext(name))
	outcome := FileOutcome{File: name, Test: testName}

	h.banner(name)

	resultsDir := filepath.Join(h.cfg.Paths.ResultsDir, prefix, testName)
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		h.logger.Error("Failed to create results directory", map[string]interface{}{
			"dir":   resultsDir,
			"error": err.Error(),
		})
		outcome.Status = StatusFailed
		outcome.Error = err.Error()
		return outcome
	}

	refPath, err := h.reference.Translate(ctx, cqlFile, resultsDir, h.opts.ReferenceOptions)
	if err != nil {
		return h.translationFailed(outcome, err)
	}

	candPath, err := h.candidate.Translate(ctx, cqlFile, resultsDir, h.opts.CandidateOptions)
	if err != nil {
		return h.translationFailed(outcome, err)
	}

	res, err := compare.Compare(refPath, candPath)
	if err != nil {
		// An artifact that exists but does not decode is as useless as a
		// missing one.
		return h.translationFailed(outcome,
			errors.New(errors.ArtifactMissing, "translator output is not valid JSON", err))
	}

	if err := h.persistResult(resultsDir, res); err != nil {
		h.logger.Error("Failed to persist comparison result", map[string]interface{}{
			"dir":   resultsDir,
			"error": err.Error(),
		})
	}

	if !h.opts.SummaryOnly {
		h.printer.Print(res)
	}

	outcome.TotalDifferences = res.TotalDifferences
	if res.Passed() {
		outcome.Status = StatusPassed
	} else {
		outcome.Status = StatusFailedWithDiffs
	}
	return outcome
}

func (h *Harness) translationFailed(outcome FileOutcome, err error) FileOutcome {
	if !h.opts.SummaryOnly {
		fmt.Fprintln(h.out, "❌ Translation failed")
	}
	h.logger.Warn("Translation failed", map[string]interface{}{
		"file":  outcome.File,
		"error": err.Error(),
	})
	outcome.Status = StatusFailed
	outcome.TotalDifferences = -1
	outcome.Error = err.Error()
	return outcome
}

func (h *Harness) persistResult(resultsDir string, res *compare.Result) error {
	data, err := res.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(resultsDir, "comparison.json"), data, 0644); err != nil {
		return err
	}
	summary := report.Summarize(res)
	return os.WriteFile(filepath.Join(resultsDir, "summary.txt"), []byte(summary), 0644)
}

// listCQLFiles returns the sorted .cql files directly under dir,
// optionally restricted by a model filter on raw content.
func listCQLFiles(dir string, filter ModelFilter) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.cql"))
	if err != nil {
		return nil, err
	}
	// Glob output is already sorted.
	if filter == ModelAny {
		return matches, nil
	}
	var selected []string
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if filter.Matches(content) {
			selected = append(selected, path)
		}
	}
	return selected, nil
}
