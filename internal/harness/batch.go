package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cqlconf/internal/errors"
	"cqlconf/internal/suites"
)

// RunTestCase runs every CQL file in one named test-case directory. A
// missing directory is a configuration error, fatal before any file is
// processed.
func (h *Harness) RunTestCase(ctx context.Context, name string) (*RunSummary, error) {
	dir := filepath.Join(h.cfg.Paths.TestCasesDir, name)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, errors.New(errors.TestCaseNotFound,
			fmt.Sprintf("test case directory not found: %s", dir), err)
	}

	summary := NewRunSummary("test-case:" + name)
	if err := h.runDir(ctx, dir, "", ModelAny, summary); err != nil {
		return nil, err
	}
	summary.Finalize()

	if err := summary.Save(h.summaryPath("test-cases-summary.json")); err != nil {
		return summary, err
	}
	h.PrintRunSummary("TEST CASE "+strings.ToUpper(name), summary)
	return summary, nil
}

// RunAll runs every test-case directory in sorted order.
func (h *Harness) RunAll(ctx context.Context) (*RunSummary, error) {
	root := h.cfg.Paths.TestCasesDir
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.New(errors.TestCaseNotFound,
			fmt.Sprintf("test cases root not found: %s", root), err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(dirs)

	summary := NewRunSummary("all-test-cases")
	for _, dir := range dirs {
		if err := h.runDir(ctx, dir, "", ModelAny, summary); err != nil {
			return nil, err
		}
	}
	summary.Finalize()

	if err := summary.Save(h.summaryPath("test-cases-summary.json")); err != nil {
		return summary, err
	}
	h.PrintRunSummary("ALL TEST CASES", summary)
	return summary, nil
}

// RunSuite runs a named external suite, optionally restricted to tests
// matching the given names: an exact <name>.cql match is preferred,
// otherwise any file containing the name matches.
func (h *Harness) RunSuite(ctx context.Context, manifest *suites.Manifest, name string, testNames []string) (*RunSummary, error) {
	suite, err := manifest.Suite(name)
	if err != nil {
		return nil, err
	}

	files, err := selectSuiteFiles(suite.Root, testNames)
	if err != nil {
		return nil, err
	}

	summary := NewRunSummary("suite:" + name)
	for _, cqlFile := range files {
		summary.Record(h.RunFile(ctx, cqlFile, name))
	}
	summary.Finalize()

	if err := summary.Save(h.summaryPath(name + "-summary.json")); err != nil {
		return summary, err
	}
	h.PrintRunSummary(strings.ToUpper(name)+" SUMMARY", summary)
	return summary, nil
}

// RunSessions runs example-session sets (e.g. Cooking with CQL),
// optionally filtered by external-model declaration.
func (h *Harness) RunSessions(ctx context.Context, manifest *suites.Manifest, selected []string, filter ModelFilter) (*RunSummary, error) {
	dirs, err := manifest.SessionDirs(selected)
	if err != nil {
		return nil, err
	}

	prefix := manifest.Sessions.Prefix
	summary := NewRunSummary("sessions")
	summary.ModelFilter = string(filter)

	for _, dir := range dirs {
		session := filepath.Base(dir)
		files, err := listCQLFiles(dir, filter)
		if err != nil {
			return nil, errors.New(errors.InternalError,
				fmt.Sprintf("failed to list session %s", session), err)
		}
		for _, cqlFile := range files {
			outcome := h.RunFile(ctx, cqlFile, prefix+"-"+session)
			outcome.Session = session
			summary.Record(outcome)
		}
	}
	summary.Finalize()

	if err := summary.Save(h.summaryPath(prefix + "-summary.json")); err != nil {
		return summary, err
	}
	title := strings.ToUpper(prefix) + " SUMMARY"
	if filter != ModelAny {
		title += fmt.Sprintf(" (model: %s)", filter)
	}
	h.PrintRunSummary(title, summary)
	return summary, nil
}

func (h *Harness) runDir(ctx context.Context, dir, prefix string, filter ModelFilter, summary *RunSummary) error {
	files, err := listCQLFiles(dir, filter)
	if err != nil {
		return errors.New(errors.InternalError,
			fmt.Sprintf("failed to list %s", dir), err)
	}
	for _, cqlFile := range files {
		summary.Record(h.RunFile(ctx, cqlFile, prefix))
	}
	return nil
}

func (h *Harness) summaryPath(name string) string {
	return filepath.Join(h.cfg.Paths.ResultsDir, name)
}

func selectSuiteFiles(root string, testNames []string) ([]string, error) {
	if len(testNames) == 0 {
		return listCQLFiles(root, ModelAny)
	}

	var files []string
	for _, name := range testNames {
		exact := filepath.Join(root, name+".cql")
		if _, err := os.Stat(exact); err == nil {
			files = append(files, exact)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(root, "*"+name+"*.cql"))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}

// Console truncation caps for batch summaries. Full lists are always in
// the persisted summary document.
const (
	maxListedFailures = 10
	maxListedDiffs    = 20
)

// PrintRunSummary writes the aggregate view of a finished batch to the
// console.
func (h *Harness) PrintRunSummary(title string, s *RunSummary) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(h.out, "\n%s\n%s\n%s\n", rule, title, rule)
	fmt.Fprintf(h.out, "Total files tested: %d\n", s.Total)
	fmt.Fprintf(h.out, "Translation failures: %d\n", s.TranslationFailures)
	fmt.Fprintf(h.out, "Compared successfully: %d\n", s.Compared())
	fmt.Fprintf(h.out, "  - Passed (0 differences): %d\n", s.Passed)
	fmt.Fprintf(h.out, "  - Failed (differences found): %d\n", s.Failed)

	if h.opts.SummaryOnly {
		return
	}

	if len(s.TranslationFailureFiles) > 0 {
		fmt.Fprintf(h.out, "\nTranslation failures:\n")
		for i, o := range s.TranslationFailureFiles {
			if i == maxListedFailures {
				fmt.Fprintf(h.out, "  ... and %d more\n", len(s.TranslationFailureFiles)-maxListedFailures)
				break
			}
			fmt.Fprintf(h.out, "  - %s\n", outcomeLabel(o))
		}
	}

	if len(s.FailedFiles) > 0 {
		fmt.Fprintf(h.out, "\nFiles with differences:\n")
		for i, o := range s.FailedFiles {
			if i == maxListedDiffs {
				fmt.Fprintf(h.out, "  ... and %d more\n", len(s.FailedFiles)-maxListedDiffs)
				break
			}
			fmt.Fprintf(h.out, "  - %s: %d differences\n", outcomeLabel(o), o.TotalDifferences)
		}
	}
}

func outcomeLabel(o FileOutcome) string {
	if o.Session != "" {
		return o.Session + "/" + o.File
	}
	return o.File
}
