// Package translator invokes the two external CQL-to-ELM translators
// and normalizes their artifact handling: whatever each CLI's output
// convention, the harness ends up with <stem>-reference.json and
// <stem>-candidate.json side by side in the results directory.
package translator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Translator runs one external translator on a CQL file and returns the
// path of the produced ELM JSON artifact.
type Translator interface {
	// Name identifies the translator in logs and error messages.
	Name() string
	// Translate runs the translator on cqlFile, placing its artifact in
	// outDir. extraOptions are forwarded verbatim after the configured
	// arguments. A nonzero exit or a missing artifact is an error.
	Translate(ctx context.Context, cqlFile, outDir string, extraOptions []string) (string, error)
}

// stem returns the file's base name without the .cql extension.
func stem(cqlFile string) string {
	base := filepath.Base(cqlFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// resolveCommand finds the executable for a configured command,
// checking PATH first. A command configured as an explicit path is used
// as-is and left to fail with a clear error if absent.
func resolveCommand(command string) string {
	if strings.ContainsRune(command, os.PathSeparator) {
		return command
	}
	if path, err := exec.LookPath(command); err == nil {
		return path
	}
	return command
}
