package translator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"cqlconf/internal/config"
	"cqlconf/internal/errors"
	"cqlconf/internal/logging"
)

// Reference invokes the trusted Java cql-to-elm CLI. The CLI writes
// <stem>.json into the output directory; the artifact is renamed to
// <stem>-reference.json so it cannot collide with the candidate's.
type Reference struct {
	cfg    config.TranslatorConfig
	logger *logging.Logger
}

// NewReference builds a reference translator from configuration.
func NewReference(cfg config.TranslatorConfig, logger *logging.Logger) *Reference {
	return &Reference{cfg: cfg, logger: logger}
}

// Name implements Translator.
func (r *Reference) Name() string {
	return "reference"
}

// BuildCommand creates the exec.Cmd for one invocation.
func (r *Reference) BuildCommand(ctx context.Context, cqlFile, outDir string, extraOptions []string) *exec.Cmd {
	args := make([]string, 0, len(r.cfg.Args)+len(r.cfg.Options)+len(extraOptions)+6)
	args = append(args, r.cfg.Args...)
	args = append(args,
		"--input", cqlFile,
		"--format", "JSON",
		"--output", outDir,
	)
	args = append(args, r.cfg.Options...)
	args = append(args, extraOptions...)

	return exec.CommandContext(ctx, resolveCommand(r.cfg.Command), args...) //nolint:gosec // G204: command from operator-owned config
}

// Translate implements Translator.
func (r *Reference) Translate(ctx context.Context, cqlFile, outDir string, extraOptions []string) (string, error) {
	outFile := filepath.Join(outDir, stem(cqlFile)+"-reference.json")

	cmd := r.BuildCommand(ctx, cqlFile, outDir, extraOptions)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	// The CLI names its artifact after the input stem. Rename before
	// judging the exit status: a partial artifact from a failed run must
	// not be mistaken for the candidate's output later.
	produced := filepath.Join(outDir, stem(cqlFile)+".json")
	if fileExists(produced) {
		if err := os.Rename(produced, outFile); err != nil {
			return "", errors.New(errors.InternalError,
				fmt.Sprintf("failed to rename reference artifact for %s", filepath.Base(cqlFile)), err)
		}
	}

	if runErr != nil {
		r.logger.Warn("Reference translator failed", map[string]interface{}{
			"file":   filepath.Base(cqlFile),
			"stderr": stderr.String(),
		})
		return "", errors.New(errors.TranslationFailed,
			fmt.Sprintf("reference translator failed on %s", filepath.Base(cqlFile)), runErr).
			WithDetails(stderr.String())
	}

	if !fileExists(outFile) {
		return "", errors.New(errors.ArtifactMissing,
			fmt.Sprintf("reference translator produced no output for %s", filepath.Base(cqlFile)), nil)
	}

	return outFile, nil
}
