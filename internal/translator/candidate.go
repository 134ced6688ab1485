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

// Candidate invokes the translator under test. It prints ELM JSON on
// stdout; the harness captures it to <stem>-candidate.json.
type Candidate struct {
	cfg    config.TranslatorConfig
	logger *logging.Logger
}

// NewCandidate builds a candidate translator from configuration.
func NewCandidate(cfg config.TranslatorConfig, logger *logging.Logger) *Candidate {
	return &Candidate{cfg: cfg, logger: logger}
}

// Name implements Translator.
func (c *Candidate) Name() string {
	return "candidate"
}

// BuildCommand creates the exec.Cmd for one invocation.
func (c *Candidate) BuildCommand(ctx context.Context, cqlFile string, extraOptions []string) *exec.Cmd {
	args := make([]string, 0, len(c.cfg.Args)+len(c.cfg.Options)+len(extraOptions)+1)
	args = append(args, c.cfg.Args...)
	args = append(args, cqlFile)
	args = append(args, c.cfg.Options...)
	args = append(args, extraOptions...)

	return exec.CommandContext(ctx, resolveCommand(c.cfg.Command), args...) //nolint:gosec // G204: command from operator-owned config
}

// Translate implements Translator.
func (c *Candidate) Translate(ctx context.Context, cqlFile, outDir string, extraOptions []string) (string, error) {
	outFile := filepath.Join(outDir, stem(cqlFile)+"-candidate.json")

	cmd := c.BuildCommand(ctx, cqlFile, extraOptions)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		c.logger.Warn("Candidate translator failed", map[string]interface{}{
			"file":   filepath.Base(cqlFile),
			"stderr": stderr.String(),
		})
		return "", errors.New(errors.TranslationFailed,
			fmt.Sprintf("candidate translator failed on %s", filepath.Base(cqlFile)), err).
			WithDetails(stderr.String())
	}

	if stdout.Len() == 0 {
		return "", errors.New(errors.ArtifactMissing,
			fmt.Sprintf("candidate translator produced no output for %s", filepath.Base(cqlFile)), nil)
	}

	if err := os.WriteFile(outFile, stdout.Bytes(), 0644); err != nil {
		return "", errors.New(errors.InternalError,
			fmt.Sprintf("failed to write candidate artifact for %s", filepath.Base(cqlFile)), err)
	}

	return outFile, nil
}
