// Package export packs a results tree into a compressed archive for
// sharing or post-mortem analysis off the machine that ran the batch.
package export

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"cqlconf/internal/logging"
)

// Archiver writes tar.gz archives of results directories.
type Archiver struct {
	logger *logging.Logger
}

// NewArchiver creates an archiver.
func NewArchiver(logger *logging.Logger) *Archiver {
	return &Archiver{logger: logger}
}

// Archive writes everything under resultsDir into a gzip'd tarball at
// outPath. Entry names are relative to resultsDir, so extracting yields
// the same layout the harness wrote.
func (a *Archiver) Archive(resultsDir, outPath string) (int, error) {
	info, err := os.Stat(resultsDir)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("results directory not found: %s", resultsDir)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	count := 0
	err = filepath.Walk(resultsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(resultsDir, path)
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(tw, f)
		f.Close()
		if err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		tw.Close()
		gz.Close()
		return count, fmt.Errorf("failed to archive results: %w", err)
	}

	if err := tw.Close(); err != nil {
		gz.Close()
		return count, err
	}
	if err := gz.Close(); err != nil {
		return count, err
	}

	a.logger.Info("Archived results", map[string]interface{}{
		"dir":     resultsDir,
		"archive": outPath,
		"files":   count,
	})
	return count, nil
}
