package export

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/gzip"

	"cqlconf/internal/logging"
)

func testArchiver() *Archiver {
	return NewArchiver(logging.NewLogger(logging.Config{Level: logging.ErrorLevel, Output: &bytes.Buffer{}}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	tr := tar.NewReader(gz)

	entries := map[string]string{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar next: %v", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("tar read %s: %v", hdr.Name, err)
		}
		entries[hdr.Name] = string(data)
	}
	return entries
}

func TestArchive(t *testing.T) {
	resultsDir := t.TempDir()
	writeFile(t, filepath.Join(resultsDir, "add", "comparison.json"), `{"total_differences":0}`)
	writeFile(t, filepath.Join(resultsDir, "add", "summary.txt"), "Total differences: 0\n")
	writeFile(t, filepath.Join(resultsDir, "test-cases-summary.json"), `{"total":1}`)

	outPath := filepath.Join(t.TempDir(), "results.tar.gz")
	count, err := testArchiver().Archive(resultsDir, outPath)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	entries := readArchive(t, outPath)
	var names []string
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	want := []string{"add/comparison.json", "add/summary.txt", "test-cases-summary.json"}
	if len(names) != len(want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, names[i], want[i])
		}
	}
	if entries["add/summary.txt"] != "Total differences: 0\n" {
		t.Errorf("summary content = %q", entries["add/summary.txt"])
	}
}

func TestArchiveMissingDir(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "results.tar.gz")
	if _, err := testArchiver().Archive(filepath.Join(t.TempDir(), "absent"), outPath); err == nil {
		t.Error("expected error for missing results directory")
	}
}

func TestArchiveEmptyDir(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "results.tar.gz")
	count, err := testArchiver().Archive(t.TempDir(), outPath)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if entries := readArchive(t, outPath); len(entries) != 0 {
		t.Errorf("empty dir produced entries: %v", entries)
	}
}
