package suites

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"cqlconf/internal/errors"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suites.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func mkdirs(t *testing.T, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `
suites:
  operators:
    root: /corpus/operator-tests
    description: CQL operator coverage
sessions:
  root: /corpus/cooking
  prefix: cooking
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s := m.Suites["operators"]; s.Root != "/corpus/operator-tests" {
		t.Errorf("operators root = %q", s.Root)
	}
	if m.Sessions.Prefix != "cooking" {
		t.Errorf("prefix = %q", m.Sessions.Prefix)
	}
}

func TestLoadDefaultsPrefix(t *testing.T) {
	path := writeManifest(t, `
sessions:
  root: /corpus/cooking
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Sessions.Prefix != "cooking" {
		t.Errorf("prefix = %q, want default cooking", m.Sessions.Prefix)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		cerr, ok := err.(*errors.ConformanceError)
		if !ok || cerr.Code != errors.SuiteNotFound {
			t.Errorf("error = %v, want code %s", err, errors.SuiteNotFound)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeManifest(t, "suites: [not a map")
		_, err := Load(path)
		cerr, ok := err.(*errors.ConformanceError)
		if !ok || cerr.Code != errors.ConfigInvalid {
			t.Errorf("error = %v, want code %s", err, errors.ConfigInvalid)
		}
	})
}

func TestSuiteLookup(t *testing.T) {
	root := t.TempDir()
	m := &Manifest{Suites: map[string]Suite{
		"operators": {Root: root},
		"ghost":     {Root: filepath.Join(root, "missing")},
	}}

	if _, err := m.Suite("operators"); err != nil {
		t.Errorf("Suite(operators): %v", err)
	}

	for _, name := range []string{"unknown", "ghost"} {
		_, err := m.Suite(name)
		cerr, ok := err.(*errors.ConformanceError)
		if !ok || cerr.Code != errors.SuiteNotFound {
			t.Errorf("Suite(%s) error = %v, want code %s", name, err, errors.SuiteNotFound)
		}
	}
}

func TestSessionDirs(t *testing.T) {
	root := t.TempDir()
	mkdirs(t,
		filepath.Join(root, "2023-12"),
		filepath.Join(root, "2024-01"),
		filepath.Join(root, "2024-02"),
	)
	m := &Manifest{Sessions: SessionSet{Root: root, Prefix: "cooking"}}

	t.Run("explicit selection", func(t *testing.T) {
		dirs, err := m.SessionDirs([]string{"2024-01"})
		if err != nil {
			t.Fatalf("SessionDirs: %v", err)
		}
		if len(dirs) != 1 || filepath.Base(dirs[0]) != "2024-01" {
			t.Errorf("dirs = %v", dirs)
		}
	})

	t.Run("all expands sorted", func(t *testing.T) {
		for _, selected := range [][]string{nil, {"all"}} {
			dirs, err := m.SessionDirs(selected)
			if err != nil {
				t.Fatalf("SessionDirs(%v): %v", selected, err)
			}
			var names []string
			for _, d := range dirs {
				names = append(names, filepath.Base(d))
			}
			want := []string{"2023-12", "2024-01", "2024-02"}
			if !reflect.DeepEqual(names, want) {
				t.Errorf("SessionDirs(%v) = %v, want %v", selected, names, want)
			}
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := m.SessionDirs([]string{"2019-01"})
		cerr, ok := err.(*errors.ConformanceError)
		if !ok || cerr.Code != errors.SuiteNotFound {
			t.Errorf("error = %v, want code %s", err, errors.SuiteNotFound)
		}
	})
}

func TestNames(t *testing.T) {
	m := &Manifest{Suites: map[string]Suite{
		"zeta":      {},
		"operators": {},
		"alpha":     {},
	}}
	want := []string{"alpha", "operators", "zeta"}
	if got := m.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
