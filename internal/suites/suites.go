// Package suites loads the YAML manifest that maps external test-suite
// names and example-session sets to directories on disk, replacing
// hard-coded tool paths.
package suites

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"cqlconf/internal/errors"
)

// Suite describes one named external suite of CQL files.
type Suite struct {
	// Root is the directory holding the suite's .cql files
	Root string `yaml:"root"`
	// Description is shown when listing suites
	Description string `yaml:"description,omitempty"`
}

// SessionSet describes a directory of example sessions, each a
// subdirectory of .cql files (e.g. the Cooking with CQL source sets).
type SessionSet struct {
	Root        string `yaml:"root"`
	Description string `yaml:"description,omitempty"`
	// Prefix namespaces result directories for this set
	Prefix string `yaml:"prefix,omitempty"`
}

// Manifest is the parsed suites.yaml.
type Manifest struct {
	Suites   map[string]Suite `yaml:"suites"`
	Sessions SessionSet       `yaml:"sessions"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.SuiteNotFound,
			fmt.Sprintf("suites manifest not found at %s", path), err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.New(errors.ConfigInvalid,
			fmt.Sprintf("malformed suites manifest %s", path), err)
	}
	if m.Sessions.Prefix == "" {
		m.Sessions.Prefix = "cooking"
	}
	return &m, nil
}

// Suite resolves a named suite, verifying its root exists.
func (m *Manifest) Suite(name string) (Suite, error) {
	s, ok := m.Suites[name]
	if !ok {
		return Suite{}, errors.New(errors.SuiteNotFound,
			fmt.Sprintf("no suite named %q in manifest", name), nil)
	}
	if info, err := os.Stat(s.Root); err != nil || !info.IsDir() {
		return Suite{}, errors.New(errors.SuiteNotFound,
			fmt.Sprintf("suite %q root does not exist: %s", name, s.Root), err)
	}
	return s, nil
}

// SessionDirs lists session subdirectories under the sessions root. An
// empty or "all" selection expands to every session, sorted.
func (m *Manifest) SessionDirs(selected []string) ([]string, error) {
	root := m.Sessions.Root
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, errors.New(errors.SuiteNotFound,
			fmt.Sprintf("sessions root does not exist: %s", root), err)
	}

	wantAll := len(selected) == 0
	for _, s := range selected {
		if s == "all" {
			wantAll = true
		}
	}

	if !wantAll {
		dirs := make([]string, 0, len(selected))
		for _, s := range selected {
			dir := filepath.Join(root, s)
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				return nil, errors.New(errors.SuiteNotFound,
					fmt.Sprintf("session directory not found: %s", dir), err)
			}
			dirs = append(dirs, dir)
		}
		return dirs, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.New(errors.SuiteNotFound,
			fmt.Sprintf("failed to list sessions root %s", root), err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Names returns the sorted suite names in the manifest.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Suites))
	for name := range m.Suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
