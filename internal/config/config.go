// Package config loads and persists harness configuration from
// .cqlconf/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete harness configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	// Reference is the trusted translator whose output is ground truth.
	Reference TranslatorConfig `json:"reference" mapstructure:"reference"`
	// Candidate is the translator under test.
	Candidate TranslatorConfig `json:"candidate" mapstructure:"candidate"`

	Paths   PathsConfig   `json:"paths" mapstructure:"paths"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// TranslatorConfig describes how one translator CLI is invoked
type TranslatorConfig struct {
	// Command is the executable path or name resolved via PATH
	Command string `json:"command" mapstructure:"command"`
	// Args are fixed arguments placed before the per-file arguments
	// (e.g. the candidate's "cql compile" subcommand)
	Args []string `json:"args" mapstructure:"args"`
	// Options are extra options forwarded verbatim on every invocation
	Options []string `json:"options" mapstructure:"options"`
}

// PathsConfig contains the directory layout of the conformance corpus
type PathsConfig struct {
	// TestCasesDir holds named test-case directories of .cql files
	TestCasesDir string `json:"testCasesDir" mapstructure:"testCasesDir"`
	// ResultsDir receives per-file comparison artifacts and batch summaries
	ResultsDir string `json:"resultsDir" mapstructure:"resultsDir"`
	// SuitesManifest is the YAML manifest describing external suites
	// and example-session sets
	SuitesManifest string `json:"suitesManifest" mapstructure:"suitesManifest"`
	// HistoryDB is the SQLite database recording finished runs
	HistoryDB string `json:"historyDb" mapstructure:"historyDb"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Reference: TranslatorConfig{
			Command: "cql-to-elm-cli",
		},
		Candidate: TranslatorConfig{
			Command: "rh",
			Args:    []string{"cql", "compile"},
		},
		Paths: PathsConfig{
			TestCasesDir:   "conformance/test-cases",
			ResultsDir:     "conformance/results",
			SuitesManifest: ".cqlconf/suites.yaml",
			HistoryDB:      ".cqlconf/history.db",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.cqlconf/config.json,
// falling back to defaults when no config file exists.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".cqlconf"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to <root>/.cqlconf/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".cqlconf")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Reference.Command == "" {
		return &ConfigError{Field: "reference.command", Message: "reference translator command is required"}
	}
	if c.Candidate.Command == "" {
		return &ConfigError{Field: "candidate.command", Message: "candidate translator command is required"}
	}
	if c.Paths.ResultsDir == "" {
		return &ConfigError{Field: "paths.resultsDir", Message: "results directory is required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
