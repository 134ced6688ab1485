// Package history persists finished run summaries to a SQLite database
// so regressions can be tracked across batches without rereading the
// results tree.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"cqlconf/internal/harness"
	"cqlconf/internal/logging"
)

// Store provides persistence for run summaries.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the history database at dbPath.
func Open(dbPath string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if !dbExists {
		logger.Info("Creating history database", map[string]interface{}{
			"path": dbPath,
		})
		if err := store.initializeSchema(); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to initialize history schema: %w", err)
		}
	}

	return store, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			model_filter TEXT,
			started_at TEXT NOT NULL,
			completed_at TEXT,
			total INTEGER NOT NULL,
			translation_failures INTEGER NOT NULL,
			passed INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			summary TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// SaveRun records one finished run summary.
func (s *Store) SaveRun(summary *harness.RunSummary) error {
	doc, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to serialize run summary: %w", err)
	}

	_, err = s.conn.Exec(`
		INSERT OR REPLACE INTO runs
			(id, mode, model_filter, started_at, completed_at,
			 total, translation_failures, passed, failed, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.Mode, summary.ModelFilter,
		summary.StartedAt, summary.CompletedAt,
		summary.Total, summary.TranslationFailures,
		summary.Passed, summary.Failed, string(doc))
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// RunRecord is one row of run history.
type RunRecord struct {
	RunID               string `json:"run_id"`
	Mode                string `json:"mode"`
	ModelFilter         string `json:"model_filter,omitempty"`
	StartedAt           string `json:"started_at"`
	CompletedAt         string `json:"completed_at,omitempty"`
	Total               int    `json:"total"`
	TranslationFailures int    `json:"translation_failures"`
	Passed              int    `json:"passed"`
	Failed              int    `json:"failed"`
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.conn.Query(`
		SELECT id, mode, model_filter, started_at, completed_at,
		       total, translation_failures, passed, failed
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var modelFilter, completedAt sql.NullString
		if err := rows.Scan(&r.RunID, &r.Mode, &modelFilter, &r.StartedAt, &completedAt,
			&r.Total, &r.TranslationFailures, &r.Passed, &r.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.ModelFilter = modelFilter.String
		r.CompletedAt = completedAt.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetRun loads the full stored summary for one run ID.
func (s *Store) GetRun(runID string) (*harness.RunSummary, error) {
	var doc string
	err := s.conn.QueryRow(`SELECT summary FROM runs WHERE id = ?`, runID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no run with id %s", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	var summary harness.RunSummary
	if err := json.Unmarshal([]byte(doc), &summary); err != nil {
		return nil, fmt.Errorf("failed to decode stored summary: %w", err)
	}
	return &summary, nil
}
