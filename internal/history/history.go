// Package history persists an audit log of anonymization runs in a local
// sqlite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	started_at     TEXT NOT NULL,
	input_path     TEXT NOT NULL,
	output_path    TEXT NOT NULL,
	rows           INTEGER NOT NULL,
	epsilon        REAL NOT NULL,
	masked_columns TEXT NOT NULL,
	noised_columns TEXT NOT NULL,
	failures       TEXT NOT NULL,
	duration_ms    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Run is one recorded anonymization run.
type Run struct {
	ID            string        `json:"id"`
	StartedAt     time.Time     `json:"started_at"`
	InputPath     string        `json:"input_path"`
	OutputPath    string        `json:"output_path"`
	Rows          int           `json:"rows"`
	Epsilon       float64       `json:"epsilon"`
	MaskedColumns []string      `json:"masked_columns"`
	NoisedColumns []string      `json:"noised_columns"`
	Failures      []string      `json:"failures,omitempty"`
	Duration      time.Duration `json:"duration"`
}

// DB wraps the audit database connection.
type DB struct {
	*sql.DB
}

// DefaultPath returns the default audit database location,
// ~/.dataveil/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dataveil", "history.db"), nil
}

// Open opens (creating if needed) the audit database at path and ensures
// the schema exists.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &DB{conn}, nil
}

// RecordRun inserts a completed run.
func (db *DB) RecordRun(run *Run) error {
	masked, err := json.Marshal(run.MaskedColumns)
	if err != nil {
		return fmt.Errorf("encoding masked columns: %w", err)
	}
	noised, err := json.Marshal(run.NoisedColumns)
	if err != nil {
		return fmt.Errorf("encoding noised columns: %w", err)
	}
	failures, err := json.Marshal(run.Failures)
	if err != nil {
		return fmt.Errorf("encoding failures: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO runs (id, started_at, input_path, output_path, rows, epsilon,
			masked_columns, noised_columns, failures, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), run.InputPath, run.OutputPath,
		run.Rows, run.Epsilon, string(masked), string(noised), string(failures),
		run.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT id, started_at, input_path, output_path, rows, epsilon,
			masked_columns, noised_columns, failures, duration_ms
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		var (
			run                      Run
			startedAt                string
			masked, noised, failures string
			durationMs               int64
		)
		if err := rows.Scan(&run.ID, &startedAt, &run.InputPath, &run.OutputPath,
			&run.Rows, &run.Epsilon, &masked, &noised, &failures, &durationMs); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parsing run timestamp: %w", err)
		}
		if err := json.Unmarshal([]byte(masked), &run.MaskedColumns); err != nil {
			return nil, fmt.Errorf("decoding masked columns: %w", err)
		}
		if err := json.Unmarshal([]byte(noised), &run.NoisedColumns); err != nil {
			return nil, fmt.Errorf("decoding noised columns: %w", err)
		}
		if err := json.Unmarshal([]byte(failures), &run.Failures); err != nil {
			return nil, fmt.Errorf("decoding failures: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, &run)
	}
	return out, rows.Err()
}

// Prune deletes runs older than retentionDays. Zero or negative retention
// keeps everything.
func (db *DB) Prune(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(time.RFC3339Nano)
	res, err := db.Exec(`DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
