// Package journal records verification runs in SQLite for post-hoc
// inspection. The journal is append-only and opt-in: verification works
// identically without one, and journal rows are never consulted when
// deciding pass/fail.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run is one recorded verification outcome.
type Run struct {
	// Seq is the journal-assigned, strictly increasing sequence number.
	Seq int64 `json:"seq"`

	// ID is the uuid assigned to the verification call.
	ID string `json:"id"`

	// Spec is the specification name.
	Spec string `json:"spec"`

	// Fingerprint is the digest computed for the call.
	Fingerprint string `json:"fingerprint"`

	// Outcome is the terminal status: pass, created, updated, or fail.
	Outcome string `json:"outcome"`
}

// Journal provides durable storage for verification run history.
// Uses SQLite with WAL mode for concurrent read access.
type Journal struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically; safe to call
// against an existing journal.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends a run. Duplicate run IDs are silently ignored for
// idempotency; other constraint violations still return errors.
func (j *Journal) Record(ctx context.Context, run Run) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs (id, spec, fingerprint, outcome)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.Spec, run.Fingerprint, run.Outcome)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// History returns all runs recorded for a specification, oldest first.
func (j *Journal) History(ctx context.Context, spec string) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, id, spec, fingerprint, outcome
		FROM runs WHERE spec = ? ORDER BY seq
	`, spec)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.Seq, &r.ID, &r.Spec, &r.Fingerprint, &r.Outcome); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return runs, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}
