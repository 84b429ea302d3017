// Package audit persists a durable record of admitted requests and
// their status transitions to a local SQLite database. The filesystem
// protocol itself is the source of truth while a request is in
// flight; this package exists because request directories are
// eventually cleaned up by clients, and operators still want to
// answer "what ran last week and how did it end" after that happens.
package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const currentSchemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS requests (
	id TEXT PRIMARY KEY,
	directory TEXT NOT NULL,
	admitted_at DATETIME NOT NULL,
	status TEXT NOT NULL,
	message TEXT
);

CREATE TABLE IF NOT EXISTS transitions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id TEXT NOT NULL,
	status TEXT NOT NULL,
	message TEXT,
	observed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transitions_request ON transitions(request_id);
`

// Store wraps a SQLite connection used as a non-gating write-through
// sink for task status transitions. A nil *Store is valid and every
// method on it is a no-op, so callers that run without an audit-db
// configured don't need to special-case it.
type Store struct {
	db *sql.DB
}

// Open creates (if necessary) and opens the audit database at path,
// applying the schema if it's not already current.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: apply schema: %w", err)
	}
	if err := reconcileVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func reconcileVersion(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT count(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("audit: read schema_version: %w", err)
	}
	if count == 0 {
		_, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
		if err != nil {
			return fmt.Errorf("audit: seed schema_version: %w", err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// RecordAdmission inserts the initial row for a newly claimed request.
func (s *Store) RecordAdmission(requestID, directory string) {
	if s == nil {
		return
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO requests (id, directory, admitted_at, status, message) VALUES (?, ?, ?, 'NEW', NULL)`,
		requestID, directory, time.Now().UTC(),
	)
	if err != nil {
		logAuditError("record admission", requestID, err)
	}
}

// RecordTransition appends a status transition for requestID and
// updates its current status. Best-effort: a failure here must never
// gate or delay the task it's describing.
func (s *Store) RecordTransition(requestID, status, message string) {
	if s == nil {
		return
	}
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO transitions (request_id, status, message, observed_at) VALUES (?, ?, ?, ?)`,
		requestID, status, message, now,
	)
	if err != nil {
		logAuditError("record transition", requestID, err)
		return
	}
	_, err = s.db.Exec(
		`UPDATE requests SET status = ?, message = ? WHERE id = ?`,
		status, message, requestID,
	)
	if err != nil {
		logAuditError("update request status", requestID, err)
	}
}

// RequestSummary is one row of Recent's result.
type RequestSummary struct {
	ID         string
	Directory  string
	AdmittedAt time.Time
	Status     string
	Message    string
}

// Recent returns the most recently admitted requests, most recent
// first, for the status page's history view.
func (s *Store) Recent(limit int) ([]RequestSummary, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT id, directory, admitted_at, status, COALESCE(message, '') FROM requests ORDER BY admitted_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("audit: query recent requests: %w", err)
	}
	defer rows.Close()

	var out []RequestSummary
	for rows.Next() {
		var r RequestSummary
		if err := rows.Scan(&r.ID, &r.Directory, &r.AdmittedAt, &r.Status, &r.Message); err != nil {
			return nil, fmt.Errorf("audit: scan recent request row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
