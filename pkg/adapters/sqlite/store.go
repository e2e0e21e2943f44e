// Package sqlite provides a SQLite-backed ActionStore for durable,
// file-local action logs without an external service.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS action_log (
	seq  INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	path TEXT NOT NULL DEFAULT '',
	args TEXT NOT NULL DEFAULT '[]'
);`

// Store persists the action log in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite action log at path and applies the
// schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append inserts one call at the end of the log.
func (s *Store) Append(ctx context.Context, call domain.SerializedActionCall) error {
	args := call.Args
	if args == nil {
		args = []domain.Argument{}
	}
	encoded, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("marshal args: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO action_log (name, path, args) VALUES (?, ?, ?)`,
		call.Name, call.Path, string(encoded),
	)
	if err != nil {
		return fmt.Errorf("insert action call: %w", err)
	}
	return nil
}

// List returns the full log ordered by insertion.
func (s *Store) List(ctx context.Context) ([]domain.SerializedActionCall, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, path, args FROM action_log ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query action log: %w", err)
	}
	defer rows.Close()

	calls := []domain.SerializedActionCall{}
	for rows.Next() {
		var call domain.SerializedActionCall
		var rawArgs string
		if err := rows.Scan(&call.Name, &call.Path, &rawArgs); err != nil {
			return nil, fmt.Errorf("scan action call: %w", err)
		}
		if err := json.Unmarshal([]byte(rawArgs), &call.Args); err != nil {
			return nil, fmt.Errorf("decode args: %w", err)
		}
		if len(call.Args) == 0 {
			call.Args = nil
		}
		calls = append(calls, call)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate action log: %w", err)
	}
	return calls, nil
}

// Clear removes all recorded calls.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM action_log`); err != nil {
		return fmt.Errorf("clear action log: %w", err)
	}
	return nil
}
