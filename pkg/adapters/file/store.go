// Package file provides a filesystem-backed ActionStore: one JSON document
// per line, appended in dispatch order.
package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/arbor/pkg/domain"
)

// Store implements ports.ActionStore using a JSON Lines file.
type Store struct {
	Path string
}

// NewStore creates a new FileStore writing to the given path.
// If path is empty, it defaults to ".arbor/actions.jsonl".
func NewStore(path string) *Store {
	if path == "" {
		path = filepath.Join(".arbor", "actions.jsonl")
	}
	return &Store{Path: path}
}

// Append writes one call as a JSON line at the end of the file.
func (s *Store) Append(ctx context.Context, call domain.SerializedActionCall) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to ensure log directory: %w", err)
	}

	data, err := json.Marshal(call)
	if err != nil {
		return fmt.Errorf("failed to marshal action call: %w", err)
	}

	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open action log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append action call: %w", err)
	}
	return nil
}

// List reads the full log back, one call per line. A missing file is an
// empty log, not an error.
func (s *Store) List(ctx context.Context) ([]domain.SerializedActionCall, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.SerializedActionCall{}, nil
		}
		return nil, fmt.Errorf("failed to open action log: %w", err)
	}
	defer f.Close()

	var calls []domain.SerializedActionCall
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var call domain.SerializedActionCall
		if err := json.Unmarshal(raw, &call); err != nil {
			return nil, fmt.Errorf("failed to decode action log line %d: %w", line, err)
		}
		calls = append(calls, call)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read action log: %w", err)
	}
	if calls == nil {
		calls = []domain.SerializedActionCall{}
	}
	return calls, nil
}

// Clear truncates the log file. A missing file is fine.
func (s *Store) Clear(ctx context.Context) error {
	err := os.Remove(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear action log: %w", err)
	}
	return nil
}
