// Package history keeps a durable log of every executed turn in SQLite.
// It is an audit/recall convenience, separate from the per-session
// conversational context: append-only, best-effort, never fatal.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/ports"
)

// SQLiteStore persists execution history in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path; empty selects
// ~/.djinn/history/history.db. Open failures degrade to a no-op store so
// history never blocks command execution.
func NewSQLiteStore(path string) *SQLiteStore {
	if path == "" {
		path = filepath.Join(userHome(), ".djinn", "history", "history.db")
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{}
	}
	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return &SQLiteStore{}
	}
	return store
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS executions (
		id TEXT PRIMARY KEY,
		session TEXT NOT NULL,
		command TEXT NOT NULL,
		decision TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	return err
}

// Append implements ports.HistoryStore.
func (s *SQLiteStore) Append(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO executions (id, session, command, decision, exit_code, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Session, entry.Command, string(entry.Decision),
		entry.ExitCode, entry.DurationMS, entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Recent implements ports.HistoryStore; newest first.
func (s *SQLiteStore) Recent(limit int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, session, command, decision, exit_code, duration_ms, created_at
		 FROM executions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var decision, createdAt string
		if err := rows.Scan(&entry.ID, &entry.Session, &entry.Command, &decision,
			&entry.ExitCode, &entry.DurationMS, &createdAt); err != nil {
			return nil, err
		}
		entry.Decision = domain.PolicyDecision(decision)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear implements ports.HistoryStore.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec(`DELETE FROM executions`)
	return err
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.HistoryStore = (*SQLiteStore)(nil)
