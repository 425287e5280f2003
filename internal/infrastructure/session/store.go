// Package session persists per-session conversational context: the most
// recent command record plus a short bounded history, one JSON file per
// session name.
//
// Consistency model: single writer per invocation, last write wins. Corrupt
// or unreadable state reads as "no prior session", never an error.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/ports"
)

// FileStore keeps one JSON file per session under a base directory
// (default ~/.djinn/sessions).
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore builds a store rooted at dir; empty selects the default.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = filepath.Join(userHome(), ".djinn", "sessions")
	}
	return &FileStore{dir: dir}
}

// Save implements ports.SessionStore: overwrites the current record and
// appends to the bounded history, dropping the oldest beyond the cap.
func (s *FileStore) Save(name string, rec domain.CommandRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load(name)
	state.Current = &rec
	state.History = append(state.History, rec)
	if len(state.History) > domain.MaxHistoryExchanges {
		state.History = state.History[len(state.History)-domain.MaxHistoryExchanges:]
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), data, 0o600)
}

// LoadCurrent implements ports.SessionStore.
func (s *FileStore) LoadCurrent(name string) (domain.CommandRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load(name)
	if state.Current == nil || state.Current.Command == "" {
		return domain.CommandRecord{}, false
	}
	return *state.Current, true
}

// LoadHistory implements ports.SessionStore; records are oldest first.
func (s *FileStore) LoadHistory(name string) []domain.CommandRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(name).History
}

// Clear implements ports.SessionStore.
func (s *FileStore) Clear(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// load reads session state, degrading corrupt or missing files to empty.
func (s *FileStore) load(name string) domain.SessionState {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return domain.SessionState{}
	}
	var state domain.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.SessionState{}
	}
	return state
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, sanitize(name)+".json")
}

// sanitize keeps session names usable as file names.
func sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.DefaultSessionName
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.SessionStore = (*FileStore)(nil)
