package domain

import "time"

// CommandRecord is one executed turn: the command text, its captured
// (already trimmed) output, and the exit code.
type CommandRecord struct {
	Command   string    `json:"command"`
	Output    string    `json:"output"`
	ExitCode  int       `json:"exit_code"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionState is the persisted shape of one named session: the most recent
// record plus a bounded FIFO of past exchanges, oldest first.
type SessionState struct {
	Current *CommandRecord  `json:"current,omitempty"`
	History []CommandRecord `json:"history,omitempty"`
}

// DefaultSessionName is used when the user does not name a session.
const DefaultSessionName = "default"

// MaxHistoryExchanges bounds the per-session exchange history.
const MaxHistoryExchanges = 5

// HistoryEntry is one row in the durable execution log (distinct from the
// per-session conversational context).
type HistoryEntry struct {
	ID         string
	Session    string
	Command    string
	Decision   PolicyDecision
	ExitCode   int
	DurationMS int64
	CreatedAt  time.Time
}
