// Package ports defines the interfaces between the application core and the
// infrastructure adapters. The application depends on these abstractions,
// never on concrete adapters.
package ports

import (
	"context"

	"github.com/codedjinn/djinn/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CommandGenerator is the boundary to the LLM provider layer. The core
// treats it strictly as a black box: no assumptions about latency or
// determinism, no retry on failure.
type CommandGenerator interface {
	// GenerateCommand turns a natural-language intent into a shell command.
	GenerateCommand(context.Context, domain.GenerateRequest) (domain.GeneratedCommand, error)
	// Answer responds to a read-only question about prior commands/output.
	Answer(context.Context, domain.AskRequest) (string, error)
}

// PolicyAssessor classifies a command string into allow/confirm/deny.
// Deterministic and side-effect free.
type PolicyAssessor interface {
	Assess(command string) domain.Assessment
	Name() string
}

// CommandExecutor runs a shell command to completion or timeout. Failures
// are never raised as errors; every run resolves to an ExecutionResult.
type CommandExecutor interface {
	Execute(ctx context.Context, command string, opts domain.ExecOptions) domain.ExecutionResult
}

// SessionStore persists per-session conversational context. It is a dumb
// store: output must be trimmed by the caller before Save.
type SessionStore interface {
	Save(name string, rec domain.CommandRecord) error
	LoadCurrent(name string) (domain.CommandRecord, bool)
	LoadHistory(name string) []domain.CommandRecord
	Clear(name string) error
}

// HistoryStore is the durable execution log behind `djinn history`.
// Best-effort: callers log append failures but never abort on them.
type HistoryStore interface {
	Append(domain.HistoryEntry) error
	Recent(limit int) ([]domain.HistoryEntry, error)
	Clear() error
}

// ConfirmationPrompter obtains user consent for a policy decision. For an
// Allow assessment it asks the lightweight question used by the
// confirm-all preference.
type ConfirmationPrompter interface {
	Confirm(ctx context.Context, a domain.Assessment, command string) (bool, error)
	Enabled() bool
}

// EnvCollector gathers the environment context sent to the generator.
type EnvCollector interface {
	Collect(context.Context) domain.EnvInfo
}

// UI renders user-facing progress and results for one invocation.
type UI interface {
	Printf(format string, args ...interface{})
	ShowCommand(gen domain.GeneratedCommand)
	ShowResult(res domain.ExecutionResult, verbose bool)
}

// Logger provides verbose-gated structured logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
