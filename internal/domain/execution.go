package domain

import "time"

// ExecutionResult reports how a command run ended. Spawn failures and
// timeouts are folded in here rather than raised as errors, so every
// execution resolves to an exit code plus output.
type ExecutionResult struct {
	ExitCode int
	// Output is the combined stdout+stderr byte stream as shown to the user.
	Output   string
	TimedOut bool
	Duration time.Duration
}

// ExecOptions tunes a single execution.
type ExecOptions struct {
	WorkDir string
	// Timeout of zero selects the executor default.
	Timeout time.Duration
}

// ExitCodeTimeout is the synthetic exit code reported when a command is
// killed by the executor's deadline (mirrors GNU timeout).
const ExitCodeTimeout = 124

// ExitCodeSpawnFailure is the synthetic exit code for commands that could
// not be started at all.
const ExitCodeSpawnFailure = 127

// ExitCodeInterrupt is the process exit code reserved for user interruption
// and declined confirmations.
const ExitCodeInterrupt = 130
