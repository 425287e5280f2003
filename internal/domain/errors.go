package domain

import "errors"

// ErrUnknownPolicy is returned when a policy engine is constructed with a
// name outside the built-in set.
var ErrUnknownPolicy = errors.New("unknown policy")

// ErrConfiguration marks missing or invalid settings (credentials, config
// file). Fatal for the invocation, reported before any provider call.
var ErrConfiguration = errors.New("configuration error")

// ErrGeneration marks a failed or empty provider response. Fatal for the
// invocation; there is no automatic retry.
var ErrGeneration = errors.New("command generation failed")

// ErrCancelled marks a user-initiated abort (declined confirmation or
// interrupt). Reported distinctly from failure.
var ErrCancelled = errors.New("cancelled by user")
