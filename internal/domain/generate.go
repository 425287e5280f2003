package domain

// EnvInfo is the environment context handed to the command generator.
type EnvInfo struct {
	WorkingDir string
	OS         string
	Shell      string
	User       string
}

// GenerateRequest asks the generator boundary for a shell command.
type GenerateRequest struct {
	Intent   string
	Env      EnvInfo
	Previous *CommandRecord
	History  []CommandRecord
	Explain  bool
}

// GeneratedCommand is the canonical shape every provider response is
// normalized into at the boundary. The core never branches on
// provider-specific response formats.
type GeneratedCommand struct {
	Command     string
	Explanation string
}

// AskRequest asks the generator boundary a read-only question about prior
// commands and output. Nothing is ever executed on this path.
type AskRequest struct {
	Question string
	Env      EnvInfo
	Previous *CommandRecord
	History  []CommandRecord
}
