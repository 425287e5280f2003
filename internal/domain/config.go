package domain

// Config is the YAML configuration persisted under ~/.djinn/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	DefaultModel        string            `yaml:"default_model"`
	Models              []ModelDefinition `yaml:"models"`
	Policy              PolicySettings    `yaml:"policy"`
	Execution           ExecutionSettings `yaml:"execution"`
	Session             SessionSettings   `yaml:"session"`
}

// PolicySettings selects the safety policy and an optional overlay file with
// user-defined extra patterns.
type PolicySettings struct {
	Name        string `yaml:"name"`
	OverlayFile string `yaml:"overlay_file,omitempty"`
}

// ExecutionSettings tunes the executor.
type ExecutionSettings struct {
	Shell          string `yaml:"shell,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// ConfirmAll asks for a lightweight confirmation even on ALLOW. This is
	// a user preference, not a policy concept.
	ConfirmAll bool `yaml:"confirm_all"`
}

// SessionSettings tunes conversational context storage.
type SessionSettings struct {
	Dir string `yaml:"dir,omitempty"`
}

// ModelDefinition describes an AI provider endpoint declared in the config
// file. Provider-specific request/response shapes are driven entirely by
// APIFormat, so one HTTP generator serves every provider.
type ModelDefinition struct {
	Name       string    `yaml:"name"`
	Endpoint   string    `yaml:"endpoint"`
	AuthEnvVar string    `yaml:"auth_env_var"`
	ModelID    string    `yaml:"model_id"`
	MaxTokens  int       `yaml:"max_tokens"`
	APIFormat  APIFormat `yaml:"api_format,omitempty"`
}

// APIFormat controls request construction and response parsing per provider.
// Zero values select OpenAI-compatible behavior.
type APIFormat struct {
	// AuthHeaderName defaults to "Authorization".
	AuthHeaderName string `yaml:"auth_header_name,omitempty"`
	// AuthHeaderPrefix defaults to "Bearer " when AuthHeaderName is unset.
	AuthHeaderPrefix string `yaml:"auth_header_prefix,omitempty"`
	// SystemInBody places the system prompt in a top-level "system" field
	// (Anthropic) instead of the messages array.
	SystemInBody bool `yaml:"system_in_body,omitempty"`
	// ResponsePath locates the generated text, e.g. "content[0].text".
	// Defaults to "choices[0].message.content".
	ResponsePath string            `yaml:"response_path,omitempty"`
	ExtraHeaders map[string]string `yaml:"extra_headers,omitempty"`
}

const (
	DefaultAuthHeaderName   = "Authorization"
	DefaultAuthHeaderPrefix = "Bearer "
	DefaultResponsePath     = "choices[0].message.content"
)

// GetAuthHeaderName returns the auth header name with default fallback.
func (f APIFormat) GetAuthHeaderName() string {
	if f.AuthHeaderName == "" {
		return DefaultAuthHeaderName
	}
	return f.AuthHeaderName
}

// GetAuthHeaderPrefix returns the auth value prefix. An empty prefix is
// intentional when a custom header name is set (e.g. x-api-key).
func (f APIFormat) GetAuthHeaderPrefix() string {
	if f.AuthHeaderName == "" && f.AuthHeaderPrefix == "" {
		return DefaultAuthHeaderPrefix
	}
	return f.AuthHeaderPrefix
}

// GetResponsePath returns the response extraction path with default fallback.
func (f APIFormat) GetResponsePath() string {
	if f.ResponsePath == "" {
		return DefaultResponsePath
	}
	return f.ResponsePath
}
