// Package config loads YAML configuration from ~/.djinn/config.yaml
// (overridable via DJINN_CONFIG), writing a commented default on first run.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/ports"
)

// FileLoader implements ports.ConfigProvider from a YAML file.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a loader; path overrides the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Write(path, cfg); err != nil {
				return domain.Config{}, fmt.Errorf("%w: write default config: %v", domain.ErrConfiguration, err)
			}
			return cfg, nil
		}
		return domain.Config{}, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("%w: parse %s: %v", domain.ErrConfiguration, path, err)
	}

	return hydrateDefaults(cfg), nil
}

// Path resolves the active config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("DJINN_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".djinn", "config.yaml")
}

// Write marshals a config to disk.
func Write(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// PickModel resolves a model by name, or the default when name is empty.
func PickModel(cfg domain.Config, name string) (domain.ModelDefinition, error) {
	if name == "" {
		name = cfg.DefaultModel
	}
	if name == "" && len(cfg.Models) > 0 {
		return cfg.Models[0], nil
	}
	for _, model := range cfg.Models {
		if model.Name == name {
			return model, nil
		}
	}
	return domain.ModelDefinition{}, fmt.Errorf("%w: model %q not configured", domain.ErrConfiguration, name)
}

// Default is the config written on first run.
func Default() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		DefaultModel:        "claude",
		Models: []domain.ModelDefinition{
			{
				Name:       "claude",
				Endpoint:   "https://api.anthropic.com/v1/messages",
				AuthEnvVar: "ANTHROPIC_API_KEY",
				ModelID:    "claude-sonnet-4-5",
				MaxTokens:  1024,
				APIFormat: domain.APIFormat{
					AuthHeaderName: "x-api-key",
					SystemInBody:   true,
					ResponsePath:   "content[0].text",
					ExtraHeaders:   map[string]string{"anthropic-version": "2023-06-01"},
				},
			},
			{
				Name:       "gpt",
				Endpoint:   "https://api.openai.com/v1/chat/completions",
				AuthEnvVar: "OPENAI_API_KEY",
				ModelID:    "gpt-4o-mini",
				MaxTokens:  1024,
			},
		},
		Policy: domain.PolicySettings{
			Name:        "balanced",
			OverlayFile: filepath.Join(userHomeDir(), ".djinn", "policy.yaml"),
		},
		Execution: domain.ExecutionSettings{
			Shell:          "auto",
			TimeoutSeconds: 30,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Policy.Name == "" {
		cfg.Policy.Name = "balanced"
	}
	if cfg.Execution.TimeoutSeconds == 0 {
		cfg.Execution.TimeoutSeconds = 30
	}
	return cfg
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return path
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
