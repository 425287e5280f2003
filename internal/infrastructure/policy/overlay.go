package policy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Overlay holds user-defined extra patterns appended to a built-in policy,
// loaded from ~/.djinn/policy.yaml.
type Overlay struct {
	Deny    []string `yaml:"deny"`
	Confirm []string `yaml:"confirm"`
}

// LoadOverlay reads an overlay file. A missing file is not an error and the
// built-in ruleset is used as-is. A malformed file is an error, since
// silently dropping safety patterns would be worse than failing.
func LoadOverlay(path string) (Overlay, error) {
	if path == "" {
		return Overlay{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Overlay{}, nil
		}
		return Overlay{}, fmt.Errorf("read policy overlay: %w", err)
	}
	var overlay Overlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Overlay{}, fmt.Errorf("parse policy overlay %s: %w", path, err)
	}
	return overlay, nil
}
