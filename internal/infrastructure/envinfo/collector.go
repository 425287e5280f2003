// Package envinfo gathers the environment context sent with every
// generation request: working directory, OS, shell, user.
package envinfo

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/ports"
)

// Collector implements ports.EnvCollector from the process environment.
type Collector struct{}

func NewCollector() *Collector {
	return &Collector{}
}

// Collect gathers environment context. Never fails; missing pieces are
// simply left empty.
func (c *Collector) Collect(context.Context) domain.EnvInfo {
	wd, _ := os.Getwd()
	return domain.EnvInfo{
		WorkingDir: wd,
		OS:         runtime.GOOS,
		Shell:      DetectShell(),
		User:       os.Getenv("USER"),
	}
}

// DetectShell returns the base name of the user's shell, defaulting to sh.
func DetectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	return "sh"
}

var _ ports.EnvCollector = (*Collector)(nil)
