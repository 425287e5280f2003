package policy

import (
	"fmt"
	"strings"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/ports"
)

// Engine evaluates commands against one ruleset. Immutable after
// construction; switching policy means building a new engine.
type Engine struct {
	rules Ruleset
}

// New builds an engine for a built-in policy name. Unknown names are
// rejected here, never at assess time.
func New(name string) (*Engine, error) {
	return NewWithOverlay(name, Overlay{})
}

// NewWithOverlay builds an engine whose ruleset is a built-in extended by
// user-defined patterns.
func NewWithOverlay(name string, overlay Overlay) (*Engine, error) {
	rules, err := Builtin(name)
	if err != nil {
		return nil, err
	}
	for _, pat := range overlay.Deny {
		if pat = strings.ToLower(strings.TrimSpace(pat)); pat != "" {
			rules.Deny = append(rules.Deny, pat)
		}
	}
	for _, pat := range overlay.Confirm {
		if pat = strings.ToLower(strings.TrimSpace(pat)); pat != "" {
			rules.Confirm = append(rules.Confirm, pat)
		}
	}
	return &Engine{rules: rules}, nil
}

// Name implements ports.PolicyAssessor.
func (e *Engine) Name() string {
	return e.rules.Name
}

// Rules returns a copy of the engine's ruleset for display.
func (e *Engine) Rules() Ruleset {
	return e.rules.clone()
}

// Assess implements ports.PolicyAssessor. Evaluation order is fixed:
// denylist first (short-circuit), then confirm patterns, then the allow
// default. Empty input is denied; never assess an action on a no-op.
func (e *Engine) Assess(command string) domain.Assessment {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return domain.Assessment{
			Decision: domain.DecisionDeny,
			Policy:   e.rules.Name,
			Reason:   "empty command",
		}
	}

	lowered := strings.ToLower(trimmed)

	for _, pat := range e.rules.Deny {
		if strings.Contains(lowered, pat) {
			return domain.Assessment{
				Decision: domain.DecisionDeny,
				Policy:   e.rules.Name,
				Pattern:  pat,
				Reason:   fmt.Sprintf("matches prohibited pattern %q", pat),
			}
		}
	}

	for _, pat := range e.rules.Confirm {
		if strings.Contains(lowered, pat) {
			return domain.Assessment{
				Decision:        domain.DecisionConfirm,
				Policy:          e.rules.Name,
				Pattern:         pat,
				Reason:          fmt.Sprintf("matches risky pattern %q", pat),
				RequireExplicit: e.rules.explicitConfirm,
			}
		}
	}

	return domain.Assessment{
		Decision: domain.DecisionAllow,
		Policy:   e.rules.Name,
	}
}

var _ ports.PolicyAssessor = (*Engine)(nil)
