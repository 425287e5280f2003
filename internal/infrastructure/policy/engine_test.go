package policy

import (
	"errors"
	"strings"
	"testing"

	"github.com/codedjinn/djinn/internal/domain"
)

func mustEngine(t *testing.T, name string) *Engine {
	t.Helper()
	engine, err := New(name)
	if err != nil {
		t.Fatalf("New(%q) error: %v", name, err)
	}
	return engine
}

func TestBalancedAllowsNormalShellIdioms(t *testing.T) {
	engine := mustEngine(t, "balanced")

	// Pipes, redirects and chaining are normal CLI patterns and must not
	// escalate on their own.
	allowed := []string{
		"ls -la | grep foo",
		"git log | head -10",
		"echo test > file.txt",
		"npm test && npm build",
		"find . -name '*.go' | wc -l",
		"cat a.txt; cat b.txt",
	}
	for _, cmd := range allowed {
		if got := engine.Assess(cmd); got.Decision != domain.DecisionAllow {
			t.Fatalf("Assess(%q) = %s (pattern %q), want allow", cmd, got.Decision, got.Pattern)
		}
	}
}

func TestDenylistWinsOverSafeContent(t *testing.T) {
	engine := mustEngine(t, "balanced")

	denied := []string{
		"rm -rf /",
		"some | pipeline && rm -rf /",
		"echo hi; shutdown now",
		"sudo rm /etc/hosts",
		"dd if=/dev/zero of=disk.img",
	}
	for _, cmd := range denied {
		if got := engine.Assess(cmd); got.Decision != domain.DecisionDeny {
			t.Fatalf("Assess(%q) = %s, want deny", cmd, got.Decision)
		}
	}
}

func TestEmptyCommandIsDenied(t *testing.T) {
	engine := mustEngine(t, "balanced")

	for _, cmd := range []string{"", "   ", "\n\t"} {
		got := engine.Assess(cmd)
		if got.Decision != domain.DecisionDeny {
			t.Fatalf("Assess(%q) = %s, want deny", cmd, got.Decision)
		}
		if got.Pattern != "" {
			t.Fatalf("empty command should not report a matched pattern, got %q", got.Pattern)
		}
	}
}

func TestStrictnessOrdering(t *testing.T) {
	loose := mustEngine(t, "loose")
	strict := mustEngine(t, "strict")

	cmd := "sudo apt upgrade"
	if got := loose.Assess(cmd); got.Decision != domain.DecisionAllow {
		t.Fatalf("loose.Assess(%q) = %s, want allow", cmd, got.Decision)
	}
	got := strict.Assess(cmd)
	if got.Decision != domain.DecisionConfirm {
		t.Fatalf("strict.Assess(%q) = %s, want confirm", cmd, got.Decision)
	}
	if !got.RequireExplicit {
		t.Fatalf("strict confirmations should require explicit consent")
	}
}

func TestMatchingIsCaseInsensitive(t *testing.T) {
	engine := mustEngine(t, "balanced")
	if got := engine.Assess("SUDO RM -rf /tmp/x"); got.Decision != domain.DecisionDeny {
		t.Fatalf("case-insensitive match failed: %+v", got)
	}
}

func TestUnknownPolicyRejectedAtConstruction(t *testing.T) {
	_, err := New("paranoid")
	if err == nil {
		t.Fatal("expected error for unknown policy name")
	}
	if !errors.Is(err, domain.ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}
	for _, name := range Names() {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error should list valid name %q: %v", name, err)
		}
	}
}

func TestOverlayExtendsBuiltin(t *testing.T) {
	engine, err := NewWithOverlay("balanced", Overlay{
		Deny:    []string{"kubectl delete namespace"},
		Confirm: []string{"terraform apply"},
	})
	if err != nil {
		t.Fatalf("NewWithOverlay error: %v", err)
	}

	if got := engine.Assess("kubectl delete namespace prod"); got.Decision != domain.DecisionDeny {
		t.Fatalf("overlay deny pattern not applied: %+v", got)
	}
	got := engine.Assess("terraform apply -auto-approve")
	if got.Decision != domain.DecisionConfirm {
		t.Fatalf("overlay confirm pattern not applied: %+v", got)
	}
	if got.RequireExplicit {
		t.Fatalf("balanced overlay confirms should stay lightweight")
	}
	// Built-ins still present.
	if got := engine.Assess("rm -rf /"); got.Decision != domain.DecisionDeny {
		t.Fatalf("built-in denylist lost after overlay: %+v", got)
	}
}

func TestDenyShortCircuitsConfirm(t *testing.T) {
	engine := mustEngine(t, "strict")
	// "sudo rm" hits both the denylist and the "sudo" confirm pattern;
	// deny must win.
	if got := engine.Assess("sudo rm -rf /var/log"); got.Decision != domain.DecisionDeny {
		t.Fatalf("deny should take precedence over confirm: %+v", got)
	}
}
