package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/codedjinn/djinn/internal/domain"
)

func confirmAssessment(explicit bool) domain.Assessment {
	return domain.Assessment{
		Decision:        domain.DecisionConfirm,
		Policy:          "strict",
		Reason:          `matches risky pattern "sudo"`,
		RequireExplicit: explicit,
	}
}

func TestConfirmDefaultsToNo(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n"), &out)

	ok, err := p.Confirm(context.Background(), confirmAssessment(false), "sudo apt upgrade")
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if ok {
		t.Fatal("empty answer to a policy confirmation should decline")
	}
	if !strings.Contains(out.String(), "sudo apt upgrade") {
		t.Fatal("prompt should show the command being confirmed")
	}
}

func TestConfirmAcceptsYes(t *testing.T) {
	for _, input := range []string{"y\n", "Y\n", "yes\n"} {
		p := NewPrompter(strings.NewReader(input), &bytes.Buffer{})
		ok, err := p.Confirm(context.Background(), confirmAssessment(false), "sudo ls")
		if err != nil {
			t.Fatalf("Confirm(%q) error: %v", input, err)
		}
		if !ok {
			t.Fatalf("Confirm(%q) = false, want true", input)
		}
	}
}

func TestExplicitConfirmRequiresTypedYes(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"YES\n", true},
		{"  YES  \n", true},
		{"yes\n", false},
		{"y\n", false},
		{"Yes\n", false},
		{"\n", false},
	}
	for _, tc := range cases {
		p := NewPrompter(strings.NewReader(tc.input), &bytes.Buffer{})
		ok, err := p.Confirm(context.Background(), confirmAssessment(true), "rm -rf ./build")
		if err != nil {
			t.Fatalf("Confirm(%q) error: %v", tc.input, err)
		}
		if ok != tc.want {
			t.Fatalf("Confirm(%q) = %v, want %v", tc.input, ok, tc.want)
		}
	}
}

func TestAllowConfirmationDefaultsToYes(t *testing.T) {
	p := NewPrompter(strings.NewReader("\n"), &bytes.Buffer{})
	ok, err := p.Confirm(context.Background(), domain.Assessment{Decision: domain.DecisionAllow}, "ls")
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if !ok {
		t.Fatal("empty answer to the lightweight prompt should accept")
	}
}

func TestConfirmCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never produces a line.
	blocked, blockedW := io.Pipe()
	defer blockedW.Close()
	p := NewPrompter(blocked, &bytes.Buffer{})

	done := make(chan struct{})
	var ok bool
	var err error
	go func() {
		defer close(done)
		ok, err = p.Confirm(ctx, confirmAssessment(false), "sleep 60")
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Confirm did not return after context cancellation")
	}
	if ok {
		t.Fatal("cancelled confirmation must decline")
	}
	if !errors.Is(err, domain.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestEOFDeclines(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	ok, err := p.Confirm(context.Background(), confirmAssessment(false), "sudo ls")
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if ok {
		t.Fatal("EOF on stdin should decline")
	}
}
