package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/codedjinn/djinn/internal/domain"
)

func TestShowCommandPrintsCommandAndExplanation(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleWithOutput(&out)

	c.ShowCommand(domain.GeneratedCommand{Command: "ls -la", Explanation: "Lists all files."})

	got := out.String()
	if !strings.Contains(got, "$ ls -la") {
		t.Fatalf("missing command line: %q", got)
	}
	if !strings.Contains(got, "Lists all files.") {
		t.Fatalf("missing explanation: %q", got)
	}
}

func TestShowResultQuietByDefault(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleWithOutput(&out)

	c.ShowResult(domain.ExecutionResult{ExitCode: 0, Output: "hello\n"}, false)
	if out.Len() != 0 {
		t.Fatalf("non-verbose success should print nothing, got %q", out.String())
	}
}

func TestShowResultVerboseSummary(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleWithOutput(&out)

	c.ShowResult(domain.ExecutionResult{
		ExitCode: 2,
		Output:   "boom\n",
		Duration: 1500 * time.Millisecond,
	}, true)

	got := out.String()
	if !strings.Contains(got, "exit 2") {
		t.Fatalf("missing exit code: %q", got)
	}
	if !strings.Contains(got, "1.5s") {
		t.Fatalf("missing duration: %q", got)
	}
}

func TestShowResultReportsTimeout(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleWithOutput(&out)

	c.ShowResult(domain.ExecutionResult{ExitCode: domain.ExitCodeTimeout, TimedOut: true}, false)
	if !strings.Contains(out.String(), "timed out") {
		t.Fatalf("missing timeout notice: %q", out.String())
	}
}
