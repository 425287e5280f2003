package executor

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/codedjinn/djinn/internal/domain"
)

func TestExecuteCapturesAndDisplaysOnce(t *testing.T) {
	var display bytes.Buffer
	exec := NewLocalShellWithOutput("/bin/sh", &display)

	res := exec.Execute(context.Background(), "echo hello", domain.ExecOptions{})

	if res.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0 (output: %q)", res.ExitCode, res.Output)
	}
	if res.Output != "hello\n" {
		t.Fatalf("captured output = %q, want %q", res.Output, "hello\n")
	}
	if display.String() != "hello\n" {
		t.Fatalf("displayed output = %q, want %q", display.String(), "hello\n")
	}
}

func TestExecuteExitCodeFidelity(t *testing.T) {
	exec := NewLocalShellWithOutput("/bin/sh", &bytes.Buffer{})

	res := exec.Execute(context.Background(), "exit 7", domain.ExecOptions{})
	if res.ExitCode != 7 {
		t.Fatalf("exit code = %d, want 7", res.ExitCode)
	}
	if res.TimedOut {
		t.Fatal("plain non-zero exit must not be flagged as timeout")
	}
}

func TestExecuteCombinesStderr(t *testing.T) {
	exec := NewLocalShellWithOutput("/bin/sh", &bytes.Buffer{})

	res := exec.Execute(context.Background(), "echo out; echo err 1>&2", domain.ExecOptions{})
	if res.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", res.ExitCode)
	}
	if !strings.Contains(res.Output, "out") || !strings.Contains(res.Output, "err") {
		t.Fatalf("expected combined stdout+stderr, got %q", res.Output)
	}
}

func TestExecuteTimeoutIsDistinct(t *testing.T) {
	exec := NewLocalShellWithOutput("/bin/sh", &bytes.Buffer{})

	start := time.Now()
	res := exec.Execute(context.Background(), "sleep 60", domain.ExecOptions{Timeout: 200 * time.Millisecond})
	elapsed := time.Since(start)

	if !res.TimedOut {
		t.Fatalf("expected timeout flag, got %+v", res)
	}
	if res.ExitCode != domain.ExitCodeTimeout {
		t.Fatalf("exit code = %d, want %d", res.ExitCode, domain.ExitCodeTimeout)
	}
	if elapsed > 5*time.Second {
		t.Fatalf("timeout took %s, expected prompt termination", elapsed)
	}
	if !strings.Contains(res.Output, "timed out") {
		t.Fatalf("timeout not labeled in output: %q", res.Output)
	}
}

func TestExecuteCommandNotFoundIsSynthetic(t *testing.T) {
	exec := NewLocalShellWithOutput("/bin/sh", &bytes.Buffer{})

	res := exec.Execute(context.Background(), "definitely-not-a-real-binary-xyz", domain.ExecOptions{})
	if res.ExitCode == 0 {
		t.Fatalf("command-not-found must be non-zero, got %+v", res)
	}
}

func TestExecuteRejectsFullscreenTUI(t *testing.T) {
	var display bytes.Buffer
	exec := NewLocalShellWithOutput("/bin/sh", &display)

	res := exec.Execute(context.Background(), "htop --filter=python", domain.ExecOptions{})
	if res.ExitCode != 1 {
		t.Fatalf("exit code = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(res.Output, "htop") || !strings.Contains(res.Output, "full terminal") {
		t.Fatalf("unexpected rejection message: %q", res.Output)
	}
}

func TestFullscreenDetection(t *testing.T) {
	cases := []struct {
		command string
		want    bool
	}{
		{"htop", true},
		{"vim notes.txt", true},
		{"vi /etc/hosts", true},
		{"git log | less", true},
		{"ps aux | grep python", false},
		{"echo lessons learned", false},
		{"ls -la", false},
	}
	for _, tc := range cases {
		if _, got := fullscreenProgram(tc.command); got != tc.want {
			t.Fatalf("fullscreenProgram(%q) = %v, want %v", tc.command, got, tc.want)
		}
	}
}

func TestIsSimpleCommand(t *testing.T) {
	simple := []string{"ls -la", "git status", "echo hello", "cat file.txt"}
	for _, cmd := range simple {
		if !IsSimpleCommand(cmd) {
			t.Fatalf("IsSimpleCommand(%q) = false, want true", cmd)
		}
	}
	complex := []string{
		"ls | grep foo",
		"echo hi > out.txt",
		"a && b",
		"echo $HOME",
		"ls *.go",
		"cat `which go`",
		"(cd /tmp && ls)",
		"sleep 10 &",
		"ls ~/src",
	}
	for _, cmd := range complex {
		if IsSimpleCommand(cmd) {
			t.Fatalf("IsSimpleCommand(%q) = true, want false", cmd)
		}
	}
}

func TestExecuteBackgroundedChildDoesNotBlockReturn(t *testing.T) {
	exec := NewLocalShellWithOutput("/bin/sh", &bytes.Buffer{})

	// The shell exits immediately; the backgrounded sleep inherits the
	// output pipe and keeps it open well past the deadline.
	start := time.Now()
	res := exec.Execute(context.Background(), "sleep 5 &", domain.ExecOptions{Timeout: 500 * time.Millisecond})
	elapsed := time.Since(start)

	if res.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0 (output: %q)", res.ExitCode, res.Output)
	}
	if res.TimedOut {
		t.Fatal("shell exited cleanly; result must not be flagged as timeout")
	}
	if elapsed > 2*time.Second {
		t.Fatalf("Execute took %s, must not wait for the backgrounded child", elapsed)
	}
}

func TestExecuteInterruptViaContext(t *testing.T) {
	exec := NewLocalShellWithOutput("/bin/sh", &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	res := exec.Execute(ctx, "sleep 60", domain.ExecOptions{Timeout: 30 * time.Second})
	if time.Since(start) > 10*time.Second {
		t.Fatal("cancellation did not terminate the child promptly")
	}
	if res.ExitCode == 0 {
		t.Fatalf("interrupted command should not report success: %+v", res)
	}
	if res.TimedOut {
		t.Fatal("interrupt must not be reported as timeout")
	}
}
