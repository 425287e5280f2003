// Package executor runs shell commands on the host while streaming output to
// the terminal and capturing it for session storage.
//
// stdin is inherited from the parent so interactive sub-programs (password
// prompts, y/n questions) keep working. Combined stdout+stderr goes through
// one pipe read in chunks, so prompts that do not end in a newline still
// appear immediately.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"syscall"
	"time"

	"mvdan.cc/sh/v3/shell"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/ports"
)

// DefaultTimeout bounds command runtime when the caller does not set one.
const DefaultTimeout = 30 * time.Second

// interruptGrace is how long a child gets after SIGINT before SIGKILL.
const interruptGrace = 5 * time.Second

// drainGrace bounds how long Execute waits for pipe EOF once the child has
// exited. A backgrounded grandchild inherits the output pipe and would
// otherwise keep the CLI alive for its whole lifetime.
const drainGrace = 200 * time.Millisecond

// Full-screen TUI programs need direct terminal control and cannot run with
// output on a pipe; they would hang or corrupt the capture.
var fullscreenTUI = regexp.MustCompile(`(^|[\s|;&])(htop|top|vim?|nvim|emacs|nano|less|more)(\s|$)`)

// Shell metacharacters that force a real shell. Anything else can run as a
// plain argv, skipping shell startup.
const shellMetaChars = "|&;<>$`(){}[]*?~#\n"

// LocalShell executes commands under the user's shell.
type LocalShell struct {
	shell  string
	stdout io.Writer
}

// NewLocalShell builds an executor; shell defaults to $SHELL, then /bin/sh.
func NewLocalShell(shellPath string) *LocalShell {
	return NewLocalShellWithOutput(shellPath, os.Stdout)
}

// NewLocalShellWithOutput lets tests substitute the terminal stream.
func NewLocalShellWithOutput(shellPath string, out io.Writer) *LocalShell {
	if shellPath == "" {
		shellPath = os.Getenv("SHELL")
	}
	if shellPath == "" {
		shellPath = "/bin/sh"
	}
	if out == nil {
		out = os.Stdout
	}
	return &LocalShell{shell: shellPath, stdout: out}
}

// Execute implements ports.CommandExecutor. It never returns an error:
// spawn failures, timeouts and non-zero exits are all folded into the
// result so the orchestrator can treat every run uniformly.
func (e *LocalShell) Execute(ctx context.Context, command string, opts domain.ExecOptions) domain.ExecutionResult {
	if name, ok := fullscreenProgram(command); ok {
		msg := fmt.Sprintf(
			"%s requires a full terminal and cannot run with output capture.\nUse a text-output alternative (e.g. 'ps aux | grep ...' instead of 'htop').",
			name)
		fmt.Fprintln(e.stdout, msg)
		return domain.ExecutionResult{ExitCode: 1, Output: msg}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cmd := e.buildCmd(command)
	cmd.Dir = opts.WorkDir
	cmd.Stdin = os.Stdin
	// Own process group: the timeout and interrupt forwarding target the
	// whole child tree without touching this process.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	pr, pw, err := os.Pipe()
	if err != nil {
		return domain.ExecutionResult{
			ExitCode: domain.ExitCodeSpawnFailure,
			Output:   fmt.Sprintf("failed to allocate output pipe: %v", err),
		}
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	start := time.Now()
	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return domain.ExecutionResult{
			ExitCode: domain.ExitCodeSpawnFailure,
			Output:   fmt.Sprintf("failed to start command: %v", err),
			Duration: time.Since(start),
		}
	}
	// The child holds the write end now; closing ours lets the reader see
	// EOF once the child (and anything that inherited the fd) exits.
	pw.Close()

	defer pr.Close()

	var captured bytes.Buffer
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		buf := make([]byte, 4096)
		for {
			n, err := pr.Read(buf)
			if n > 0 {
				chunk := buf[:n]
				e.stdout.Write(chunk)
				captured.Write(chunk)
			}
			if err != nil {
				return
			}
		}
	}()

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			// User interrupt (or caller cancellation): pass SIGINT to the
			// child group, escalate to SIGKILL if it lingers.
			waitErr := e.interruptAndReap(cmd, waitCh)
			e.drainOutput(cmd, pr, readDone)
			return domain.ExecutionResult{
				ExitCode: exitCode(waitErr),
				Output:   captured.String(),
				Duration: time.Since(start),
			}
		case <-timer.C:
			killGroup(cmd)
			<-waitCh
			e.drainOutput(cmd, pr, readDone)
			output := captured.String()
			if output != "" && !strings.HasSuffix(output, "\n") {
				output += "\n"
			}
			output += fmt.Sprintf("(timed out after %s)", timeout)
			return domain.ExecutionResult{
				ExitCode: domain.ExitCodeTimeout,
				Output:   output,
				TimedOut: true,
				Duration: time.Since(start),
			}
		case waitErr := <-waitCh:
			e.drainOutput(cmd, pr, readDone)
			return domain.ExecutionResult{
				ExitCode: exitCode(waitErr),
				Output:   captured.String(),
				Duration: time.Since(start),
			}
		}
	}
}

// buildCmd picks the fast argv path for metacharacter-free commands and
// falls back to `$SHELL -c` for everything else, including any split
// failure.
func (e *LocalShell) buildCmd(command string) *exec.Cmd {
	if IsSimpleCommand(command) {
		if fields, err := shell.Fields(command, nil); err == nil && len(fields) > 0 {
			// Shell builtins (exit, cd, ...) won't resolve on PATH and
			// must go through the shell.
			if _, err := exec.LookPath(fields[0]); err == nil {
				return exec.Command(fields[0], fields[1:]...)
			}
		}
	}
	return exec.Command(e.shell, "-c", command)
}

// IsSimpleCommand reports whether a command can run without shell
// processing. Detection errs on the side of the full shell.
func IsSimpleCommand(command string) bool {
	return !strings.ContainsAny(command, shellMetaChars)
}

func fullscreenProgram(command string) (string, bool) {
	match := fullscreenTUI.FindStringSubmatch(command)
	if match == nil {
		return "", false
	}
	return match[2], true
}

// drainOutput waits for the output reader to hit EOF, which requires every
// inherited write end of the pipe to close. Survivors in the child's process
// group (backgrounded jobs, daemons) are killed after a short grace so the
// CLI never outlives the command it ran.
func (e *LocalShell) drainOutput(cmd *exec.Cmd, pr *os.File, readDone <-chan struct{}) {
	select {
	case <-readDone:
		return
	case <-time.After(drainGrace):
	}
	killGroup(cmd)
	select {
	case <-readDone:
	case <-time.After(drainGrace):
		// A survivor escaped the process group. Closing the read end
		// unblocks the reader; anything written afterwards goes nowhere.
		pr.Close()
		<-readDone
	}
}

func (e *LocalShell) interruptAndReap(cmd *exec.Cmd, waitCh <-chan error) error {
	signalGroup(cmd, syscall.SIGINT)
	select {
	case err := <-waitCh:
		return err
	case <-time.After(interruptGrace):
		killGroup(cmd)
		return <-waitCh
	}
}

func signalGroup(cmd *exec.Cmd, sig syscall.Signal) {
	if cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, sig)
}

func killGroup(cmd *exec.Cmd) {
	signalGroup(cmd, syscall.SIGKILL)
}

func exitCode(waitErr error) int {
	if waitErr == nil {
		return 0
	}
	if exitErr, ok := waitErr.(*exec.ExitError); ok {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		// Killed by signal.
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return 128 + int(status.Signal())
		}
		return 1
	}
	return domain.ExitCodeSpawnFailure
}

var _ ports.CommandExecutor = (*LocalShell)(nil)
