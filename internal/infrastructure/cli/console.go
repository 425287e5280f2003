package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/ports"
)

// Console renders invocation progress in a plain, ASCII-only format. The
// executor streams command output directly; the console only adds framing.
type Console struct {
	out io.Writer
}

// NewConsole writes to stdout.
func NewConsole() *Console {
	return NewConsoleWithOutput(os.Stdout)
}

// NewConsoleWithOutput lets tests substitute the stream.
func NewConsoleWithOutput(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// ShowCommand prints the generated command before any confirmation or
// execution, so the user always sees what is about to run.
func (c *Console) ShowCommand(gen domain.GeneratedCommand) {
	fmt.Fprintf(c.out, "$ %s\n", gen.Command)
	if gen.Explanation != "" {
		fmt.Fprintf(c.out, "  %s\n", gen.Explanation)
	}
}

// ShowResult prints a completion summary. Output itself already reached the
// terminal while the command ran.
func (c *Console) ShowResult(res domain.ExecutionResult, verbose bool) {
	if res.TimedOut {
		fmt.Fprintf(c.out, "\ncommand timed out and was killed (exit %d)\n", res.ExitCode)
	}
	if verbose {
		fmt.Fprintf(c.out, "\nexit %d in %s (%s of output)\n",
			res.ExitCode,
			res.Duration.Round(time.Millisecond),
			humanize.Bytes(uint64(len(res.Output))))
	}
}

var _ ports.UI = (*Console)(nil)
