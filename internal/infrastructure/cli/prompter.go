package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/ports"
)

// Prompter implements ConfirmationPrompter over stdio. Reads race the
// context so Ctrl-C during a prompt cancels cleanly instead of leaving a
// blocked read behind.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter constructs a prompter referencing stdio. With a nil reader it
// binds to the real stdin and is only enabled when that is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := true
	if in == nil {
		in = os.Stdin
		interactive = term.IsTerminal(int(os.Stdin.Fd()))
	}
	if out == nil {
		out = os.Stderr
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Enabled reports whether the prompter can actually ask.
func (p *Prompter) Enabled() bool {
	return p.interactive
}

// Confirm asks for consent appropriate to the assessment: a default-yes
// question for allowed commands (the confirm-all preference), default-no
// for policy confirmations, and a typed "YES" when the policy requires an
// explicit answer. Without a terminal the answer is always no.
func (p *Prompter) Confirm(ctx context.Context, a domain.Assessment, command string) (bool, error) {
	if !p.interactive {
		fmt.Fprintln(p.out, "confirmation required but no terminal is attached; not running")
		return false, nil
	}

	if a.Decision == domain.DecisionConfirm {
		fmt.Fprintf(p.out, "\nThe %s policy wants confirmation: %s\n", a.Policy, a.Reason)
		fmt.Fprintf(p.out, "Command:\n  %s\n", command)
		if a.RequireExplicit {
			return p.askExplicit(ctx)
		}
		return p.ask(ctx, "Continue? [y/N]: ", false)
	}

	fmt.Fprintf(p.out, "\nRun this command? [Y/n]: ")
	return p.readAnswer(ctx, true)
}

func (p *Prompter) ask(ctx context.Context, prompt string, defaultYes bool) (bool, error) {
	fmt.Fprint(p.out, prompt)
	return p.readAnswer(ctx, defaultYes)
}

func (p *Prompter) askExplicit(ctx context.Context) (bool, error) {
	fmt.Fprint(p.out, "Type 'YES' to run (anything else cancels): ")
	line, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(line) == "YES", nil
}

func (p *Prompter) readAnswer(ctx context.Context, defaultYes bool) (bool, error) {
	line, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return defaultYes, nil
	}
	return line == "y" || line == "yes", nil
}

// readLine waits for a line of input or context cancellation, whichever
// comes first.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- result{line, err}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", domain.ErrCancelled
	case res := <-ch:
		if res.err != nil && res.line == "" {
			// EOF on stdin reads as a declined prompt.
			return "", nil
		}
		return res.line, nil
	}
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
