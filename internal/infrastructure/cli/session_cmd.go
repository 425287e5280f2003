package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codedjinn/djinn/internal/app"
	"github.com/codedjinn/djinn/internal/domain"
)

func newSessionCommand(container *app.Container) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or reset conversational context",
	}
	sessionCmd.AddCommand(
		newSessionShowCommand(container),
		newSessionClearCommand(container),
	)
	return sessionCmd
}

func newSessionShowCommand(container *app.Container) *cobra.Command {
	var sessName string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current command and recent exchanges",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSession(cmd.OutOrStdout(), container, sessName)
		},
	}
	cmd.Flags().StringVarP(&sessName, "session", "s", "", "Session name")
	return cmd
}

func newSessionClearCommand(container *app.Container) *cobra.Command {
	var sessName string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard stored context for a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := sessName
			if name == "" {
				name = domain.DefaultSessionName
			}
			if err := container.Sessions.Clear(name); err != nil {
				return fmt.Errorf("failed to clear session %q: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %q cleared.\n", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&sessName, "session", "s", "", "Session name")
	return cmd
}

func showSession(out io.Writer, container *app.Container, name string) error {
	if name == "" {
		name = domain.DefaultSessionName
	}

	current, ok := container.Sessions.LoadCurrent(name)
	if !ok {
		fmt.Fprintf(out, "Session %q is empty.\n", name)
		return nil
	}

	fmt.Fprintf(out, "Session: %s\n\nLast command (exit %d):\n  %s\n",
		name, current.ExitCode, current.Command)
	if current.Output != "" {
		fmt.Fprintf(out, "\nOutput:\n%s\n", current.Output)
	}

	history := container.Sessions.LoadHistory(name)
	if len(history) > 1 {
		fmt.Fprintln(out, "\nEarlier exchanges:")
		for _, rec := range history[:len(history)-1] {
			fmt.Fprintf(out, "  [exit %d] %s\n", rec.ExitCode, rec.Command)
		}
	}
	return nil
}
