// Package cli wires the cobra command tree around the application services.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/codedjinn/djinn/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. A bare `djinn <words...>`
// invocation is shorthand for `djinn run <words...>`.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	container.RunService.Prompter = NewPrompter(nil, nil)
	container.RunService.UI = NewConsole()

	runCmd := newRunCommand(container)

	root := &cobra.Command{
		Use:   "djinn [intent]",
		Short: "Djinn - natural language shell assistant",
		Long:  "Djinn turns natural language into shell commands, checks them against a safety policy, and runs them with live output.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			runCmd.SetArgs(args)
			return runCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd)
	root.AddCommand(newAskCommand(container))
	root.AddCommand(newSessionCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newSettingsCommand(container))
	root.AddCommand(newPolicyCommand(container))
	return root, nil
}
