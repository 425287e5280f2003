package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codedjinn/djinn/internal/app"
	"github.com/codedjinn/djinn/internal/application/ask"
)

func newAskCommand(container *app.Container) *cobra.Command {
	var (
		model     string
		sessName  string
		noContext bool
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask about the last command and its output (never executes anything)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			svc := container.AskService
			if model != "" {
				gen, err := container.Generator(model)
				if err != nil {
					return err
				}
				svc.Generator = gen
			}

			answer, err := svc.Answer(ctx, ask.Request{
				Question:  strings.Join(args, " "),
				Session:   sessName,
				NoContext: noContext,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().StringVarP(&sessName, "session", "s", "", "Session name for conversational context")
	cmd.Flags().BoolVar(&noContext, "no-context", false, "Answer without session context")

	return cmd
}
