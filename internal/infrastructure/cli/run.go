package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/codedjinn/djinn/internal/app"
	"github.com/codedjinn/djinn/internal/application/run"
	"github.com/codedjinn/djinn/internal/domain"
)

func newRunCommand(container *app.Container) *cobra.Command {
	var (
		model      string
		policyName string
		sessName   string
		workDir    string
		noConfirm  bool
		confirmAll bool
		noContext  bool
		verbose    bool
		explain    bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run [natural language]",
		Short: "Generate a command from natural language and run it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			svc := container.RunService
			if model != "" {
				gen, err := container.Generator(model)
				if err != nil {
					return err
				}
				svc.Generator = gen
			}
			if policyName != "" {
				assessor, err := container.Policy(policyName)
				if err != nil {
					return err
				}
				svc.Policy = assessor
			}
			if timeout <= 0 {
				timeout = container.DefaultTimeout()
			}

			outcome, err := svc.Run(ctx, run.Request{
				Intent:     strings.Join(args, " "),
				Session:    sessName,
				NoContext:  noContext,
				NoConfirm:  noConfirm,
				ConfirmAll: confirmAll || container.Config.Execution.ConfirmAll,
				Verbose:    verbose,
				Explain:    explain,
				Timeout:    timeout,
				WorkDir:    workDir,
			})
			if err != nil {
				if errors.Is(err, domain.ErrCancelled) || ctx.Err() != nil {
					return &ExitError{Code: domain.ExitCodeInterrupt, Message: "cancelled"}
				}
				return err
			}

			switch outcome.Status {
			case run.StatusDenied:
				return &ExitError{
					Code:    1,
					Message: fmt.Sprintf("blocked by %s policy: %s", outcome.Assessment.Policy, outcome.Assessment.Reason),
				}
			case run.StatusCancelled:
				return &ExitError{Code: domain.ExitCodeInterrupt, Message: "cancelled"}
			}
			if outcome.Result.ExitCode != 0 {
				return &ExitError{Code: outcome.Result.ExitCode}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().StringVar(&policyName, "policy", "", "Override safety policy (loose, balanced, strict)")
	cmd.Flags().StringVarP(&sessName, "session", "s", "", "Session name for conversational context")
	cmd.Flags().StringVar(&workDir, "dir", "", "Working directory for the command")
	cmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "Skip the confirm-all preference (policy confirmations still apply)")
	cmd.Flags().BoolVar(&confirmAll, "confirm-all", false, "Confirm even commands the policy allows")
	cmd.Flags().BoolVar(&noContext, "no-context", false, "Neither load nor save session context")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show exit code, duration and output size")
	cmd.Flags().BoolVarP(&explain, "explain", "e", false, "Ask the model to explain the command")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Execution deadline (default from config)")

	return cmd
}
