package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codedjinn/djinn/internal/app"
	"github.com/codedjinn/djinn/internal/infrastructure/policy"
)

func newPolicyCommand(container *app.Container) *cobra.Command {
	policyCmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect safety policies",
	}
	policyCmd.AddCommand(newPolicyShowCommand(container))
	return policyCmd
}

func newPolicyShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show a policy's deny and confirm patterns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := container.Config.Policy.Name
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" {
				name = policy.DefaultName
			}
			rules, err := policy.Builtin(name)
			if err != nil {
				return err
			}
			showRuleset(cmd.OutOrStdout(), rules)

			overlay, err := policy.LoadOverlay(container.Config.Policy.OverlayFile)
			if err != nil {
				return err
			}
			if len(overlay.Deny)+len(overlay.Confirm) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\nOverlay (%s):\n", container.Config.Policy.OverlayFile)
				printPatterns(cmd.OutOrStdout(), "deny", overlay.Deny)
				printPatterns(cmd.OutOrStdout(), "confirm", overlay.Confirm)
			}
			return nil
		},
	}
}

func showRuleset(out io.Writer, rules policy.Ruleset) {
	fmt.Fprintf(out, "Policy: %s\n%s\n\nAvailable policies: %s\n\n",
		rules.Name, rules.Description, strings.Join(policy.Names(), ", "))
	printPatterns(out, "deny", rules.Deny)
	printPatterns(out, "confirm", rules.Confirm)
}

func printPatterns(out io.Writer, label string, patterns []string) {
	if len(patterns) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", label)
	for _, pat := range patterns {
		fmt.Fprintf(out, "  - %s\n", pat)
	}
}
