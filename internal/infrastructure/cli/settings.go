package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/codedjinn/djinn/internal/app"
	"github.com/codedjinn/djinn/internal/infrastructure/config"
)

func newSettingsCommand(container *app.Container) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage the configuration file",
	}
	settingsCmd.AddCommand(
		newSettingsInitCommand(container),
		newSettingsShowCommand(container),
		newSettingsEditCommand(container),
	)
	return settingsCmd
}

func newSettingsInitCommand(container *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := container.ConfigLoader.Path()
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s (use --force to overwrite).\n", path)
				return nil
			}
			if err := config.Write(path, config.Default()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\nSet the API key env var for your model (e.g. ANTHROPIC_API_KEY).\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newSettingsShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := container.ConfigLoader.Path()
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read config at %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
			return nil
		},
	}
}

func newSettingsEditCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the configuration in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = "vi"
			}
			edit := exec.CommandContext(cmd.Context(), editor, container.ConfigLoader.Path())
			edit.Stdin = os.Stdin
			edit.Stdout = os.Stdout
			edit.Stderr = os.Stderr
			return edit.Run()
		},
	}
}
