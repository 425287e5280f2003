package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/codedjinn/djinn/internal/app"
)

const defaultHistoryLimit = 20

func newHistoryCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently executed commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistory(cmd.OutOrStdout(), container, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Max entries to show")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the execution log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.History.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	})
	return cmd
}

func listHistory(out io.Writer, container *app.Container, limit int) error {
	entries, err := container.History.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history recorded yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(out, "%-14s | %-8s | %-7s | exit %-3d | %s\n",
			humanize.Time(e.CreatedAt),
			e.Session,
			e.Decision,
			e.ExitCode,
			e.Command)
	}
	return nil
}
