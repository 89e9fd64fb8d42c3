// ABOUTME: CLI command to prune old low-importance conversations
// ABOUTME: Keeps emotionally significant turns regardless of age
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupDays int

// NewCleanupCmd creates the cleanup command
func NewCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Prune old conversations",
		Long: `Delete conversation turns older than the retention window.

Turns with high importance scores survive cleanup, so the robot keeps
the moments that mattered. Preferences and session summaries are
always retained.`,
		RunE: runCleanup,
	}

	cmd.Flags().IntVar(&cleanupDays, "days", 0, "Override the retention window in days")
	return cmd
}

func runCleanup(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	days := cfg.RetentionDays
	if cleanupDays > 0 {
		days = cleanupDays
	}

	removed, err := store.CleanupOlderThan(days, cfg.KeepImportance)
	if err != nil {
		return fmt.Errorf("cleaning up: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d turn(s) older than %d days\n", removed, days)
	}
	return nil
}
