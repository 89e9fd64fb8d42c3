// ABOUTME: CLI command showing a health snapshot of the memory store
// ABOUTME: Database path, degraded flag and store sizes
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show memory store status",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	report := svc.Status()

	if outputFormat == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Database:        %s\n", report.DBPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Degraded:        %v\n", report.Degraded)
	fmt.Fprintf(cmd.OutOrStdout(), "Active sessions: %d\n", report.ActiveSessions)
	fmt.Fprintf(cmd.OutOrStdout(), "Total sessions:  %d\n", report.TotalSessions)
	fmt.Fprintf(cmd.OutOrStdout(), "Preferences:     %d\n", report.Preferences)
	return nil
}
