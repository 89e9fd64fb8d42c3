// ABOUTME: CLI command to show recent turns of a session
// ABOUTME: Chronological order, most recent last, like the prompt context
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <session-id>",
		Short: "Show recent conversation history",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistory,
	}

	cmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum turns to show")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(historyLimit, "limit"); err != nil {
		return err
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	turns, err := svc.GetRecentHistory(args[0], historyLimit)
	if err != nil {
		return fmt.Errorf("getting history: %w", err)
	}

	if len(turns) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No turns stored for session: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(turns, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "WHEN\tEMOTION\tUSER\tASSISTANT\n")
	for _, t := range turns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			formatTime(t.Timestamp),
			t.EmotionDetected,
			truncate(t.UserInput, 40),
			truncate(t.AIResponse, 40))
	}
	w.Flush()
	return nil
}
