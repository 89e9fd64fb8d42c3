// ABOUTME: CLI command to search stored conversations
// ABOUTME: Case-insensitive substring match across all sessions, newest first
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchLimit int

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search conversation history",
		Long: `Search stored conversations for a case-insensitive substring.

Matches both user input and assistant responses, most recent first.

Examples:
  recall search "dinosaurs"
  recall search --limit 5 "bedtime story"
  recall search --format json "weather"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum results to return")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := svc.SearchConversations(args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("searching conversations: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No conversations found for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "WHEN\tSESSION\tUSER\tASSISTANT\n")
	for _, t := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			formatTime(t.Timestamp),
			truncate(t.SessionID, 25),
			truncate(t.UserInput, 40),
			truncate(t.AIResponse, 40))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}
