// ABOUTME: CLI command to store one conversation exchange
// ABOUTME: Mirrors what the voice loop does after every turn
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	storeEmotion  string
	storeResponse string
	storeSummary  string
)

// NewStoreCmd creates the store command
func NewStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store <session-id> <user-input>",
		Short: "Store a conversation turn",
		Long: `Store one conversation exchange into an active session.

Runs preference extraction, scores the turn's importance and folds the
emotion into the session's mood trend.

Examples:
  recall store session_123 "my name is Alice" --response "Hi Alice!"
  recall store session_123 "that was great" --emotion happy`,
		Args: cobra.ExactArgs(2),
		RunE: runStore,
	}

	cmd.Flags().StringVar(&storeResponse, "response", "", "The assistant's reply")
	cmd.Flags().StringVar(&storeEmotion, "emotion", "", "Detected emotion (classified from text when omitted)")
	cmd.Flags().StringVar(&storeSummary, "summary", "", "Context summary hint for the turn")
	return cmd
}

func runStore(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	turn, err := svc.StoreConversation(args[0], args[1], storeResponse, storeEmotion, storeSummary)
	if err != nil {
		return fmt.Errorf("storing turn: %w", err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(turn, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Stored turn %d (emotion: %s, importance: %.2f)\n",
			turn.ID, turn.EmotionDetected, turn.ImportanceScore)
	}
	return nil
}
