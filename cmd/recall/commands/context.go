// ABOUTME: CLI command to assemble the memory context for a session
// ABOUTME: Prints the same prompt text the voice loop injects before LLM calls
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var contextTurns int

// NewContextCmd creates the context command
func NewContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context <session-id>",
		Short: "Assemble the memory context for a session",
		Long: `Assemble the memory context for a session: mood, topics, relevant
preferences and recent turns, rendered as prompt-ready text.

Use --format json for the structured bundle instead.`,
		Args: cobra.ExactArgs(1),
		RunE: runContext,
	}

	cmd.Flags().IntVar(&contextTurns, "turns", 10, "Maximum recent turns to include")
	return cmd
}

func runContext(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := validatePositiveInt(contextTurns, "turns"); err != nil {
		return err
	}

	bundle, err := svc.BuildContext(args[0], contextTurns)
	if err != nil {
		return fmt.Errorf("building context: %w", err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	prompt := bundle.Prompt()
	if prompt == "" {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "(no memory context yet)")
		}
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	return nil
}
