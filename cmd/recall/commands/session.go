// ABOUTME: Session lifecycle commands: start, end, list
// ABOUTME: Start prints the session id for the voice loop to hold on to
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewSessionCmd creates the session command group
func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage conversation sessions",
		Long: `Manage conversation sessions.

A session spans one wake-to-sleep interaction period. Turns can only be
stored into an active session; ending a session generates its summary.`,
	}

	cmd.AddCommand(newSessionStartCmd(), newSessionEndCmd(), newSessionListCmd())
	return cmd
}

func newSessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [session-id]",
		Short: "Start a new session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			sessionID := ""
			if len(args) > 0 {
				sessionID = args[0]
			}

			sc, err := svc.StartNewSession(sessionID)
			if err != nil {
				return fmt.Errorf("starting session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), sc.SessionID)
			return nil
		},
	}
}

func newSessionEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <session-id>",
		Short: "End a session and generate its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			sc, err := svc.EndSession(args[0])
			if err != nil {
				return fmt.Errorf("ending session: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Ended %s\n%s\n", sc.SessionID, sc.ConversationSummary)
			}
			return nil
		},
	}
}

func newSessionListCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.ListSessions()
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}
			if activeOnly {
				filtered := sessions[:0]
				for _, sc := range sessions {
					if sc.Active {
						filtered = append(filtered, sc)
					}
				}
				sessions = filtered
			}

			if len(sessions) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No sessions stored")
				}
				return nil
			}

			if outputFormat == "json" {
				data, err := json.MarshalIndent(sessions, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "SESSION\tSTARTED\tMOOD\tACTIVE\tSUMMARY\n")
			for _, sc := range sessions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n",
					truncate(sc.SessionID, 30),
					formatTime(sc.StartTime),
					sc.UserMood,
					sc.Active,
					truncate(sc.ConversationSummary, 50))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only show active sessions")
	return cmd
}
