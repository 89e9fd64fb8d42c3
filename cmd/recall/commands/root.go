// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point shared by all recall subcommands
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗ ███████╗ ██████╗ █████╗ ██╗     ██╗
██╔══██╗██╔════╝██╔════╝██╔══██╗██║     ██║
██████╔╝█████╗  ██║     ███████║██║     ██║
██╔══██╗██╔══╝  ██║     ██╔══██║██║     ██║
██║  ██║███████╗╚██████╗██║  ██║███████╗███████╗
╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝  ╚═╝╚══════╝╚══════╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall",
		Short: "Conversation memory for a companion robot",
		Long: banner + `
Recall stores conversation history, learned user preferences and session
context for a voice companion robot, and assembles memory context for
its language model.

Data lives in a local SQLite database under $XDG_DATA_HOME/recall.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")

	cmd.AddCommand(
		NewSessionCmd(),
		NewStoreCmd(),
		NewHistoryCmd(),
		NewSearchCmd(),
		NewPrefsCmd(),
		NewContextCmd(),
		NewExportCmd(),
		NewCleanupCmd(),
		NewStatusCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
