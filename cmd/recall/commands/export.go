// ABOUTME: CLI command to export the memory database
// ABOUTME: YAML for machine use, Markdown for humans reading the robot's diary
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportAs     string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all stored memory",
		Long: `Export preferences, sessions and conversation history.

Examples:
  recall export --as yaml -o memory.yaml
  recall export --as markdown -o memory.md`,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&exportAs, "as", "yaml", "Export format: yaml or markdown")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch exportAs {
	case "yaml":
		err = store.ExportToYAML(out)
	case "markdown", "md":
		err = store.ExportToMarkdown(out)
	default:
		return fmt.Errorf("unknown export format %q (want yaml or markdown)", exportAs)
	}
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	if exportOutput != "" && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOutput)
	}
	return nil
}
