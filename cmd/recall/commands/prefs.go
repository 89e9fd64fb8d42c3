// ABOUTME: Preference commands: list, get, set, reset
// ABOUTME: Direct access to what the robot has learned about its user
package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quickpet/recall/internal/models"
)

// NewPrefsCmd creates the prefs command group
func NewPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prefs",
		Aliases: []string{"preferences"},
		Short:   "Inspect and edit learned user preferences",
	}

	cmd.AddCommand(newPrefsListCmd(), newPrefsGetCmd(), newPrefsSetCmd(), newPrefsResetCmd())
	return cmd
}

func newPrefsListCmd() *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			prefs, err := svc.GetUserPreferences(typeFilter)
			if err != nil {
				return fmt.Errorf("listing preferences: %w", err)
			}

			if len(prefs) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No preferences stored")
				}
				return nil
			}

			if outputFormat == "json" {
				data, err := json.MarshalIndent(prefs, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "TYPE\tKEY\tVALUE\tCONFIDENCE\tUSED\tUPDATED\n")
			for _, p := range prefs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\t%s\n",
					p.Type, p.Key, truncate(p.Value.String(), 30),
					p.Confidence, p.UsageCount, formatTime(p.LastUpdated))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "", "Filter by type (user_info, personality, behavior)")
	return cmd
}

func newPrefsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <type> <key>",
		Short: "Get one preference (counts as a usage reference)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			pref, err := svc.GetPreference(args[0], args[1])
			if err != nil {
				return fmt.Errorf("getting preference: %w", err)
			}
			if pref == nil {
				return fmt.Errorf("no preference %s/%s", args[0], args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), pref.Value.String())
			return nil
		},
	}
}

func newPrefsSetCmd() *cobra.Command {
	var confidence float64

	cmd := &cobra.Command{
		Use:   "set <type> <key> <value>",
		Short: "Set a preference explicitly",
		Long: `Set a preference explicitly.

Values are stored typed: "true"/"false" as booleans, numbers as numbers,
everything else as text.

Examples:
  recall prefs set user_info name Alice
  recall prefs set behavior speed_preference slow --confidence 0.8`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.SetPreference(args[0], args[1], parseValue(args[2]), confidence); err != nil {
				return fmt.Errorf("setting preference: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s/%s = %s\n", args[0], args[1], args[2])
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&confidence, "confidence", 1.0, "Confidence 0.0-1.0")
	return cmd
}

func newPrefsResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete preferences without --yes")
			}

			store, _, err := openStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.ResetPreferences()
			if err != nil {
				return fmt.Errorf("resetting preferences: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d preference(s)\n", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

// parseValue interprets a CLI argument as a typed preference value
func parseValue(s string) models.Value {
	switch s {
	case "true":
		return models.BoolValue(true)
	case "false":
		return models.BoolValue(false)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.NumberValue(f)
	}
	return models.TextValue(s)
}
