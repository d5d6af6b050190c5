// ABOUTME: CLI commands for exporting and importing fitness data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/export"
	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export fitness data",
	Long: `Export fitness data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include activity and food since this date (markdown only)

EXAMPLES:

  fitness export json                        # Export all data as JSON
  fitness export json -o backup.json         # Save to file
  fitness export yaml                        # Export as YAML
  fitness export markdown --since 2026-01-01 # Activity from 2026 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		d := export.FromSnapshot(st.Snapshot(), time.Now().In(st.Location()))

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = d.JSON()
		case "yaml":
			data, err = d.YAML()
		case "markdown":
			var since *time.Time
			if exportSince != "" {
				t, err := time.ParseInLocation(models.DateLayout, exportSince, st.Location())
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			data = []byte(d.Markdown(since))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Exported to %s", exportOutput))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import fitness data from JSON",
	Long: `Import fitness data from a JSON export.

The file replaces the profile, schedule, activity log, and nutrition log.
The account and session are left alone.

EXAMPLES:

  fitness import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		d, err := export.ParseJSON(data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		st.Restore(d.Snapshot())

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Imported from %s", filename))
		fmt.Fprintf(out, "  %d workouts, %d activities, %d food entries\n",
			len(d.Workouts), len(d.Activities), len(d.Nutrition))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
