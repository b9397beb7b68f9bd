// ABOUTME: CLI command for exporting group summaries.
// ABOUTME: Supports JSON, YAML, Markdown, and CSV export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/mousetrial/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export group summaries",
	Long: `Export mean, SEM and count per drug and timepoint for every measure,
plus the percent tumor change of every drug.

FORMATS:

  json       Full JSON export
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)
  csv        One long table: measure,drug,timepoint,mean,sem,count

An undefined SEM (a group with a single mouse) is exported as null or blank.

EXAMPLES:

  mousetrial export json
  mousetrial export csv -o summary.csv
  mousetrial export markdown`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "csv"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		switch format {
		case "json", "yaml", "markdown", "csv":
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, or csv)", format)
		}

		ds, err := loadDataset()
		if err != nil {
			return err
		}
		changes, err := ds.PercentChanges()
		if err != nil {
			return err
		}
		export := storage.NewExportData(ds.DrugData, ds.TrialData, ds.AllSummaries(), changes)

		var data []byte
		switch format {
		case "json":
			data, err = storage.ExportJSON(export)
		case "yaml":
			data, err = storage.ExportYAML(export)
		case "markdown":
			data = []byte(storage.ExportMarkdown(export))
		case "csv":
			data, err = storage.ExportCSV(export)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
