// ABOUTME: CLI command for printing one measure's summary tables.
// ABOUTME: Shows long-form statistics and the pivoted wide tables.
package main

import (
	"fmt"

	"github.com/harperreed/mousetrial/internal/models"
	"github.com/harperreed/mousetrial/internal/pipeline"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <measure>",
	Short: "Print summary tables for a measure",
	Long: `Print per drug and timepoint statistics for one measure.

MEASURES:

  tumor        Tumor Volume (mm3): mean and standard error
  metastatic   Metastatic Sites: mean and standard error
  survival     number of mice observed

Every drug in the data is shown, not only the charted treatments.

EXAMPLES:

  mousetrial summary tumor
  mousetrial summary survival`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"tumor", "metastatic", "survival"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidMeasure(args[0]) {
			return fmt.Errorf("unknown measure: %s (use tumor, metastatic, or survival)", args[0])
		}
		m := models.Measure(args[0])

		ds, err := loadDataset()
		if err != nil {
			return err
		}

		out := pipeline.NewPrinter(cmd.OutOrStdout())
		summaries := ds.Summaries(m)
		label := models.MeasureColumns[m]

		stats := []models.Statistic{models.StatMean, models.StatSEM}
		if m == models.MeasureSurvival {
			label = "Mice"
			stats = []models.Statistic{models.StatCount}
		}

		for _, st := range stats {
			out.Summaries(fmt.Sprintf("%s %s", label, st), summaries, st, len(summaries))
		}
		for _, st := range stats {
			w, err := ds.Wide(m, st, cfg.GetTreatments())
			if err != nil {
				return err
			}
			out.Wide(fmt.Sprintf("%s %s by timepoint", label, st), w)
		}
		return nil
	},
}

// loadDataset loads the configured input files.
func loadDataset() (*pipeline.Dataset, error) {
	logger.Debug("loading trial data", "drugs", cfg.GetDrugData(), "trials", cfg.GetTrialData())
	ds, err := pipeline.Load(cfg.GetDrugData(), cfg.GetTrialData())
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	if ds.Stats.Dropped() > 0 {
		logger.Debug("join dropped unmatched rows",
			"mice", ds.Stats.UnmatchedMice, "observations", ds.Stats.UnmatchedObservations)
	}
	return ds, nil
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
