// ABOUTME: CLI command for running the full trial report.
// ABOUTME: Writes the four charts and optionally records the run.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/mousetrial/internal/models"
	"github.com/harperreed/mousetrial/internal/pipeline"
	"github.com/harperreed/mousetrial/internal/render"
	"github.com/spf13/cobra"
)

var (
	reportDrugs      string
	reportTrials     string
	reportOut        string
	reportTreatments []string
	reportNoPreview  bool
	reportRecord     bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the analysis and write charts",
	Long: `Run the whole analysis: load and join both files, summarize tumor volume,
metastatic sites and survival per drug and timepoint, and write four PNG charts.

Each stage prints a short preview table. Charts are also drawn in the
terminal unless --no-preview is given.

TREATMENTS:

  Only treatments in the allowlist are charted, in the given order. The
  default is Capomulin, Infubinol, Ketapril, Placebo. A treatment missing
  from the data aborts the report.

EXAMPLES:

  mousetrial report
  mousetrial report --drugs mice.csv --trials trial.csv --out charts
  mousetrial report -t Ramicane -t Placebo --no-preview
  mousetrial report --record`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := pipeline.Options{
			DrugData:   cfg.GetDrugData(),
			TrialData:  cfg.GetTrialData(),
			OutputDir:  cfg.GetOutputDir(),
			Treatments: cfg.GetTreatments(),
			Chart:      chartOptions(),
			Preview:    !reportNoPreview,
			Out:        cmd.OutOrStdout(),
			Logger:     logger,
		}
		if cmd.Flags().Changed("drugs") {
			opts.DrugData = reportDrugs
		}
		if cmd.Flags().Changed("trials") {
			opts.TrialData = reportTrials
		}
		if cmd.Flags().Changed("out") {
			opts.OutputDir = reportOut
		}
		if len(reportTreatments) > 0 {
			opts.Treatments = reportTreatments
		}

		run := models.NewRun(opts.DrugData, opts.TrialData).WithTreatments(opts.Treatments)

		res, err := pipeline.Report(opts)
		if err != nil {
			return fmt.Errorf("report failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Wrote %d charts to %s\n", len(res.Charts), opts.OutputDir)

		if !reportRecord {
			return nil
		}

		run.WithCharts(res.Charts)
		run.Mice = res.Stats.Mice
		run.Observations = res.Stats.Observations
		run.Records = res.Stats.Records
		run.Dropped = res.Stats.Dropped()
		run.PercentChanges = res.Changes

		repo, err := cfg.OpenHistory()
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer repo.Close()

		if err := repo.SaveRun(run); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		logger.Info("run recorded", "id", run.ID.String()[:8])
		return nil
	},
}

// chartOptions sizes charts from the config.
func chartOptions() render.Options {
	w, h := cfg.GetChartSize()
	return render.Options{Width: w, Height: h}
}

func init() {
	reportCmd.Flags().StringVar(&reportDrugs, "drugs", "", "mouse-to-drug CSV (default from config)")
	reportCmd.Flags().StringVar(&reportTrials, "trials", "", "trial observations CSV (default from config)")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "chart output directory (default from config)")
	reportCmd.Flags().StringArrayVarP(&reportTreatments, "treatment", "t", nil, "charted treatment, repeatable (replaces the allowlist)")
	reportCmd.Flags().BoolVar(&reportNoPreview, "no-preview", false, "skip terminal chart previews")
	reportCmd.Flags().BoolVar(&reportRecord, "record", false, "store the run in the history database")
	rootCmd.AddCommand(reportCmd)
}
