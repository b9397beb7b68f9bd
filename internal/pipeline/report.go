// ABOUTME: The report pipeline: load, join, then four aggregate/pivot/render runs.
// ABOUTME: Every stage prints a preview; any failure aborts the whole report.
package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/mousetrial/internal/analysis"
	"github.com/harperreed/mousetrial/internal/models"
	"github.com/harperreed/mousetrial/internal/render"
)

// previewRows is how many long-form rows are printed per stage.
const previewRows = 5

// Options configures one report.
type Options struct {
	DrugData   string
	TrialData  string
	OutputDir  string
	Treatments []string
	Chart      render.Options
	// Preview draws each chart in the terminal after saving it.
	Preview bool
	Out     io.Writer
	Logger  *log.Logger
}

// Result is what a report produced.
type Result struct {
	Stats      analysis.JoinStats
	Charts     []string
	Changes    []models.PercentChange
	AllChanges []models.PercentChange
}

// Report runs the full pipeline and writes the four charts.
func Report(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if len(opts.Treatments) == 0 {
		opts.Treatments = models.DefaultTreatments
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Chart.Width == 0 || opts.Chart.Height == 0 {
		opts.Chart = render.DefaultOptions()
	}
	out := NewPrinter(opts.Out)

	logger.Info("loading trial data", "drugs", opts.DrugData, "trials", opts.TrialData)
	ds, err := Load(opts.DrugData, opts.TrialData)
	if err != nil {
		return nil, err
	}
	logger.Info("joined", "records", ds.Stats.Records, "mice", ds.Stats.Mice, "observations", ds.Stats.Observations)
	if ds.Stats.Dropped() > 0 {
		logger.Debug("join dropped unmatched rows",
			"mice", ds.Stats.UnmatchedMice, "observations", ds.Stats.UnmatchedObservations)
	}
	out.Records(ds.Records, previewRows)

	res := &Result{Stats: ds.Stats}
	save := func(c render.Chart, preview string) error {
		path, err := render.Save(opts.OutputDir, c, opts.Chart)
		if err != nil {
			return err
		}
		logger.Info("chart written", "path", path)
		res.Charts = append(res.Charts, path)
		if opts.Preview {
			out.Text(preview)
		}
		return nil
	}

	// Tumor volume
	tumor := ds.Summaries(models.MeasureTumorVolume)
	tumorMeans, tumorSEMs, err := meanAndSEM(out, "Tumor volume", tumor, opts.Treatments)
	if err != nil {
		return nil, err
	}
	tc, err := TumorChart(tumorMeans, tumorSEMs, opts.Treatments)
	if err != nil {
		return nil, err
	}
	if err := save(tc, tc.Preview(60, 12)); err != nil {
		return nil, err
	}

	// Metastatic sites
	meta := ds.Summaries(models.MeasureMetastaticSites)
	metaMeans, metaSEMs, err := meanAndSEM(out, "Metastatic sites", meta, opts.Treatments)
	if err != nil {
		return nil, err
	}
	mc, err := MetastaticChart(metaMeans, metaSEMs, opts.Treatments)
	if err != nil {
		return nil, err
	}
	if err := save(mc, mc.Preview(60, 12)); err != nil {
		return nil, err
	}

	// Survival
	survival := ds.Summaries(models.MeasureSurvival)
	out.Summaries("Mouse count", survival, models.StatCount, previewRows)
	counts, err := analysis.Pivot(survival, models.StatCount, opts.Treatments)
	if err != nil {
		return nil, fmt.Errorf("pivot mouse count: %w", err)
	}
	out.Wide("Mouse count by timepoint", counts)
	sc, err := SurvivalChart(counts, opts.Treatments)
	if err != nil {
		return nil, err
	}
	if err := save(sc, sc.Preview(60, 12)); err != nil {
		return nil, err
	}

	// Percent change
	res.AllChanges = analysis.PercentChangesAvailable(tumorMeans)
	out.Changes(res.AllChanges)
	res.Changes, err = analysis.PercentChanges(tumorMeans, opts.Treatments)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", TitleChange, err)
	}
	bc := ChangeChart(res.Changes)
	if err := save(bc, bc.Preview(60)); err != nil {
		return nil, err
	}

	return res, nil
}

// meanAndSEM previews and pivots the mean and SEM of one measure.
func meanAndSEM(out *Printer, label string, summaries []models.GroupSummary, order []string) (*analysis.WideTable, *analysis.WideTable, error) {
	out.Summaries(label+" mean", summaries, models.StatMean, previewRows)
	out.Summaries(label+" standard error", summaries, models.StatSEM, previewRows)

	means, err := analysis.Pivot(summaries, models.StatMean, order)
	if err != nil {
		return nil, nil, fmt.Errorf("pivot %s mean: %w", label, err)
	}
	sems, err := analysis.Pivot(summaries, models.StatSEM, order)
	if err != nil {
		return nil, nil, fmt.Errorf("pivot %s standard error: %w", label, err)
	}
	out.Wide(label+" mean by timepoint", means)
	out.Wide(label+" standard error by timepoint", sems)
	return means, sems, nil
}
