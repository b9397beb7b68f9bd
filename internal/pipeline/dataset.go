// ABOUTME: Loads and joins the two trial files into one in-memory dataset.
// ABOUTME: Shared by the report, summary, export and MCP entry points.
package pipeline

import (
	"fmt"

	"github.com/harperreed/mousetrial/internal/analysis"
	"github.com/harperreed/mousetrial/internal/loader"
	"github.com/harperreed/mousetrial/internal/models"
)

// Dataset is the joined trial table plus join bookkeeping.
type Dataset struct {
	DrugData  string
	TrialData string
	Records   []models.Record
	Stats     analysis.JoinStats
}

// Load reads both files and inner-joins them on mouse ID.
func Load(drugData, trialData string) (*Dataset, error) {
	mice, err := loader.LoadMice(drugData)
	if err != nil {
		return nil, err
	}
	obs, err := loader.LoadObservations(trialData)
	if err != nil {
		return nil, err
	}

	records, stats := analysis.Join(mice, obs)
	return &Dataset{
		DrugData:  drugData,
		TrialData: trialData,
		Records:   records,
		Stats:     stats,
	}, nil
}

// Summaries aggregates one measure by drug and timepoint.
func (d *Dataset) Summaries(m models.Measure) []models.GroupSummary {
	return analysis.Aggregate(d.Records, m)
}

// AllSummaries aggregates every measure.
func (d *Dataset) AllSummaries() map[models.Measure][]models.GroupSummary {
	out := make(map[models.Measure][]models.GroupSummary, len(models.AllMeasures))
	for _, m := range models.AllMeasures {
		out[m] = d.Summaries(m)
	}
	return out
}

// Drugs returns every drug present in the joined table.
func (d *Dataset) Drugs() []string {
	return analysis.Drugs(d.Summaries(models.MeasureSurvival))
}

// Wide pivots measure m's statistic st with treatments ordered first.
func (d *Dataset) Wide(m models.Measure, st models.Statistic, treatments []string) (*analysis.WideTable, error) {
	w, err := analysis.Pivot(d.Summaries(m), st, treatments)
	if err != nil {
		return nil, fmt.Errorf("pivot %s: %w", m, err)
	}
	return w, nil
}

// PercentChanges returns the tumor volume change for every drug with both
// endpoints present.
func (d *Dataset) PercentChanges() ([]models.PercentChange, error) {
	means, err := d.Wide(models.MeasureTumorVolume, models.StatMean, nil)
	if err != nil {
		return nil, err
	}
	return analysis.PercentChangesAvailable(means), nil
}
