// ABOUTME: Grouped mean, standard error and count by drug and timepoint.
// ABOUTME: Uses gonum/stat for the mean and sample standard deviation.
package analysis

import (
	"math"
	"sort"

	"github.com/harperreed/mousetrial/internal/models"
	"gonum.org/v1/gonum/stat"
)

// Aggregate summarizes measure m for every (drug, timepoint) present in records.
// Summaries are sorted by drug, then timepoint. Groups with a single row get
// a NaN SEM.
func Aggregate(records []models.Record, m models.Measure) []models.GroupSummary {
	groups := make(map[models.GroupKey][]float64)
	for _, r := range records {
		key := models.GroupKey{Drug: r.Drug, Timepoint: r.Timepoint}
		groups[key] = append(groups[key], m.Value(r))
	}

	summaries := make([]models.GroupSummary, 0, len(groups))
	for key, values := range groups {
		summaries = append(summaries, summarize(key, values))
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Drug != summaries[j].Drug {
			return summaries[i].Drug < summaries[j].Drug
		}
		return summaries[i].Timepoint < summaries[j].Timepoint
	})
	return summaries
}

func summarize(key models.GroupKey, values []float64) models.GroupSummary {
	n := len(values)
	s := models.GroupSummary{
		Drug:      key.Drug,
		Timepoint: key.Timepoint,
		Mean:      stat.Mean(values, nil),
		SEM:       math.NaN(),
		Count:     n,
	}
	if n >= 2 {
		s.SEM = stat.StdDev(values, nil) / math.Sqrt(float64(n))
	}
	return s
}

// Drugs returns the distinct drugs of the summaries in sorted order.
func Drugs(summaries []models.GroupSummary) []string {
	seen := make(map[string]bool)
	var drugs []string
	for _, s := range summaries {
		if !seen[s.Drug] {
			seen[s.Drug] = true
			drugs = append(drugs, s.Drug)
		}
	}
	sort.Strings(drugs)
	return drugs
}
