// ABOUTME: Survival rates and percent tumor change derived from wide tables.
// ABOUTME: Both fail with ErrUnknownDrug or ErrMissingCell on absent data.
package analysis

import (
	"fmt"

	"github.com/harperreed/mousetrial/internal/models"
)

// SurvivalRates converts a count column into percentages of the drug's
// initial cohort. The first present timepoint is always exactly 100.
func SurvivalRates(counts *WideTable, drug string) ([]Cell, error) {
	col, err := counts.Column(drug)
	if err != nil {
		return nil, err
	}
	if len(col) == 0 || col[0].Value == 0 {
		return nil, fmt.Errorf("survival %s: %w", drug, ErrMissingCell)
	}

	base := col[0].Value
	rates := make([]Cell, len(col))
	for i, c := range col {
		rates[i] = Cell{Drug: drug, Timepoint: c.Timepoint, Value: c.Value / base * 100}
	}
	rates[0].Value = 100
	return rates, nil
}

// PercentChange is the change of drug's mean between the table's first and
// last timepoint, as a percentage of the first.
func PercentChange(means *WideTable, drug string) (models.PercentChange, error) {
	first, err := means.First(drug)
	if err != nil {
		return models.PercentChange{}, fmt.Errorf("percent change: %w", err)
	}
	last, err := means.Last(drug)
	if err != nil {
		return models.PercentChange{}, fmt.Errorf("percent change: %w", err)
	}
	return models.PercentChange{Drug: drug, Percent: (last - first) / first * 100}, nil
}

// PercentChanges computes PercentChange for each drug, in order.
func PercentChanges(means *WideTable, drugs []string) ([]models.PercentChange, error) {
	changes := make([]models.PercentChange, 0, len(drugs))
	for _, d := range drugs {
		c, err := PercentChange(means, d)
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, nil
}

// PercentChangesAvailable computes PercentChange for every drug that has both
// endpoints, skipping the rest.
func PercentChangesAvailable(means *WideTable) []models.PercentChange {
	var changes []models.PercentChange
	for _, d := range means.Drugs {
		if c, err := PercentChange(means, d); err == nil {
			changes = append(changes, c)
		}
	}
	return changes
}
