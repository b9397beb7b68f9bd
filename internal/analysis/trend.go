// ABOUTME: Per-drug trends extracted from wide tables for charting.
// ABOUTME: A trend pairs timepoints with values and optional error widths.
package analysis

import "math"

// Trend is one drug's values over time. Errors is nil when the trend has no
// error bars; a NaN error means the bar is undefined at that point.
type Trend struct {
	Drug       string
	Timepoints []float64
	Values     []float64
	Errors     []float64
}

// TrendOf builds a trend without error bars from present cells.
func TrendOf(drug string, cells []Cell) Trend {
	t := Trend{Drug: drug}
	for _, c := range cells {
		t.Timepoints = append(t.Timepoints, float64(c.Timepoint))
		t.Values = append(t.Values, c.Value)
	}
	return t
}

// TrendWithError builds drug's mean trend with SEM error bars. A mean with
// no matching SEM cell gets a NaN error.
func TrendWithError(means, sems *WideTable, drug string) (Trend, error) {
	col, err := means.Column(drug)
	if err != nil {
		return Trend{}, err
	}
	if !sems.HasDrug(drug) {
		_, err := sems.Column(drug)
		return Trend{}, err
	}

	t := TrendOf(drug, col)
	t.Errors = make([]float64, len(col))
	for i, c := range col {
		e, ok := sems.Value(drug, c.Timepoint)
		if !ok {
			e = math.NaN()
		}
		t.Errors[i] = e
	}
	return t, nil
}

// Len returns the number of points.
func (t Trend) Len() int {
	return len(t.Values)
}
