// ABOUTME: Measure enum and per-group summary models.
// ABOUTME: A Measure selects the column aggregated by drug and timepoint.
package models

import "math"

// Measure is a measurement column that can be summarized per group.
type Measure string

const (
	MeasureTumorVolume     Measure = "tumor"
	MeasureMetastaticSites Measure = "metastatic"
	MeasureSurvival        Measure = "survival"
)

// AllMeasures lists measures in report order.
var AllMeasures = []Measure{MeasureTumorVolume, MeasureMetastaticSites, MeasureSurvival}

// MeasureColumns maps measures to the input column they summarize.
var MeasureColumns = map[Measure]string{
	MeasureTumorVolume:     ColTumorVolume,
	MeasureMetastaticSites: ColMetastaticSites,
	MeasureSurvival:        ColMouseID,
}

// IsValidMeasure checks if a string is a known measure.
func IsValidMeasure(s string) bool {
	for _, m := range AllMeasures {
		if string(m) == s {
			return true
		}
	}
	return false
}

// Value extracts the measure from a record. Survival counts rows, so every
// record contributes 1.
func (m Measure) Value(r Record) float64 {
	switch m {
	case MeasureTumorVolume:
		return r.TumorVolume
	case MeasureMetastaticSites:
		return float64(r.MetastaticSites)
	default:
		return 1
	}
}

// Statistic selects one field of a GroupSummary.
type Statistic string

const (
	StatMean  Statistic = "mean"
	StatSEM   Statistic = "sem"
	StatCount Statistic = "count"
)

// GroupKey identifies a (drug, timepoint) group.
type GroupKey struct {
	Drug      string
	Timepoint int
}

// GroupSummary holds the aggregates of one measure for one group.
// SEM is NaN when the group has fewer than two rows.
type GroupSummary struct {
	Drug      string
	Timepoint int
	Mean      float64
	SEM       float64
	Count     int
}

// Key returns the group key of the summary.
func (s GroupSummary) Key() GroupKey {
	return GroupKey{Drug: s.Drug, Timepoint: s.Timepoint}
}

// Stat returns the selected statistic.
func (s GroupSummary) Stat(st Statistic) float64 {
	switch st {
	case StatSEM:
		return s.SEM
	case StatCount:
		return float64(s.Count)
	default:
		return s.Mean
	}
}

// StandardError returns the SEM and whether it is defined.
func (s GroupSummary) StandardError() (float64, bool) {
	if math.IsNaN(s.SEM) {
		return 0, false
	}
	return s.SEM, true
}

// PercentChange is the relative change of a drug's mean tumor volume
// between the first and last timepoint.
type PercentChange struct {
	Drug    string
	Percent float64
}

// Increased reports whether the tumor volume grew.
func (p PercentChange) Increased() bool {
	return p.Percent > 0
}
