// ABOUTME: Run model recording one report invocation.
// ABOUTME: Persisted by the history store when recording is enabled.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Run captures the inputs and outcome of one report.
type Run struct {
	ID             uuid.UUID
	StartedAt      time.Time
	DrugData       string
	TrialData      string
	Mice           int
	Observations   int
	Records        int
	Dropped        int
	Treatments     []string
	Charts         []string
	PercentChanges []PercentChange
	CreatedAt      time.Time
}

// NewRun creates a new Run with generated UUID and current timestamp.
func NewRun(drugData, trialData string) *Run {
	now := time.Now()
	return &Run{
		ID:        uuid.New(),
		StartedAt: now,
		DrugData:  drugData,
		TrialData: trialData,
		CreatedAt: now,
	}
}

// WithTreatments sets the charted treatments.
func (r *Run) WithTreatments(treatments []string) *Run {
	r.Treatments = append([]string(nil), treatments...)
	return r
}

// WithCharts sets the written chart paths.
func (r *Run) WithCharts(paths []string) *Run {
	r.Charts = append([]string(nil), paths...)
	return r
}
