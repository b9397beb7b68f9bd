// ABOUTME: Mouse, Observation and Record models for the drug trial dataset.
// ABOUTME: Column names shared by the loader, joiner and exporters live here.
package models

// Column headers of the two trial input files.
const (
	ColMouseID         = "Mouse ID"
	ColDrug            = "Drug"
	ColTimepoint       = "Timepoint"
	ColTumorVolume     = "Tumor Volume (mm3)"
	ColMetastaticSites = "Metastatic Sites"
)

// DefaultTreatments is the reference allowlist of charted drugs.
var DefaultTreatments = []string{"Capomulin", "Infubinol", "Ketapril", "Placebo"}

// Mouse is one row of the drug-assignment file.
type Mouse struct {
	ID   string
	Drug string
}

// Observation is one row of the trial-measurement file.
type Observation struct {
	MouseID         string
	Timepoint       int
	TumorVolume     float64
	MetastaticSites int
}

// Record is a Mouse joined with one of its Observations.
type Record struct {
	MouseID         string
	Drug            string
	Timepoint       int
	TumorVolume     float64
	MetastaticSites int
}

// NewRecord joins a mouse with an observation of that mouse.
func NewRecord(m Mouse, o Observation) Record {
	return Record{
		MouseID:         m.ID,
		Drug:            m.Drug,
		Timepoint:       o.Timepoint,
		TumorVolume:     o.TumorVolume,
		MetastaticSites: o.MetastaticSites,
	}
}
