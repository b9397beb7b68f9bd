// ABOUTME: Export of summary tables and percent changes.
// ABOUTME: Supports JSON, YAML, Markdown and CSV export formats.
package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/mousetrial/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the export document format version.
const ExportVersion = "1.0"

// SummaryRow is one exported group summary. SEM is nil where undefined.
type SummaryRow struct {
	Drug      string   `json:"drug" yaml:"drug"`
	Timepoint int      `json:"timepoint" yaml:"timepoint"`
	Mean      float64  `json:"mean" yaml:"mean"`
	SEM       *float64 `json:"sem" yaml:"sem"`
	Count     int      `json:"count" yaml:"count"`
}

// ChangeRow is one exported percent change.
type ChangeRow struct {
	Drug    string  `json:"drug" yaml:"drug"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// ExportData represents the full export format for trial summaries.
type ExportData struct {
	Version        string                  `json:"version" yaml:"version"`
	ExportedAt     time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool           string                  `json:"tool" yaml:"tool"`
	DrugData       string                  `json:"drug_data" yaml:"drug_data"`
	TrialData      string                  `json:"trial_data" yaml:"trial_data"`
	Summaries      map[string][]SummaryRow `json:"summaries" yaml:"summaries"`
	PercentChanges []ChangeRow             `json:"percent_changes" yaml:"percent_changes"`
}

// NewExportData builds an export document from per-measure summaries.
func NewExportData(drugData, trialData string, summaries map[models.Measure][]models.GroupSummary, changes []models.PercentChange) *ExportData {
	data := &ExportData{
		Version:        ExportVersion,
		ExportedAt:     time.Now(),
		Tool:           "mousetrial",
		DrugData:       drugData,
		TrialData:      trialData,
		Summaries:      make(map[string][]SummaryRow, len(summaries)),
		PercentChanges: make([]ChangeRow, 0, len(changes)),
	}
	for m, s := range summaries {
		data.Summaries[string(m)] = SummaryRows(s)
	}
	for _, c := range changes {
		data.PercentChanges = append(data.PercentChanges, ChangeRow{Drug: c.Drug, Percent: c.Percent})
	}
	return data
}

// SummaryRows converts group summaries to their exported form.
func SummaryRows(summaries []models.GroupSummary) []SummaryRow {
	rows := make([]SummaryRow, 0, len(summaries))
	for _, s := range summaries {
		row := SummaryRow{Drug: s.Drug, Timepoint: s.Timepoint, Mean: s.Mean, Count: s.Count}
		if sem, ok := s.StandardError(); ok {
			row.SEM = &sem
		}
		rows = append(rows, row)
	}
	return rows
}

// measureOrder lists exported measures in report order.
func (e *ExportData) measureOrder() []string {
	var out []string
	for _, m := range models.AllMeasures {
		if _, ok := e.Summaries[string(m)]; ok {
			out = append(out, string(m))
		}
	}
	return out
}

// ExportJSON exports the document as indented JSON.
func ExportJSON(data *ExportData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports the document as YAML.
func ExportYAML(data *ExportData) ([]byte, error) {
	yamlData := struct {
		Version        string                  `yaml:"version"`
		ExportedAt     string                  `yaml:"exported_at"`
		Tool           string                  `yaml:"tool"`
		DrugData       string                  `yaml:"drug_data"`
		TrialData      string                  `yaml:"trial_data"`
		Summaries      map[string][]SummaryRow `yaml:"summaries"`
		PercentChanges []ChangeRow             `yaml:"percent_changes"`
	}{
		Version:        data.Version,
		ExportedAt:     data.ExportedAt.Format(time.RFC3339),
		Tool:           data.Tool,
		DrugData:       data.DrugData,
		TrialData:      data.TrialData,
		Summaries:      data.Summaries,
		PercentChanges: data.PercentChanges,
	}
	return yaml.Marshal(yamlData)
}

// ExportMarkdown exports the document as Markdown tables.
func ExportMarkdown(data *ExportData) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Trial Summary - %s\n\n", data.ExportedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.ExportedAt.Format(time.RFC3339)))

	for _, m := range data.measureOrder() {
		sb.WriteString(fmt.Sprintf("## %s\n\n", m))
		sb.WriteString("| Drug | Timepoint | Mean | SEM | Count |\n")
		sb.WriteString("|------|-----------|------|-----|-------|\n")
		for _, r := range data.Summaries[m] {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.4f | %s | %d |\n",
				r.Drug, r.Timepoint, r.Mean, formatSEM(r.SEM, 'f', 4), r.Count))
		}
		sb.WriteString("\n")
	}

	if len(data.PercentChanges) > 0 {
		sb.WriteString("## Percent Change\n\n")
		sb.WriteString("| Drug | Change |\n")
		sb.WriteString("|------|--------|\n")
		for _, c := range data.PercentChanges {
			sb.WriteString(fmt.Sprintf("| %s | %.2f%% |\n", c.Drug, c.Percent))
		}
	}

	return sb.String()
}

// ExportCSV exports every summary row as one long CSV table.
func ExportCSV(data *ExportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"measure", "drug", "timepoint", "mean", "sem", "count"}); err != nil {
		return nil, err
	}
	for _, m := range data.measureOrder() {
		for _, r := range data.Summaries[m] {
			rec := []string{
				m,
				r.Drug,
				strconv.Itoa(r.Timepoint),
				strconv.FormatFloat(r.Mean, 'g', -1, 64),
				formatSEM(r.SEM, 'g', -1),
				strconv.Itoa(r.Count),
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatSEM(sem *float64, format byte, prec int) string {
	if sem == nil {
		return ""
	}
	return strconv.FormatFloat(*sem, format, prec, 64)
}
