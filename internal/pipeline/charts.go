// ABOUTME: The four report charts: titles, axis labels and data assembly.
// ABOUTME: A selected treatment missing from a table aborts that chart.
package pipeline

import (
	"fmt"

	"github.com/harperreed/mousetrial/internal/analysis"
	"github.com/harperreed/mousetrial/internal/models"
	"github.com/harperreed/mousetrial/internal/render"
)

// Chart titles double as output file names.
const (
	TitleTumor      = "Tumor Response to Treatment"
	TitleMetastatic = "Metastatic Spread During Treatment"
	TitleSurvival   = "Survival During Treatment"
	TitleChange     = "Tumor Change Over 45 Day Treatment"
)

// TumorChart plots mean tumor volume with SEM bars.
func TumorChart(means, sems *analysis.WideTable, treatments []string) (render.LineChart, error) {
	c := render.LineChart{Title: TitleTumor, XLabel: "Time (Days)", YLabel: "Tumor Volume (mm3)"}
	return trendChart(c, means, sems, treatments)
}

// MetastaticChart plots mean metastatic sites with SEM bars.
func MetastaticChart(means, sems *analysis.WideTable, treatments []string) (render.LineChart, error) {
	c := render.LineChart{Title: TitleMetastatic, XLabel: "Treatment Duration (Days)", YLabel: "Metastatic Sites"}
	return trendChart(c, means, sems, treatments)
}

func trendChart(c render.LineChart, means, sems *analysis.WideTable, treatments []string) (render.LineChart, error) {
	for _, b := range render.Bind(treatments) {
		tr, err := analysis.TrendWithError(means, sems, b.Treatment)
		if err != nil {
			return c, fmt.Errorf("chart %q: %w", c.Title, err)
		}
		c.Lines = append(c.Lines, render.Line{
			Name:  b.Treatment,
			Style: b.Style,
			X:     tr.Timepoints,
			Y:     tr.Values,
			Err:   tr.Errors,
		})
	}
	return c, nil
}

// SurvivalChart plots the surviving share of each cohort.
func SurvivalChart(counts *analysis.WideTable, treatments []string) (render.LineChart, error) {
	c := render.LineChart{Title: TitleSurvival, XLabel: "Time (Days)", YLabel: "Survival Rate (%)"}
	for _, b := range render.Bind(treatments) {
		rates, err := analysis.SurvivalRates(counts, b.Treatment)
		if err != nil {
			return c, fmt.Errorf("chart %q: %w", c.Title, err)
		}
		tr := analysis.TrendOf(b.Treatment, rates)
		c.Lines = append(c.Lines, render.Line{Name: b.Treatment, Style: b.Style, X: tr.Timepoints, Y: tr.Values})
	}
	return c, nil
}

// ChangeChart plots one bar per percent change.
func ChangeChart(changes []models.PercentChange) render.BarChart {
	c := render.BarChart{Title: TitleChange, YLabel: "% Tumor Volume Change"}
	for _, ch := range changes {
		c.Bars = append(c.Bars, render.Bar{Label: ch.Drug, Value: ch.Percent})
	}
	return c
}
