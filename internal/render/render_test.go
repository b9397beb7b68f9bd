// ABOUTME: Tests for chart styles, custom series, PNG rendering and previews.
// ABOUTME: PNG output is decoded to check it is a real image of the right size.
package render

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleLineChart() LineChart {
	b := Bind([]string{"Capomulin", "Infubinol"})
	return LineChart{
		Title:  "Tumor Response to Treatment",
		XLabel: "Time (Days)",
		YLabel: "Tumor Volume (mm3)",
		Lines: []Line{
			{Name: b[0].Treatment, Style: b[0].Style, X: []float64{0, 5, 10}, Y: []float64{45, 44.3, 43.1}, Err: []float64{0, 0.45, 0.7}},
			{Name: b[1].Treatment, Style: b[1].Style, X: []float64{0, 5, 10}, Y: []float64{45, 47.1, 49.4}, Err: []float64{0, math.NaN(), 0.5}},
		},
	}
}

func TestBindWrapsPalette(t *testing.T) {
	treatments := []string{"Capomulin", "Infubinol", "Ketapril", "Placebo", "Ramicane", "Stelasyn"}
	bindings := Bind(treatments)

	if len(bindings) != len(treatments) {
		t.Fatalf("expected %d bindings, got %d", len(treatments), len(bindings))
	}
	for i, b := range bindings {
		if b.Treatment != treatments[i] {
			t.Errorf("binding %d treatment = %s, want %s", i, b.Treatment, treatments[i])
		}
		if b.Style.Name != Palette[i%len(Palette)].Name {
			t.Errorf("binding %d style = %s, want %s", i, b.Style.Name, Palette[i%len(Palette)].Name)
		}
	}
	if bindings[4].Style.Marker != MarkerCircle {
		t.Errorf("fifth treatment should wrap to the first style, got marker %d", bindings[4].Style.Marker)
	}
}

func TestPercentLabel(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{-1.6304, "-2%"},
		{-19.475, "-19%"},
		{57.03, "57%"},
		{46.12, "46%"},
	}
	for _, tt := range tests {
		if got := PercentLabel(tt.value); got != tt.want {
			t.Errorf("PercentLabel(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestBarColor(t *testing.T) {
	if BarColor(12) != IncreaseColor {
		t.Error("positive change should use the increase color")
	}
	if BarColor(-1.63) != DecreaseColor {
		t.Error("negative change should use the decrease color")
	}
	if BarColor(0) != DecreaseColor {
		t.Error("zero change should use the decrease color")
	}
}

func TestErrorBarSeriesBounds(t *testing.T) {
	s := ErrorBarSeries{
		Name:    "Capomulin",
		XValues: []float64{0, 5},
		YValues: []float64{46, 45.25},
		Errors:  []float64{1, math.NaN()},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	x, lo, hi := s.GetBoundedValues(0)
	if x != 0 || lo != 45 || hi != 47 {
		t.Errorf("bounds(0) = %v, %v, %v", x, lo, hi)
	}
	_, lo, hi = s.GetBoundedValues(1)
	if lo != 45.25 || hi != 45.25 {
		t.Errorf("NaN error should collapse bounds, got %v..%v", lo, hi)
	}
}

func TestErrorBarSeriesValidate(t *testing.T) {
	tests := []struct {
		name   string
		series ErrorBarSeries
	}{
		{"empty", ErrorBarSeries{Name: "a"}},
		{"length mismatch", ErrorBarSeries{Name: "a", XValues: []float64{0, 1}, YValues: []float64{1}}},
		{"error mismatch", ErrorBarSeries{Name: "a", XValues: []float64{0}, YValues: []float64{1}, Errors: []float64{1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.series.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLineChartRender(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleLineChart().Render(&buf, DefaultOptions()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 480 {
		t.Errorf("image size = %v, want 640x480", img.Bounds())
	}
}

func TestLineChartWithoutErrorBars(t *testing.T) {
	c := sampleLineChart()
	c.Title = "Survival During Treatment"
	for i := range c.Lines {
		c.Lines[i].Err = nil
	}

	var buf bytes.Buffer
	if err := c.Render(&buf, Options{Width: 320, Height: 240}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
}

func TestLineChartSingleTimepoint(t *testing.T) {
	b := Bind([]string{"Capomulin", "Placebo"})
	tests := []struct {
		name  string
		lines []Line
	}{
		{"one point", []Line{
			{Name: "Capomulin", Style: b[0].Style, X: []float64{0}, Y: []float64{45}, Err: []float64{math.NaN()}},
		}},
		{"two lines at one timepoint", []Line{
			{Name: "Capomulin", Style: b[0].Style, X: []float64{0}, Y: []float64{100}},
			{Name: "Placebo", Style: b[1].Style, X: []float64{0}, Y: []float64{100}},
		}},
		{"flat line", []Line{
			{Name: "Capomulin", Style: b[0].Style, X: []float64{0, 5, 10}, Y: []float64{100, 100, 100}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := LineChart{Title: "Survival During Treatment", XLabel: "Time (Days)", YLabel: "Survival Rate (%)", Lines: tt.lines}
			var buf bytes.Buffer
			if err := c.Render(&buf, DefaultOptions()); err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if _, err := png.Decode(&buf); err != nil {
				t.Fatalf("output is not a PNG: %v", err)
			}
		})
	}
}

func TestTimepointTicksPadLoneValue(t *testing.T) {
	ticks := timepointTicks([]Line{{X: []float64{5}, Y: []float64{1}}})
	if len(ticks) != 3 {
		t.Fatalf("expected 3 ticks, got %d", len(ticks))
	}
	if ticks[0].Value >= ticks[2].Value || ticks[1].Label != "5" || ticks[0].Label != "" {
		t.Errorf("unexpected ticks %+v", ticks)
	}
}

func TestRenderNoSeries(t *testing.T) {
	var buf bytes.Buffer
	if err := (LineChart{Title: "empty"}).Render(&buf, DefaultOptions()); !errors.Is(err, ErrNoSeries) {
		t.Errorf("expected ErrNoSeries, got %v", err)
	}
	if err := (BarChart{Title: "empty"}).Render(&buf, DefaultOptions()); !errors.Is(err, ErrNoSeries) {
		t.Errorf("expected ErrNoSeries, got %v", err)
	}
}

func TestBarChartRender(t *testing.T) {
	c := BarChart{
		Title:  "Tumor Change Over 45 Day Treatment",
		YLabel: "% Tumor Volume Change",
		Bars: []Bar{
			{Label: "Capomulin", Value: -19.48},
			{Label: "Infubinol", Value: 46.12},
			{Label: "Ketapril", Value: 57.03},
			{Label: "Placebo", Value: 51.30},
		},
	}

	var buf bytes.Buffer
	if err := c.Render(&buf, DefaultOptions()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
}

func TestBarChartSingleBar(t *testing.T) {
	for _, v := range []float64{-19.48, 0, 51.3} {
		c := BarChart{
			Title:  "Tumor Change Over 45 Day Treatment",
			YLabel: "% Tumor Volume Change",
			Bars:   []Bar{{Label: "Capomulin", Value: v}},
		}
		var buf bytes.Buffer
		if err := c.Render(&buf, DefaultOptions()); err != nil {
			t.Fatalf("Render(%v) failed: %v", v, err)
		}
		if _, err := png.Decode(&buf); err != nil {
			t.Fatalf("output is not a PNG: %v", err)
		}
	}
}

func TestNiceTicksCoverRange(t *testing.T) {
	ticks := niceTicks(-28.6, 65.6, 6)
	if len(ticks) < 2 {
		t.Fatalf("expected several ticks, got %d", len(ticks))
	}
	if ticks[0].Value > -28.6 || ticks[len(ticks)-1].Value < 65.6 {
		t.Errorf("ticks %v..%v do not cover range", ticks[0].Value, ticks[len(ticks)-1].Value)
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")

	path, err := Save(dir, sampleLineChart(), DefaultOptions())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "Tumor Response to Treatment.png" {
		t.Errorf("file name = %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("chart file not written: %v", err)
	}
}

func TestSaveRenderFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	if _, err := Save(dir, LineChart{Title: "broken"}, DefaultOptions()); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(filepath.Join(dir, FileName("broken"))); !os.IsNotExist(err) {
		t.Errorf("expected no file after failed render, got %v", err)
	}
}

func TestPreviews(t *testing.T) {
	out := sampleLineChart().Preview(60, 10)
	for _, want := range []string{"Tumor Response to Treatment", "Capomulin", "Infubinol"} {
		if !strings.Contains(out, want) {
			t.Errorf("line preview missing %q", want)
		}
	}

	bars := BarChart{Title: "Change", Bars: []Bar{{Label: "Capomulin", Value: -19.48}, {Label: "Placebo", Value: 51.3}}}
	out = bars.Preview(60)
	for _, want := range []string{"Change", "Capomulin", "-19%", "51%"} {
		if !strings.Contains(out, want) {
			t.Errorf("bar preview missing %q", want)
		}
	}
}
