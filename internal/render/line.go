// ABOUTME: Trend chart over timepoints, one styled line per treatment.
// ABOUTME: Renders to PNG with go-chart and previews in the terminal with asciigraph.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoSeries is returned when a chart has nothing to draw.
var ErrNoSeries = errors.New("chart has no series")

// Options sizes rendered charts in pixels.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions matches the reference figure size.
func DefaultOptions() Options {
	return Options{Width: 640, Height: 480}
}

// Line is one treatment's trend. Err is nil for charts without error bars.
type Line struct {
	Name  string
	Style LineStyle
	X     []float64
	Y     []float64
	Err   []float64
}

// LineChart plots treatment trends over time.
type LineChart struct {
	Title  string
	XLabel string
	YLabel string
	Lines  []Line
}

// ChartTitle returns the chart title.
func (c LineChart) ChartTitle() string { return c.Title }

// Render writes the chart as PNG.
func (c LineChart) Render(w io.Writer, opt Options) error {
	if len(c.Lines) == 0 {
		return fmt.Errorf("%s: %w", c.Title, ErrNoSeries)
	}

	series := make([]chart.Series, 0, len(c.Lines))
	for _, l := range c.Lines {
		series = append(series, ErrorBarSeries{
			Name:    l.Name,
			Style:   l.Style.chartStyle(),
			Marker:  l.Style.Marker,
			XValues: l.X,
			YValues: l.Y,
			Errors:  l.Err,
		})
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: c.XLabel, Ticks: timepointTicks(c.Lines)},
		YAxis:      chart.YAxis{Name: c.YLabel},
		Series:     series,
	}
	if lo, hi, ok := yExtent(c.Lines); ok && lo == hi {
		ch.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}

// timepointTicks labels every distinct x value across lines. A lone
// timepoint gets unlabeled neighbours since go-chart needs a nonzero x span.
func timepointTicks(lines []Line) []chart.Tick {
	xs := unionX(lines)
	ticks := make([]chart.Tick, len(xs))
	for i, x := range xs {
		ticks[i] = chart.Tick{Value: x, Label: formatTick(x)}
	}
	if len(xs) == 1 {
		ticks = []chart.Tick{{Value: xs[0] - 1}, ticks[0], {Value: xs[0] + 1}}
	}
	return ticks
}

// yExtent is the y span of all points including whiskers.
func yExtent(lines []Line) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, l := range lines {
		for i, y := range l.Y {
			if math.IsNaN(y) {
				continue
			}
			e := 0.0
			if i < len(l.Err) && !math.IsNaN(l.Err[i]) && !math.IsInf(l.Err[i], 0) {
				e = l.Err[i]
			}
			lo = math.Min(lo, y-e)
			hi = math.Max(hi, y+e)
			ok = true
		}
	}
	return lo, hi, ok
}

func unionX(lines []Line) []float64 {
	seen := make(map[float64]bool)
	var xs []float64
	for _, l := range lines {
		for _, x := range l.X {
			if !seen[x] {
				seen[x] = true
				xs = append(xs, x)
			}
		}
	}
	sort.Float64s(xs)
	return xs
}

// Preview draws the chart as an ANSI line plot followed by a legend.
func (c LineChart) Preview(width, height int) string {
	if len(c.Lines) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	xs := unionX(c.Lines)
	pos := make(map[float64]int, len(xs))
	for i, x := range xs {
		pos[x] = i
	}

	data := make([][]float64, 0, len(c.Lines))
	colors := make([]asciigraph.AnsiColor, 0, len(c.Lines))
	legend := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		row := make([]float64, len(xs))
		for i := range row {
			row[i] = math.NaN()
		}
		for i, x := range l.X {
			row[pos[x]] = l.Y[i]
		}
		data = append(data, row)
		colors = append(colors, l.Style.Term)
		legend = append(legend, color.New(l.Style.Legend).Sprint("■ ")+l.Name)
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s (%s vs %s)", c.Title, c.YLabel, c.XLabel)),
		asciigraph.SeriesColors(colors...),
	)
	return graph + "\n" + strings.Join(legend, "  ")
}
