// ABOUTME: Percent-change bar chart with sign-colored bars and value labels.
// ABOUTME: Labels sit above positive bars and below negative ones.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const labelGap = 4

// Bar is one labeled value.
type Bar struct {
	Label string
	Value float64
}

// PercentLabel formats a bar value rounded to a whole percent.
func PercentLabel(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

// BarColor returns the fill for a value: increase or decrease.
func BarColor(v float64) drawing.Color {
	if v > 0 {
		return IncreaseColor
	}
	return DecreaseColor
}

// BarChart plots one bar per treatment.
type BarChart struct {
	Title  string
	YLabel string
	Bars   []Bar
}

// ChartTitle returns the chart title.
func (c BarChart) ChartTitle() string { return c.Title }

// Render writes the chart as PNG.
func (c BarChart) Render(w io.Writer, opt Options) error {
	if len(c.Bars) == 0 {
		return fmt.Errorf("%s: %w", c.Title, ErrNoSeries)
	}

	// Unlabeled ticks half a slot past each end keep the x span nonzero for a
	// single bar and leave room for the outer bars.
	xTicks := make([]chart.Tick, 0, len(c.Bars)+2)
	xTicks = append(xTicks, chart.Tick{Value: -0.5})
	lo, hi := 0.0, 0.0
	for i, b := range c.Bars {
		xTicks = append(xTicks, chart.Tick{Value: float64(i), Label: b.Label})
		lo = math.Min(lo, b.Value)
		hi = math.Max(hi, b.Value)
	}
	xTicks = append(xTicks, chart.Tick{Value: float64(len(c.Bars)) - 0.5})
	pad := (hi - lo) * 0.15
	if pad == 0 {
		pad = 1
	}
	yTicks := niceTicks(lo-pad, hi+pad, 6)

	ch := chart.Chart{
		Title:      c.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Ticks: xTicks},
		YAxis: chart.YAxis{
			Name:           c.YLabel,
			Ticks:          yTicks,
			Range:          &chart.ContinuousRange{Min: yTicks[0].Value, Max: yTicks[len(yTicks)-1].Value},
			GridMajorStyle: chart.Style{StrokeColor: drawing.ColorFromHex("dddddd"), StrokeWidth: 1},
		},
		Series: []chart.Series{PercentBarSeries{Name: c.Title, Bars: c.Bars}},
	}
	return ch.Render(chart.PNG, w)
}

// PercentBarSeries draws Bars at x = 0..n-1.
type PercentBarSeries struct {
	Name  string
	Style chart.Style
	Bars  []Bar
}

var (
	_ chart.Series                = PercentBarSeries{}
	_ chart.BoundedValuesProvider = PercentBarSeries{}
)

func (s PercentBarSeries) GetName() string { return s.Name }

func (s PercentBarSeries) GetStyle() chart.Style { return s.Style }

func (s PercentBarSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (s PercentBarSeries) Len() int { return len(s.Bars) }

func (s PercentBarSeries) GetValues(index int) (float64, float64) {
	return float64(index), s.Bars[index].Value
}

// GetBoundedValues spans from zero to the bar top so the baseline is visible.
func (s PercentBarSeries) GetBoundedValues(index int) (x, y1, y2 float64) {
	v := s.Bars[index].Value
	return float64(index), math.Min(0, v), math.Max(0, v)
}

func (s PercentBarSeries) Validate() error {
	if len(s.Bars) == 0 {
		return fmt.Errorf("series %q has no bars", s.Name)
	}
	return nil
}

func (s PercentBarSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := s.Style.InheritFrom(defaults)

	cb := canvasBox.Bottom
	cl := canvasBox.Left
	half := (xrange.Translate(1) - xrange.Translate(0)) * 2 / 5
	if half < 1 {
		half = 1
	}
	base := cb - yrange.Translate(0)

	for i, b := range s.Bars {
		x := cl + xrange.Translate(float64(i))
		top := cb - yrange.Translate(b.Value)

		fill := BarColor(b.Value)
		barStyle := chart.Style{StrokeColor: fill, FillColor: fill, StrokeWidth: 1}
		barStyle.WriteDrawingOptionsToRenderer(r)
		r.MoveTo(x-half, base)
		r.LineTo(x+half, base)
		r.LineTo(x+half, top)
		r.LineTo(x-half, top)
		r.Close()
		r.FillStroke()

		label := PercentLabel(b.Value)
		text := style.GetTextOptions()
		text.FontColor = drawing.Color{A: 255}
		text.WriteTextOptionsToRenderer(r)
		box := r.MeasureText(label)
		ty := top - labelGap
		if b.Value < 0 {
			ty = top + box.Height() + labelGap
		}
		r.Text(label, x-box.Width()/2, ty)
	}
}

// niceTicks generates about n ticks covering [min, max] on 1/2/2.5/5 steps.
func niceTicks(min, max float64, n int) []chart.Tick {
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span / step)
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var ticks []chart.Tick
	for v := start; v <= end+bestStep/2; v += bestStep {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

func formatTick(v float64) string {
	if math.Abs(v) < 1e-9 {
		return "0"
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// Preview draws the bars as signed horizontal text bars.
func (c BarChart) Preview(width int) string {
	if len(c.Bars) == 0 {
		return ""
	}

	maxAbs, maxLabel := 0.0, 0
	for _, b := range c.Bars {
		maxAbs = math.Max(maxAbs, math.Abs(b.Value))
		if len(b.Label) > maxLabel {
			maxLabel = len(b.Label)
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}
	barWidth := width - maxLabel - 10
	if barWidth < 10 {
		barWidth = 10
	}

	up := color.New(color.FgRed)
	down := color.New(color.FgGreen)
	lines := []string{c.Title}
	for _, b := range c.Bars {
		n := int(math.Abs(b.Value) / maxAbs * float64(barWidth))
		bar := strings.Repeat("█", n)
		if b.Value > 0 {
			bar = up.Sprint(bar)
		} else {
			bar = down.Sprint(bar)
		}
		lines = append(lines, fmt.Sprintf("%*s │%s %s", maxLabel, b.Label, bar, PercentLabel(b.Value)))
	}
	return strings.Join(lines, "\n")
}
