// ABOUTME: go-chart series drawing a dotted line with markers and SEM whiskers.
// ABOUTME: Whiskers with a NaN or missing error are skipped.
package render

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	markerRadius = 4
	whiskerCap   = 3
)

// ErrorBarSeries is a line series with a vertical bar of +/- Errors[i] at each
// point. Errors may be nil.
type ErrorBarSeries struct {
	Name    string
	Style   chart.Style
	Marker  Marker
	XValues []float64
	YValues []float64
	Errors  []float64
}

var (
	_ chart.Series                = ErrorBarSeries{}
	_ chart.ValuesProvider        = ErrorBarSeries{}
	_ chart.BoundedValuesProvider = ErrorBarSeries{}
)

func (s ErrorBarSeries) GetName() string { return s.Name }

func (s ErrorBarSeries) GetStyle() chart.Style { return s.Style }

func (s ErrorBarSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (s ErrorBarSeries) Len() int { return len(s.XValues) }

func (s ErrorBarSeries) GetValues(index int) (float64, float64) {
	return s.XValues[index], s.YValues[index]
}

// GetBoundedValues widens the y range so whiskers stay on the canvas.
func (s ErrorBarSeries) GetBoundedValues(index int) (x, y1, y2 float64) {
	x, y := s.GetValues(index)
	e := s.errorAt(index)
	return x, y - e, y + e
}

func (s ErrorBarSeries) errorAt(index int) float64 {
	if index >= len(s.Errors) || math.IsNaN(s.Errors[index]) || math.IsInf(s.Errors[index], 0) {
		return 0
	}
	return s.Errors[index]
}

func (s ErrorBarSeries) Validate() error {
	if len(s.XValues) == 0 {
		return fmt.Errorf("series %q has no points", s.Name)
	}
	if len(s.XValues) != len(s.YValues) {
		return fmt.Errorf("series %q has %d x values and %d y values", s.Name, len(s.XValues), len(s.YValues))
	}
	if s.Errors != nil && len(s.Errors) != len(s.XValues) {
		return fmt.Errorf("series %q has %d errors for %d points", s.Name, len(s.Errors), len(s.XValues))
	}
	return nil
}

func (s ErrorBarSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := s.Style.InheritFrom(defaults)
	chart.Draw.LineSeries(r, canvasBox, xrange, yrange, style.GetStrokeOptions(), s)

	cb := canvasBox.Bottom
	cl := canvasBox.Left

	whisker := chart.Style{StrokeColor: style.StrokeColor, StrokeWidth: 1}
	whisker.WriteDrawingOptionsToRenderer(r)
	for i := 0; i < s.Len(); i++ {
		e := s.errorAt(i)
		if e == 0 {
			continue
		}
		vx, vy := s.GetValues(i)
		x := cl + xrange.Translate(vx)
		top := cb - yrange.Translate(vy+e)
		bottom := cb - yrange.Translate(vy-e)

		r.MoveTo(x, top)
		r.LineTo(x, bottom)
		r.Stroke()
		r.MoveTo(x-whiskerCap, top)
		r.LineTo(x+whiskerCap, top)
		r.Stroke()
		r.MoveTo(x-whiskerCap, bottom)
		r.LineTo(x+whiskerCap, bottom)
		r.Stroke()
	}

	mark := chart.Style{StrokeColor: style.StrokeColor, FillColor: style.StrokeColor, StrokeWidth: 1}
	mark.WriteDrawingOptionsToRenderer(r)
	for i := 0; i < s.Len(); i++ {
		vx, vy := s.GetValues(i)
		s.Marker.draw(r, cl+xrange.Translate(vx), cb-yrange.Translate(vy), markerRadius)
	}
}

func (m Marker) draw(r chart.Renderer, x, y, size int) {
	switch m {
	case MarkerTriangle:
		r.MoveTo(x, y-size)
		r.LineTo(x+size, y+size)
		r.LineTo(x-size, y+size)
	case MarkerSquare:
		r.MoveTo(x-size, y-size)
		r.LineTo(x+size, y-size)
		r.LineTo(x+size, y+size)
		r.LineTo(x-size, y+size)
	case MarkerDiamond:
		r.MoveTo(x, y-size)
		r.LineTo(x+size, y)
		r.LineTo(x, y+size)
		r.LineTo(x-size, y)
	default:
		r.Circle(float64(size), x, y)
		r.FillStroke()
		return
	}
	r.Close()
	r.FillStroke()
}
