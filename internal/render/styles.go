// ABOUTME: Line styles and the fixed four-entry palette used by trend charts.
// ABOUTME: Treatments bind to styles by position modulo the palette size.
package render

import (
	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Marker is the glyph drawn at each data point.
type Marker int

const (
	MarkerCircle Marker = iota
	MarkerTriangle
	MarkerSquare
	MarkerDiamond
)

// LineStyle is how one treatment is drawn, in the PNG and in the terminal.
type LineStyle struct {
	Name   string
	Color  drawing.Color
	Term   asciigraph.AnsiColor
	Legend color.Attribute
	Marker Marker
	Dash   []float64
}

var dotted = []float64{2, 3}

// Palette mirrors the o:r, ^:b, s:g, d:k styles of the reference charts.
var Palette = []LineStyle{
	{Name: "red circle", Color: drawing.Color{R: 255, A: 204}, Term: asciigraph.Red, Legend: color.FgRed, Marker: MarkerCircle, Dash: dotted},
	{Name: "blue triangle", Color: drawing.Color{B: 255, A: 204}, Term: asciigraph.Blue, Legend: color.FgBlue, Marker: MarkerTriangle, Dash: dotted},
	{Name: "green square", Color: drawing.Color{G: 128, A: 204}, Term: asciigraph.Green, Legend: color.FgGreen, Marker: MarkerSquare, Dash: dotted},
	{Name: "black diamond", Color: drawing.Color{A: 204}, Term: asciigraph.Default, Legend: color.FgWhite, Marker: MarkerDiamond, Dash: dotted},
}

// Binding assigns a style to a treatment.
type Binding struct {
	Treatment string
	Style     LineStyle
}

// Bind assigns palette styles to treatments in order, wrapping around when
// there are more treatments than styles.
func Bind(treatments []string) []Binding {
	bindings := make([]Binding, len(treatments))
	for i, t := range treatments {
		bindings[i] = Binding{Treatment: t, Style: Palette[i%len(Palette)]}
	}
	return bindings
}

func (s LineStyle) chartStyle() chart.Style {
	return chart.Style{
		StrokeColor:     s.Color,
		StrokeWidth:     1.5,
		StrokeDashArray: s.Dash,
	}
}

// Bar fill colors by direction of change.
var (
	IncreaseColor = drawing.Color{R: 214, G: 39, B: 40, A: 255}
	DecreaseColor = drawing.Color{R: 44, G: 160, B: 44, A: 255}
)
