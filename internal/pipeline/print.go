// ABOUTME: Console previews of the joined table, summaries and wide tables.
// ABOUTME: Fixed-width text tables with colored headings, for reading only.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/mousetrial/internal/analysis"
	"github.com/harperreed/mousetrial/internal/models"
)

// Printer writes stage previews.
type Printer struct {
	w       io.Writer
	heading *color.Color
	faint   *color.Color
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:       w,
		heading: color.New(color.Bold, color.FgCyan),
		faint:   color.New(color.Faint),
	}
}

// Records prints the first n joined rows.
func (p *Printer) Records(records []models.Record, n int) {
	p.heading.Fprintln(p.w, "Joined trial data")
	fmt.Fprintf(p.w, "%s %s %s %s %s\n",
		padRight(models.ColMouseID, 10),
		padRight(models.ColDrug, 12),
		padRight(models.ColTimepoint, 10),
		padRight(models.ColTumorVolume, 20),
		models.ColMetastaticSites)
	for i, r := range records {
		if i >= n {
			break
		}
		fmt.Fprintf(p.w, "%s %s %s %s %d\n",
			p.faint.Sprint(padRight(r.MouseID, 10)),
			padRight(r.Drug, 12),
			padRight(fmt.Sprintf("%d", r.Timepoint), 10),
			padRight(fmt.Sprintf("%.6f", r.TumorVolume), 20),
			r.MetastaticSites)
	}
	fmt.Fprintf(p.w, "%s\n\n", p.faint.Sprintf("(%d rows)", len(records)))
}

// Summaries prints the first n long-form rows of one statistic.
func (p *Printer) Summaries(title string, summaries []models.GroupSummary, st models.Statistic, n int) {
	p.heading.Fprintln(p.w, title)
	fmt.Fprintf(p.w, "%s %s %s\n", padRight(models.ColDrug, 12), padRight(models.ColTimepoint, 10), st)
	for i, s := range summaries {
		if i >= n {
			break
		}
		fmt.Fprintf(p.w, "%s %s %s\n",
			padRight(s.Drug, 12),
			padRight(fmt.Sprintf("%d", s.Timepoint), 10),
			formatValue(s.Stat(st), st))
	}
	fmt.Fprintln(p.w)
}

// Wide prints a full wide table. Absent cells are left blank.
func (p *Printer) Wide(title string, w *analysis.WideTable) {
	p.heading.Fprintln(p.w, title)

	width := 10
	for _, d := range w.Drugs {
		if len(d)+1 > width {
			width = len(d) + 1
		}
	}

	var sb strings.Builder
	sb.WriteString(padRight(models.ColTimepoint, 10))
	for _, d := range w.Drugs {
		sb.WriteString(" " + padRight(d, width))
	}
	fmt.Fprintln(p.w, strings.TrimRight(sb.String(), " "))

	for _, tp := range w.Timepoints {
		sb.Reset()
		sb.WriteString(padRight(fmt.Sprintf("%d", tp), 10))
		for _, d := range w.Drugs {
			cell := ""
			if v, ok := w.Value(d, tp); ok {
				cell = formatValue(v, w.Statistic)
			}
			sb.WriteString(" " + padRight(cell, width))
		}
		fmt.Fprintln(p.w, strings.TrimRight(sb.String(), " "))
	}
	fmt.Fprintln(p.w)
}

// Changes prints percent tumor change per drug.
func (p *Printer) Changes(changes []models.PercentChange) {
	p.heading.Fprintln(p.w, "Percent tumor volume change")
	up := color.New(color.FgRed)
	down := color.New(color.FgGreen)
	for _, c := range changes {
		value := fmt.Sprintf("%.6f", c.Percent)
		if c.Increased() {
			value = up.Sprint(value)
		} else {
			value = down.Sprint(value)
		}
		fmt.Fprintf(p.w, "%s %s\n", padRight(c.Drug, 12), value)
	}
	fmt.Fprintln(p.w)
}

// Text prints a preformatted block such as a terminal chart.
func (p *Printer) Text(s string) {
	if s == "" {
		return
	}
	fmt.Fprintf(p.w, "%s\n\n", s)
}

func formatValue(v float64, st models.Statistic) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if st == models.StatCount {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.6f", v)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
