// ABOUTME: Long-to-wide pivot of group summaries and its inverse.
// ABOUTME: Rows are timepoints ascending, columns are drugs in caller order.
package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/harperreed/mousetrial/internal/models"
)

var (
	// ErrDuplicateKey is returned when two summaries share a (drug, timepoint).
	ErrDuplicateKey = errors.New("duplicate group key")
	// ErrUnknownDrug is returned when a drug has no column in the table.
	ErrUnknownDrug = errors.New("drug not in table")
	// ErrMissingCell is returned when a required (drug, timepoint) cell is absent.
	ErrMissingCell = errors.New("missing cell")
)

// WideTable holds one statistic with a row per timepoint and a column per drug.
// Absent cells are absent, never zero.
type WideTable struct {
	Statistic  models.Statistic
	Timepoints []int
	Drugs      []string
	cells      map[models.GroupKey]float64
}

// Cell is one present value of a WideTable.
type Cell struct {
	Drug      string
	Timepoint int
	Value     float64
}

// Pivot reshapes summaries into a WideTable of statistic st.
//
// Drugs named in order come first, in that order; remaining drugs follow
// alphabetically. Names in order that have no summaries are skipped.
func Pivot(summaries []models.GroupSummary, st models.Statistic, order []string) (*WideTable, error) {
	w := &WideTable{
		Statistic: st,
		cells:     make(map[models.GroupKey]float64, len(summaries)),
	}

	timepoints := make(map[int]bool)
	for _, s := range summaries {
		key := s.Key()
		if _, dup := w.cells[key]; dup {
			return nil, fmt.Errorf("pivot %s: %w: %s@%d", st, ErrDuplicateKey, key.Drug, key.Timepoint)
		}
		w.cells[key] = s.Stat(st)
		timepoints[s.Timepoint] = true
	}

	for tp := range timepoints {
		w.Timepoints = append(w.Timepoints, tp)
	}
	sort.Ints(w.Timepoints)
	w.Drugs = orderDrugs(Drugs(summaries), order)
	return w, nil
}

func orderDrugs(present, order []string) []string {
	has := make(map[string]bool, len(present))
	for _, d := range present {
		has[d] = true
	}

	out := make([]string, 0, len(present))
	used := make(map[string]bool, len(present))
	for _, d := range order {
		if has[d] && !used[d] {
			out = append(out, d)
			used[d] = true
		}
	}
	for _, d := range present {
		if !used[d] {
			out = append(out, d)
		}
	}
	return out
}

// Value returns the cell for (drug, timepoint) and whether it is present.
func (w *WideTable) Value(drug string, timepoint int) (float64, bool) {
	v, ok := w.cells[models.GroupKey{Drug: drug, Timepoint: timepoint}]
	return v, ok
}

// HasDrug reports whether drug has a column.
func (w *WideTable) HasDrug(drug string) bool {
	for _, d := range w.Drugs {
		if d == drug {
			return true
		}
	}
	return false
}

// Column returns the present cells of drug ordered by timepoint.
func (w *WideTable) Column(drug string) ([]Cell, error) {
	if !w.HasDrug(drug) {
		return nil, fmt.Errorf("%s column %q: %w", w.Statistic, drug, ErrUnknownDrug)
	}
	var cells []Cell
	for _, tp := range w.Timepoints {
		if v, ok := w.Value(drug, tp); ok {
			cells = append(cells, Cell{Drug: drug, Timepoint: tp, Value: v})
		}
	}
	return cells, nil
}

// First returns drug's value at the table's first timepoint.
func (w *WideTable) First(drug string) (float64, error) {
	if len(w.Timepoints) == 0 {
		return 0, fmt.Errorf("%s table is empty: %w", w.Statistic, ErrMissingCell)
	}
	return w.at(drug, w.Timepoints[0])
}

// Last returns drug's value at the table's last timepoint.
func (w *WideTable) Last(drug string) (float64, error) {
	if len(w.Timepoints) == 0 {
		return 0, fmt.Errorf("%s table is empty: %w", w.Statistic, ErrMissingCell)
	}
	return w.at(drug, w.Timepoints[len(w.Timepoints)-1])
}

func (w *WideTable) at(drug string, tp int) (float64, error) {
	if !w.HasDrug(drug) {
		return 0, fmt.Errorf("%s column %q: %w", w.Statistic, drug, ErrUnknownDrug)
	}
	v, ok := w.Value(drug, tp)
	if !ok {
		return 0, fmt.Errorf("%s %s@%d: %w", w.Statistic, drug, tp, ErrMissingCell)
	}
	return v, nil
}

// Flatten turns the table back into long form, one cell per present value,
// ordered by column then timepoint.
func (w *WideTable) Flatten() []Cell {
	cells := make([]Cell, 0, len(w.cells))
	for _, d := range w.Drugs {
		col, _ := w.Column(d)
		cells = append(cells, col...)
	}
	return cells
}

// Len returns the number of present cells.
func (w *WideTable) Len() int {
	return len(w.cells)
}
