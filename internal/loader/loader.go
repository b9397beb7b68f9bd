// ABOUTME: CSV loaders for the drug-assignment and trial-measurement files.
// ABOUTME: Any unreadable file or unparsable row aborts with a LoadError.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/harperreed/mousetrial/internal/models"
)

// LoadError reports a file that could not be read as a trial table.
// Line is 0 when the failure is not tied to a row.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadMice reads the drug-assignment file at path.
func LoadMice(path string) ([]models.Mouse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	return ReadMice(f, path)
}

// LoadObservations reads the trial-measurement file at path.
func LoadObservations(path string) ([]models.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	return ReadObservations(f, path)
}

// ReadMice parses drug assignments. name is only used in errors.
func ReadMice(r io.Reader, name string) ([]models.Mouse, error) {
	t, err := readTable(r, name, models.ColMouseID, models.ColDrug)
	if err != nil {
		return nil, err
	}

	mice := make([]models.Mouse, 0, len(t.rows))
	for _, row := range t.rows {
		mice = append(mice, models.Mouse{
			ID:   row[t.index[models.ColMouseID]],
			Drug: row[t.index[models.ColDrug]],
		})
	}
	return mice, nil
}

// ReadObservations parses trial measurements. name is only used in errors.
func ReadObservations(r io.Reader, name string) ([]models.Observation, error) {
	t, err := readTable(r, name,
		models.ColMouseID, models.ColTimepoint, models.ColTumorVolume, models.ColMetastaticSites)
	if err != nil {
		return nil, err
	}

	obs := make([]models.Observation, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		tp, err := strconv.Atoi(row[t.index[models.ColTimepoint]])
		if err != nil {
			return nil, &LoadError{Path: name, Line: line, Err: fmt.Errorf("%s: %w", models.ColTimepoint, err)}
		}
		vol, err := strconv.ParseFloat(row[t.index[models.ColTumorVolume]], 64)
		if err != nil {
			return nil, &LoadError{Path: name, Line: line, Err: fmt.Errorf("%s: %w", models.ColTumorVolume, err)}
		}
		sites, err := strconv.Atoi(row[t.index[models.ColMetastaticSites]])
		if err != nil {
			return nil, &LoadError{Path: name, Line: line, Err: fmt.Errorf("%s: %w", models.ColMetastaticSites, err)}
		}
		obs = append(obs, models.Observation{
			MouseID:         row[t.index[models.ColMouseID]],
			Timepoint:       tp,
			TumorVolume:     vol,
			MetastaticSites: sites,
		})
	}
	return obs, nil
}

type table struct {
	index map[string]int
	rows  [][]string
}

// readTable reads a headed CSV and checks the required columns exist.
func readTable(r io.Reader, name string, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Path: name, Err: errors.New("empty file")}
		}
		return nil, &LoadError{Path: name, Line: 1, Err: err}
	}

	t := &table{index: make(map[string]int, len(header))}
	for i, h := range header {
		t.index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			return nil, &LoadError{Path: name, Line: 1, Err: fmt.Errorf("missing column %q", col)}
		}
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &LoadError{Path: name, Line: pe.Line, Err: pe.Err}
			}
			return nil, &LoadError{Path: name, Err: err}
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}
