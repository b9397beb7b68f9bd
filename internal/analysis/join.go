// ABOUTME: Inner join of drug assignments and trial observations on mouse ID.
// ABOUTME: Unmatched rows on either side are dropped and only counted.
package analysis

import "github.com/harperreed/mousetrial/internal/models"

// JoinStats counts what the join kept and what it dropped.
type JoinStats struct {
	Mice                  int
	Observations          int
	Records               int
	UnmatchedMice         int
	UnmatchedObservations int
}

// Dropped returns the number of input rows that produced no record.
func (s JoinStats) Dropped() int {
	return s.UnmatchedMice + s.UnmatchedObservations
}

// Join pairs every mouse with every observation carrying its ID.
//
// Records follow the order of mice, and for each mouse the order of its
// observations. Mouse IDs are assumed unique; a duplicated ID fans out into
// one record per (mouse row, observation) pair and is not reported.
func Join(mice []models.Mouse, obs []models.Observation) ([]models.Record, JoinStats) {
	byMouse := make(map[string][]models.Observation)
	for _, o := range obs {
		byMouse[o.MouseID] = append(byMouse[o.MouseID], o)
	}

	stats := JoinStats{Mice: len(mice), Observations: len(obs)}
	seen := make(map[string]bool, len(mice))
	var records []models.Record
	for _, m := range mice {
		matches := byMouse[m.ID]
		if len(matches) == 0 {
			stats.UnmatchedMice++
			continue
		}
		seen[m.ID] = true
		for _, o := range matches {
			records = append(records, models.NewRecord(m, o))
		}
	}

	for id, matches := range byMouse {
		if !seen[id] {
			stats.UnmatchedObservations += len(matches)
		}
	}
	stats.Records = len(records)
	return records, stats
}
