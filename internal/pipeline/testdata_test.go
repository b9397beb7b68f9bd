// ABOUTME: Test fixtures: a small synthetic trial written to a temp directory.
// ABOUTME: Five drugs, three mice each, one death, plus unmatched rows.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var fixtureDrugs = []string{"Capomulin", "Infubinol", "Ketapril", "Placebo", "Ramicane"}

// writeTrial writes mouse_drug_data.csv and clinicaltrial_data.csv into a
// temp dir and returns their paths.
func writeTrial(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	var mice, trials strings.Builder
	mice.WriteString("Mouse ID,Drug\n")
	trials.WriteString("Mouse ID,Timepoint,Tumor Volume (mm3),Metastatic Sites\n")

	for d, drug := range fixtureDrugs {
		slope := float64(d) - 1.5
		for m := 0; m < 3; m++ {
			id := fmt.Sprintf("%c%03d", 'a'+d, m)
			fmt.Fprintf(&mice, "%s,%s\n", id, drug)
			for tp := 0; tp <= 10; tp += 5 {
				if m == 2 && tp == 10 {
					continue
				}
				vol := 45 + slope*float64(tp)/5 + float64(m)*0.5
				sites := tp / 5 * (m % 2)
				fmt.Fprintf(&trials, "%s,%d,%.4f,%d\n", id, tp, vol, sites)
			}
		}
	}
	mice.WriteString("z999,Naftisol\n")
	trials.WriteString("q000,0,45.0,0\n")

	drugPath := filepath.Join(dir, "mouse_drug_data.csv")
	trialPath := filepath.Join(dir, "clinicaltrial_data.csv")
	if err := os.WriteFile(drugPath, []byte(mice.String()), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(trialPath, []byte(trials.String()), 0600); err != nil {
		t.Fatal(err)
	}
	return drugPath, trialPath
}
