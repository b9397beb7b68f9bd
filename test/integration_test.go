// ABOUTME: Integration tests for the mousetrial CLI.
// ABOUTME: Builds the binary and runs a report on a generated trial.
package test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// writeTrial writes a four-drug trial with a death in each cohort.
func writeTrial(t *testing.T, dir string) (string, string) {
	t.Helper()

	var mice, trials strings.Builder
	mice.WriteString("Mouse ID,Drug\n")
	trials.WriteString("Mouse ID,Timepoint,Tumor Volume (mm3),Metastatic Sites\n")
	for d, drug := range []string{"Capomulin", "Infubinol", "Ketapril", "Placebo"} {
		for m := 0; m < 4; m++ {
			id := fmt.Sprintf("%c%03d", 'a'+d, m)
			fmt.Fprintf(&mice, "%s,%s\n", id, drug)
			for tp := 0; tp <= 45; tp += 5 {
				if m == 3 && tp > 20 {
					break
				}
				vol := 45 + float64(d-1)*float64(tp)/10 + float64(m)
				fmt.Fprintf(&trials, "%s,%d,%.6f,%d\n", id, tp, vol, tp/15)
			}
		}
	}

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

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "mousetrial")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/mousetrial")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	tmpDir := t.TempDir()
	drugPath, trialPath := writeTrial(t, tmpDir)
	outDir := filepath.Join(tmpDir, "charts")
	if err := os.MkdirAll(outDir, 0750); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = append(os.Environ(),
			"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
			"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Full report
	output, err := run("report", "--drugs", drugPath, "--trials", trialPath, "--out", outDir, "--record")
	if err != nil {
		t.Fatalf("Failed to run report: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Wrote 4 charts") {
		t.Errorf("Expected success line in output, got: %s", output)
	}
	for _, name := range []string{
		"Tumor Response to Treatment.png",
		"Metastatic Spread During Treatment.png",
		"Survival During Treatment.png",
		"Tumor Change Over 45 Day Treatment.png",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("Expected chart %s: %v", name, err)
		}
	}

	// History
	output, err = run("history")
	if err != nil {
		t.Fatalf("Failed to list history: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Capomulin") {
		t.Errorf("Expected 'Capomulin' in history output, got: %s", output)
	}

	// Missing input fails
	if output, err := run("report", "--drugs", filepath.Join(tmpDir, "missing.csv"), "--trials", trialPath, "--out", outDir); err == nil {
		t.Errorf("Expected report with missing file to fail, got: %s", output)
	}
}
