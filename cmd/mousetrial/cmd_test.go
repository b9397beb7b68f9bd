// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs the root command against a small trial in a temp directory.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/mousetrial/internal/config"
	"github.com/harperreed/mousetrial/internal/pipeline"
	"github.com/harperreed/mousetrial/internal/render"
	"github.com/harperreed/mousetrial/internal/storage"
)

const cliMice = `Mouse ID,Drug
a1,Capomulin
a2,Capomulin
a3,Capomulin
b1,Placebo
b2,Placebo
c1,Ramicane
`

const cliTrial = `Mouse ID,Timepoint,Tumor Volume (mm3),Metastatic Sites
a1,0,45.0,0
a2,0,45.0,0
a3,0,45.0,0
b1,0,45.0,0
b2,0,45.0,0
c1,0,45.0,0
a1,5,44.0,0
a2,5,42.0,1
b1,5,50.0,1
b2,5,52.0,2
c1,5,40.0,0
`

type cliEnv struct {
	dir       string
	outDir    string
	historyDB string
	config    string
}

// setupTestCLI writes a trial and a config pointing at it.
func setupTestCLI(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()

	env := cliEnv{
		dir:       dir,
		outDir:    filepath.Join(dir, "charts"),
		historyDB: filepath.Join(dir, "history.db"),
		config:    filepath.Join(dir, "config.yaml"),
	}
	if err := os.MkdirAll(env.outDir, 0750); err != nil {
		t.Fatal(err)
	}

	drugPath := filepath.Join(dir, "mice.csv")
	trialPath := filepath.Join(dir, "trial.csv")
	if err := os.WriteFile(drugPath, []byte(cliMice), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(trialPath, []byte(cliTrial), 0600); err != nil {
		t.Fatal(err)
	}

	cfgYAML := "drug_data: " + drugPath + "\n" +
		"trial_data: " + trialPath + "\n" +
		"output_dir: " + env.outDir + "\n" +
		"history_db: " + env.historyDB + "\n" +
		"log_level: error\n" +
		"treatments:\n  - Capomulin\n  - Placebo\n"
	if err := os.WriteFile(env.config, []byte(cfgYAML), 0600); err != nil {
		t.Fatal(err)
	}

	resetFlags()
	return env
}

// resetFlags clears flag state left over from earlier Execute calls.
func resetFlags() {
	reportDrugs, reportTrials, reportOut = "", "", ""
	reportTreatments = nil
	reportNoPreview, reportRecord = false, false
	exportOutput = ""
	configForce = false
	historyLimit = 20
	verbose = false
	for _, name := range []string{"drugs", "trials", "out"} {
		reportCmd.Flags().Lookup(name).Changed = false
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long string", 10, "this is..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"abc", 6, "abc   "},
		{"abcdef", 3, "abcdef"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestReportCmd(t *testing.T) {
	env := setupTestCLI(t)

	out, err := execute(t, "--config", env.config, "report", "--no-preview")
	if err != nil {
		t.Fatalf("report failed: %v\n%s", err, out)
	}

	for _, title := range []string{
		pipeline.TitleTumor, pipeline.TitleMetastatic, pipeline.TitleSurvival, pipeline.TitleChange,
	} {
		path := filepath.Join(env.outDir, render.FileName(title))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected chart %s: %v", path, err)
		}
	}
	if !strings.Contains(out, "Wrote 4 charts") {
		t.Errorf("expected success line, got:\n%s", out)
	}
	if _, err := os.Stat(env.historyDB); !os.IsNotExist(err) {
		t.Error("history database should not be created without --record")
	}
}

func TestReportCmdOutFlag(t *testing.T) {
	env := setupTestCLI(t)
	other := filepath.Join(env.dir, "other")
	if err := os.MkdirAll(other, 0750); err != nil {
		t.Fatal(err)
	}

	if out, err := execute(t, "--config", env.config, "report", "--no-preview", "--out", other); err != nil {
		t.Fatalf("report failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(other, render.FileName(pipeline.TitleSurvival))); err != nil {
		t.Errorf("expected chart in --out directory: %v", err)
	}
	resetFlags()
}

func TestReportCmdUnknownTreatment(t *testing.T) {
	env := setupTestCLI(t)

	_, err := execute(t, "--config", env.config, "report", "--no-preview", "--treatment", "Aspirin")
	if err == nil {
		t.Fatal("expected error for treatment missing from data")
	}
	resetFlags()
}

func TestReportRecordAndHistory(t *testing.T) {
	env := setupTestCLI(t)

	if out, err := execute(t, "--config", env.config, "report", "--no-preview", "--record"); err != nil {
		t.Fatalf("report --record failed: %v\n%s", err, out)
	}
	resetFlags()

	db, err := storage.Open(env.historyDB)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	runs, err := db.ListRuns(0)
	db.Close()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.Records != 11 || len(r.Charts) != 4 || len(r.PercentChanges) != 2 {
		t.Errorf("unexpected run %+v", r)
	}

	out, err := execute(t, "--config", env.config, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, r.ID.String()[:8]) {
		t.Errorf("expected run ID in history output:\n%s", out)
	}

	out, err = execute(t, "--config", env.config, "history", "show", r.ID.String()[:8])
	if err != nil {
		t.Fatalf("history show failed: %v", err)
	}
	for _, want := range []string{"Capomulin", "Placebo", "Percent change", "Charts"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in history show output:\n%s", want, out)
		}
	}

	if _, err := execute(t, "--config", env.config, "history", "delete", r.ID.String()[:8]); err != nil {
		t.Fatalf("history delete failed: %v", err)
	}
	out, err = execute(t, "--config", env.config, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "No runs recorded in "+env.historyDB) {
		t.Errorf("expected empty history after delete, got:\n%s", out)
	}
}

func TestHistoryEmpty(t *testing.T) {
	env := setupTestCLI(t)

	out, err := execute(t, "--config", env.config, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "No runs recorded in "+env.historyDB) {
		t.Errorf("expected empty message naming the database, got:\n%s", out)
	}
}

func TestHistoryShowNotFound(t *testing.T) {
	env := setupTestCLI(t)

	if _, err := execute(t, "--config", env.config, "history", "show", "deadbeef"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestSummaryCmd(t *testing.T) {
	env := setupTestCLI(t)

	out, err := execute(t, "--config", env.config, "summary", "tumor")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	for _, want := range []string{"Tumor Volume (mm3) mean", "Tumor Volume (mm3) sem by timepoint", "Ramicane", "43.000000"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = execute(t, "--config", env.config, "summary", "survival")
	if err != nil {
		t.Fatalf("summary survival failed: %v", err)
	}
	if !strings.Contains(out, "Mice count by timepoint") {
		t.Errorf("expected count table, got:\n%s", out)
	}
}

func TestSummaryCmdUnknownMeasure(t *testing.T) {
	env := setupTestCLI(t)

	if _, err := execute(t, "--config", env.config, "summary", "weight"); err == nil {
		t.Error("expected error for unknown measure")
	}
}

func TestExportCmdJSON(t *testing.T) {
	env := setupTestCLI(t)
	path := filepath.Join(env.dir, "summary.json")

	if _, err := execute(t, "--config", env.config, "export", "json", "-o", path); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	resetFlags()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var export storage.ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(export.Summaries) != 3 {
		t.Errorf("expected 3 measures, got %d", len(export.Summaries))
	}
	if len(export.PercentChanges) != 3 {
		t.Errorf("expected 3 percent changes, got %d", len(export.PercentChanges))
	}
}

func TestExportCmdCSV(t *testing.T) {
	env := setupTestCLI(t)

	out, err := execute(t, "--config", env.config, "export", "csv")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(strings.TrimSpace(out))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// header + 3 measures x 6 groups
	if len(records) != 19 {
		t.Errorf("expected 19 rows, got %d", len(records))
	}
}

func TestExportCmdUnknownFormat(t *testing.T) {
	env := setupTestCLI(t)

	if _, err := execute(t, "--config", env.config, "export", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestConfigInit(t *testing.T) {
	env := setupTestCLI(t)
	path := filepath.Join(env.dir, "fresh", "config.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("expected path in output, got:\n%s", out)
	}

	loaded, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if diff := cmp.Diff([]string{"Capomulin", "Infubinol", "Ketapril", "Placebo"}, loaded.Treatments); diff != "" {
		t.Errorf("treatments mismatch (-want +got):\n%s", diff)
	}
	if loaded.ChartWidth != 640 || loaded.LogLevel != "info" {
		t.Errorf("unexpected config %+v", loaded)
	}

	if _, err := execute(t, "--config", path, "config", "init"); err == nil {
		t.Error("expected error when config exists")
	}
	if _, err := execute(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Errorf("config init --force failed: %v", err)
	}
	resetFlags()
}

func TestConfigPath(t *testing.T) {
	env := setupTestCLI(t)

	out, err := execute(t, "--config", env.config, "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if strings.TrimSpace(out) != env.config {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(out), env.config)
	}
}

func TestMissingInputFile(t *testing.T) {
	env := setupTestCLI(t)
	cfgPath := filepath.Join(env.dir, "broken.yaml")
	if err := os.WriteFile(cfgPath, []byte("drug_data: "+filepath.Join(env.dir, "nope.csv")+"\nlog_level: error\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", cfgPath, "summary", "tumor"); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	env := setupTestCLI(t)
	cfgPath := filepath.Join(env.dir, "loud.yaml")
	if err := os.WriteFile(cfgPath, []byte("log_level: loud\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", cfgPath, "history"); err == nil {
		t.Error("expected error for invalid log level")
	}
}
