// ABOUTME: mousetrial configuration management.
// ABOUTME: Loads YAML settings and fills defaults for input paths, charts and history.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/mousetrial/internal/models"
	"github.com/harperreed/mousetrial/internal/storage"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDrugData  = "data/mouse_drug_data.csv"
	DefaultTrialData = "data/clinicaltrial_data.csv"
	DefaultOutputDir = "."
	DefaultLogLevel  = "info"

	DefaultChartWidth  = 640
	DefaultChartHeight = 480
)

// Config stores mousetrial configuration.
type Config struct {
	// DrugData is the mouse-to-drug CSV file.
	DrugData string `yaml:"drug_data,omitempty"`

	// TrialData is the per-timepoint observation CSV file.
	TrialData string `yaml:"trial_data,omitempty"`

	// OutputDir receives the chart images.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Treatments is the ordered allowlist of charted drugs.
	Treatments []string `yaml:"treatments,omitempty"`

	// HistoryDB is the run history database. Supports ~ expansion.
	HistoryDB string `yaml:"history_db,omitempty"`

	LogLevel    string `yaml:"log_level,omitempty"`
	ChartWidth  int    `yaml:"chart_width,omitempty"`
	ChartHeight int    `yaml:"chart_height,omitempty"`
}

// GetDrugData returns the drug file path, defaulting to the reference data set.
func (c *Config) GetDrugData() string {
	if c.DrugData == "" {
		return DefaultDrugData
	}
	return ExpandPath(c.DrugData)
}

// GetTrialData returns the trial file path, defaulting to the reference data set.
func (c *Config) GetTrialData() string {
	if c.TrialData == "" {
		return DefaultTrialData
	}
	return ExpandPath(c.TrialData)
}

// GetOutputDir returns the chart directory, defaulting to the working directory.
func (c *Config) GetOutputDir() string {
	if c.OutputDir == "" {
		return DefaultOutputDir
	}
	return ExpandPath(c.OutputDir)
}

// GetTreatments returns the charted drugs.
func (c *Config) GetTreatments() []string {
	if len(c.Treatments) == 0 {
		return append([]string(nil), models.DefaultTreatments...)
	}
	return append([]string(nil), c.Treatments...)
}

// GetHistoryDB returns the history database path with ~ expanded.
func (c *Config) GetHistoryDB() string {
	if c.HistoryDB == "" {
		return storage.DefaultDBPath()
	}
	return ExpandPath(c.HistoryDB)
}

// GetLogLevel parses the configured log level, defaulting to info.
func (c *Config) GetLogLevel() (log.Level, error) {
	level := c.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// GetChartSize returns the chart size in pixels, falling back to the
// default per axis.
func (c *Config) GetChartSize() (width, height int) {
	width, height = DefaultChartWidth, DefaultChartHeight
	if c.ChartWidth > 0 {
		width = c.ChartWidth
	}
	if c.ChartHeight > 0 {
		height = c.ChartHeight
	}
	return width, height
}

// OpenHistory opens the run history database.
func (c *Config) OpenHistory() (storage.Repository, error) {
	return storage.Open(c.GetHistoryDB())
}

// Defaults returns a config with every field set to its built-in value.
func Defaults() *Config {
	return &Config{
		DrugData:    DefaultDrugData,
		TrialData:   DefaultTrialData,
		OutputDir:   DefaultOutputDir,
		Treatments:  append([]string(nil), models.DefaultTreatments...),
		HistoryDB:   storage.DefaultDBPath(),
		LogLevel:    DefaultLogLevel,
		ChartWidth:  DefaultChartWidth,
		ChartHeight: DefaultChartHeight,
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "mousetrial", "config.yaml")
}

// Load reads config from the default path.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
