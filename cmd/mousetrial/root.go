// ABOUTME: Root Cobra command for the mousetrial CLI.
// ABOUTME: Loads configuration and sets up the logger via PersistentPreRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/mousetrial/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	logger  *log.Logger
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mousetrial",
	Short: "Preclinical mouse trial analysis",
	Long: `Mousetrial analyzes a preclinical drug trial on mice.

It joins a mouse-to-drug file with per-timepoint tumor observations and
charts how each treatment performed.

INPUTS:

  mouse_drug_data.csv      Mouse ID,Drug
  clinicaltrial_data.csv   Mouse ID,Timepoint,Tumor Volume (mm3),Metastatic Sites

QUICK START:

  $ mousetrial report                      # Write the four charts to .
  $ mousetrial report --out charts         # Write charts elsewhere
  $ mousetrial report --treatment Ramicane --treatment Placebo
  $ mousetrial summary tumor               # Mean and SEM tables
  $ mousetrial export csv -o summary.csv   # Export group summaries

CHARTS:

  Tumor Response to Treatment.png          mean tumor volume with SEM bars
  Metastatic Spread During Treatment.png   mean metastatic sites with SEM bars
  Survival During Treatment.png            percent of mice still observed
  Tumor Change Over 45 Day Treatment.png   percent tumor volume change

HISTORY:

  $ mousetrial report --record             # Store the run
  $ mousetrial history                     # List recorded runs
  $ mousetrial history show abc123         # Show one run

MCP INTEGRATION:

  Run 'mousetrial mcp' to start the Model Context Protocol server.

CONFIGURATION:

  Defaults are read from ~/.config/mousetrial/config.yaml. Flags override
  the file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath != "" {
			cfg, err = config.LoadFrom(cfgPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level, err := cfg.GetLogLevel()
		if err != nil {
			return err
		}
		if verbose {
			level = log.DebugLevel
		}
		logger = newLogger(level)
		return nil
	},
}

// newLogger returns a stderr logger so stdout stays free for tables and exports.
func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "mousetrial",
		Level:  level,
	})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: ~/.config/mousetrial/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
