// ABOUTME: CLI commands for the mousetrial config file.
// ABOUTME: Writes a starter config with every default spelled out.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/mousetrial/internal/config"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults",
	Long: `Write a config file listing every setting at its default value.

The file goes to --config when given, otherwise to
~/.config/mousetrial/config.yaml. An existing file is kept unless --force
is set.

EXAMPLES:

  mousetrial config init
  mousetrial config init --force
  mousetrial --config ./trial.yaml config init`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
		}

		if err := config.Defaults().SaveTo(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
		return nil
	},
}

// configFilePath is --config when set, else the default location.
func configFilePath() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.GetConfigPath()
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
