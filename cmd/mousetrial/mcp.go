// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server over the loaded trial data.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/mousetrial/internal/mcp"
	"github.com/harperreed/mousetrial/internal/storage"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server loads the configured trial files once and answers questions
about them over stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "mousetrial": {
        "command": "mousetrial",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  group_summary    Mean, SEM and count per drug and timepoint
  survival_rates   Percent of a drug's mice still observed
  percent_change   Tumor volume change between first and last timepoint
  list_runs        Recorded report runs

AVAILABLE RESOURCES:

  trial://treatments   Drugs in the data and the charted treatments
  trial://summary      Join statistics and percent changes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}

		// History is optional; the server still answers analysis tools without it.
		var runs storage.Repository
		if repo, err := cfg.OpenHistory(); err != nil {
			logger.Warn("run history unavailable", "err", err)
		} else {
			runs = repo
			defer repo.Close()
		}

		server, err := mcp.NewServer(ds, cfg.GetTreatments(), runs)
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
