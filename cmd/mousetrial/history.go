// ABOUTME: CLI commands for listing recorded report runs.
// ABOUTME: Reads the history database written by report --record.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/mousetrial/internal/models"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"runs"},
	Short:   "List recorded report runs",
	Long: `List report runs stored with 'mousetrial report --record'.

OUTPUT FORMAT:

  Each line shows: ID  STARTED  RECORDS  TREATMENTS

  The ID is an 8-character prefix you can use with 'history show'.

EXAMPLES:

  mousetrial history
  mousetrial history -n 5
  mousetrial history show abc123
  mousetrial history delete abc123`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := cfg.OpenHistory()
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer repo.Close()

		runs, err := repo.ListRuns(historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintf(out, "No runs recorded in %s.\n", repo.Path())
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range runs {
			fmt.Fprintf(out, "%s %s %s %s\n",
				faint.Sprint(r.ID.String()[:8]),
				faint.Sprint(r.StartedAt.Local().Format("2006-01-02 15:04")),
				padRight(fmt.Sprintf("%d rows", r.Records), 10),
				truncate(strings.Join(r.Treatments, ", "), 50))
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := cfg.OpenHistory()
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer repo.Close()

		r, err := repo.GetRun(args[0])
		if err != nil {
			return fmt.Errorf("failed to get run: %w", err)
		}

		printRun(cmd.OutOrStdout(), r)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a recorded run",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := cfg.OpenHistory()
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer repo.Close()

		if err := repo.DeleteRun(args[0]); err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Deleted run %s\n", args[0])
		return nil
	},
}

func printRun(w io.Writer, r *models.Run) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Fprintf(w, "Run %s\n", r.ID.String()[:8])
	fmt.Fprintf(w, "%s %s\n", padRight("Started", 14), r.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "%s %s\n", padRight("Drug data", 14), r.DrugData)
	fmt.Fprintf(w, "%s %s\n", padRight("Trial data", 14), r.TrialData)
	fmt.Fprintf(w, "%s %d mice, %d observations, %d records, %d dropped\n",
		padRight("Join", 14), r.Mice, r.Observations, r.Records, r.Dropped)
	fmt.Fprintf(w, "%s %s\n", padRight("Treatments", 14), strings.Join(r.Treatments, ", "))

	if len(r.PercentChanges) > 0 {
		bold.Fprintln(w, "\nPercent change")
		for _, c := range r.PercentChanges {
			fmt.Fprintf(w, "  %s %.2f%%\n", padRight(c.Drug, 12), c.Percent)
		}
	}
	if len(r.Charts) > 0 {
		bold.Fprintln(w, "\nCharts")
		for _, p := range r.Charts {
			fmt.Fprintf(w, "  %s\n", faint.Sprint(p))
		}
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
