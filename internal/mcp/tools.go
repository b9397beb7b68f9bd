// ABOUTME: MCP tool implementations for the trial analysis.
// ABOUTME: Exposes group summaries, survival, percent change and run history.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/mousetrial/internal/analysis"
	"github.com/harperreed/mousetrial/internal/models"
	"github.com/harperreed/mousetrial/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// errNoHistory is returned by list_runs when no history database is open.
var errNoHistory = errors.New("run history is not available")

func (s *Server) registerTools() {
	// group_summary
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "group_summary",
		Description: "Mean, SEM and count of a measure (tumor, metastatic, survival) per drug and timepoint",
	}, s.handleGroupSummary)

	// survival_rates
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "survival_rates",
		Description: "Percentage of a drug's initial mice still observed at each timepoint",
	}, s.handleSurvivalRates)

	// percent_change
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "percent_change",
		Description: "Percent change in mean tumor volume between the first and last timepoint",
	}, s.handlePercentChange)

	// list_runs
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_runs",
		Description: "List recorded report runs, most recent first",
	}, s.handleListRuns)
}

// Tool input/output types

type groupSummaryInput struct {
	Measure string `json:"measure" jsonschema:"Measure to summarize: tumor, metastatic or survival"`
	Drug    string `json:"drug,omitempty" jsonschema:"Only return groups for this drug"`
}

type groupSummaryOutput struct {
	Measure string               `json:"measure"`
	Rows    []storage.SummaryRow `json:"rows"`
}

type survivalInput struct {
	Drug string `json:"drug" jsonschema:"Drug to compute survival for"`
}

type survivalPoint struct {
	Timepoint int     `json:"timepoint"`
	Percent   float64 `json:"percent"`
}

type survivalOutput struct {
	Drug   string          `json:"drug"`
	Points []survivalPoint `json:"points"`
}

type percentChangeInput struct {
	Drugs []string `json:"drugs,omitempty" jsonschema:"Drugs to include, defaults to every drug with both endpoints"`
}

type percentChangeOutput struct {
	Changes []storage.ChangeRow `json:"changes"`
}

type listRunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type runOutput struct {
	ID         string   `json:"id"`
	StartedAt  string   `json:"started_at"`
	DrugData   string   `json:"drug_data"`
	TrialData  string   `json:"trial_data"`
	Records    int      `json:"records"`
	Dropped    int      `json:"dropped"`
	Treatments []string `json:"treatments"`
	Charts     []string `json:"charts"`
}

type listRunsOutput struct {
	Runs    []runOutput `json:"runs"`
	Message string      `json:"message,omitempty"`
}

// Tool handlers

func (s *Server) handleGroupSummary(ctx context.Context, req *mcp.CallToolRequest, input groupSummaryInput) (*mcp.CallToolResult, groupSummaryOutput, error) {
	if !models.IsValidMeasure(input.Measure) {
		return nil, groupSummaryOutput{}, fmt.Errorf("unknown measure: %s", input.Measure)
	}

	summaries := s.data.Summaries(models.Measure(input.Measure))
	if input.Drug != "" {
		var filtered []models.GroupSummary
		for _, g := range summaries {
			if g.Drug == input.Drug {
				filtered = append(filtered, g)
			}
		}
		if len(filtered) == 0 {
			return nil, groupSummaryOutput{}, fmt.Errorf("drug %q: %w", input.Drug, analysis.ErrUnknownDrug)
		}
		summaries = filtered
	}

	return nil, groupSummaryOutput{
		Measure: input.Measure,
		Rows:    storage.SummaryRows(summaries),
	}, nil
}

func (s *Server) handleSurvivalRates(ctx context.Context, req *mcp.CallToolRequest, input survivalInput) (*mcp.CallToolResult, survivalOutput, error) {
	counts, err := s.data.Wide(models.MeasureSurvival, models.StatCount, nil)
	if err != nil {
		return nil, survivalOutput{}, err
	}

	rates, err := analysis.SurvivalRates(counts, input.Drug)
	if err != nil {
		return nil, survivalOutput{}, fmt.Errorf("failed to compute survival: %w", err)
	}

	out := survivalOutput{Drug: input.Drug, Points: make([]survivalPoint, 0, len(rates))}
	for _, c := range rates {
		out.Points = append(out.Points, survivalPoint{Timepoint: c.Timepoint, Percent: c.Value})
	}
	return nil, out, nil
}

func (s *Server) handlePercentChange(ctx context.Context, req *mcp.CallToolRequest, input percentChangeInput) (*mcp.CallToolResult, percentChangeOutput, error) {
	means, err := s.data.Wide(models.MeasureTumorVolume, models.StatMean, nil)
	if err != nil {
		return nil, percentChangeOutput{}, err
	}

	var changes []models.PercentChange
	if len(input.Drugs) == 0 {
		changes = analysis.PercentChangesAvailable(means)
	} else {
		changes, err = analysis.PercentChanges(means, input.Drugs)
		if err != nil {
			return nil, percentChangeOutput{}, err
		}
	}

	out := percentChangeOutput{Changes: make([]storage.ChangeRow, 0, len(changes))}
	for _, c := range changes {
		out.Changes = append(out.Changes, storage.ChangeRow{Drug: c.Drug, Percent: c.Percent})
	}
	return nil, out, nil
}

func (s *Server) handleListRuns(ctx context.Context, req *mcp.CallToolRequest, input listRunsInput) (*mcp.CallToolResult, listRunsOutput, error) {
	if s.runs == nil {
		return nil, listRunsOutput{}, errNoHistory
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	runs, err := s.runs.ListRuns(input.Limit)
	if err != nil {
		return nil, listRunsOutput{}, fmt.Errorf("failed to list runs: %w", err)
	}

	out := listRunsOutput{Runs: make([]runOutput, 0, len(runs))}
	if len(runs) == 0 {
		out.Message = "No runs recorded."
	}
	for _, r := range runs {
		out.Runs = append(out.Runs, runOutput{
			ID:         r.ID.String()[:8],
			StartedAt:  r.StartedAt.Format(time.RFC3339),
			DrugData:   r.DrugData,
			TrialData:  r.TrialData,
			Records:    r.Records,
			Dropped:    r.Dropped,
			Treatments: r.Treatments,
			Charts:     r.Charts,
		})
	}
	return nil, out, nil
}
