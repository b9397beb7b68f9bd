// ABOUTME: MCP resource implementations for the trial analysis.
// ABOUTME: Provides trial://treatments and trial://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/mousetrial/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	treatmentsURI = "trial://treatments"
	summaryURI    = "trial://summary"
)

func (s *Server) registerResources() {
	// trial://treatments - drugs present plus the charted allowlist
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         treatmentsURI,
		Name:        "Trial Treatments",
		Description: "Every drug in the joined data and the charted treatments",
		MIMEType:    "application/json",
	}, s.handleTreatmentsResource)

	// trial://summary - join counts and tumor change for every drug
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Trial Summary",
		Description: "Join statistics and percent tumor change per drug",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTreatmentsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := map[string]interface{}{
		"drugs":      s.data.Drugs(),
		"treatments": s.treatments,
	}
	return jsonResource(treatmentsURI, result)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	changes, err := s.data.PercentChanges()
	if err != nil {
		return nil, fmt.Errorf("failed to compute changes: %w", err)
	}

	rows := make([]storage.ChangeRow, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, storage.ChangeRow{Drug: c.Drug, Percent: c.Percent})
	}

	stats := s.data.Stats
	result := map[string]interface{}{
		"drug_data":  s.data.DrugData,
		"trial_data": s.data.TrialData,
		"join": map[string]int{
			"mice":                   stats.Mice,
			"observations":           stats.Observations,
			"records":                stats.Records,
			"unmatched_mice":         stats.UnmatchedMice,
			"unmatched_observations": stats.UnmatchedObservations,
		},
		"percent_changes": rows,
	}
	return jsonResource(summaryURI, result)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
