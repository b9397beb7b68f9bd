// ABOUTME: MCP server setup for the mouse trial analysis.
// ABOUTME: Wraps MCP server with the loaded dataset and optional run history.
package mcp

import (
	"context"

	"github.com/harperreed/mousetrial/internal/pipeline"
	"github.com/harperreed/mousetrial/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with dataset and history access.
type Server struct {
	mcpServer  *mcp.Server
	data       *pipeline.Dataset
	treatments []string
	runs       storage.Repository
}

// NewServer creates a new MCP server over a loaded dataset. runs may be nil,
// in which case list_runs reports that no history is available.
func NewServer(data *pipeline.Dataset, treatments []string, runs storage.Repository) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "mousetrial",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:  mcpServer,
		data:       data,
		treatments: append([]string(nil), treatments...),
		runs:       runs,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
