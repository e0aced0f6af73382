// ABOUTME: MCP server initialization and configuration
// ABOUTME: Exposes locations and assessments as tools and resources for AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/aquaguard/internal/models"
	"github.com/harper/aquaguard/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Assessor produces assessment text for a reading.
type Assessor interface {
	Assess(ctx context.Context, r models.SensorReading) string
}

// Server wraps the MCP server with the location store.
type Server struct {
	mcp      *mcp.Server
	repo     storage.Repository
	assessor Assessor
}

// NewServer creates MCP server with all capabilities.
func NewServer(repo storage.Repository, assessor Assessor) (*Server, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if assessor == nil {
		return nil, fmt.Errorf("assessor is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "aquaguard",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:      mcpServer,
		repo:     repo,
		assessor: assessor,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
