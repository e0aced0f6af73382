// ABOUTME: MCP resource definitions
// ABOUTME: Provides a read-only snapshot of every monitored location

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/aquaguard/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const locationsURI = "aquaguard://locations"

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        locationsURI,
		Description: "All monitored locations with their current sensor snapshot",
		URI:         locationsURI,
		MIMEType:    "application/json",
	}, s.handleLocationsResource)
}

func (s *Server) handleLocationsResource(ctx context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	output, err := s.listLocations(ctx)
	if err != nil {
		return nil, err
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      locationsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}

func (s *Server) listLocations(ctx context.Context) (ListLocationsOutput, error) {
	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return ListLocationsOutput{}, fmt.Errorf("failed to list locations: %w", err)
	}

	out := ListLocationsOutput{
		Locations: make([]models.Location, len(locations)),
		Count:     len(locations),
	}
	for i, loc := range locations {
		out.Locations[i] = *loc
	}
	return out, nil
}
