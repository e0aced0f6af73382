// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Lets agents list, add, simulate, and assess monitored locations

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/aquaguard/internal/models"
	"github.com/harper/aquaguard/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerListLocationsTool()
	s.registerAddLocationTool()
	s.registerSimulateLocationTool()
	s.registerAssessLocationTool()
}

func textResult(v any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

// ListLocationsInput is empty but required for type.
type ListLocationsInput struct{}

// ListLocationsOutput defines output for list_locations tool.
type ListLocationsOutput struct {
	Locations []models.Location `json:"locations"`
	Count     int               `json:"count"`
}

func (s *Server) registerListLocationsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_locations",
		Description: "List all monitored locations with status, humidity, water presence, and temperature.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleListLocations)
}

func (s *Server) handleListLocations(ctx context.Context, _ *mcp.CallToolRequest, _ ListLocationsInput) (*mcp.CallToolResult, ListLocationsOutput, error) {
	output, err := s.listLocations(ctx)
	if err != nil {
		return nil, ListLocationsOutput{}, err
	}
	return textResult(output), output, nil
}

// AddLocationInput defines input for add_location tool.
type AddLocationInput struct {
	Name string `json:"name"`
}

func (s *Server) registerAddLocationTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_location",
		Description: "Start monitoring a new location. It begins Safe with default sensor values.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the location (e.g., 'Garage', 'Upstairs Bathroom')",
				},
			},
			"required": []string{"name"},
		},
	}, s.handleAddLocation)
}

func (s *Server) handleAddLocation(ctx context.Context, _ *mcp.CallToolRequest, input AddLocationInput) (*mcp.CallToolResult, models.Location, error) {
	if err := models.ValidateName(input.Name); err != nil {
		return nil, models.Location{}, err
	}

	loc := models.NewLocation(input.Name)
	if err := s.repo.CreateLocation(ctx, loc); err != nil {
		return nil, models.Location{}, fmt.Errorf("failed to add location: %w", err)
	}
	return textResult(loc), *loc, nil
}

// SimulateLocationInput defines input for simulate_location tool.
type SimulateLocationInput struct {
	ID          int64    `json:"id"`
	Leaking     bool     `json:"leaking"`
	Temperature *float64 `json:"temperature,omitempty"`
}

func (s *Server) registerSimulateLocationTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "simulate_location",
		Description: "Simulate a leak at a location, or clear one. Overwrites status, humidity, and water presence.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "integer",
					"description": "Location id from list_locations",
				},
				"leaking": map[string]interface{}{
					"type":        "boolean",
					"description": "true to simulate a leak, false to return to safe",
				},
				"temperature": map[string]interface{}{
					"type":        "number",
					"description": "Optional temperature in °C; keeps the current value when omitted",
				},
			},
			"required": []string{"id", "leaking"},
		},
	}, s.handleSimulateLocation)
}

func (s *Server) handleSimulateLocation(ctx context.Context, _ *mcp.CallToolRequest, input SimulateLocationInput) (*mcp.CallToolResult, models.Location, error) {
	loc, err := s.getLocation(ctx, input.ID)
	if err != nil {
		return nil, models.Location{}, err
	}

	temperature := loc.Temperature
	if input.Temperature != nil {
		temperature = *input.Temperature
	}
	state := models.SafeState(temperature)
	if input.Leaking {
		state = models.LeakState(temperature)
	}

	if _, err := s.repo.UpdateSensorState(ctx, loc.ID, state); err != nil {
		return nil, models.Location{}, fmt.Errorf("failed to simulate location: %w", err)
	}
	loc.Apply(state)
	return textResult(loc), *loc, nil
}

// AssessLocationInput defines input for assess_location tool.
type AssessLocationInput struct {
	ID int64 `json:"id"`
}

// AssessLocationOutput defines output for assess_location tool.
type AssessLocationOutput struct {
	Location   models.Location `json:"location"`
	Assessment string          `json:"assessment"`
}

func (s *Server) registerAssessLocationTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "assess_location",
		Description: "Get a natural-language water damage assessment for a location's current readings.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "integer",
					"description": "Location id from list_locations",
				},
			},
			"required": []string{"id"},
		},
	}, s.handleAssessLocation)
}

func (s *Server) handleAssessLocation(ctx context.Context, _ *mcp.CallToolRequest, input AssessLocationInput) (*mcp.CallToolResult, AssessLocationOutput, error) {
	loc, err := s.getLocation(ctx, input.ID)
	if err != nil {
		return nil, AssessLocationOutput{}, err
	}

	output := AssessLocationOutput{
		Location:   *loc,
		Assessment: s.assessor.Assess(ctx, loc.Reading()),
	}
	return textResult(output), output, nil
}

func (s *Server) getLocation(ctx context.Context, id int64) (*models.Location, error) {
	loc, err := s.repo.GetLocation(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("location %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return loc, nil
}
