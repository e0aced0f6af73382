// ABOUTME: Tests for MCP server, tools, and resources
// ABOUTME: Verifies MCP integration with repository interface

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/harper/aquaguard/internal/models"
	"github.com/harper/aquaguard/internal/storage"
)

// mockRepo implements storage.Repository for testing.
type mockRepo struct {
	users     map[string]*models.User
	locations []*models.Location
	nextID    int64

	createLocationErr error
	getLocationErr    error
	listLocationsErr  error
	updateErr         error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		users:  make(map[string]*models.User),
		nextID: 1,
	}
}

func (m *mockRepo) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.Username]; ok {
		return storage.ErrDuplicateUser
	}
	user.ID = int64(len(m.users) + 1)
	m.users[user.Username] = user
	return nil
}

func (m *mockRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (m *mockRepo) CreateLocation(_ context.Context, loc *models.Location) error {
	if m.createLocationErr != nil {
		return m.createLocationErr
	}
	loc.ID = m.nextID
	m.nextID++
	stored := *loc
	m.locations = append(m.locations, &stored)
	return nil
}

func (m *mockRepo) GetLocation(_ context.Context, id int64) (*models.Location, error) {
	if m.getLocationErr != nil {
		return nil, m.getLocationErr
	}
	for _, loc := range m.locations {
		if loc.ID == id {
			copied := *loc
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *mockRepo) ListLocations(_ context.Context) ([]*models.Location, error) {
	if m.listLocationsErr != nil {
		return nil, m.listLocationsErr
	}
	return m.locations, nil
}

func (m *mockRepo) UpdateSensorState(_ context.Context, id int64, state models.SensorState) (bool, error) {
	if m.updateErr != nil {
		return false, m.updateErr
	}
	for _, loc := range m.locations {
		if loc.ID == id {
			loc.Apply(state)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) Ping(_ context.Context) error {
	return nil
}

func (m *mockRepo) Close() error {
	return nil
}

type fixedAssessor struct {
	text string
	got  models.SensorReading
}

func (f *fixedAssessor) Assess(_ context.Context, r models.SensorReading) string {
	f.got = r
	return f.text
}

func newTestServer(t *testing.T, repo *mockRepo) (*Server, *fixedAssessor) {
	t.Helper()
	assessor := &fixedAssessor{text: "Shut off the main water valve."}
	server, err := NewServer(repo, assessor)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, assessor
}

// Tests

func TestNewServer(t *testing.T) {
	server, _ := newTestServer(t, newMockRepo())
	if server.repo == nil {
		t.Error("expected non-nil repo")
	}
	if server.mcp == nil {
		t.Error("expected non-nil mcp server")
	}
}

func TestNewServer_MissingDependencies(t *testing.T) {
	if _, err := NewServer(nil, &fixedAssessor{}); err == nil {
		t.Error("expected error for nil repo")
	}
	if _, err := NewServer(newMockRepo(), nil); err == nil {
		t.Error("expected error for nil assessor")
	}
}

func TestHandleListLocations(t *testing.T) {
	repo := newMockRepo()
	_ = repo.CreateLocation(context.Background(), models.NewLocation("Main Kitchen"))
	_ = repo.CreateLocation(context.Background(), models.NewLocation("Garage"))
	server, _ := newTestServer(t, repo)

	result, output, err := server.handleListLocations(context.Background(), nil, ListLocationsInput{})
	if err != nil {
		t.Fatalf("handleListLocations failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if output.Count != 2 {
		t.Fatalf("expected count 2, got %d", output.Count)
	}
	if output.Locations[0].Name != "Main Kitchen" || output.Locations[1].Name != "Garage" {
		t.Errorf("unexpected order: %+v", output.Locations)
	}
}

func TestHandleListLocations_Empty(t *testing.T) {
	server, _ := newTestServer(t, newMockRepo())

	_, output, err := server.handleListLocations(context.Background(), nil, ListLocationsInput{})
	if err != nil {
		t.Fatalf("handleListLocations failed: %v", err)
	}
	if output.Count != 0 {
		t.Errorf("expected count 0, got %d", output.Count)
	}
	if output.Locations == nil {
		t.Error("expected empty slice, not nil, so JSON renders []")
	}
}

func TestHandleListLocations_Error(t *testing.T) {
	repo := newMockRepo()
	repo.listLocationsErr = errors.New("database error")
	server, _ := newTestServer(t, repo)

	_, _, err := server.handleListLocations(context.Background(), nil, ListLocationsInput{})
	if err == nil {
		t.Error("expected error when list locations fails")
	}
}

func TestHandleAddLocation(t *testing.T) {
	repo := newMockRepo()
	server, _ := newTestServer(t, repo)

	result, output, err := server.handleAddLocation(context.Background(), nil, AddLocationInput{Name: "Garage"})
	if err != nil {
		t.Fatalf("handleAddLocation failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if output.ID == 0 {
		t.Error("expected assigned id")
	}
	if output.Status != models.StatusSafe || output.Humidity != 45.0 || output.WaterPresence != 0 || output.Temperature != 20.0 {
		t.Errorf("expected default snapshot, got %+v", output)
	}
	if len(repo.locations) != 1 {
		t.Errorf("expected 1 location, got %d", len(repo.locations))
	}
}

func TestHandleAddLocation_InvalidName(t *testing.T) {
	repo := newMockRepo()
	server, _ := newTestServer(t, repo)

	_, _, err := server.handleAddLocation(context.Background(), nil, AddLocationInput{Name: "  "})
	if err == nil {
		t.Error("expected error for blank name")
	}
	if len(repo.locations) != 0 {
		t.Error("nothing should be stored for an invalid name")
	}
}

func TestHandleAddLocation_CreateError(t *testing.T) {
	repo := newMockRepo()
	repo.createLocationErr = errors.New("database error")
	server, _ := newTestServer(t, repo)

	_, _, err := server.handleAddLocation(context.Background(), nil, AddLocationInput{Name: "Garage"})
	if err == nil {
		t.Error("expected error when create fails")
	}
}

func TestHandleSimulateLocation_LeakThenSafe(t *testing.T) {
	repo := newMockRepo()
	loc := models.NewLocation("Basement Utility")
	loc.Temperature = 18.5
	_ = repo.CreateLocation(context.Background(), loc)
	server, _ := newTestServer(t, repo)

	_, output, err := server.handleSimulateLocation(context.Background(), nil, SimulateLocationInput{ID: loc.ID, Leaking: true})
	if err != nil {
		t.Fatalf("handleSimulateLocation failed: %v", err)
	}
	if output.Status != models.StatusLeaking || output.Humidity != 85.0 || output.WaterPresence != 1 {
		t.Errorf("expected leak snapshot, got %+v", output)
	}
	if output.Temperature != 18.5 {
		t.Errorf("temperature should be kept, got %f", output.Temperature)
	}
	if repo.locations[0].Status != models.StatusLeaking {
		t.Error("store was not updated")
	}

	_, output, err = server.handleSimulateLocation(context.Background(), nil, SimulateLocationInput{ID: loc.ID})
	if err != nil {
		t.Fatalf("handleSimulateLocation failed: %v", err)
	}
	if output.Status != models.StatusSafe || output.Humidity != 45.0 || output.WaterPresence != 0 {
		t.Errorf("expected safe snapshot, got %+v", output)
	}
}

func TestHandleSimulateLocation_Temperature(t *testing.T) {
	repo := newMockRepo()
	loc := models.NewLocation("Garage")
	_ = repo.CreateLocation(context.Background(), loc)
	server, _ := newTestServer(t, repo)

	temp := 4.5
	_, output, err := server.handleSimulateLocation(context.Background(), nil,
		SimulateLocationInput{ID: loc.ID, Leaking: true, Temperature: &temp})
	if err != nil {
		t.Fatalf("handleSimulateLocation failed: %v", err)
	}
	if output.Temperature != 4.5 {
		t.Errorf("expected temperature 4.5, got %f", output.Temperature)
	}
}

func TestHandleSimulateLocation_NotFound(t *testing.T) {
	server, _ := newTestServer(t, newMockRepo())

	_, _, err := server.handleSimulateLocation(context.Background(), nil, SimulateLocationInput{ID: 99, Leaking: true})
	if err == nil {
		t.Error("expected error for unknown location")
	}
}

func TestHandleSimulateLocation_UpdateError(t *testing.T) {
	repo := newMockRepo()
	loc := models.NewLocation("Garage")
	_ = repo.CreateLocation(context.Background(), loc)
	repo.updateErr = errors.New("database error")
	server, _ := newTestServer(t, repo)

	_, _, err := server.handleSimulateLocation(context.Background(), nil, SimulateLocationInput{ID: loc.ID, Leaking: true})
	if err == nil {
		t.Error("expected error when update fails")
	}
}

func TestHandleAssessLocation(t *testing.T) {
	repo := newMockRepo()
	loc := models.NewLocation("Main Kitchen")
	_ = repo.CreateLocation(context.Background(), loc)
	_, _ = repo.UpdateSensorState(context.Background(), loc.ID, models.LeakState(21.0))
	server, assessor := newTestServer(t, repo)

	result, output, err := server.handleAssessLocation(context.Background(), nil, AssessLocationInput{ID: loc.ID})
	if err != nil {
		t.Fatalf("handleAssessLocation failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if output.Assessment != "Shut off the main water valve." {
		t.Errorf("unexpected assessment %q", output.Assessment)
	}
	want := models.SensorReading{LocationName: "Main Kitchen", Humidity: 85.0, WaterPresence: true, Temperature: 21.0}
	if assessor.got != want {
		t.Errorf("expected reading %+v, got %+v", want, assessor.got)
	}
}

func TestHandleAssessLocation_NotFound(t *testing.T) {
	server, _ := newTestServer(t, newMockRepo())

	_, _, err := server.handleAssessLocation(context.Background(), nil, AssessLocationInput{ID: 7})
	if err == nil {
		t.Error("expected error for unknown location")
	}
}

func TestHandleAssessLocation_GetError(t *testing.T) {
	repo := newMockRepo()
	repo.getLocationErr = errors.New("database error")
	server, _ := newTestServer(t, repo)

	_, _, err := server.handleAssessLocation(context.Background(), nil, AssessLocationInput{ID: 1})
	if err == nil {
		t.Error("expected error when lookup fails")
	}
}

func TestHandleLocationsResource(t *testing.T) {
	repo := newMockRepo()
	_ = repo.CreateLocation(context.Background(), models.NewLocation("Garage"))
	server, _ := newTestServer(t, repo)

	result, err := server.handleLocationsResource(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleLocationsResource failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(result.Contents))
	}
	if result.Contents[0].URI != "aquaguard://locations" {
		t.Errorf("expected URI 'aquaguard://locations', got %q", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("expected MIME type 'application/json', got %q", result.Contents[0].MIMEType)
	}

	var output ListLocationsOutput
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &output); err != nil {
		t.Fatalf("resource is not JSON: %v", err)
	}
	if output.Count != 1 || output.Locations[0].Name != "Garage" {
		t.Errorf("unexpected resource body: %+v", output)
	}
}

func TestHandleLocationsResource_Error(t *testing.T) {
	repo := newMockRepo()
	repo.listLocationsErr = errors.New("database error")
	server, _ := newTestServer(t, repo)

	_, err := server.handleLocationsResource(context.Background(), nil)
	if err == nil {
		t.Error("expected error when list locations fails")
	}
}
