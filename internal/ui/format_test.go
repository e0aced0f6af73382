// ABOUTME: Unit tests for terminal UI formatting
// ABOUTME: Tests human-readable output for locations and assessments

package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/harper/aquaguard/internal/models"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestFormatLocation(t *testing.T) {
	loc := &models.Location{
		ID:            2,
		Name:          "Basement Utility",
		Status:        models.StatusSafe,
		Humidity:      68.2,
		WaterPresence: 0,
		Temperature:   18.5,
	}

	output := FormatLocation(loc)
	for _, want := range []string{"#2", "Basement Utility", "Safe", "68.2% humidity", "dry", "18.5°C"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}

func TestFormatLocation_Leaking(t *testing.T) {
	loc := models.NewLocation("Garage")
	loc.Apply(models.LeakState(20))

	output := FormatLocation(loc)
	if !strings.Contains(output, "Leaking") {
		t.Errorf("expected leaking status, got %q", output)
	}
	if !strings.Contains(output, "water detected") {
		t.Errorf("expected water detected, got %q", output)
	}
}

func TestFormatLocation_Nil(t *testing.T) {
	output := FormatLocation(nil)
	if !strings.Contains(output, "invalid location") {
		t.Errorf("expected nil location message, got %q", output)
	}
}

func TestFormatStatus_Unknown(t *testing.T) {
	if got := FormatStatus("Flooded"); got != "Flooded" {
		t.Errorf("expected status text passed through, got %q", got)
	}
}

func TestFormatAssessment(t *testing.T) {
	output := FormatAssessment("Main Kitchen", "1. Shut off water\n2. Call a plumber\n")

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), output)
	}
	if lines[0] != "Assessment for Main Kitchen" {
		t.Errorf("unexpected heading %q", lines[0])
	}
	if lines[1] != "  1. Shut off water" || lines[2] != "  2. Call a plumber" {
		t.Errorf("expected indented body, got %q", lines[1:])
	}
}
