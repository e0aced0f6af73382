// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for locations and assessments

package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/aquaguard/internal/models"
)

// FormatStatus colors a status: red for leaking, green for safe.
func FormatStatus(s models.Status) string {
	switch s {
	case models.StatusLeaking:
		return color.New(color.FgRed, color.Bold).Sprint(string(s))
	case models.StatusSafe:
		return color.GreenString(string(s))
	default:
		return color.YellowString(string(s))
	}
}

// FormatWater renders water presence as a short word.
func FormatWater(present int) string {
	if present != 0 {
		return color.RedString("water detected")
	}
	return "dry"
}

// FormatLocation formats one location on a single line.
func FormatLocation(loc *models.Location) string {
	if loc == nil {
		return color.New(color.Faint).Sprint("(invalid location)")
	}
	return fmt.Sprintf("%s %s %s - %s, %s, %s",
		color.New(color.Faint).Sprintf("#%d", loc.ID),
		color.CyanString(loc.Name),
		FormatStatus(loc.Status),
		FormatHumidity(loc.Humidity),
		FormatWater(loc.WaterPresence),
		formatTemperature(loc.Temperature))
}

// FormatHumidity renders a humidity percentage, highlighting values above the
// level at which preventative advice is given.
func FormatHumidity(h float64) string {
	s := fmt.Sprintf("%.1f%% humidity", h)
	if h > 65 {
		return color.YellowString(s)
	}
	return s
}

func formatTemperature(t float64) string {
	return fmt.Sprintf("%.1f°C", t)
}

// FormatAssessment indents assessment text under a heading for the location.
func FormatAssessment(name, text string) string {
	var b strings.Builder
	b.WriteString(color.New(color.Bold).Sprintf("Assessment for %s", name))
	b.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
