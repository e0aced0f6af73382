// ABOUTME: Prompt construction for leak assessments
// ABOUTME: Renders sensor readings into a deterministic natural-language request

package assessment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harper/aquaguard/internal/models"
)

// SystemInstruction frames every request to the text-generation service.
const SystemInstruction = "You are an expert water damage mitigation assistant. " +
	"Provide concise, actionable advice for property owners."

// Text returned in place of a generated assessment.
const (
	FallbackEmpty = "Unable to generate assessment at this time."
	FallbackError = "Error connecting to AI intelligence service."
)

// BuildPrompt renders a reading into the assessment request. Equal readings
// always produce byte-identical prompts.
func BuildPrompt(r models.SensorReading) string {
	water := "NO"
	if r.WaterPresence {
		water = "YES"
	}

	var b strings.Builder
	b.WriteString("Analyze the following water sensor data for a property location:\n")
	fmt.Fprintf(&b, "Location: %s\n", r.LocationName)
	fmt.Fprintf(&b, "Humidity: %s%%\n", formatNumber(r.Humidity))
	fmt.Fprintf(&b, "Water Detected: %s\n", water)
	fmt.Fprintf(&b, "Temperature: %s°C\n", formatNumber(r.Temperature))
	b.WriteString("\n")
	b.WriteString("Provide a concise assessment of the situation.\n")
	b.WriteString("If a leak is detected (Water Detected is YES), provide a prioritized, location-specific emergency checklist.\n")
	b.WriteString("If no leak is detected but humidity is high (>65%), provide preventative advice.\n")
	b.WriteString("Keep the tone professional and urgent if necessary.\n")
	return b.String()
}

// formatNumber prints the shortest representation that round-trips, so 45 renders as "45"
// and 42.5 as "42.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
