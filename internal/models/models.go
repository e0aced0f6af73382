// ABOUTME: Core data models for users and monitored locations
// ABOUTME: Provides constructors for default and simulated sensor snapshots

package models

import (
	"fmt"
	"strings"
)

// Status is the leak state of a location.
type Status string

const (
	StatusSafe    Status = "Safe"
	StatusLeaking Status = "Leaking"
)

// Default sensor values for a newly added location.
const (
	DefaultHumidity      = 45.0
	DefaultWaterPresence = 0
	DefaultTemperature   = 20.0
)

// Humidity reported while a leak is being simulated.
const LeakHumidity = 85.0

// User is a login identity. Password holds a bcrypt hash, never plaintext.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// Location is a monitored site with its single current sensor snapshot.
type Location struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Status        Status  `json:"status"`
	Humidity      float64 `json:"humidity"`
	WaterPresence int     `json:"water_presence"`
	Temperature   float64 `json:"temperature"`
}

// SensorState is the set of fields overwritten by a simulate call.
type SensorState struct {
	Status        Status  `json:"status"`
	Humidity      float64 `json:"humidity"`
	WaterPresence int     `json:"water_presence"`
	Temperature   float64 `json:"temperature"`
}

// NewLocation returns a location with the default sensor snapshot.
// The ID is assigned by the store.
func NewLocation(name string) *Location {
	return &Location{
		Name:          name,
		Status:        StatusSafe,
		Humidity:      DefaultHumidity,
		WaterPresence: DefaultWaterPresence,
		Temperature:   DefaultTemperature,
	}
}

// LeakState returns the snapshot for a simulated leak.
func LeakState(temperature float64) SensorState {
	return SensorState{
		Status:        StatusLeaking,
		Humidity:      LeakHumidity,
		WaterPresence: 1,
		Temperature:   temperature,
	}
}

// SafeState returns the snapshot for a location with no leak.
func SafeState(temperature float64) SensorState {
	return SensorState{
		Status:        StatusSafe,
		Humidity:      DefaultHumidity,
		WaterPresence: 0,
		Temperature:   temperature,
	}
}

// ToggleState flips the location between leaking and safe, keeping its temperature.
func ToggleState(loc *Location) SensorState {
	if loc.Status == StatusLeaking {
		return SafeState(loc.Temperature)
	}
	return LeakState(loc.Temperature)
}

// Apply overwrites the sensor fields of the location with s.
func (l *Location) Apply(s SensorState) {
	l.Status = s.Status
	l.Humidity = s.Humidity
	l.WaterPresence = s.WaterPresence
	l.Temperature = s.Temperature
}

// Reading converts the snapshot into the input of an assessment.
func (l *Location) Reading() SensorReading {
	return SensorReading{
		LocationName:  l.Name,
		Humidity:      l.Humidity,
		WaterPresence: l.WaterPresence != 0,
		Temperature:   l.Temperature,
	}
}

// SensorReading is what the assessment service is asked about.
type SensorReading struct {
	LocationName  string  `json:"locationName"`
	Humidity      float64 `json:"humidity"`
	WaterPresence bool    `json:"waterPresence"`
	Temperature   float64 `json:"temperature"`
}

// ValidateName checks a location name entered from the CLI or an agent.
// The HTTP API accepts any name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty or whitespace")
	}
	if len(name) > 255 {
		return fmt.Errorf("name too long (max 255 characters)")
	}
	return nil
}

// ValidateUsername checks that a username is usable for login.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username cannot be empty or whitespace")
	}
	if len(username) > 255 {
		return fmt.Errorf("username too long (max 255 characters)")
	}
	return nil
}
