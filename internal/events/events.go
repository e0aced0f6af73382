// ABOUTME: Location change events and the publisher interface
// ABOUTME: Provides a no-op publisher for deployments without a broker

package events

import (
	"context"
	"time"

	"github.com/harper/aquaguard/internal/models"
)

// Type names what happened to a location.
type Type string

const (
	TypeCreated   Type = "created"
	TypeSimulated Type = "simulated"
)

// LocationEvent is published after a location is added or its sensor state is overwritten.
type LocationEvent struct {
	Type       Type            `json:"type"`
	Location   models.Location `json:"location"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher delivers location events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event LocationEvent) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

var _ Publisher = Nop{}

func (Nop) Publish(context.Context, LocationEvent) error { return nil }

func (Nop) Close() error { return nil }
