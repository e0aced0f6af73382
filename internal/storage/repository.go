// ABOUTME: Repository interfaces for leak monitoring storage
// ABOUTME: Enables testability of handlers without a database

package storage

import (
	"context"

	"github.com/harper/aquaguard/internal/models"
)

// UserRepository defines operations for login identities.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// LocationRepository defines operations for monitored locations.
type LocationRepository interface {
	CreateLocation(ctx context.Context, loc *models.Location) error
	GetLocation(ctx context.Context, id int64) (*models.Location, error)
	ListLocations(ctx context.Context) ([]*models.Location, error)
	// UpdateSensorState overwrites the sensor fields of a location in one statement.
	// It reports whether a row was affected; a missing id is not an error.
	UpdateSensorState(ctx context.Context, id int64, state models.SensorState) (bool, error)
}

// Repository combines all repository operations with lifecycle management.
type Repository interface {
	UserRepository
	LocationRepository
	Ping(ctx context.Context) error
	Close() error
}
