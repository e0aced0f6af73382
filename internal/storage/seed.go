// ABOUTME: First-run seed data for an empty database
// ABOUTME: Inserts the demo login and two sample locations only when tables are empty

package storage

import (
	"context"
	"fmt"

	"github.com/harper/aquaguard/internal/auth"
	"github.com/harper/aquaguard/internal/models"
)

// Demo credentials created on first run.
const (
	SeedUsername = "admin"
	SeedPassword = "password123"
)

// seedLocations are inserted in order when the locations table is empty.
var seedLocations = []models.Location{
	{Name: "Main Kitchen", Status: models.StatusSafe, Humidity: 42.5, WaterPresence: 0, Temperature: 21.0},
	{Name: "Basement Utility", Status: models.StatusSafe, Humidity: 68.2, WaterPresence: 0, Temperature: 18.5},
}

// SeedSummary reports what Seed inserted.
type SeedSummary struct {
	Users     int
	Locations int
}

// Seed populates empty tables with demo data. Tables that already hold rows are left alone,
// so calling Seed on every start is safe.
func (s *SQLiteDB) Seed(ctx context.Context) (*SeedSummary, error) {
	summary := &SeedSummary{}

	users, err := s.count(ctx, "users")
	if err != nil {
		return nil, err
	}
	if users == 0 {
		hash, err := auth.HashPassword(SeedPassword)
		if err != nil {
			return nil, err
		}
		if err := s.CreateUser(ctx, &models.User{Username: SeedUsername, Password: hash}); err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
		summary.Users++
	}

	locations, err := s.count(ctx, "locations")
	if err != nil {
		return nil, err
	}
	if locations == 0 {
		for i := range seedLocations {
			loc := seedLocations[i]
			if err := s.CreateLocation(ctx, &loc); err != nil {
				return nil, fmt.Errorf("seed location %q: %w", loc.Name, err)
			}
			summary.Locations++
		}
	}

	return summary, nil
}

func (s *SQLiteDB) count(ctx context.Context, table string) (int, error) {
	var n int
	// table is always a literal from this file
	if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil { //nolint:gosec
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
