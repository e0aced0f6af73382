// ABOUTME: SQLite storage implementation for users and locations
// ABOUTME: Provides local-only persistence using pure Go SQLite driver

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/aquaguard/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements Repository with a local SQLite database.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

// Compile-time check that SQLiteDB implements Repository.
var _ Repository = (*SQLiteDB)(nil)

// NewSQLiteDB opens the SQLite database at the given path and creates the schema.
// Creates the directory and database file if they don't exist.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteDB{db: db, path: path}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// migrate creates the schema when absent.
func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE,
			password TEXT
		);

		CREATE TABLE IF NOT EXISTS locations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			status TEXT DEFAULT 'Safe',
			humidity REAL DEFAULT 45.0,
			water_presence INTEGER DEFAULT 0,
			temperature REAL DEFAULT 20.0
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *SQLiteDB) Path() string {
	return s.path
}

// Ping verifies the database is reachable.
func (s *SQLiteDB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// CreateUser inserts a user. The password must already be hashed.
func (s *SQLiteDB) CreateUser(ctx context.Context, user *models.User) error {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password) VALUES (?, ?)",
		user.Username, user.Password,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	user.ID = id
	return nil
}

// GetUserByUsername retrieves a user by exact username.
func (s *SQLiteDB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password FROM users WHERE username = ?",
		username,
	).Scan(&user.ID, &user.Username, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

// CreateLocation inserts a location and assigns its ID.
func (s *SQLiteDB) CreateLocation(ctx context.Context, loc *models.Location) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO locations (name, status, humidity, water_presence, temperature)
		 VALUES (?, ?, ?, ?, ?)`,
		loc.Name, string(loc.Status), loc.Humidity, loc.WaterPresence, loc.Temperature,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("location id: %w", err)
	}
	loc.ID = id
	return nil
}

// GetLocation retrieves a location by ID.
func (s *SQLiteDB) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, status, humidity, water_presence, temperature
		 FROM locations WHERE id = ?`,
		id,
	)
	loc, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return loc, err
}

// ListLocations returns every location in insertion order.
func (s *SQLiteDB) ListLocations(ctx context.Context) ([]*models.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, status, humidity, water_presence, temperature
		 FROM locations ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	locations := []*models.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// UpdateSensorState overwrites all four sensor fields of a location.
func (s *SQLiteDB) UpdateSensorState(ctx context.Context, id int64, state models.SensorState) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE locations SET status = ?, humidity = ?, water_presence = ?, temperature = ?
		 WHERE id = ?`,
		string(state.Status), state.Humidity, state.WaterPresence, state.Temperature, id,
	)
	if err != nil {
		return false, fmt.Errorf("update location: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLocation(row scanner) (*models.Location, error) {
	var loc models.Location
	var name, status sql.NullString
	err := row.Scan(&loc.ID, &name, &status, &loc.Humidity, &loc.WaterPresence, &loc.Temperature)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan location: %w", err)
	}
	loc.Name = name.String
	loc.Status = models.Status(status.String)
	return &loc, nil
}
