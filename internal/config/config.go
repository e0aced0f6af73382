// ABOUTME: AquaGuard configuration loaded from the environment
// ABOUTME: Handles defaults, validation, XDG data paths, and store opening

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/harper/aquaguard/internal/storage"
	"github.com/joho/godotenv"
)

// Run modes.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// defaultDBFilename is the SQLite database filename inside the data directory.
const defaultDBFilename = "aquaguard.db"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":3000"`
	Mode            string        `env:"APP_ENV" envDefault:"development"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"dist"`
	DevOrigins      []string      `env:"DEV_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// DataDir is the root directory for the database. Supports ~ expansion.
	// Defaults to the XDG data directory.
	DataDir string `env:"DATA_DIR"`
	// DBPath overrides DataDir/aquaguard.db when set.
	DBPath string `env:"DB_PATH"`

	// Gemini assessment settings.
	GeminiAPIKey       string        `env:"GEMINI_API_KEY"`
	GeminiModel        string        `env:"GEMINI_MODEL" envDefault:"gemini-3-flash-preview"`
	AssessmentTimeout  time.Duration `env:"ASSESSMENT_TIMEOUT" envDefault:"30s"`
	AssessmentCacheTTL time.Duration `env:"ASSESSMENT_CACHE_TTL" envDefault:"10m"`

	// Location event publishing. Disabled when no brokers are set.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"location-events"`
}

// Load reads an optional .env file and then the environment, applying defaults where unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses configuration from the process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.KafkaBrokers = compact(cfg.KafkaBrokers)
	cfg.DevOrigins = compact(cfg.DevOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that env parsing cannot.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return fmt.Errorf("invalid APP_ENV %q: want %s or %s", c.Mode, ModeDevelopment, ModeProduction)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: want json or text", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("invalid SHUTDOWN_TIMEOUT: must be positive")
	}
	if c.AssessmentTimeout <= 0 {
		return errors.New("invalid ASSESSMENT_TIMEOUT: must be positive")
	}
	if c.AssessmentCacheTTL < 0 {
		return errors.New("invalid ASSESSMENT_CACHE_TTL: must not be negative")
	}
	if c.KafkaEnabled() && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// IsProduction reports whether the static UI bundle should be served.
func (c *Config) IsProduction() bool {
	return c.Mode == ModeProduction
}

// KafkaEnabled reports whether location events should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the database file path.
func (c *Config) GetDBPath() string {
	if c.DBPath != "" {
		return ExpandPath(c.DBPath)
	}
	return filepath.Join(c.GetDataDir(), defaultDBFilename)
}

// OpenStorage opens the SQLite store and seeds any empty tables.
func (c *Config) OpenStorage(ctx context.Context) (*storage.SQLiteDB, error) {
	db, err := storage.NewSQLiteDB(c.GetDBPath())
	if err != nil {
		return nil, err
	}
	if _, err := db.Seed(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}
	return db, nil
}

// defaultDataDir returns the default XDG data directory for aquaguard.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "aquaguard")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
