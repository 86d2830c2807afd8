// Package config loads chantier settings from the environment and the
// optional YAML holiday calendar file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
)

// Config holds process-wide settings.
type Config struct {
	DBPath        string
	CalendarPath  string
	LogCalls      bool
	ColumnWidth   float64
	Actor         string
	RetryAttempts uint
	RetryDelay    time.Duration
	NameCacheSize int
	NameCacheTTL  time.Duration
}

// DefaultConfig returns a Config with sensible defaults. DBPath is left
// empty and resolved against the home directory by DatabasePath.
func DefaultConfig() Config {
	return Config{
		ColumnWidth:   120,
		Actor:         defaultActor(),
		RetryAttempts: 5,
		RetryDelay:    20 * time.Millisecond,
		NameCacheSize: 1000,
		NameCacheTTL:  10 * time.Minute,
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset or unparseable values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CHANTIER_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CHANTIER_CALENDAR"); v != "" {
		cfg.CalendarPath = v
	}
	if v := os.Getenv("CHANTIER_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CHANTIER_COLUMN_WIDTH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.ColumnWidth = f
		}
	}
	if v := os.Getenv("CHANTIER_ACTOR"); v != "" {
		cfg.Actor = v
	}
	if v := os.Getenv("CHANTIER_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetryAttempts = uint(n)
		}
	}
	if v := os.Getenv("CHANTIER_RETRY_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.RetryDelay = d
		}
	}
	if v := os.Getenv("CHANTIER_NAME_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.NameCacheSize = n
		}
	}
	if v := os.Getenv("CHANTIER_NAME_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.NameCacheTTL = d
		}
	}
	return cfg
}

// DatabasePath returns DBPath, or ~/.chantier/chantier.db when unset.
func (c Config) DatabasePath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".chantier", "chantier.db"), nil
}

// Calendar builds the working calendar: the built-in French holidays, or
// the YAML file at CalendarPath when one is configured.
func (c Config) Calendar() (*calendar.Calendar, error) {
	if c.CalendarPath == "" {
		return calendar.Default(), nil
	}
	file, err := LoadCalendarFile(c.CalendarPath)
	if err != nil {
		return nil, err
	}
	return file.Build()
}

func defaultActor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "chantier"
}
