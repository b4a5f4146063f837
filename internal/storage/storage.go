package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// Settings is the persisted application configuration shared by every
// Provider implementation.
type Settings struct {
	// ActiveGroup is the class/year-group whose collections the UI
	// currently operates on.
	ActiveGroup string `json:"active_group"`

	// YearStart is the first day of the current academic year as a
	// YYYY-MM-DD string (the September side of the year boundary).
	YearStart string `json:"year_start,omitempty"`

	Timezone string `json:"timezone,omitempty"`
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// NewStore selects a Provider implementation from the config string:
// postgres connection strings get the Postgres store, .json paths the
// JSON file store, anything else SQLite.
func NewStore(config string) Provider {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		return NewPostgresStore(config)
	}
	path := ExpandPath(config)
	if strings.HasSuffix(path, ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}
