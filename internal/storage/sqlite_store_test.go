package storage

import (
	"path/filepath"
	"testing"

	"github.com/termhq/termplan/internal/constants"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	return NewSQLiteStore(filepath.Join(t.TempDir(), "termplan.db"))
}

// Settings are read before Load on the init command path, so the
// accessors must error instead of dereferencing a nil connection.
func TestSQLiteSettingsBeforeLoad(t *testing.T) {
	store := setupSQLiteStore(t)

	if _, err := store.GetSettings(); err == nil {
		t.Error("expected 'storage not loaded' error from GetSettings")
	}
	if err := store.SaveSettings(Settings{ActiveGroup: "year7"}); err == nil {
		t.Error("expected 'storage not loaded' error from SaveSettings")
	}
}

func TestPostgresSettingsBeforeLoad(t *testing.T) {
	store := NewPostgresStore("postgres://localhost/termplan")

	if _, err := store.GetSettings(); err == nil {
		t.Error("expected 'storage not loaded' error from GetSettings")
	}
	if err := store.SaveSettings(Settings{ActiveGroup: "year7"}); err == nil {
		t.Error("expected 'storage not loaded' error from SaveSettings")
	}
}

func TestSQLiteSettingsRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.ActiveGroup != constants.DefaultClassGroup {
		t.Errorf("expected default group, got %q", settings.ActiveGroup)
	}

	settings.ActiveGroup = "year8"
	settings.YearStart = "2025-09-01"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to reread settings: %v", err)
	}
	if got.ActiveGroup != "year8" || got.YearStart != "2025-09-01" {
		t.Errorf("settings did not round-trip, got %+v", got)
	}
}
