package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/termhq/termplan/internal/constants"
)

func setupTestStore(t *testing.T) string {
	t.Helper()
	storePath := filepath.Join(t.TempDir(), "termplan.json")
	if err := os.WriteFile(storePath, []byte(`{"version":1}`), 0600); err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return storePath
}

func TestCreateBackup(t *testing.T) {
	storePath := setupTestStore(t)

	mgr := NewManager(storePath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Errorf("backup file was not created: %s", backupPath)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("backup content differs from store: %s", data)
	}
}

func TestCreateBackupMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error when store does not exist")
	}
}

func TestListBackups(t *testing.T) {
	storePath := setupTestStore(t)
	mgr := NewManager(storePath)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups before first create, got %d", len(backups))
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup size should not be zero")
	}
}

func TestRotateBackups(t *testing.T) {
	storePath := setupTestStore(t)
	mgr := NewManager(storePath)

	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}

	// Seed more than the retention limit with distinct timestamps.
	for i := 0; i < constants.MaxBackups+3; i++ {
		name := fmt.Sprintf("%s202501%02d-0900.json", constants.BackupFilePrefix, i+1)
		path := filepath.Join(mgr.GetBackupDir(), name)
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to seed backup: %v", err)
		}
	}

	if err := mgr.rotateBackups(); err != nil {
		t.Fatalf("rotateBackups failed: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	// The survivors are the newest ones.
	for _, b := range backups {
		if b.Timestamp.Day() <= 3 {
			t.Errorf("old backup survived rotation: %s", b.Path)
		}
	}
}

func TestRestoreBackup(t *testing.T) {
	storePath := setupTestStore(t)
	mgr := NewManager(storePath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Mutate the live store, then restore the snapshot.
	if err := os.WriteFile(storePath, []byte(`{"version":2}`), 0600); err != nil {
		t.Fatalf("failed to mutate store: %v", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("failed to read restored store: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("store was not restored: %s", data)
	}
}

func TestRestoreBackupMissingFile(t *testing.T) {
	mgr := NewManager(setupTestStore(t))
	if err := mgr.RestoreBackup("/nonexistent/backup.json"); err == nil {
		t.Error("expected error for missing backup file")
	}
}

func TestTrimCounter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20250915-0900", "20250915-0900"},
		{"20250915-090015", "20250915-090015"},
		{"20250915-090015-1", "20250915-090015"},
		{"20250915-090015-12", "20250915-090015"},
	}

	for _, tt := range tests {
		if got := trimCounter(tt.in); got != tt.want {
			t.Errorf("trimCounter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
