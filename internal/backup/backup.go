package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/termhq/termplan/internal/constants"
)

// Info contains information about a backup file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backups of the planner file. It works on whatever the
// configured store path is: SQLite databases are copied through the
// VACUUM INTO API, JSON stores are plain file copies.
type Manager struct {
	storePath string
	backupDir string
}

// NewManager creates a new backup manager for the given store path
func NewManager(storePath string) *Manager {
	configDir := filepath.Dir(storePath)
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup creates a new timestamped backup of the store
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup creates a new backup. skipRotation prevents recursive
// backup creation during restore.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}

	backupPath, err := m.uniqueBackupPath()
	if err != nil {
		return "", err
	}

	if m.isSQLite() {
		err = m.backupSQLite(backupPath)
	} else {
		err = copyFile(m.storePath, backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to backup store: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// A failed rotation should not fail the backup itself.
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}

	return backupPath, nil
}

// uniqueBackupPath generates a timestamped filename, falling back to
// second precision and then a counter when a backup with the same name
// already exists.
func (m *Manager) uniqueBackupPath() (string, error) {
	suffix := m.fileSuffix()

	timestamp := time.Now().Format("20060102-1504")
	backupPath := filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+suffix)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return backupPath, nil
	}

	timestamp = time.Now().Format("20060102-150405")
	backupPath = filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+suffix)
	counter := 1
	for {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return backupPath, nil
		}
		backupPath = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, timestamp, counter, suffix))
		counter++
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
	}
}

func (m *Manager) isSQLite() bool {
	return !strings.HasSuffix(m.storePath, ".json")
}

func (m *Manager) fileSuffix() string {
	if m.isSQLite() {
		return constants.BackupFileSuffix
	}
	return ".json"
}

// backupSQLite uses VACUUM INTO to produce a clean, consistent copy of
// the database even while the schema holds free pages.
func (m *Manager) backupSQLite(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		// VACUUM INTO needs SQLite 3.27+; fall back to a file copy.
		srcDB.Close()
		return copyFile(m.storePath, destPath)
	}

	return nil
}

// ListBackups returns all available backups, newest first
func (m *Manager) ListBackups() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) {
			continue
		}
		timestampStr := strings.TrimPrefix(name, constants.BackupFilePrefix)
		timestampStr = strings.TrimSuffix(timestampStr, filepath.Ext(timestampStr))
		timestampStr = trimCounter(timestampStr)

		timestamp, err := time.Parse("20060102-1504", timestampStr)
		if err != nil {
			timestamp, err = time.Parse("20060102-150405", timestampStr)
			if err != nil {
				continue
			}
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, Info{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// trimCounter strips a "-N" disambiguation counter from a backup
// timestamp. Time fields are always 4 or 6 digits, so anything shorter
// made of digits is a counter.
func trimCounter(timestampStr string) string {
	parts := strings.Split(timestampStr, "-")
	if len(parts) <= 2 {
		return timestampStr
	}
	last := parts[len(parts)-1]
	if len(last) == 4 || len(last) == 6 {
		return timestampStr
	}
	for _, c := range last {
		if c < '0' || c > '9' {
			return timestampStr
		}
	}
	return strings.Join(parts[:len(parts)-1], "-")
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) <= constants.MaxBackups {
		return nil
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}

	return nil
}

// RestoreBackup replaces the store with a backup file. The current
// store is backed up first, then the copy lands via an atomic rename.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if m.isSQLite() {
		if err := m.verifySQLite(backupPath); err != nil {
			return fmt.Errorf("backup file is corrupted or invalid: %w", err)
		}
	}

	if _, err := os.Stat(m.storePath); err == nil {
		currentBackup, err := m.createBackup(true)
		if err != nil {
			return fmt.Errorf("failed to backup current store before restore: %w", err)
		}
		fmt.Printf("Created backup of current store: %s\n", filepath.Base(currentBackup))
	}

	tempPath := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.storePath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", tempPath, removeErr)
		}
		return fmt.Errorf("failed to restore store: %w", err)
	}

	return nil
}

// verifySQLite checks that a backup file is a readable SQLite database
func (m *Manager) verifySQLite(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
