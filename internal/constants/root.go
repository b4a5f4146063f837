package constants

// SessionState represents the current state of the TUI application
type SessionState int

// ViewMode represents the calendar projection currently on screen
type ViewMode int

const (
	AppName           = "termplan"
	DefaultConfigPath = "~/.config/termplan/termplan.db"
	Version           = "v0.3.1"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultClassGroup scopes stored collections when no class group has
	// been configured yet.
	DefaultClassGroup = "default"

	// SummerCutoffDay is the day of April on which the summer half-term
	// window begins: April 1-14 belong to SP2, April 15 onward to SM1.
	SummerCutoffDay = 15

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "termplan-"
	BackupFileSuffix = ".db"
)

const (
	// Session States
	StateCalendar SessionState = iota
	StateDaySummary
	StateAddLesson
	StateAddEvent
	StateConfirmDeletePlan
)

const (
	// View Modes
	ViewMonth ViewMode = iota
	ViewWeek
	ViewDay
)
