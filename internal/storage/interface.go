package storage

import "github.com/termhq/termplan/internal/models"

// Provider is the persistence contract for the scheduling engine. Every
// collection is scoped by the active class/year-group identifier so one
// store file can hold several groups' calendars side by side.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Calendar events
	AddEvent(group string, event models.CalendarEvent) error
	GetEvent(group, id string) (models.CalendarEvent, error)
	GetAllEvents(group string) ([]models.CalendarEvent, error)
	UpdateEvent(group string, event models.CalendarEvent) error
	DeleteEvent(group, id string) error

	// Timetable classes
	AddClass(group string, class models.TimetableClass) error
	GetClass(group, id string) (models.TimetableClass, error)
	GetAllClasses(group string) ([]models.TimetableClass, error)
	UpdateClass(group string, class models.TimetableClass) error
	DeleteClass(group, id string) error

	// Units
	AddUnit(group string, unit models.Unit) error
	GetUnit(group, id string) (models.Unit, error)
	GetAllUnits(group string) ([]models.Unit, error)
	UpdateUnit(group string, unit models.Unit) error
	DeleteUnit(group, id string) error

	// Content library lessons
	AddLesson(group string, lesson models.Lesson) error
	GetLesson(group, number string) (models.Lesson, error)
	GetAllLessons(group string) ([]models.Lesson, error)
	DeleteLesson(group, number string) error

	// Lesson plans. SavePlan is an upsert keyed by plan ID.
	SavePlan(group string, plan models.LessonPlan) error
	GetPlan(group, id string) (models.LessonPlan, error)
	GetPlansForDate(group, date string) ([]models.LessonPlan, error)
	GetAllPlans(group string) ([]models.LessonPlan, error)
	DeletePlan(group, id string) error

	// Half-term assignment state. GetHalfTerm returns an empty
	// assignment (never an error) for a valid id with no stored state.
	GetHalfTerm(group string, id models.HalfTermID) (models.HalfTermAssignment, error)
	SaveHalfTerm(group string, assignment models.HalfTermAssignment) error
	GetAllHalfTerms(group string) ([]models.HalfTermAssignment, error)

	// Utils
	GetConfigPath() string
}
