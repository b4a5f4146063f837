package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/termhq/termplan/internal/constants"
	"github.com/termhq/termplan/internal/models"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	active_group TEXT NOT NULL,
	year_start TEXT NOT NULL DEFAULT '',
	timezone TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS events (
	class_group TEXT NOT NULL,
	id TEXT NOT NULL,
	title TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	type TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	PRIMARY KEY (class_group, id)
);

CREATE TABLE IF NOT EXISTS classes (
	class_group TEXT NOT NULL,
	id TEXT NOT NULL,
	day INTEGER NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	class_name TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	recurring_unit_id TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (class_group, id)
);

CREATE TABLE IF NOT EXISTS units (
	class_group TEXT NOT NULL,
	id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	lesson_numbers TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	term TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (class_group, id)
);

CREATE TABLE IF NOT EXISTS lessons (
	class_group TEXT NOT NULL,
	number TEXT NOT NULL,
	title TEXT NOT NULL,
	total_time TEXT NOT NULL DEFAULT '',
	category_order TEXT NOT NULL,
	grouped TEXT NOT NULL,
	PRIMARY KEY (class_group, number)
);

CREATE TABLE IF NOT EXISTS plans (
	class_group TEXT NOT NULL,
	id TEXT NOT NULL,
	date TEXT NOT NULL,
	week INTEGER NOT NULL,
	class_name TEXT NOT NULL DEFAULT '',
	activities TEXT NOT NULL,
	duration TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	time TEXT NOT NULL DEFAULT '',
	lesson_number TEXT NOT NULL DEFAULT '',
	unit_id TEXT NOT NULL DEFAULT '',
	unit_name TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (class_group, id)
);

CREATE INDEX IF NOT EXISTS idx_plans_date ON plans (class_group, date);

CREATE TABLE IF NOT EXISTS half_terms (
	class_group TEXT NOT NULL,
	id TEXT NOT NULL,
	lessons TEXT NOT NULL,
	is_complete INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (class_group, id)
);
`

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		defaultSettings := Settings{
			ActiveGroup: constants.DefaultClassGroup,
		}
		if err := s.SaveSettings(defaultSettings); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'termplan init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent; running it on load picks up tables
	// added since the file was initialized.
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	// Reachable before Load: main reads settings even on the init path.
	if s.db == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	var settings Settings
	err := s.db.QueryRow("SELECT active_group, year_start, timezone FROM settings WHERE id = 1").
		Scan(&settings.ActiveGroup, &settings.YearStart, &settings.Timezone)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO settings (id, active_group, year_start, timezone) VALUES (1, ?, ?, ?)",
		settings.ActiveGroup, settings.YearStart, settings.Timezone,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddEvent(group string, event models.CalendarEvent) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO events (class_group, id, title, start_date, end_date, type, description, color, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		group, event.ID, event.Title, event.StartDate, event.EndDate,
		string(event.Type), event.Description, event.Color,
		event.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	return nil
}

func scanEvent(row interface{ Scan(...any) error }) (models.CalendarEvent, error) {
	var event models.CalendarEvent
	var eventType, createdAt string
	if err := row.Scan(&event.ID, &event.Title, &event.StartDate, &event.EndDate,
		&eventType, &event.Description, &event.Color, &createdAt); err != nil {
		return models.CalendarEvent{}, err
	}
	event.Type = models.EventType(eventType)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		event.CreatedAt = t
	}
	return event, nil
}

func (s *SQLiteStore) GetEvent(group, id string) (models.CalendarEvent, error) {
	row := s.db.QueryRow(
		`SELECT id, title, start_date, end_date, type, description, color, created_at
		 FROM events WHERE class_group = ? AND id = ?`, group, id)
	event, err := scanEvent(row)
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("event not found: %s", id)
	}
	return event, nil
}

func (s *SQLiteStore) GetAllEvents(group string) ([]models.CalendarEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, title, start_date, end_date, type, description, color, created_at
		 FROM events WHERE class_group = ? ORDER BY created_at, id`, group)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) UpdateEvent(group string, event models.CalendarEvent) error {
	res, err := s.db.Exec(
		`UPDATE events SET title = ?, start_date = ?, end_date = ?, type = ?, description = ?, color = ?
		 WHERE class_group = ? AND id = ?`,
		event.Title, event.StartDate, event.EndDate, string(event.Type),
		event.Description, event.Color, group, event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireRow(res, "event", event.ID)
}

func (s *SQLiteStore) DeleteEvent(group, id string) error {
	res, err := s.db.Exec("DELETE FROM events WHERE class_group = ? AND id = ?", group, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireRow(res, "event", id)
}

func (s *SQLiteStore) AddClass(group string, class models.TimetableClass) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO classes (class_group, id, day, start_time, end_time, class_name, location, color, recurring_unit_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		group, class.ID, int(class.Day), class.StartTime, class.EndTime,
		class.ClassName, class.Location, class.Color, class.RecurringUnitID,
	)
	if err != nil {
		return fmt.Errorf("failed to add class: %w", err)
	}
	return nil
}

func scanClass(row interface{ Scan(...any) error }) (models.TimetableClass, error) {
	var class models.TimetableClass
	var day int
	if err := row.Scan(&class.ID, &day, &class.StartTime, &class.EndTime,
		&class.ClassName, &class.Location, &class.Color, &class.RecurringUnitID); err != nil {
		return models.TimetableClass{}, err
	}
	class.Day = time.Weekday(day)
	return class, nil
}

func (s *SQLiteStore) GetClass(group, id string) (models.TimetableClass, error) {
	row := s.db.QueryRow(
		`SELECT id, day, start_time, end_time, class_name, location, color, recurring_unit_id
		 FROM classes WHERE class_group = ? AND id = ?`, group, id)
	class, err := scanClass(row)
	if err != nil {
		return models.TimetableClass{}, fmt.Errorf("class not found: %s", id)
	}
	return class, nil
}

func (s *SQLiteStore) GetAllClasses(group string) ([]models.TimetableClass, error) {
	rows, err := s.db.Query(
		`SELECT id, day, start_time, end_time, class_name, location, color, recurring_unit_id
		 FROM classes WHERE class_group = ? ORDER BY day, start_time, id`, group)
	if err != nil {
		return nil, fmt.Errorf("failed to query classes: %w", err)
	}
	defer rows.Close()

	var classes []models.TimetableClass
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

func (s *SQLiteStore) UpdateClass(group string, class models.TimetableClass) error {
	res, err := s.db.Exec(
		`UPDATE classes SET day = ?, start_time = ?, end_time = ?, class_name = ?, location = ?, color = ?, recurring_unit_id = ?
		 WHERE class_group = ? AND id = ?`,
		int(class.Day), class.StartTime, class.EndTime, class.ClassName,
		class.Location, class.Color, class.RecurringUnitID, group, class.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	return requireRow(res, "class", class.ID)
}

func (s *SQLiteStore) DeleteClass(group, id string) error {
	res, err := s.db.Exec("DELETE FROM classes WHERE class_group = ? AND id = ?", group, id)
	if err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	return requireRow(res, "class", id)
}

func (s *SQLiteStore) AddUnit(group string, unit models.Unit) error {
	lessonNumbers, err := json.Marshal(unit.LessonNumbers)
	if err != nil {
		return fmt.Errorf("failed to serialize lesson numbers: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO units (class_group, id, name, description, lesson_numbers, color, term, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		group, unit.ID, unit.Name, unit.Description, string(lessonNumbers),
		unit.Color, unit.Term,
		unit.CreatedAt.UTC().Format(time.RFC3339),
		unit.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add unit: %w", err)
	}
	return nil
}

func scanUnit(row interface{ Scan(...any) error }) (models.Unit, error) {
	var unit models.Unit
	var lessonNumbers, createdAt, updatedAt string
	if err := row.Scan(&unit.ID, &unit.Name, &unit.Description, &lessonNumbers,
		&unit.Color, &unit.Term, &createdAt, &updatedAt); err != nil {
		return models.Unit{}, err
	}
	if err := json.Unmarshal([]byte(lessonNumbers), &unit.LessonNumbers); err != nil {
		return models.Unit{}, fmt.Errorf("failed to parse lesson numbers: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		unit.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		unit.UpdatedAt = t
	}
	return unit, nil
}

func (s *SQLiteStore) GetUnit(group, id string) (models.Unit, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, lesson_numbers, color, term, created_at, updated_at
		 FROM units WHERE class_group = ? AND id = ?`, group, id)
	unit, err := scanUnit(row)
	if err != nil {
		return models.Unit{}, fmt.Errorf("unit not found: %s", id)
	}
	return unit, nil
}

func (s *SQLiteStore) GetAllUnits(group string) ([]models.Unit, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, lesson_numbers, color, term, created_at, updated_at
		 FROM units WHERE class_group = ? ORDER BY name, id`, group)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []models.Unit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

func (s *SQLiteStore) UpdateUnit(group string, unit models.Unit) error {
	lessonNumbers, err := json.Marshal(unit.LessonNumbers)
	if err != nil {
		return fmt.Errorf("failed to serialize lesson numbers: %w", err)
	}
	res, err := s.db.Exec(
		`UPDATE units SET name = ?, description = ?, lesson_numbers = ?, color = ?, term = ?, updated_at = ?
		 WHERE class_group = ? AND id = ?`,
		unit.Name, unit.Description, string(lessonNumbers), unit.Color, unit.Term,
		unit.UpdatedAt.UTC().Format(time.RFC3339), group, unit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update unit: %w", err)
	}
	return requireRow(res, "unit", unit.ID)
}

func (s *SQLiteStore) DeleteUnit(group, id string) error {
	res, err := s.db.Exec("DELETE FROM units WHERE class_group = ? AND id = ?", group, id)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	return requireRow(res, "unit", id)
}

func (s *SQLiteStore) AddLesson(group string, lesson models.Lesson) error {
	categoryOrder, err := json.Marshal(lesson.CategoryOrder)
	if err != nil {
		return fmt.Errorf("failed to serialize category order: %w", err)
	}
	grouped, err := json.Marshal(lesson.Grouped)
	if err != nil {
		return fmt.Errorf("failed to serialize grouped activities: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO lessons (class_group, number, title, total_time, category_order, grouped)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		group, lesson.Number, lesson.Title, lesson.TotalTime, string(categoryOrder), string(grouped),
	)
	if err != nil {
		return fmt.Errorf("failed to add lesson: %w", err)
	}
	return nil
}

func scanLesson(row interface{ Scan(...any) error }) (models.Lesson, error) {
	var lesson models.Lesson
	var categoryOrder, grouped string
	if err := row.Scan(&lesson.Number, &lesson.Title, &lesson.TotalTime, &categoryOrder, &grouped); err != nil {
		return models.Lesson{}, err
	}
	if err := json.Unmarshal([]byte(categoryOrder), &lesson.CategoryOrder); err != nil {
		return models.Lesson{}, fmt.Errorf("failed to parse category order: %w", err)
	}
	if err := json.Unmarshal([]byte(grouped), &lesson.Grouped); err != nil {
		return models.Lesson{}, fmt.Errorf("failed to parse grouped activities: %w", err)
	}
	return lesson, nil
}

func (s *SQLiteStore) GetLesson(group, number string) (models.Lesson, error) {
	row := s.db.QueryRow(
		`SELECT number, title, total_time, category_order, grouped
		 FROM lessons WHERE class_group = ? AND number = ?`, group, number)
	lesson, err := scanLesson(row)
	if err != nil {
		return models.Lesson{}, fmt.Errorf("lesson not found: %s", number)
	}
	return lesson, nil
}

func (s *SQLiteStore) GetAllLessons(group string) ([]models.Lesson, error) {
	rows, err := s.db.Query(
		`SELECT number, title, total_time, category_order, grouped
		 FROM lessons WHERE class_group = ? ORDER BY number`, group)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	return lessons, rows.Err()
}

func (s *SQLiteStore) DeleteLesson(group, number string) error {
	res, err := s.db.Exec("DELETE FROM lessons WHERE class_group = ? AND number = ?", group, number)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return requireRow(res, "lesson", number)
}

func (s *SQLiteStore) SavePlan(group string, plan models.LessonPlan) error {
	activities, err := json.Marshal(plan.Activities)
	if err != nil {
		return fmt.Errorf("failed to serialize activities: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO plans (class_group, id, date, week, class_name, activities, duration, notes, status, time, lesson_number, unit_id, unit_name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		group, plan.ID, plan.Date, plan.Week, plan.ClassName, string(activities),
		plan.Duration, plan.Notes, string(plan.Status), plan.Time,
		plan.LessonNumber, plan.UnitID, plan.UnitName,
		plan.CreatedAt.UTC().Format(time.RFC3339),
		plan.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

func scanPlan(row interface{ Scan(...any) error }) (models.LessonPlan, error) {
	var plan models.LessonPlan
	var activities, status, createdAt, updatedAt string
	if err := row.Scan(&plan.ID, &plan.Date, &plan.Week, &plan.ClassName, &activities,
		&plan.Duration, &plan.Notes, &status, &plan.Time,
		&plan.LessonNumber, &plan.UnitID, &plan.UnitName, &createdAt, &updatedAt); err != nil {
		return models.LessonPlan{}, err
	}
	if err := json.Unmarshal([]byte(activities), &plan.Activities); err != nil {
		return models.LessonPlan{}, fmt.Errorf("failed to parse activities: %w", err)
	}
	plan.Status = models.PlanStatus(status)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		plan.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		plan.UpdatedAt = t
	}
	return plan, nil
}

const planColumns = `id, date, week, class_name, activities, duration, notes, status, time, lesson_number, unit_id, unit_name, created_at, updated_at`

func (s *SQLiteStore) GetPlan(group, id string) (models.LessonPlan, error) {
	row := s.db.QueryRow(
		`SELECT `+planColumns+` FROM plans WHERE class_group = ? AND id = ?`, group, id)
	plan, err := scanPlan(row)
	if err != nil {
		return models.LessonPlan{}, fmt.Errorf("lesson plan not found: %s", id)
	}
	return plan, nil
}

func (s *SQLiteStore) GetPlansForDate(group, date string) ([]models.LessonPlan, error) {
	rows, err := s.db.Query(
		`SELECT `+planColumns+` FROM plans WHERE class_group = ? AND date = ? ORDER BY time, created_at, id`,
		group, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()
	return collectPlans(rows)
}

func (s *SQLiteStore) GetAllPlans(group string) ([]models.LessonPlan, error) {
	rows, err := s.db.Query(
		`SELECT `+planColumns+` FROM plans WHERE class_group = ? ORDER BY date, time, created_at, id`, group)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()
	return collectPlans(rows)
}

func collectPlans(rows *sql.Rows) ([]models.LessonPlan, error) {
	var plans []models.LessonPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (s *SQLiteStore) DeletePlan(group, id string) error {
	res, err := s.db.Exec("DELETE FROM plans WHERE class_group = ? AND id = ?", group, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return requireRow(res, "lesson plan", id)
}

func (s *SQLiteStore) GetHalfTerm(group string, id models.HalfTermID) (models.HalfTermAssignment, error) {
	var lessons string
	var isComplete bool
	err := s.db.QueryRow(
		"SELECT lessons, is_complete FROM half_terms WHERE class_group = ? AND id = ?",
		group, string(id),
	).Scan(&lessons, &isComplete)
	if err == sql.ErrNoRows {
		return models.HalfTermAssignment{ID: id, Lessons: []string{}}, nil
	}
	if err != nil {
		return models.HalfTermAssignment{}, fmt.Errorf("failed to get half-term %s: %w", id, err)
	}

	assignment := models.HalfTermAssignment{ID: id, IsComplete: isComplete}
	if err := json.Unmarshal([]byte(lessons), &assignment.Lessons); err != nil {
		return models.HalfTermAssignment{}, fmt.Errorf("failed to parse half-term lessons: %w", err)
	}
	return assignment, nil
}

func (s *SQLiteStore) SaveHalfTerm(group string, assignment models.HalfTermAssignment) error {
	lessons, err := json.Marshal(assignment.Lessons)
	if err != nil {
		return fmt.Errorf("failed to serialize half-term lessons: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO half_terms (class_group, id, lessons, is_complete) VALUES (?, ?, ?, ?)",
		group, string(assignment.ID), string(lessons), assignment.IsComplete,
	)
	if err != nil {
		return fmt.Errorf("failed to save half-term: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAllHalfTerms(group string) ([]models.HalfTermAssignment, error) {
	assignments := make([]models.HalfTermAssignment, 0, len(models.Catalogue()))
	for _, ht := range models.Catalogue() {
		a, err := s.GetHalfTerm(group, ht.ID)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s not found: %s", kind, id)
	}
	return nil
}
