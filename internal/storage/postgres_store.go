package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/termhq/termplan/internal/constants"
	"github.com/termhq/termplan/internal/models"
)

// PostgresStore backs termplan with a shared PostgreSQL database, for
// department setups where several machines point at one planner store.
// The engine itself remains single-writer; the store does not arbitrate
// concurrent mutation.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

const postgresSchema = `
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
	is_complete BOOLEAN NOT NULL DEFAULT FALSE,
	PRIMARY KEY (class_group, id)
);
`

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

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

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}

func (s *PostgresStore) GetSettings() (Settings, error) {
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

func (s *PostgresStore) SaveSettings(settings Settings) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(
		`INSERT INTO settings (id, active_group, year_start, timezone) VALUES (1, $1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET active_group = $1, year_start = $2, timezone = $3`,
		settings.ActiveGroup, settings.YearStart, settings.Timezone,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *PostgresStore) AddEvent(group string, event models.CalendarEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO events (class_group, id, title, start_date, end_date, type, description, color, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (class_group, id) DO UPDATE SET
		   title = $3, start_date = $4, end_date = $5, type = $6, description = $7, color = $8`,
		group, event.ID, event.Title, event.StartDate, event.EndDate,
		string(event.Type), event.Description, event.Color,
		event.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetEvent(group, id string) (models.CalendarEvent, error) {
	row := s.db.QueryRow(
		`SELECT id, title, start_date, end_date, type, description, color, created_at
		 FROM events WHERE class_group = $1 AND id = $2`, group, id)
	event, err := scanEvent(row)
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("event not found: %s", id)
	}
	return event, nil
}

func (s *PostgresStore) GetAllEvents(group string) ([]models.CalendarEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, title, start_date, end_date, type, description, color, created_at
		 FROM events WHERE class_group = $1 ORDER BY created_at, id`, group)
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

func (s *PostgresStore) UpdateEvent(group string, event models.CalendarEvent) error {
	res, err := s.db.Exec(
		`UPDATE events SET title = $1, start_date = $2, end_date = $3, type = $4, description = $5, color = $6
		 WHERE class_group = $7 AND id = $8`,
		event.Title, event.StartDate, event.EndDate, string(event.Type),
		event.Description, event.Color, group, event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireRow(res, "event", event.ID)
}

func (s *PostgresStore) DeleteEvent(group, id string) error {
	res, err := s.db.Exec("DELETE FROM events WHERE class_group = $1 AND id = $2", group, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireRow(res, "event", id)
}

func (s *PostgresStore) AddClass(group string, class models.TimetableClass) error {
	_, err := s.db.Exec(
		`INSERT INTO classes (class_group, id, day, start_time, end_time, class_name, location, color, recurring_unit_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (class_group, id) DO UPDATE SET
		   day = $3, start_time = $4, end_time = $5, class_name = $6, location = $7, color = $8, recurring_unit_id = $9`,
		group, class.ID, int(class.Day), class.StartTime, class.EndTime,
		class.ClassName, class.Location, class.Color, class.RecurringUnitID,
	)
	if err != nil {
		return fmt.Errorf("failed to add class: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetClass(group, id string) (models.TimetableClass, error) {
	row := s.db.QueryRow(
		`SELECT id, day, start_time, end_time, class_name, location, color, recurring_unit_id
		 FROM classes WHERE class_group = $1 AND id = $2`, group, id)
	class, err := scanClass(row)
	if err != nil {
		return models.TimetableClass{}, fmt.Errorf("class not found: %s", id)
	}
	return class, nil
}

func (s *PostgresStore) GetAllClasses(group string) ([]models.TimetableClass, error) {
	rows, err := s.db.Query(
		`SELECT id, day, start_time, end_time, class_name, location, color, recurring_unit_id
		 FROM classes WHERE class_group = $1 ORDER BY day, start_time, id`, group)
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

func (s *PostgresStore) UpdateClass(group string, class models.TimetableClass) error {
	res, err := s.db.Exec(
		`UPDATE classes SET day = $1, start_time = $2, end_time = $3, class_name = $4, location = $5, color = $6, recurring_unit_id = $7
		 WHERE class_group = $8 AND id = $9`,
		int(class.Day), class.StartTime, class.EndTime, class.ClassName,
		class.Location, class.Color, class.RecurringUnitID, group, class.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	return requireRow(res, "class", class.ID)
}

func (s *PostgresStore) DeleteClass(group, id string) error {
	res, err := s.db.Exec("DELETE FROM classes WHERE class_group = $1 AND id = $2", group, id)
	if err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	return requireRow(res, "class", id)
}

func (s *PostgresStore) AddUnit(group string, unit models.Unit) error {
	lessonNumbers, err := json.Marshal(unit.LessonNumbers)
	if err != nil {
		return fmt.Errorf("failed to serialize lesson numbers: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO units (class_group, id, name, description, lesson_numbers, color, term, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (class_group, id) DO UPDATE SET
		   name = $3, description = $4, lesson_numbers = $5, color = $6, term = $7, updated_at = $9`,
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

func (s *PostgresStore) GetUnit(group, id string) (models.Unit, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, lesson_numbers, color, term, created_at, updated_at
		 FROM units WHERE class_group = $1 AND id = $2`, group, id)
	unit, err := scanUnit(row)
	if err != nil {
		return models.Unit{}, fmt.Errorf("unit not found: %s", id)
	}
	return unit, nil
}

func (s *PostgresStore) GetAllUnits(group string) ([]models.Unit, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, lesson_numbers, color, term, created_at, updated_at
		 FROM units WHERE class_group = $1 ORDER BY name, id`, group)
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

func (s *PostgresStore) UpdateUnit(group string, unit models.Unit) error {
	lessonNumbers, err := json.Marshal(unit.LessonNumbers)
	if err != nil {
		return fmt.Errorf("failed to serialize lesson numbers: %w", err)
	}
	res, err := s.db.Exec(
		`UPDATE units SET name = $1, description = $2, lesson_numbers = $3, color = $4, term = $5, updated_at = $6
		 WHERE class_group = $7 AND id = $8`,
		unit.Name, unit.Description, string(lessonNumbers), unit.Color, unit.Term,
		unit.UpdatedAt.UTC().Format(time.RFC3339), group, unit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update unit: %w", err)
	}
	return requireRow(res, "unit", unit.ID)
}

func (s *PostgresStore) DeleteUnit(group, id string) error {
	res, err := s.db.Exec("DELETE FROM units WHERE class_group = $1 AND id = $2", group, id)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	return requireRow(res, "unit", id)
}

func (s *PostgresStore) AddLesson(group string, lesson models.Lesson) error {
	categoryOrder, err := json.Marshal(lesson.CategoryOrder)
	if err != nil {
		return fmt.Errorf("failed to serialize category order: %w", err)
	}
	grouped, err := json.Marshal(lesson.Grouped)
	if err != nil {
		return fmt.Errorf("failed to serialize grouped activities: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO lessons (class_group, number, title, total_time, category_order, grouped)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (class_group, number) DO UPDATE SET
		   title = $3, total_time = $4, category_order = $5, grouped = $6`,
		group, lesson.Number, lesson.Title, lesson.TotalTime, string(categoryOrder), string(grouped),
	)
	if err != nil {
		return fmt.Errorf("failed to add lesson: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetLesson(group, number string) (models.Lesson, error) {
	row := s.db.QueryRow(
		`SELECT number, title, total_time, category_order, grouped
		 FROM lessons WHERE class_group = $1 AND number = $2`, group, number)
	lesson, err := scanLesson(row)
	if err != nil {
		return models.Lesson{}, fmt.Errorf("lesson not found: %s", number)
	}
	return lesson, nil
}

func (s *PostgresStore) GetAllLessons(group string) ([]models.Lesson, error) {
	rows, err := s.db.Query(
		`SELECT number, title, total_time, category_order, grouped
		 FROM lessons WHERE class_group = $1 ORDER BY number`, group)
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

func (s *PostgresStore) DeleteLesson(group, number string) error {
	res, err := s.db.Exec("DELETE FROM lessons WHERE class_group = $1 AND number = $2", group, number)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return requireRow(res, "lesson", number)
}

func (s *PostgresStore) SavePlan(group string, plan models.LessonPlan) error {
	activities, err := json.Marshal(plan.Activities)
	if err != nil {
		return fmt.Errorf("failed to serialize activities: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO plans (class_group, id, date, week, class_name, activities, duration, notes, status, time, lesson_number, unit_id, unit_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT (class_group, id) DO UPDATE SET
		   date = $3, week = $4, class_name = $5, activities = $6, duration = $7, notes = $8,
		   status = $9, time = $10, lesson_number = $11, unit_id = $12, unit_name = $13, updated_at = $15`,
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

func (s *PostgresStore) GetPlan(group, id string) (models.LessonPlan, error) {
	row := s.db.QueryRow(
		`SELECT `+planColumns+` FROM plans WHERE class_group = $1 AND id = $2`, group, id)
	plan, err := scanPlan(row)
	if err != nil {
		return models.LessonPlan{}, fmt.Errorf("lesson plan not found: %s", id)
	}
	return plan, nil
}

func (s *PostgresStore) GetPlansForDate(group, date string) ([]models.LessonPlan, error) {
	rows, err := s.db.Query(
		`SELECT `+planColumns+` FROM plans WHERE class_group = $1 AND date = $2 ORDER BY time, created_at, id`,
		group, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()
	return collectPlans(rows)
}

func (s *PostgresStore) GetAllPlans(group string) ([]models.LessonPlan, error) {
	rows, err := s.db.Query(
		`SELECT `+planColumns+` FROM plans WHERE class_group = $1 ORDER BY date, time, created_at, id`, group)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()
	return collectPlans(rows)
}

func (s *PostgresStore) DeletePlan(group, id string) error {
	res, err := s.db.Exec("DELETE FROM plans WHERE class_group = $1 AND id = $2", group, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return requireRow(res, "lesson plan", id)
}

func (s *PostgresStore) GetHalfTerm(group string, id models.HalfTermID) (models.HalfTermAssignment, error) {
	var lessons string
	var isComplete bool
	err := s.db.QueryRow(
		"SELECT lessons, is_complete FROM half_terms WHERE class_group = $1 AND id = $2",
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

func (s *PostgresStore) SaveHalfTerm(group string, assignment models.HalfTermAssignment) error {
	lessons, err := json.Marshal(assignment.Lessons)
	if err != nil {
		return fmt.Errorf("failed to serialize half-term lessons: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO half_terms (class_group, id, lessons, is_complete) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (class_group, id) DO UPDATE SET lessons = $3, is_complete = $4`,
		group, string(assignment.ID), string(lessons), assignment.IsComplete,
	)
	if err != nil {
		return fmt.Errorf("failed to save half-term: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAllHalfTerms(group string) ([]models.HalfTermAssignment, error) {
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
