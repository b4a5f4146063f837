package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/termhq/termplan/internal/constants"
	"github.com/termhq/termplan/internal/models"
)

type groupData struct {
	Events    map[string]models.CalendarEvent                 `json:"events"`
	Classes   map[string]models.TimetableClass                `json:"classes"`
	Units     map[string]models.Unit                          `json:"units"`
	Lessons   map[string]models.Lesson                        `json:"lessons"`
	Plans     map[string]models.LessonPlan                    `json:"plans"`
	HalfTerms map[models.HalfTermID]models.HalfTermAssignment `json:"half_terms"`
}

func newGroupData() *groupData {
	return &groupData{
		Events:    make(map[string]models.CalendarEvent),
		Classes:   make(map[string]models.TimetableClass),
		Units:     make(map[string]models.Unit),
		Lessons:   make(map[string]models.Lesson),
		Plans:     make(map[string]models.LessonPlan),
		HalfTerms: make(map[models.HalfTermID]models.HalfTermAssignment),
	}
}

type Store struct {
	Version  int                   `json:"version"`
	Settings Settings              `json:"settings"`
	Groups   map[string]*groupData `json:"groups"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Settings: Settings{
			ActiveGroup: constants.DefaultClassGroup,
		},
		Groups: make(map[string]*groupData),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'termplan init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Groups == nil {
		s.store.Groups = make(map[string]*groupData)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

// group returns the collections for a class group, creating them on
// first use.
func (s *JSONStore) group(name string) *groupData {
	g, ok := s.store.Groups[name]
	if !ok {
		g = newGroupData()
		s.store.Groups[name] = g
	}
	return g
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.store == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddEvent(group string, event models.CalendarEvent) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.group(group).Events[event.ID] = event
	return s.save()
}

func (s *JSONStore) GetEvent(group, id string) (models.CalendarEvent, error) {
	if s.store == nil {
		return models.CalendarEvent{}, fmt.Errorf("storage not loaded")
	}
	event, ok := s.group(group).Events[id]
	if !ok {
		return models.CalendarEvent{}, fmt.Errorf("event not found: %s", id)
	}
	return event, nil
}

func (s *JSONStore) GetAllEvents(group string) ([]models.CalendarEvent, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	events := make([]models.CalendarEvent, 0, len(g.Events))
	for _, event := range g.Events {
		events = append(events, event)
	}
	// Insertion order matters to the overlay resolver's tie-breaking.
	sort.Slice(events, func(i, j int) bool {
		if !events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].CreatedAt.Before(events[j].CreatedAt)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

func (s *JSONStore) UpdateEvent(group string, event models.CalendarEvent) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	if _, ok := g.Events[event.ID]; !ok {
		return fmt.Errorf("event not found: %s", event.ID)
	}
	g.Events[event.ID] = event
	return s.save()
}

func (s *JSONStore) DeleteEvent(group, id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	if _, ok := g.Events[id]; !ok {
		return fmt.Errorf("event not found: %s", id)
	}
	delete(g.Events, id)
	return s.save()
}

func (s *JSONStore) AddClass(group string, class models.TimetableClass) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.group(group).Classes[class.ID] = class
	return s.save()
}

func (s *JSONStore) GetClass(group, id string) (models.TimetableClass, error) {
	if s.store == nil {
		return models.TimetableClass{}, fmt.Errorf("storage not loaded")
	}
	class, ok := s.group(group).Classes[id]
	if !ok {
		return models.TimetableClass{}, fmt.Errorf("class not found: %s", id)
	}
	return class, nil
}

func (s *JSONStore) GetAllClasses(group string) ([]models.TimetableClass, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	classes := make([]models.TimetableClass, 0, len(g.Classes))
	for _, class := range g.Classes {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool {
		if classes[i].Day != classes[j].Day {
			return classes[i].Day < classes[j].Day
		}
		if classes[i].StartTime != classes[j].StartTime {
			return classes[i].StartTime < classes[j].StartTime
		}
		return classes[i].ID < classes[j].ID
	})
	return classes, nil
}

func (s *JSONStore) UpdateClass(group string, class models.TimetableClass) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	if _, ok := g.Classes[class.ID]; !ok {
		return fmt.Errorf("class not found: %s", class.ID)
	}
	g.Classes[class.ID] = class
	return s.save()
}

func (s *JSONStore) DeleteClass(group, id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	if _, ok := g.Classes[id]; !ok {
		return fmt.Errorf("class not found: %s", id)
	}
	delete(g.Classes, id)
	return s.save()
}

func (s *JSONStore) AddUnit(group string, unit models.Unit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.group(group).Units[unit.ID] = unit
	return s.save()
}

func (s *JSONStore) GetUnit(group, id string) (models.Unit, error) {
	if s.store == nil {
		return models.Unit{}, fmt.Errorf("storage not loaded")
	}
	unit, ok := s.group(group).Units[id]
	if !ok {
		return models.Unit{}, fmt.Errorf("unit not found: %s", id)
	}
	return unit, nil
}

func (s *JSONStore) GetAllUnits(group string) ([]models.Unit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	units := make([]models.Unit, 0, len(g.Units))
	for _, unit := range g.Units {
		units = append(units, unit)
	}
	sort.Slice(units, func(i, j int) bool {
		if units[i].Name != units[j].Name {
			return units[i].Name < units[j].Name
		}
		return units[i].ID < units[j].ID
	})
	return units, nil
}

func (s *JSONStore) UpdateUnit(group string, unit models.Unit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	if _, ok := g.Units[unit.ID]; !ok {
		return fmt.Errorf("unit not found: %s", unit.ID)
	}
	g.Units[unit.ID] = unit
	return s.save()
}

func (s *JSONStore) DeleteUnit(group, id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	if _, ok := g.Units[id]; !ok {
		return fmt.Errorf("unit not found: %s", id)
	}
	delete(g.Units, id)
	return s.save()
}

func (s *JSONStore) AddLesson(group string, lesson models.Lesson) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.group(group).Lessons[lesson.Number] = lesson
	return s.save()
}

func (s *JSONStore) GetLesson(group, number string) (models.Lesson, error) {
	if s.store == nil {
		return models.Lesson{}, fmt.Errorf("storage not loaded")
	}
	lesson, ok := s.group(group).Lessons[number]
	if !ok {
		return models.Lesson{}, fmt.Errorf("lesson not found: %s", number)
	}
	return lesson, nil
}

func (s *JSONStore) GetAllLessons(group string) ([]models.Lesson, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	lessons := make([]models.Lesson, 0, len(g.Lessons))
	for _, lesson := range g.Lessons {
		lessons = append(lessons, lesson)
	}
	sort.Slice(lessons, func(i, j int) bool {
		return lessons[i].Number < lessons[j].Number
	})
	return lessons, nil
}

func (s *JSONStore) DeleteLesson(group, number string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	if _, ok := g.Lessons[number]; !ok {
		return fmt.Errorf("lesson not found: %s", number)
	}
	delete(g.Lessons, number)
	return s.save()
}

func (s *JSONStore) SavePlan(group string, plan models.LessonPlan) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.group(group).Plans[plan.ID] = plan
	return s.save()
}

func (s *JSONStore) GetPlan(group, id string) (models.LessonPlan, error) {
	if s.store == nil {
		return models.LessonPlan{}, fmt.Errorf("storage not loaded")
	}
	plan, ok := s.group(group).Plans[id]
	if !ok {
		return models.LessonPlan{}, fmt.Errorf("lesson plan not found: %s", id)
	}
	return plan, nil
}

func (s *JSONStore) GetPlansForDate(group, date string) ([]models.LessonPlan, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	plans := make([]models.LessonPlan, 0)
	for _, plan := range g.Plans {
		if plan.Date == date {
			plans = append(plans, plan)
		}
	}
	sortPlans(plans)
	return plans, nil
}

func (s *JSONStore) GetAllPlans(group string) ([]models.LessonPlan, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	plans := make([]models.LessonPlan, 0, len(g.Plans))
	for _, plan := range g.Plans {
		plans = append(plans, plan)
	}
	sortPlans(plans)
	return plans, nil
}

func (s *JSONStore) DeletePlan(group, id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	if _, ok := g.Plans[id]; !ok {
		return fmt.Errorf("lesson plan not found: %s", id)
	}
	delete(g.Plans, id)
	return s.save()
}

func (s *JSONStore) GetHalfTerm(group string, id models.HalfTermID) (models.HalfTermAssignment, error) {
	if s.store == nil {
		return models.HalfTermAssignment{}, fmt.Errorf("storage not loaded")
	}
	assignment, ok := s.group(group).HalfTerms[id]
	if !ok {
		// No stored state yet: an empty assignment, not an error.
		return models.HalfTermAssignment{ID: id, Lessons: []string{}}, nil
	}
	return assignment, nil
}

func (s *JSONStore) SaveHalfTerm(group string, assignment models.HalfTermAssignment) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.group(group).HalfTerms[assignment.ID] = assignment
	return s.save()
}

func (s *JSONStore) GetAllHalfTerms(group string) ([]models.HalfTermAssignment, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	g := s.group(group)
	assignments := make([]models.HalfTermAssignment, 0, len(models.Catalogue()))
	for _, ht := range models.Catalogue() {
		if a, ok := g.HalfTerms[ht.ID]; ok {
			assignments = append(assignments, a)
		} else {
			assignments = append(assignments, models.HalfTermAssignment{ID: ht.ID, Lessons: []string{}})
		}
	}
	return assignments, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func sortPlans(plans []models.LessonPlan) {
	sort.Slice(plans, func(i, j int) bool {
		if plans[i].Date != plans[j].Date {
			return plans[i].Date < plans[j].Date
		}
		if plans[i].Time != plans[j].Time {
			return plans[i].Time < plans[j].Time
		}
		if !plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].CreatedAt.Before(plans[j].CreatedAt)
		}
		return plans[i].ID < plans[j].ID
	})
}
