// Package library is the scheduling engine's window onto the content
// library. The engine never mutates content; it only resolves lesson
// numbers and unit ids, and a missing entry is an ordinary outcome, not
// an error (stale references must degrade gracefully).
package library

import (
	"github.com/termhq/termplan/internal/models"
	"github.com/termhq/termplan/internal/storage"
)

type Provider interface {
	// LessonByNumber resolves a lesson number. ok is false when the
	// library has no such lesson.
	LessonByNumber(number string) (models.Lesson, bool)

	// UnitByID resolves a unit id. ok is false when the library has no
	// such unit.
	UnitByID(id string) (models.Unit, bool)
}

// StoreLibrary serves library lookups from the persistence layer,
// scoped to one class group.
type StoreLibrary struct {
	store storage.Provider
	group string
}

func NewStoreLibrary(store storage.Provider, group string) *StoreLibrary {
	return &StoreLibrary{
		store: store,
		group: group,
	}
}

func (l *StoreLibrary) LessonByNumber(number string) (models.Lesson, bool) {
	lesson, err := l.store.GetLesson(l.group, number)
	if err != nil {
		return models.Lesson{}, false
	}
	return lesson, true
}

func (l *StoreLibrary) UnitByID(id string) (models.Unit, bool) {
	unit, err := l.store.GetUnit(l.group, id)
	if err != nil {
		return models.Unit{}, false
	}
	return unit, true
}
