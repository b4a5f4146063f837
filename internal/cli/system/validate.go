package system

import (
	"fmt"

	"github.com/termhq/termplan/internal/cli"
	"github.com/termhq/termplan/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	group := ctx.Group()
	validator := validation.New()

	classes, err := ctx.Store.GetAllClasses(group)
	if err != nil {
		return fmt.Errorf("failed to load classes: %w", err)
	}
	events, err := ctx.Store.GetAllEvents(group)
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}
	units, err := ctx.Store.GetAllUnits(group)
	if err != nil {
		return fmt.Errorf("failed to load units: %w", err)
	}
	lessons, err := ctx.Store.GetAllLessons(group)
	if err != nil {
		return fmt.Errorf("failed to load lessons: %w", err)
	}

	result := validation.ValidationResult{}
	result.Conflicts = append(result.Conflicts, validator.ValidateClasses(classes).Conflicts...)
	result.Conflicts = append(result.Conflicts, validator.ValidateEvents(events).Conflicts...)
	result.Conflicts = append(result.Conflicts, validator.ValidateUnits(units, lessons).Conflicts...)

	fmt.Println(result.FormatReport())
	return nil
}
