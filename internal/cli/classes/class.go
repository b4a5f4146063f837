package classes

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/termhq/termplan/internal/cli"
	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/models"
)

type ClassAddCmd struct {
	Name     string `arg:"" help:"Class name (e.g. '7B Science')."`
	Day      string `short:"d" help:"Weekday (e.g. monday)." required:""`
	Start    string `short:"s" help:"Start time (HH:MM)." required:""`
	End      string `short:"e" help:"End time (HH:MM)." required:""`
	Location string `short:"l" help:"Room or location."`
	Color    string `help:"Display color."`
	Unit     string `short:"u" help:"Unit ID this slot teaches week by week."`
}

func (c *ClassAddCmd) Validate() error {
	if !dateutil.ValidateTimeFormat(c.Start) {
		return fmt.Errorf("invalid start time (expected HH:MM): %s", c.Start)
	}
	if !dateutil.ValidateTimeFormat(c.End) {
		return fmt.Errorf("invalid end time (expected HH:MM): %s", c.End)
	}
	if _, err := cli.ParseWeekday(c.Day); err != nil {
		return err
	}
	return nil
}

func (c *ClassAddCmd) Run(ctx *cli.Context) error {
	day, err := cli.ParseWeekday(c.Day)
	if err != nil {
		return err
	}

	if c.Unit != "" {
		if _, err := ctx.Store.GetUnit(ctx.Group(), c.Unit); err != nil {
			return fmt.Errorf("unknown unit: %s", c.Unit)
		}
	}

	class := models.TimetableClass{
		ID:              uuid.New().String(),
		Day:             day,
		StartTime:       c.Start,
		EndTime:         c.End,
		ClassName:       c.Name,
		Location:        c.Location,
		Color:           c.Color,
		RecurringUnitID: c.Unit,
	}
	if err := class.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddClass(ctx.Group(), class); err != nil {
		return fmt.Errorf("failed to add class: %w", err)
	}

	fmt.Printf("✓ Added class: %s on %s %s-%s\n", class.ClassName, day, class.StartTime, class.EndTime)
	return nil
}

type ClassListCmd struct {
	ShowIDs bool `help:"Show class IDs." name:"show-ids"`
}

func (c *ClassListCmd) Run(ctx *cli.Context) error {
	classes, err := ctx.Store.GetAllClasses(ctx.Group())
	if err != nil {
		return fmt.Errorf("failed to get classes: %w", err)
	}
	if len(classes) == 0 {
		fmt.Println("No classes found")
		return nil
	}

	fmt.Println("Timetable:")
	for _, class := range classes {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", class.ID)
		}

		fmt.Printf("  %s %s-%s: %s%s\n", class.Day, class.StartTime, class.EndTime, class.ClassName, idStr)
		if class.Location != "" {
			fmt.Printf("      Location: %s\n", class.Location)
		}
		if class.RecurringUnitID != "" {
			fmt.Printf("      Unit: %s\n", class.RecurringUnitID)
		}
	}
	return nil
}

type ClassDeleteCmd struct {
	ID string `arg:"" help:"Class ID to delete."`
}

func (c *ClassDeleteCmd) Run(ctx *cli.Context) error {
	class, err := ctx.Store.GetClass(ctx.Group(), c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteClass(ctx.Group(), c.ID); err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	fmt.Printf("✓ Deleted class: %s\n", class.ClassName)
	return nil
}
