package units

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/termhq/termplan/internal/cli"
	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/engine"
	"github.com/termhq/termplan/internal/models"
)

type UnitAddCmd struct {
	Name        string `arg:"" help:"Unit name."`
	Lessons     string `short:"l" help:"Comma-separated lesson numbers in teaching order." required:""`
	Description string `short:"d" help:"Unit description."`
	Term        string `short:"t" help:"Intended half-term (A1|A2|SP1|SP2|SM1|SM2)."`
	Color       string `help:"Display color."`
}

func (c *UnitAddCmd) Validate() error {
	if len(cli.SplitList(c.Lessons)) == 0 {
		return fmt.Errorf("at least one lesson number is required")
	}
	if c.Term != "" && !models.ValidHalfTermID(models.HalfTermID(c.Term)) {
		return fmt.Errorf("invalid half-term: %s", c.Term)
	}
	return nil
}

func (c *UnitAddCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	unit := models.Unit{
		ID:            uuid.New().String(),
		Name:          c.Name,
		Description:   c.Description,
		LessonNumbers: cli.SplitList(c.Lessons),
		Color:         c.Color,
		Term:          c.Term,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := unit.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddUnit(ctx.Group(), unit); err != nil {
		return fmt.Errorf("failed to add unit: %w", err)
	}

	fmt.Printf("✓ Added unit: %s (%d lessons)\n", unit.Name, len(unit.LessonNumbers))
	return nil
}

type UnitListCmd struct {
	ShowIDs bool `help:"Show unit IDs." name:"show-ids"`
}

func (c *UnitListCmd) Run(ctx *cli.Context) error {
	units, err := ctx.Store.GetAllUnits(ctx.Group())
	if err != nil {
		return fmt.Errorf("failed to get units: %w", err)
	}
	if len(units) == 0 {
		fmt.Println("No units found")
		return nil
	}

	fmt.Println("Units:")
	for _, unit := range units {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", unit.ID)
		}

		termStr := ""
		if unit.Term != "" {
			termStr = fmt.Sprintf(" [%s]", unit.Term)
		}

		fmt.Printf("  %s%s%s: %s\n", unit.Name, idStr, termStr, strings.Join(unit.LessonNumbers, ", "))
		if unit.Description != "" {
			fmt.Printf("      %s\n", unit.Description)
		}
	}
	return nil
}

type UnitAssignCmd struct {
	ID    string `arg:"" help:"Unit ID to place on the calendar."`
	Start string `short:"s" help:"Start date (YYYY-MM-DD)." required:""`
}

func (c *UnitAssignCmd) Validate() error {
	if !dateutil.ValidateDateFormat(c.Start) {
		return fmt.Errorf("invalid start date (expected YYYY-MM-DD): %s", c.Start)
	}
	return nil
}

func (c *UnitAssignCmd) Run(ctx *cli.Context) error {
	gesture := engine.Gesture{Kind: engine.GestureUnit, UnitID: c.ID}
	plans, err := ctx.Engine.Materialize(gesture, c.Start, engine.NoHour)
	if err != nil {
		return fmt.Errorf("failed to assign unit: %w", err)
	}
	if len(plans) == 0 {
		fmt.Println("Nothing scheduled: unit not found or it has no lessons.")
		return nil
	}

	fmt.Printf("✓ Scheduled %d lessons from %s to %s\n", len(plans), plans[0].Date, plans[len(plans)-1].Date)
	return nil
}

type UnitDeleteCmd struct {
	ID string `arg:"" help:"Unit ID to delete."`
}

func (c *UnitDeleteCmd) Run(ctx *cli.Context) error {
	unit, err := ctx.Store.GetUnit(ctx.Group(), c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteUnit(ctx.Group(), c.ID); err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	fmt.Printf("✓ Deleted unit: %s\n", unit.Name)
	return nil
}
