package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/termhq/termplan/internal/cli"
	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/models"
)

type EventAddCmd struct {
	Title       string `arg:"" help:"Event title."`
	Start       string `short:"s" help:"Start date (YYYY-MM-DD)." required:""`
	End         string `short:"e" help:"End date (YYYY-MM-DD). Defaults to the start date."`
	Type        string `short:"t" help:"Event type (general|holiday|inset)." default:"general"`
	Description string `short:"d" help:"Event description."`
	Color       string `help:"Display color."`
}

func (c *EventAddCmd) Validate() error {
	if !dateutil.ValidateDateFormat(c.Start) {
		return fmt.Errorf("invalid start date (expected YYYY-MM-DD): %s", c.Start)
	}
	if c.End != "" && !dateutil.ValidateDateFormat(c.End) {
		return fmt.Errorf("invalid end date (expected YYYY-MM-DD): %s", c.End)
	}
	switch models.EventType(c.Type) {
	case models.EventGeneral, models.EventHoliday, models.EventInset:
	default:
		return fmt.Errorf("invalid event type: %s", c.Type)
	}
	return nil
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	end := c.End
	if end == "" {
		end = c.Start
	}

	event := models.CalendarEvent{
		ID:          uuid.New().String(),
		Title:       c.Title,
		StartDate:   c.Start,
		EndDate:     end,
		Type:        models.EventType(c.Type),
		Description: c.Description,
		Color:       c.Color,
		CreatedAt:   time.Now(),
	}
	if err := event.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddEvent(ctx.Group(), event); err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}

	fmt.Printf("✓ Added %s event: %s (%s to %s)\n", event.Type, event.Title, event.StartDate, event.EndDate)
	return nil
}

type EventListCmd struct {
	Type    string `short:"t" help:"Filter by event type (general|holiday|inset)."`
	ShowIDs bool   `help:"Show event IDs." name:"show-ids"`
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	events, err := ctx.Store.GetAllEvents(ctx.Group())
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	if len(events) == 0 {
		fmt.Println("No events found")
		return nil
	}

	fmt.Println("Events:")
	for _, event := range events {
		if c.Type != "" && string(event.Type) != c.Type {
			continue
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", event.ID)
		}

		fmt.Printf("  [%s] %s%s: %s to %s\n", event.Type, event.Title, idStr, event.StartDate, event.EndDate)
		if event.Description != "" {
			fmt.Printf("      %s\n", event.Description)
		}
	}
	return nil
}

type EventDeleteCmd struct {
	ID string `arg:"" help:"Event ID to delete."`
}

func (c *EventDeleteCmd) Run(ctx *cli.Context) error {
	event, err := ctx.Store.GetEvent(ctx.Group(), c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteEvent(ctx.Group(), c.ID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	fmt.Printf("✓ Deleted event: %s\n", event.Title)
	return nil
}
