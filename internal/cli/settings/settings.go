package settings

import (
	"fmt"

	"github.com/termhq/termplan/internal/cli"
	"github.com/termhq/termplan/internal/dateutil"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	fmt.Println("Settings:")
	fmt.Printf("  Active class group: %s\n", settings.ActiveGroup)
	if settings.YearStart != "" {
		fmt.Printf("  Academic year start: %s\n", settings.YearStart)
	}
	if settings.Timezone != "" {
		fmt.Printf("  Timezone: %s\n", settings.Timezone)
	}
	return nil
}

type SetCmd struct {
	Group     string `help:"Active class group."`
	YearStart string `help:"Academic year start date (YYYY-MM-DD)." name:"year-start"`
	Timezone  string `help:"IANA timezone name."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	changed := false
	if c.Group != "" {
		settings.ActiveGroup = c.Group
		changed = true
	}
	if c.YearStart != "" {
		if !dateutil.ValidateDateFormat(c.YearStart) {
			return fmt.Errorf("invalid year start date (expected YYYY-MM-DD): %s", c.YearStart)
		}
		settings.YearStart = c.YearStart
		changed = true
	}
	if c.Timezone != "" {
		settings.Timezone = c.Timezone
		changed = true
	}

	if !changed {
		fmt.Println("Nothing to change.")
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("✓ Settings updated")
	return nil
}
