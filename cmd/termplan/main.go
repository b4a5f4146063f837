package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/termhq/termplan/internal/cli"
	"github.com/termhq/termplan/internal/cli/backups"
	"github.com/termhq/termplan/internal/cli/classes"
	"github.com/termhq/termplan/internal/cli/events"
	"github.com/termhq/termplan/internal/cli/halfterms"
	"github.com/termhq/termplan/internal/cli/lessons"
	"github.com/termhq/termplan/internal/cli/plans"
	"github.com/termhq/termplan/internal/cli/settings"
	"github.com/termhq/termplan/internal/cli/system"
	"github.com/termhq/termplan/internal/cli/units"
	"github.com/termhq/termplan/internal/constants"
	"github.com/termhq/termplan/internal/engine"
	apperrors "github.com/termhq/termplan/internal/errors"
	"github.com/termhq/termplan/internal/logger"
	"github.com/termhq/termplan/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path (.db or .json) or PostgreSQL connection string." type:"string" default:"~/.config/termplan/termplan.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd     `cmd:"" help:"Initialize termplan storage."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive calendar." default:"1"`
	Validate system.ValidateCmd `cmd:"" help:"Check the timetable, events and units for conflicts."`
	Day      plans.DayCmd       `cmd:"" help:"Show everything scheduled on a day."`
	Event    struct {
		Add    events.EventAddCmd    `cmd:"" help:"Add a calendar event."`
		List   events.EventListCmd   `cmd:"" help:"List calendar events."`
		Delete events.EventDeleteCmd `cmd:"" help:"Delete a calendar event."`
	} `cmd:"" help:"Manage holidays, inset days and events."`
	Class struct {
		Add    classes.ClassAddCmd    `cmd:"" help:"Add a timetable class."`
		List   classes.ClassListCmd   `cmd:"" help:"List the weekly timetable."`
		Delete classes.ClassDeleteCmd `cmd:"" help:"Delete a timetable class."`
	} `cmd:"" help:"Manage the weekly timetable."`
	Unit struct {
		Add    units.UnitAddCmd    `cmd:"" help:"Add a curriculum unit."`
		List   units.UnitListCmd   `cmd:"" help:"List curriculum units."`
		Assign units.UnitAssignCmd `cmd:"" help:"Place a unit's lessons on the calendar."`
		Delete units.UnitDeleteCmd `cmd:"" help:"Delete a curriculum unit."`
	} `cmd:"" help:"Manage curriculum units."`
	Lesson struct {
		Add    lessons.LessonAddCmd    `cmd:"" help:"Add a lesson to the library."`
		List   lessons.LessonListCmd   `cmd:"" help:"List the lesson library."`
		Delete lessons.LessonDeleteCmd `cmd:"" help:"Delete a lesson from the library."`
	} `cmd:"" help:"Manage the lesson library."`
	Plan struct {
		List     plans.PlanListCmd     `cmd:"" help:"List all lesson plans."`
		Complete plans.PlanCompleteCmd `cmd:"" help:"Mark a plan completed."`
		Cancel   plans.PlanCancelCmd   `cmd:"" help:"Cancel a plan."`
		Delete   plans.PlanDeleteCmd   `cmd:"" help:"Delete a plan."`
	} `cmd:"" help:"Manage lesson plans."`
	Halfterm struct {
		Show     halfterms.ShowCmd     `cmd:"" help:"Show half-term lesson assignments." default:"1"`
		Reorder  halfterms.ReorderCmd  `cmd:"" help:"Reorder lessons within a half-term."`
		Complete halfterms.CompleteCmd `cmd:"" help:"Mark a half-term's planning complete."`
		Remove   halfterms.RemoveCmd   `cmd:"" help:"Remove a lesson from a half-term."`
	} `cmd:"" help:"Manage half-term curriculum assignments."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Settings struct {
		Show settings.ShowCmd `cmd:"" help:"Show current settings." default:"1"`
		Set  settings.SetCmd  `cmd:"" help:"Change settings."`
	} `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Curriculum and calendar planner for teachers"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	store := storage.NewStore(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(store.GetConfigPath()),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Every command except init expects the store to exist already.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	group := constants.DefaultClassGroup
	if s, err := store.GetSettings(); err == nil && s.ActiveGroup != "" {
		group = s.ActiveGroup
	}

	appCtx := &cli.Context{
		Store:  store,
		Engine: engine.New(store, group),
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
