package plans

import (
	"fmt"
	"time"

	"github.com/termhq/termplan/internal/cli"
	"github.com/termhq/termplan/internal/constants"
	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/models"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD). Defaults to today."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" {
		date = time.Now().Format(constants.DateFormat)
	}
	if !dateutil.ValidateDateFormat(date) {
		return fmt.Errorf("invalid date (expected YYYY-MM-DD): %s", date)
	}

	fmt.Printf("%s (week %d)\n", date, ctx.Engine.WeekNumber(date))

	for _, event := range ctx.Engine.EventsForDate(date) {
		fmt.Printf("  [%s] %s\n", event.Type, event.Title)
	}

	classes := ctx.Engine.ClassesForDay(date)
	if len(classes) > 0 {
		fmt.Println("Timetable:")
		for _, class := range classes {
			fmt.Printf("  %s-%s: %s\n", class.StartTime, class.EndTime, class.ClassName)
		}
	}

	plans := ctx.Engine.LessonPlansForDate(date)
	if len(plans) == 0 {
		fmt.Println("No plans for this day")
		return nil
	}

	fmt.Println("Plans:")
	for _, plan := range plans {
		timeStr := plan.Time
		if timeStr == "" {
			timeStr = "--:--"
		}
		label := plan.LessonNumber
		if label == "" && len(plan.Activities) > 0 {
			label = plan.Activities[0].Name
		}
		fmt.Printf("  %s  %s [%s]", timeStr, label, plan.Status)
		if plan.UnitName != "" {
			fmt.Printf(" (%s)", plan.UnitName)
		}
		fmt.Println()
	}
	return nil
}

type PlanCompleteCmd struct {
	ID string `arg:"" help:"Plan ID to mark completed."`
}

func (c *PlanCompleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Engine.SetPlanStatus(c.ID, models.PlanStatusCompleted); err != nil {
		return err
	}
	fmt.Printf("✓ Completed plan: %s\n", c.ID)
	return nil
}

type PlanCancelCmd struct {
	ID string `arg:"" help:"Plan ID to cancel."`
}

func (c *PlanCancelCmd) Run(ctx *cli.Context) error {
	if err := ctx.Engine.SetPlanStatus(c.ID, models.PlanStatusCancelled); err != nil {
		return err
	}
	fmt.Printf("✓ Cancelled plan: %s\n", c.ID)
	return nil
}

type PlanDeleteCmd struct {
	ID string `arg:"" help:"Plan ID to delete."`
}

func (c *PlanDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Engine.DeletePlan(c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted plan: %s\n", c.ID)
	return nil
}

type PlanListCmd struct {
	ShowIDs bool `help:"Show plan IDs." name:"show-ids"`
}

func (c *PlanListCmd) Run(ctx *cli.Context) error {
	plans, err := ctx.Store.GetAllPlans(ctx.Group())
	if err != nil {
		return fmt.Errorf("failed to get plans: %w", err)
	}
	if len(plans) == 0 {
		fmt.Println("No plans found")
		return nil
	}

	fmt.Println("Plans:")
	for _, plan := range plans {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", plan.ID)
		}

		label := plan.LessonNumber
		if label == "" && len(plan.Activities) > 0 {
			label = plan.Activities[0].Name
		}
		fmt.Printf("  %s  %s [%s]%s\n", plan.Date, label, plan.Status, idStr)
	}
	return nil
}
