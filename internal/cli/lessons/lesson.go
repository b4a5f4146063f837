package lessons

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/termhq/termplan/internal/cli"
	"github.com/termhq/termplan/internal/models"
)

type LessonAddCmd struct {
	Number     string `arg:"" help:"Lesson number (e.g. 'L1')."`
	Title      string `short:"t" help:"Lesson title." required:""`
	Activities string `short:"a" help:"Comma-separated activity names."`
	Category   string `short:"c" help:"Category for the given activities." default:"Main"`
	Duration   string `short:"d" help:"Total lesson time (e.g. '50 mins')."`
}

func (c *LessonAddCmd) Run(ctx *cli.Context) error {
	lesson := models.Lesson{
		Number:    c.Number,
		Title:     c.Title,
		TotalTime: c.Duration,
		Grouped:   map[string][]models.Activity{},
	}

	names := cli.SplitList(c.Activities)
	if len(names) > 0 {
		lesson.CategoryOrder = []string{c.Category}
		for _, name := range names {
			lesson.Grouped[c.Category] = append(lesson.Grouped[c.Category], models.Activity{
				ID:       uuid.New().String(),
				Name:     name,
				Category: c.Category,
			})
		}
	}

	if err := ctx.Store.AddLesson(ctx.Group(), lesson); err != nil {
		return fmt.Errorf("failed to add lesson: %w", err)
	}

	fmt.Printf("✓ Added lesson %s: %s\n", lesson.Number, lesson.Title)
	return nil
}

type LessonListCmd struct{}

func (c *LessonListCmd) Run(ctx *cli.Context) error {
	lessons, err := ctx.Store.GetAllLessons(ctx.Group())
	if err != nil {
		return fmt.Errorf("failed to get lessons: %w", err)
	}
	if len(lessons) == 0 {
		fmt.Println("No lessons found")
		return nil
	}

	fmt.Println("Lesson library:")
	for _, lesson := range lessons {
		fmt.Printf("  %s: %s", lesson.Number, lesson.Title)
		if lesson.TotalTime != "" {
			fmt.Printf(" (%s)", lesson.TotalTime)
		}
		fmt.Println()
		for _, activity := range lesson.FlatActivities() {
			fmt.Printf("      - %s", activity.Name)
			if activity.Time != "" {
				fmt.Printf(" (%s)", activity.Time)
			}
			fmt.Println()
		}
	}
	return nil
}

type LessonDeleteCmd struct {
	Number string `arg:"" help:"Lesson number to delete."`
}

func (c *LessonDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteLesson(ctx.Group(), c.Number); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	fmt.Printf("✓ Deleted lesson: %s\n", c.Number)
	return nil
}
