package halfterms

import (
	"fmt"
	"strings"

	"github.com/termhq/termplan/internal/cli"
	"github.com/termhq/termplan/internal/models"
)

type ShowCmd struct {
	ID string `arg:"" optional:"" help:"Half-term to show (A1|A2|SP1|SP2|SM1|SM2). Defaults to all."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	registry := ctx.Engine.Registry()

	if c.ID != "" {
		assignment, err := registry.Get(models.HalfTermID(c.ID))
		if err != nil {
			return err
		}
		printAssignment(assignment)
		return nil
	}

	assignments, err := registry.All()
	if err != nil {
		return fmt.Errorf("failed to get half-terms: %w", err)
	}
	for _, assignment := range assignments {
		printAssignment(assignment)
	}
	return nil
}

func printAssignment(assignment models.HalfTermAssignment) {
	name := string(assignment.ID)
	for _, ht := range models.Catalogue() {
		if ht.ID == assignment.ID {
			name = fmt.Sprintf("%s (%s, %s)", ht.Name, ht.ID, ht.Months)
			break
		}
	}

	status := ""
	if assignment.IsComplete {
		status = " ✓ complete"
	}

	if len(assignment.Lessons) == 0 {
		fmt.Printf("%s: no lessons assigned%s\n", name, status)
		return
	}
	fmt.Printf("%s: %s%s\n", name, strings.Join(assignment.Lessons, ", "), status)
}

type ReorderCmd struct {
	ID   string `arg:"" help:"Half-term to reorder."`
	From int    `arg:"" help:"Current position of the lesson (0-based)."`
	To   int    `arg:"" help:"New position of the lesson (0-based)."`
}

func (c *ReorderCmd) Run(ctx *cli.Context) error {
	if err := ctx.Engine.Registry().Reorder(models.HalfTermID(c.ID), c.From, c.To); err != nil {
		return err
	}
	fmt.Printf("✓ Reordered lessons in %s\n", c.ID)
	return nil
}

type CompleteCmd struct {
	ID   string `arg:"" help:"Half-term to mark."`
	Undo bool   `help:"Clear the planning-complete flag instead."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	registry := ctx.Engine.Registry()
	assignment, err := registry.Get(models.HalfTermID(c.ID))
	if err != nil {
		return err
	}
	if err := registry.Assign(assignment.ID, assignment.Lessons, !c.Undo); err != nil {
		return err
	}
	if c.Undo {
		fmt.Printf("✓ %s marked incomplete\n", c.ID)
	} else {
		fmt.Printf("✓ %s marked complete\n", c.ID)
	}
	return nil
}

type RemoveCmd struct {
	ID     string `arg:"" help:"Half-term to modify."`
	Lesson string `arg:"" help:"Lesson number to remove."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Engine.Registry().RemoveLesson(models.HalfTermID(c.ID), c.Lesson); err != nil {
		return err
	}
	fmt.Printf("✓ Removed %s from %s\n", c.Lesson, c.ID)
	return nil
}
