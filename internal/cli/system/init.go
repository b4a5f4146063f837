package system

import (
	"fmt"
	"os"

	"github.com/termhq/termplan/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing storage before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		storePath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(storePath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(storePath); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			fmt.Printf("Deleted existing storage at: %s\n", storePath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized termplan storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
