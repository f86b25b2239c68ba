package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/parrot/internal/data/stores"
)

type InitCmd struct {
	flags *Flags
}

// NewInitCmd creates the init command.
func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

// Register adds the init command to the application.
func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize the snapshot store",
		UsageText: "parrot init",
		Action:    cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	err := cmd.flags.Store.Init()
	if errors.Is(err, stores.ErrAlreadyInitialized) {
		fmt.Println("Parrot is already initialized.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	fmt.Println("Parrot has been initialized.")
	return nil
}
