package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/parrot/internal/core/repl"
	"github.com/colonyops/parrot/internal/styles"
)

type RunCmd struct {
	flags *Flags

	filters []string
}

// NewRunCmd creates the run command.
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

// Register adds the run command to the application.
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Verify snapshots against fresh command output",
		UsageText: "parrot run [options]",
		Description: `Re-executes each snapshot's command and compares the fresh stdout,
stderr and exit code against the stored values. Mismatches are shown
as line diffs. Exits non-zero when any snapshot fails, so it can gate
CI pipelines.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "only run matching snapshots (e.g. 'tag:smoke', 'name:api-*')",
				Destination: &cmd.filters,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	snaps, err := cmd.flags.Store.Load()
	if err != nil {
		return err
	}

	view := repl.NewView(snaps)
	if len(cmd.filters) > 0 {
		preds, err := repl.ParsePredicates(cmd.filters)
		if err != nil {
			return err
		}
		view.ApplyFilter(preds...)
	}

	targets := view.Visible()
	if len(targets) == 0 {
		fmt.Println("No snapshots to run.")
		return nil
	}

	ok, err := cmd.flags.Engine.RunAll(ctx, targets, &styles.BoxReporter{W: os.Stdout})
	if err != nil {
		return err
	}

	if !ok {
		fmt.Println(styles.Failure())
		return cli.Exit("", 1)
	}

	fmt.Println(styles.Success())
	return nil
}
