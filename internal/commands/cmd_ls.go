package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/parrot/internal/core/repl"
	"github.com/colonyops/parrot/internal/styles"
)

type LsCmd struct {
	flags *Flags

	filters []string
}

// NewLsCmd creates the ls command.
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application.
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List stored snapshots",
		UsageText: "parrot ls [options]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "only list matching snapshots (e.g. 'tag:smoke', 'status:failed')",
				Destination: &cmd.filters,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
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

	visible := view.Visible()
	if len(visible) == 0 {
		fmt.Println("No snapshots.")
		return nil
	}

	nameWidth := 0
	for _, s := range visible {
		if len(s.Name) > nameWidth {
			nameWidth = len(s.Name)
		}
	}

	for _, s := range visible {
		line := fmt.Sprintf("%s %-*s", styles.StatusIcon(s.Status), nameWidth, s.Name)
		if len(s.Tags) > 0 {
			line += "  " + styles.MutedStyle.Render("["+strings.Join(s.Tags, ", ")+"]")
		}
		line += "  " + styles.MutedStyle.Render(s.Cmd)
		fmt.Println(line)
	}
	return nil
}
