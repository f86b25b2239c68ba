package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/parrot/internal/tui"
)

type ReplCmd struct {
	flags *Flags
}

// NewReplCmd creates the interactive session command.
func NewReplCmd(flags *Flags) *ReplCmd {
	return &ReplCmd{flags: flags}
}

// Register adds the repl command to the application. The session is
// also the default action when parrot is invoked without a subcommand.
func (cmd *ReplCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "repl",
		Usage:     "Open the interactive snapshot session",
		UsageText: "parrot [repl]",
		Description: `Opens an interactive session over the stored snapshots: browse with
the arrow keys, narrow the list with 'filter', and verify or accept
fresh output with 'run' and 'update'. Type 'help' inside the session
for the full command list.`,
		Action: cmd.Run,
	})
	return app
}

// Run starts the interactive session. It is exported so the root
// command can use it as the default action.
func (cmd *ReplCmd) Run(ctx context.Context, c *cli.Command) error {
	snaps, err := cmd.flags.Store.Load()
	if err != nil {
		return err
	}

	model := tui.New(tui.Opts{
		Cfg:    cmd.flags.Config,
		Snaps:  snaps,
		Store:  cmd.flags.Store,
		Engine: cmd.flags.Engine,
		Editor: cmd.flags.Editor,
		Log:    log.Logger,
	})

	log.Debug().Int("snapshots", len(snaps)).Msg("starting interactive session")

	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run session: %w", err)
	}
	return nil
}
