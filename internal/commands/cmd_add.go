package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/parrot/internal/core/snapshot"
	"github.com/colonyops/parrot/internal/styles"
)

type AddCmd struct {
	flags *Flags

	name string
	yes  bool
}

// NewAddCmd creates the add command.
func NewAddCmd(flags *Flags) *AddCmd {
	return &AddCmd{flags: flags}
}

// Register adds the add command to the application.
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Capture a command's output as a new snapshot",
		UsageText: "parrot add [options] <cmd>",
		Description: `Executes <cmd> through the shell, shows the captured stdout, stderr
and exit code, and stores them as a named snapshot after confirmation.

Metadata (name, description, tags) is collected through your editor
unless --name or --yes is given.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "snapshot name (normalized: lowercase, dashes for spaces)",
				Destination: &cmd.name,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the preview/confirmation and the editor",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	cmdline := strings.Join(c.Args().Slice(), " ")
	if cmdline == "" {
		return fmt.Errorf("missing command to snapshot, usage: parrot add '<cmd>'")
	}

	// The store must be initialized before anything is captured.
	if _, err := cmd.flags.Store.Load(); err != nil {
		return err
	}

	res, err := cmd.flags.Capturer.Capture(ctx, cmdline)
	if err != nil {
		return err
	}

	// Confirm interactively unless --yes or stdin is not a terminal.
	if !cmd.yes && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print(styles.CapturePreview(res.Stdout, res.Stderr, res.ExitCode))

		save := true
		confirm := huh.NewConfirm().
			Title("Save this snapshot?").
			Value(&save)
		if err := confirm.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !save {
			return nil
		}
	}

	name, description, tags, err := cmd.collectMetadata(cmdline)
	if err != nil {
		return err
	}

	snap := &snapshot.Snapshot{
		Name:        name,
		Cmd:         cmdline,
		Description: description,
		Tags:        tags,
		ExitCode:    res.ExitCode,
		Stdout:      snapshot.NewBlob(res.Stdout, name, ".out"),
		Stderr:      snapshot.NewBlob(res.Stderr, name, ".err"),
	}

	if err := cmd.flags.Store.Add(snap); err != nil {
		return err
	}

	fmt.Printf("%s snapshot %q saved\n", styles.Success(), name)
	return nil
}

// collectMetadata resolves the snapshot name, description, and tags.
// Editor failures degrade to an auto-generated name.
func (cmd *AddCmd) collectMetadata(cmdline string) (string, string, []string, error) {
	if cmd.name != "" {
		return snapshot.NormalizeName(cmd.name), "", nil, nil
	}
	if cmd.yes || !term.IsTerminal(int(os.Stdin.Fd())) {
		return snapshot.RandomName(), "", nil, nil
	}

	edit, err := cmd.flags.Editor.OpenNew(cmd.flags.Config.DataDir, cmdline)
	if err != nil {
		fmt.Println(styles.MutedStyle.Render("editor unavailable, auto-generating a name"))
		return snapshot.RandomName(), "", nil, nil
	}

	name := snapshot.NormalizeName(edit.Name)
	if name == "" {
		name = snapshot.RandomName()
	}
	return name, edit.Description, edit.Tags, nil
}
