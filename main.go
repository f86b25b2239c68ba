package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/parrot/internal/commands"
	"github.com/colonyops/parrot/internal/core/config"
	"github.com/colonyops/parrot/internal/core/recon"
	"github.com/colonyops/parrot/internal/data/stores"
	"github.com/colonyops/parrot/internal/editor"
	"github.com/colonyops/parrot/pkg/executil"
	"github.com/colonyops/parrot/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "parrot",
		Usage:     "Snapshot testing for command line programs",
		UsageText: "parrot [global options] command [command options]",
		Description: `Parrot captures the stdout, stderr and exit code of shell commands as
named snapshots, then verifies that re-running the commands still
produces the same output.

Run 'parrot' with no arguments to open the interactive session.
Run 'parrot add <cmd>' to capture a new snapshot.
Run 'parrot run' to verify every stored snapshot.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("PARROT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/parrot.log)",
				Sources:     cli.EnvVars("PARROT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("PARROT_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("PARROT_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; the session owns stdout.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "parrot.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			capturer := &executil.ShellCapturer{Shell: cfg.Shell}
			engineLogger := log.With().Str("component", "recon").Logger()

			flags.Config = cfg
			flags.Store = stores.NewSnapshotStore(cfg.DataDir)
			flags.Engine = recon.New(capturer, engineLogger)
			flags.Editor = editor.New(cfg.Editor)
			flags.Capturer = capturer

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	replCmd := commands.NewReplCmd(flags)

	app = commands.NewInitCmd(flags).Register(app)
	app = commands.NewAddCmd(flags).Register(app)
	app = commands.NewRunCmd(flags).Register(app)
	app = commands.NewLsCmd(flags).Register(app)
	app = replCmd.Register(app)

	// Open the interactive session when no subcommand is provided.
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'parrot --help' for usage", c.Args().First())
		}
		return replCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		if msg := runErr.Error(); msg != "" {
			fmt.Println()
			fmt.Println(msg)
		}
		exitCode = 1
	}

	os.Exit(exitCode)
}
