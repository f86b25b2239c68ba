package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/parrot/internal/core/config"
	"github.com/colonyops/parrot/internal/core/recon"
	"github.com/colonyops/parrot/internal/core/snapshot"
	"github.com/colonyops/parrot/internal/data/stores"
	"github.com/colonyops/parrot/pkg/executil"
)

func intPtr(n int) *int { return &n }

// newTestFlags wires a Flags over an initialized temp store holding one
// snapshot, backed by a recording capturer.
func newTestFlags(t *testing.T, results map[string]executil.Result) *Flags {
	t.Helper()

	dir := t.TempDir()
	store := stores.NewSnapshotStore(dir)
	require.NoError(t, store.Init())
	require.NoError(t, store.Add(&snapshot.Snapshot{
		Name:     "greet",
		Cmd:      "echo hi",
		Tags:     []string{"smoke"},
		ExitCode: intPtr(0),
		Stdout:   snapshot.NewBlob([]byte("hi\n"), "greet", ".out"),
	}))

	cfg := config.DefaultConfig()
	cfg.DataDir = dir

	return &Flags{
		Config: &cfg,
		Store:  store,
		Engine: recon.New(&executil.RecordingCapturer{Results: results}, zerolog.Nop()),
	}
}

func newTestApp(flags *Flags) *cli.Command {
	app := &cli.Command{Name: "parrot"}
	app = NewInitCmd(flags).Register(app)
	app = NewRunCmd(flags).Register(app)
	app = NewLsCmd(flags).Register(app)
	return app
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	flags := &Flags{Store: stores.NewSnapshotStore(dir)}
	app := newTestApp(flags)

	require.NoError(t, app.Run(context.Background(), []string{"parrot", "init"}))

	assert.FileExists(t, filepath.Join(dir, "snapshots.json"))
	assert.DirExists(t, filepath.Join(dir, "objects"))

	// Second init is reported, not an error.
	require.NoError(t, app.Run(context.Background(), []string{"parrot", "init"}))
}

func TestRunCmd_Pass(t *testing.T) {
	flags := newTestFlags(t, map[string]executil.Result{
		"echo hi": {Stdout: []byte("hi\n"), ExitCode: intPtr(0)},
	})
	app := newTestApp(flags)

	err := app.Run(context.Background(), []string{"parrot", "run"})
	require.NoError(t, err)
}

func TestRunCmd_FailureExitsNonZero(t *testing.T) {
	flags := newTestFlags(t, map[string]executil.Result{
		"echo hi": {Stdout: []byte("bye\n"), ExitCode: intPtr(0)},
	})

	// Call the action directly: the cli runner would turn the ExitCoder
	// into a process exit.
	cmd := NewRunCmd(flags)
	err := cmd.run(context.Background(), nil)
	require.Error(t, err)

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestRunCmd_FilterNoMatches(t *testing.T) {
	flags := newTestFlags(t, nil)
	app := newTestApp(flags)

	// Nothing matches, so nothing runs and nothing fails.
	err := app.Run(context.Background(), []string{"parrot", "run", "--filter", "tag:nope"})
	require.NoError(t, err)
}

func TestRunCmd_BadFilter(t *testing.T) {
	flags := newTestFlags(t, nil)

	cmd := NewRunCmd(flags)
	cmd.filters = []string{"owner:me"}
	err := cmd.run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter key")
}

func TestRunCmd_Uninitialized(t *testing.T) {
	flags := &Flags{Store: stores.NewSnapshotStore(t.TempDir())}
	app := newTestApp(flags)

	err := app.Run(context.Background(), []string{"parrot", "run"})
	require.ErrorIs(t, err, stores.ErrNotInitialized)
}

func TestLsCmd_Filter(t *testing.T) {
	flags := newTestFlags(t, nil)
	app := newTestApp(flags)

	require.NoError(t, app.Run(context.Background(), []string{"parrot", "ls"}))
	require.NoError(t, app.Run(context.Background(), []string{"parrot", "ls", "--filter", "tag:smoke"}))

	err := app.Run(context.Background(), []string{"parrot", "ls", "--filter", "status:bogus"})
	require.Error(t, err)
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	assert.Equal(t, filepath.Join("/tmp/xdg-config", "parrot", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "parrot"), DefaultDataDir())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "parrot", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join(home, ".local", "share", "parrot"), DefaultDataDir())
}
