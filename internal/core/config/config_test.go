package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
		require.NoError(t, err)

		assert.Equal(t, "sh", cfg.Shell)
		assert.Equal(t, 10, cfg.TUI.ListHeight)
		assert.Equal(t, 500, cfg.TUI.Scrollback)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("editor: vim\ntui:\n  list_height: 20\n"), 0o644))

		cfg, err := Load(path, "")
		require.NoError(t, err)

		assert.Equal(t, "vim", cfg.Editor)
		assert.Equal(t, 20, cfg.TUI.ListHeight)
		// Untouched fields keep their defaults.
		assert.Equal(t, "sh", cfg.Shell)
		assert.Equal(t, 500, cfg.TUI.Scrollback)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("shell: [unclosed"), 0o644))

		_, err := Load(path, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("data dir passed through", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := Load(filepath.Join(dir, "nope.yaml"), dir)
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.DataDir)
	})
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing shell executable", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Shell = "no-such-shell-12345"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive list height", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TUI.ListHeight = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("data dir pointing at a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		cfg := DefaultConfig()
		cfg.DataDir = file
		assert.Error(t, cfg.Validate())
	})
}
