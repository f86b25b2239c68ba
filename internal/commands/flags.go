package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/parrot/internal/core/config"
	"github.com/colonyops/parrot/internal/core/recon"
	"github.com/colonyops/parrot/internal/data/stores"
	"github.com/colonyops/parrot/internal/editor"
	"github.com/colonyops/parrot/pkg/executil"
)

// Flags holds global flag values and the dependencies wired up in the
// Before hook, shared by all commands.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	Config   *config.Config
	Store    *stores.SnapshotStore
	Engine   *recon.Engine
	Editor   *editor.Editor
	Capturer executil.Capturer
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "parrot", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "parrot")
}
