// Package config handles configuration loading and validation for parrot.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// Shell is the shell binary used to execute snapshot commands.
	Shell string `yaml:"shell"`
	// Editor overrides $EDITOR for metadata editing.
	Editor string `yaml:"editor"`
	TUI    TUI    `yaml:"tui"`
	// DataDir is set by the caller, not from the config file.
	DataDir string `yaml:"-"`
}

// TUI holds interactive session settings.
type TUI struct {
	// ListHeight is the number of snapshot rows shown at once.
	ListHeight int `yaml:"list_height"`
	// Scrollback is the number of output lines kept in the session
	// scrollback buffer.
	Scrollback int `yaml:"scrollback"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Shell: "sh",
		TUI: TUI{
			ListHeight: 10,
			Scrollback: 500,
		},
	}
}

// Load reads the config file at path, applying defaults for missing
// fields. A missing file is not an error; defaults are used.
func Load(path, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
