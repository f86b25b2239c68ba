package config

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/hay-kot/criterio"
)

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("shell", c.Shell, shellExists),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("tui.list_height", c.TUI.ListHeight, isPositive),
		criterio.Run("tui.scrollback", c.TUI.Scrollback, isPositive),
	)
}

// shellExists validates that the configured shell is on PATH.
func shellExists(shell string) error {
	if shell == "" {
		return nil
	}
	if _, err := exec.LookPath(shell); err != nil {
		return fmt.Errorf("executable not found: %s", shell)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isPositive(n int) error {
	if n <= 0 {
		return fmt.Errorf("must be positive, got %d", n)
	}
	return nil
}
