// Package logutils builds the application logger.
//
// The interactive session owns stdout, so logs always go to a file;
// when no file is configured the logger is disabled entirely.
package logutils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a logger that writes JSON to the specified file.
// If file is empty, a disabled logger is returned.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	if file == "" {
		return zerolog.Nop(), closer, nil
	}

	logsDir := filepath.Dir(file)
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
	}

	osFile, err := os.Create(file)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}
	closer = func() { _ = osFile.Close() }

	l := zerolog.New(osFile).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}
