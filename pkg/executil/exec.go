// Package executil provides shell execution utilities.
package executil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DefaultShell is used when no shell override is configured.
const DefaultShell = "sh"

// Result holds everything captured from a single command execution.
// ExitCode is nil when the process was terminated by a signal and
// never produced an exit code.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode *int
}

// Capturer runs a shell command and captures its output streams.
type Capturer interface {
	// Capture executes cmd through the shell and returns its stdout,
	// stderr, and exit code. A non-zero exit code is not an error;
	// only a failure to spawn the shell is.
	Capture(ctx context.Context, cmd string) (Result, error)
}

// ShellCapturer executes commands through a real shell.
type ShellCapturer struct {
	// Shell is the shell binary to invoke. Empty means DefaultShell.
	Shell string
}

// Capture executes cmd via `<shell> -c cmd`, capturing stdout and stderr
// separately.
func (e *ShellCapturer) Capture(ctx context.Context, cmd string) (Result, error) {
	shell := e.Shell
	if shell == "" {
		shell = DefaultShell
	}

	c := exec.CommandContext(ctx, shell, "-c", cmd)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("spawn %s -c %q: %w", shell, cmd, err)
		}
	}

	res := Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	// ExitCode is -1 when the process was killed by a signal.
	if code := c.ProcessState.ExitCode(); code >= 0 {
		res.ExitCode = &code
	}

	return res, nil
}
