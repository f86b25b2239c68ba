// Package recon implements the reconciliation engine: re-running a
// snapshot's command and comparing or merging its output against the
// stored truth.
package recon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/parrot/internal/core/diff"
	"github.com/colonyops/parrot/internal/core/snapshot"
	"github.com/colonyops/parrot/pkg/executil"
)

// Reporter receives presentation events while snapshots are verified.
// The engine decides what to surface; the reporter decides how it
// looks.
type Reporter interface {
	// BeginFailure opens the report for a failing snapshot: name
	// header plus the stored command summary.
	BeginFailure(s *snapshot.Snapshot)
	// StreamDiff reports one differing stream ("stdout" or "stderr")
	// as a line diff from stored to fresh content.
	StreamDiff(stream string, lines []diff.Line)
	// EndFailure closes a failing snapshot's report.
	EndFailure()
}

// NopReporter discards all presentation events.
type NopReporter struct{}

func (NopReporter) BeginFailure(*snapshot.Snapshot) {}
func (NopReporter) StreamDiff(string, []diff.Line)  {}
func (NopReporter) EndFailure()                     {}

// Engine runs snapshot commands and reconciles their output.
type Engine struct {
	exec executil.Capturer
	log  zerolog.Logger
}

// New creates an engine using the given capturer.
func New(exec executil.Capturer, log zerolog.Logger) *Engine {
	return &Engine{exec: exec, log: log}
}

// Run re-executes the snapshot's command and verifies the fresh
// stdout, stderr, and exit code against the stored truth. Stored
// content is never mutated; only Status is updated. Returns true when
// everything matched.
//
// An absent stored stream compares as an empty blob; a nil exit code
// (killed process) compares equal only to another nil code.
func (e *Engine) Run(ctx context.Context, s *snapshot.Snapshot, r Reporter) (bool, error) {
	res, err := e.exec.Capture(ctx, s.Cmd)
	if err != nil {
		return false, fmt.Errorf("execute %q: %w", s.Cmd, err)
	}

	oldStdout := s.Stdout.BodyOrEmpty()
	oldStderr := s.Stderr.BodyOrEmpty()

	stdoutEq := diff.Equal(res.Stdout, oldStdout)
	stderrEq := diff.Equal(res.Stderr, oldStderr)
	codeEq := snapshot.CodesEqual(s.ExitCode, res.ExitCode)
	failed := !stdoutEq || !stderrEq || !codeEq

	if failed {
		r.BeginFailure(s)
	}
	if !stdoutEq {
		r.StreamDiff("stdout", diff.Lines(oldStdout, res.Stdout))
	}
	if !stderrEq {
		r.StreamDiff("stderr", diff.Lines(oldStderr, res.Stderr))
	}

	if failed {
		r.EndFailure()
		s.Status = snapshot.StatusFailed
	} else {
		s.Status = snapshot.StatusPassed
	}

	e.log.Debug().
		Str("snapshot", s.Name).
		Bool("passed", !failed).
		Msg("ran snapshot")

	return !failed, nil
}

// RunAll verifies every given snapshot in order. The overall result is
// the logical AND of the per-snapshot results; a spawn failure aborts
// the remaining snapshots.
func (e *Engine) RunAll(ctx context.Context, snaps []*snapshot.Snapshot, r Reporter) (bool, error) {
	success := true
	for _, s := range snaps {
		pass, err := e.Run(ctx, s, r)
		if err != nil {
			return false, err
		}
		success = success && pass
	}
	return success, nil
}

// Update re-executes the snapshot's command and accepts the fresh
// output as the new truth, replacing exit code, stdout, and stderr
// field-wise only where they differ. Status always becomes Passed.
// Returns whether any field changed; for a deterministic command a
// second Update reports no change.
func (e *Engine) Update(ctx context.Context, s *snapshot.Snapshot) (bool, error) {
	res, err := e.exec.Capture(ctx, s.Cmd)
	if err != nil {
		return false, fmt.Errorf("execute %q: %w", s.Cmd, err)
	}

	changed := false

	if !snapshot.CodesEqual(s.ExitCode, res.ExitCode) {
		s.ExitCode = res.ExitCode
		changed = true
	}

	newStdout := snapshot.NewBlob(res.Stdout, s.Name, ".out")
	if !diff.Equal(s.Stdout.BodyOrEmpty(), newStdout.BodyOrEmpty()) {
		s.Stdout = newStdout
		changed = true
	}

	newStderr := snapshot.NewBlob(res.Stderr, s.Name, ".err")
	if !diff.Equal(s.Stderr.BodyOrEmpty(), newStderr.BodyOrEmpty()) {
		s.Stderr = newStderr
		changed = true
	}

	s.Status = snapshot.StatusPassed

	e.log.Debug().
		Str("snapshot", s.Name).
		Bool("changed", changed).
		Msg("updated snapshot")

	return changed, nil
}
