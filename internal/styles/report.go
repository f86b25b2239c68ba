package styles

import (
	"fmt"
	"io"

	"github.com/colonyops/parrot/internal/core/diff"
	"github.com/colonyops/parrot/internal/core/snapshot"
)

// BoxReporter renders reconciliation failures as boxed, styled text.
// It satisfies the reconciliation engine's Reporter interface.
type BoxReporter struct {
	W io.Writer
}

// BeginFailure opens the box for a failing snapshot and prints its
// stored summary.
func (r *BoxReporter) BeginFailure(s *snapshot.Snapshot) {
	fmt.Fprintln(r.W, BoxSeparator(s.Name, SeparatorTop))
	fmt.Fprint(r.W, SnapSummary(s))
}

// StreamDiff prints a differing stream as a colored line diff.
func (r *BoxReporter) StreamDiff(stream string, lines []diff.Line) {
	fmt.Fprintln(r.W, BoxSeparator(stream, SeparatorMiddle))
	gutter := FrameStyle.Render("│") + " "
	for _, l := range lines {
		fmt.Fprintln(r.W, gutter+DiffLine(l))
	}
}

// EndFailure closes the box.
func (r *BoxReporter) EndFailure() {
	fmt.Fprintln(r.W, BoxSeparator("", SeparatorBottom))
}

// SnapSummary renders the boxed cmd/code/description summary of a
// snapshot.
func SnapSummary(s *snapshot.Snapshot) string {
	gutter := FrameStyle.Render("│") + " "
	out := gutter + "cmd:  " + BoldStyle.Render(s.Cmd) + "\n"
	out += gutter + "code: " + ExitCodeLabel(s.ExitCode) + "\n"
	if s.Description != "" {
		out += gutter + MutedStyle.Render(s.Description) + "\n"
	}
	return out
}

// SnapDetail renders the full boxed presentation of a snapshot used by
// the show command: summary plus stored stream bodies.
func SnapDetail(s *snapshot.Snapshot) string {
	out := BoxSeparator(s.Name, SeparatorTop) + "\n"
	out += SnapSummary(s)
	if s.Stdout != nil {
		out += BoxSeparator("stdout", SeparatorMiddle) + "\n"
		out += BoxedLines(s.Stdout.Body)
	}
	if s.Stderr != nil {
		out += BoxSeparator("stderr", SeparatorMiddle) + "\n"
		out += BoxedLines(s.Stderr.Body)
	}
	out += BoxSeparator("", SeparatorBottom) + "\n"
	return out
}

// CapturePreview renders freshly captured output before it is saved as
// a snapshot.
func CapturePreview(stdout, stderr []byte, code *int) string {
	out := BoxSeparator("exit code", SeparatorTop) + "\n"
	out += FrameStyle.Render("│") + " " + ExitCodeLabel(code) + "\n"
	if len(stdout) > 0 {
		out += BoxSeparator("stdout", SeparatorMiddle) + "\n"
		out += BoxedLines(stdout)
	}
	if len(stderr) > 0 {
		out += BoxSeparator("stderr", SeparatorMiddle) + "\n"
		out += BoxedLines(stderr)
	}
	out += BoxSeparator("", SeparatorBottom) + "\n"
	return out
}
