// Package styles provides shared lipgloss styles for CLI and TUI output.
package styles

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/parrot/internal/core/diff"
	"github.com/colonyops/parrot/internal/core/snapshot"
)

var (
	ColorBlue   = lipgloss.AdaptiveColor{Light: "27", Dark: "39"}
	ColorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "204"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "245", Dark: "240"}
)

var (
	BoldStyle     = lipgloss.NewStyle().Bold(true)
	FrameStyle    = lipgloss.NewStyle().Foreground(ColorBlue)
	SuccessStyle  = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	FailureStyle  = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	AddedStyle    = lipgloss.NewStyle().Foreground(ColorGreen)
	RemovedStyle  = lipgloss.NewStyle().Foreground(ColorRed)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
)

// SeparatorKind selects the corner glyph of a box separator.
type SeparatorKind int

const (
	SeparatorTop SeparatorKind = iota
	SeparatorMiddle
	SeparatorBottom
)

// BoxSeparator renders one horizontal group separator with a bold
// title, e.g. `├──── stdout`.
func BoxSeparator(title string, kind SeparatorKind) string {
	var corner string
	switch kind {
	case SeparatorTop:
		corner = "┌"
	case SeparatorMiddle:
		corner = "├"
	default:
		corner = "└"
	}

	line := FrameStyle.Render(corner + "────")
	if title == "" {
		return line
	}
	return line + " " + BoldStyle.Render(title)
}

// BoxedLines renders a blob body with each line behind a `│ ` gutter.
func BoxedLines(body []byte) string {
	var sb strings.Builder
	gutter := FrameStyle.Render("│") + " "
	for _, line := range diff.SplitLines(body) {
		sb.WriteString(gutter)
		sb.Write(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// DiffLine renders one annotated diff line.
func DiffLine(l diff.Line) string {
	switch l.Kind {
	case diff.Added:
		return AddedStyle.Render("+ " + string(l.Text))
	case diff.Removed:
		return RemovedStyle.Render("- " + string(l.Text))
	default:
		return MutedStyle.Render("  " + string(l.Text))
	}
}

// Success renders the overall pass banner.
func Success() string {
	return SuccessStyle.Render("Success ✓")
}

// Failure renders the overall fail banner.
func Failure() string {
	return FailureStyle.Render("Failure ✗")
}

// StatusIcon renders a snapshot's reconciliation status glyph.
func StatusIcon(s snapshot.Status) string {
	switch s {
	case snapshot.StatusPassed:
		return SuccessStyle.Render("✓")
	case snapshot.StatusFailed:
		return FailureStyle.Render("✗")
	default:
		return MutedStyle.Render("·")
	}
}

// ExitCodeLabel renders an optional exit code, "none" for a process
// killed without one.
func ExitCodeLabel(code *int) string {
	if code == nil {
		return "none"
	}
	return BoldStyle.Render(strconv.Itoa(*code))
}
