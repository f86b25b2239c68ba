// Package tui implements the interactive snapshot session: a list of
// snapshots with a selection cursor, a command prompt driving the
// scanner/parser, and a scrollback pane for command output.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/parrot/internal/core/config"
	"github.com/colonyops/parrot/internal/core/recon"
	"github.com/colonyops/parrot/internal/core/repl"
	"github.com/colonyops/parrot/internal/core/snapshot"
	"github.com/colonyops/parrot/internal/data/stores"
	"github.com/colonyops/parrot/internal/editor"
	"github.com/colonyops/parrot/internal/styles"
)

// Opts configures a new session Model. All fields are required.
type Opts struct {
	Cfg    *config.Config
	Snaps  []*snapshot.Snapshot
	Store  *stores.SnapshotStore
	Engine *recon.Engine
	Editor *editor.Editor
	Log    zerolog.Logger
}

// Model is the Bubble Tea model for the interactive session.
type Model struct {
	cfg    *config.Config
	view   *repl.View
	store  *stores.SnapshotStore
	engine *recon.Engine
	editor *editor.Editor
	log    zerolog.Logger

	input      textinput.Model
	scrollback []string
	width      int
	quitting   bool
}

// New creates the session model with the cursor on the first snapshot.
func New(opts Opts) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "command (try 'help')"
	input.Focus()

	return &Model{
		cfg:    opts.Cfg,
		view:   repl.NewView(opts.Snaps),
		store:  opts.Store,
		engine: opts.Engine,
		editor: opts.Editor,
		log:    opts.Log,
		input:  input,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			m.quitting = true
			return m, tea.Quit
		case "up":
			m.view.Up()
			return m, nil
		case "down":
			m.view.Down()
			return m, nil
		case "enter":
			line := m.input.Value()
			m.input.Reset()
			if quit := m.dispatch(line); quit {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch scans, parses, and executes one command line. Returns true
// when the session should end.
func (m *Model) dispatch(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}

	tokens, err := repl.Scan(line)
	if err != nil {
		m.say(styles.FailureStyle.Render(err.Error()))
		return false
	}

	script, err := repl.Parse(tokens)
	if err != nil {
		m.say(styles.FailureStyle.Render(err.Error()))
		return false
	}

	m.log.Debug().Str("line", line).Msg("dispatching command")

	switch script.Kind {
	case repl.ScriptQuit:
		return true
	case repl.ScriptHelp:
		m.say(renderHelp())
	case repl.ScriptEdit:
		m.executeEdit()
	case repl.ScriptClear:
		m.view.ClearFilters()
	case repl.ScriptFilter:
		m.view.ApplyFilter(script.Predicates...)
	case repl.ScriptRun:
		m.executeRun(script.Target)
	case repl.ScriptShow:
		m.executeShow(script.Target)
	case repl.ScriptUpdate:
		m.executeUpdate(script.Target)
	}
	return false
}

// targets resolves a script target against the current view.
func (m *Model) targets(target repl.Target) []*snapshot.Snapshot {
	if target == repl.TargetAll {
		return m.view.Visible()
	}
	if sel := m.view.Selected(); sel != nil {
		return []*snapshot.Snapshot{sel}
	}
	return nil
}

func (m *Model) executeRun(target repl.Target) {
	snaps := m.targets(target)
	if len(snaps) == 0 {
		m.say("No snapshot to run.")
		return
	}

	var buf bytes.Buffer
	success, err := m.engine.RunAll(context.Background(), snaps, &styles.BoxReporter{W: &buf})
	if err != nil {
		m.log.Error().Err(err).Msg("run failed")
		m.say(styles.FailureStyle.Render(err.Error()))
		return
	}

	m.sayBlock(buf.String())
	if success {
		m.say(styles.Success())
	} else {
		m.say(styles.Failure())
	}
}

func (m *Model) executeShow(target repl.Target) {
	snaps := m.targets(target)
	if len(snaps) == 0 {
		m.say("No snapshot to show.")
		return
	}
	for _, s := range snaps {
		m.sayBlock(styles.SnapDetail(s))
	}
}

func (m *Model) executeUpdate(target repl.Target) {
	snaps := m.targets(target)
	if len(snaps) == 0 {
		m.say("No snapshot to update.")
		return
	}

	count := 0
	for _, s := range snaps {
		changed, err := m.engine.Update(context.Background(), s)
		if err != nil {
			m.log.Error().Err(err).Str("snapshot", s.Name).Msg("update failed")
			m.say(styles.FailureStyle.Render(err.Error()))
			return
		}
		if !changed {
			continue
		}
		if err := m.store.PersistContent(s); err != nil {
			m.log.Error().Err(err).Str("snapshot", s.Name).Msg("persist content failed")
			m.say(styles.FailureStyle.Render(err.Error()))
			return
		}
		count++
	}

	if count == 0 {
		m.say("Nothing to do.")
		return
	}
	if err := m.store.PersistMetadata(); err != nil {
		m.log.Error().Err(err).Msg("persist metadata failed")
		m.say(styles.FailureStyle.Render(err.Error()))
		return
	}
	if count == 1 {
		m.say("Updated 1 snapshot.")
	} else {
		m.say(fmt.Sprintf("Updated %d snapshots.", count))
	}
}

func (m *Model) executeEdit() {
	sel := m.view.Selected()
	if sel == nil {
		m.say("No snapshot to edit.")
		return
	}

	current := editor.Result{
		Name:        sel.Name,
		Description: sel.Description,
		Tags:        sel.Tags,
	}
	edit, err := m.editor.OpenEdit(m.cfg.DataDir, current, sel.Cmd)
	if err != nil {
		// Editor failure degrades gracefully: nothing is changed.
		m.log.Warn().Err(err).Msg("editor failed")
		m.say(styles.FailureStyle.Render(err.Error()))
		return
	}

	changed := false
	if name := snapshot.NormalizeName(edit.Name); name != "" && name != sel.Name {
		if m.nameTaken(name, sel) {
			m.say(fmt.Sprintf("Name %q is already taken.", name))
			return
		}
		sel.Name = name
		changed = true
	}
	if edit.Description != sel.Description {
		sel.Description = edit.Description
		changed = true
	}
	if !equalTags(edit.Tags, sel.Tags) {
		sel.Tags = edit.Tags
		changed = true
	}

	if !changed {
		m.say("Nothing to change.")
		return
	}

	// The selection handle is done with; persist through the store.
	if err := m.store.PersistMetadata(); err != nil {
		m.log.Error().Err(err).Msg("persist metadata failed")
		m.say(styles.FailureStyle.Render(err.Error()))
		return
	}
	m.say("Updated.")
}

func (m *Model) nameTaken(name string, self *snapshot.Snapshot) bool {
	for _, s := range m.view.Visible() {
		if s != self && s.Name == name {
			return true
		}
	}
	if existing, err := m.store.Get(name); err == nil && existing != self {
		return true
	}
	return false
}

func equalTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// say appends one line to the scrollback.
func (m *Model) say(line string) {
	m.sayBlock(line + "\n")
}

// sayBlock appends a multi-line block to the scrollback, trimming the
// buffer to the configured size.
func (m *Model) sayBlock(block string) {
	block = strings.TrimRight(block, "\n")
	if block == "" {
		return
	}
	m.scrollback = append(m.scrollback, strings.Split(block, "\n")...)
	if max := m.cfg.TUI.Scrollback; len(m.scrollback) > max {
		m.scrollback = m.scrollback[len(m.scrollback)-max:]
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(m.renderHeader())
	sb.WriteString(m.renderList())
	if len(m.scrollback) > 0 {
		sb.WriteString(styles.MutedStyle.Render(strings.Repeat("─", maxInt(m.width, 20))))
		sb.WriteString("\n")
		sb.WriteString(strings.Join(m.tailScrollback(), "\n"))
		sb.WriteString("\n")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("\n")

	return sb.String()
}

func (m *Model) renderHeader() string {
	title := styles.BoldStyle.Render("parrot")
	count := fmt.Sprintf("%d snapshot(s)", m.view.Len())
	if m.view.Filtered() {
		count += " · filtered"
	}
	return title + "  " + styles.MutedStyle.Render(count) + "\n\n"
}

// renderList renders a window of the visible snapshots around the
// cursor.
func (m *Model) renderList() string {
	visible := m.view.Visible()
	if len(visible) == 0 {
		return styles.MutedStyle.Render("  no snapshots match") + "\n"
	}

	height := m.cfg.TUI.ListHeight
	start := 0
	if sel := m.view.SelectedIndex(); sel >= height {
		start = sel - height + 1
	}
	end := minInt(start+height, len(visible))

	var sb strings.Builder
	for i := start; i < end; i++ {
		s := visible[i]
		marker := "  "
		name := s.Name
		if i == m.view.SelectedIndex() {
			marker = styles.SelectedStyle.Render("❯ ")
			name = styles.SelectedStyle.Render(name)
		}

		row := marker + styles.StatusIcon(s.Status) + " " + name
		if len(s.Tags) > 0 {
			row += " " + styles.MutedStyle.Render("["+strings.Join(s.Tags, ", ")+"]")
		}
		row += " " + styles.MutedStyle.Render(s.Cmd)
		sb.WriteString(row)
		sb.WriteString("\n")
	}
	return sb.String()
}

// tailScrollback returns the scrollback lines that fit the pane.
func (m *Model) tailScrollback() []string {
	const paneHeight = 15
	if len(m.scrollback) <= paneHeight {
		return m.scrollback
	}
	return m.scrollback[len(m.scrollback)-paneHeight:]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
