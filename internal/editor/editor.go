// Package editor integrates an external text editor for snapshot
// metadata. The user edits a scratch file with YAML front matter
// (name, tags) and a markdown body (description); the file is parsed
// back once the editor exits.
package editor

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const scratchFileName = "EDIT_SNAPSHOT.md"

// Result is the metadata collected from an editing session. An empty
// Name means the user supplied none.
type Result struct {
	Name        string
	Description string
	Tags        []string
}

// frontmatter is the YAML block at the top of the scratch file.
type frontmatter struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags"`
}

// Editor opens metadata scratch files in the user's editor.
type Editor struct {
	cmd string
}

// New resolves the editor command: explicit override, then
// $PARROT_EDITOR, then $EDITOR, then vi.
func New(override string) *Editor {
	cmd := override
	if cmd == "" {
		cmd = os.Getenv("PARROT_EDITOR")
	}
	if cmd == "" {
		cmd = os.Getenv("EDITOR")
	}
	if cmd == "" {
		cmd = "vi"
	}
	return &Editor{cmd: cmd}
}

// OpenNew collects metadata for a snapshot being created for cmdline.
func (e *Editor) OpenNew(dataDir, cmdline string) (Result, error) {
	return e.open(dataDir, Result{}, cmdline)
}

// OpenEdit collects updated metadata for an existing snapshot,
// pre-filling the scratch file with its current values.
func (e *Editor) OpenEdit(dataDir string, current Result, cmdline string) (Result, error) {
	return e.open(dataDir, current, cmdline)
}

func (e *Editor) open(dataDir string, current Result, cmdline string) (Result, error) {
	path := filepath.Join(dataDir, scratchFileName)
	if err := os.WriteFile(path, []byte(RenderScratch(current, cmdline)), 0o644); err != nil {
		return Result{}, fmt.Errorf("write scratch file: %w", err)
	}
	defer os.Remove(path)

	parts := strings.Fields(e.cmd)
	args := append(parts[1:], path)

	c := exec.Command(parts[0], args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return Result{}, fmt.Errorf("editor %q: %w", e.cmd, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read scratch file: %w", err)
	}

	return ParseScratch(string(edited)), nil
}

// RenderScratch produces the scratch file contents shown to the user.
func RenderScratch(current Result, cmdline string) string {
	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("name: %s\n", current.Name))
	sb.WriteString(fmt.Sprintf("tags: [%s]\n", strings.Join(current.Tags, ", ")))
	sb.WriteString("---\n")
	if current.Description != "" {
		sb.WriteString(current.Description)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("<!-- Snapshot for: %s -->\n", cmdline))
	sb.WriteString("<!-- Set the name and tags above; the body becomes the description. -->\n")
	sb.WriteString("<!-- Leave the name empty to auto-generate one. -->\n")

	return sb.String()
}

// ParseScratch extracts metadata from an edited scratch file. Missing
// or malformed front matter yields an empty result; comment lines in
// the body are dropped.
func ParseScratch(content string) Result {
	scanner := bufio.NewScanner(strings.NewReader(content))

	// First line must open the front matter.
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return Result{Description: stripComments(content)}
	}

	var fmLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			break
		}
		fmLines = append(fmLines, line)
	}

	var fm frontmatter
	_ = yaml.Unmarshal([]byte(strings.Join(fmLines, "\n")), &fm)

	var bodyLines []string
	for scanner.Scan() {
		bodyLines = append(bodyLines, scanner.Text())
	}

	return Result{
		Name:        strings.TrimSpace(fm.Name),
		Tags:        fm.Tags,
		Description: stripComments(strings.Join(bodyLines, "\n")),
	}
}

// stripComments removes single-line HTML comments and trims the rest.
func stripComments(body string) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "<!--") && strings.HasSuffix(trimmed, "-->") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
