// Package snapshot defines the core snapshot model.
package snapshot

// Status is the outcome of the most recent reconciliation of a snapshot.
// It is recomputed on every run/update and never persisted.
type Status int

const (
	StatusUnknown Status = iota
	StatusPassed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseStatus parses a status name as used in filter predicates.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "passed", "pass":
		return StatusPassed, true
	case "failed", "fail":
		return StatusFailed, true
	case "unknown":
		return StatusUnknown, true
	}
	return StatusUnknown, false
}

// Blob is a named content blob captured from one output stream.
type Blob struct {
	Name string `json:"name"`
	Ext  string `json:"ext"`
	Body []byte `json:"-"`
}

// FileName returns the file name the blob body is stored under.
func (b *Blob) FileName() string {
	return b.Name + b.Ext
}

// NewBlob builds a blob for the given body. Empty output produces no
// blob: an absent stream and an empty stream compare equal.
func NewBlob(body []byte, name, ext string) *Blob {
	if len(body) == 0 {
		return nil
	}
	return &Blob{Name: name, Ext: ext, Body: body}
}

// BodyOrEmpty returns the blob body, treating an absent blob as empty.
func (b *Blob) BodyOrEmpty() []byte {
	if b == nil {
		return nil
	}
	return b.Body
}

// Snapshot is a named, stored capture of a command's expected output.
type Snapshot struct {
	Name        string   `json:"name"`
	Cmd         string   `json:"cmd"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ExitCode    *int     `json:"exit_code"`
	Stdout      *Blob    `json:"stdout,omitempty"`
	Stderr      *Blob    `json:"stderr,omitempty"`
	Status      Status   `json:"-"`
}

// HasTag reports whether the snapshot carries the given tag.
func (s *Snapshot) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CodesEqual compares two optional exit codes. A nil code (process was
// killed, no exit code) compares equal only to another nil code.
func CodesEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
