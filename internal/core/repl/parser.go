package repl

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/parrot/internal/core/snapshot"
)

// ScriptKind identifies a parsed command.
type ScriptKind int

const (
	ScriptQuit ScriptKind = iota
	ScriptHelp
	ScriptEdit
	ScriptClear
	ScriptFilter
	ScriptRun
	ScriptShow
	ScriptUpdate
)

// Target selects whether an operation applies to the selected snapshot
// or to every visible snapshot.
type Target int

const (
	TargetSelected Target = iota
	TargetAll
)

// Script is a validated command produced by the parser. Predicates is
// populated only for ScriptFilter; Target only for run/show/update.
type Script struct {
	Kind       ScriptKind
	Target     Target
	Predicates []Predicate
}

// ParseErrorKind classifies parse failures.
type ParseErrorKind int

const (
	// ErrUnknownCommand means the leading token is not a command keyword.
	ErrUnknownCommand ParseErrorKind = iota
	// ErrUnknownFilterKey means a `key:value` predicate used an unknown key.
	ErrUnknownFilterKey
	// ErrBadArgument covers malformed targets, missing predicates, and
	// trailing tokens.
	ErrBadArgument
)

// ParseError is a recoverable per-line error: the session prints the
// message and re-prompts without touching any state.
type ParseError struct {
	Kind    ParseErrorKind
	Token   string
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// keywords is an exact-match lookup table. Abbreviations are listed
// explicitly rather than matched by prefix, so adding a command can
// never silently change what a short form means.
var keywords = map[string]ScriptKind{
	"quit":   ScriptQuit,
	"q":      ScriptQuit,
	"help":   ScriptHelp,
	"h":      ScriptHelp,
	"edit":   ScriptEdit,
	"e":      ScriptEdit,
	"clear":  ScriptClear,
	"filter": ScriptFilter,
	"run":    ScriptRun,
	"show":   ScriptShow,
	"update": ScriptUpdate,
}

// Parse turns a token sequence into a Script. It is stateless: each
// call operates solely on the tokens supplied.
func Parse(tokens []Token) (Script, error) {
	if len(tokens) == 0 {
		return Script{}, &ParseError{
			Kind:    ErrBadArgument,
			Message: "empty command",
		}
	}

	head := tokens[0]
	kind, ok := keywords[strings.ToLower(head.Text)]
	if !ok || head.Kind != TokenWord {
		return Script{}, &ParseError{
			Kind:    ErrUnknownCommand,
			Token:   head.Text,
			Message: fmt.Sprintf("unknown command %q, type 'help' for a list of commands", head.Text),
		}
	}

	rest := tokens[1:]
	switch kind {
	case ScriptQuit, ScriptHelp, ScriptEdit, ScriptClear:
		if len(rest) > 0 {
			return Script{}, &ParseError{
				Kind:    ErrBadArgument,
				Token:   rest[0].Text,
				Message: fmt.Sprintf("%q takes no arguments", head.Text),
			}
		}
		return Script{Kind: kind}, nil

	case ScriptFilter:
		if len(rest) == 0 {
			return Script{}, &ParseError{
				Kind:    ErrBadArgument,
				Message: "filter needs at least one predicate, e.g. 'filter tag:smoke'",
			}
		}
		preds := make([]Predicate, 0, len(rest))
		for _, tok := range rest {
			p, err := parsePredicate(tok)
			if err != nil {
				return Script{}, err
			}
			preds = append(preds, p)
		}
		return Script{Kind: kind, Predicates: preds}, nil

	default: // run | show | update
		target, err := parseTarget(head.Text, rest)
		if err != nil {
			return Script{}, err
		}
		return Script{Kind: kind, Target: target}, nil
	}
}

// parseTarget parses the optional trailing target of run/show/update.
// An omitted target means the selected snapshot.
func parseTarget(cmd string, rest []Token) (Target, error) {
	if len(rest) == 0 {
		return TargetSelected, nil
	}
	if len(rest) > 1 {
		return TargetSelected, &ParseError{
			Kind:    ErrBadArgument,
			Token:   rest[1].Text,
			Message: fmt.Sprintf("unexpected argument %q after target", rest[1].Text),
		}
	}

	switch strings.ToLower(rest[0].Text) {
	case "all":
		return TargetAll, nil
	case "sel", "selected":
		return TargetSelected, nil
	default:
		return TargetSelected, &ParseError{
			Kind:    ErrBadArgument,
			Token:   rest[0].Text,
			Message: fmt.Sprintf("%q expects 'all', 'sel' or 'selected', got %q", cmd, rest[0].Text),
		}
	}
}

// PredicateKind identifies a compiled filter predicate.
type PredicateKind int

const (
	// BySubstring matches the value as a substring of name or command.
	BySubstring PredicateKind = iota
	// ByTag matches snapshots carrying the tag.
	ByTag
	// ByStatus matches the reconciliation status.
	ByStatus
	// ByName matches the snapshot name (glob when the value contains
	// glob metacharacters, substring otherwise).
	ByName
	// ByCmd matches the snapshot command the same way ByName does.
	ByCmd
)

// Predicate is a filter predicate compiled once at parse time, so
// evaluation never re-interprets the raw `key:value` string.
type Predicate struct {
	Kind   PredicateKind
	Value  string
	Status snapshot.Status
}

// parsePredicate compiles one filter argument. `key:value` forms use a
// closed key set; a quoted token is always a literal substring match.
func parsePredicate(tok Token) (Predicate, error) {
	if tok.Kind == TokenFlag {
		return Predicate{}, &ParseError{
			Kind:    ErrBadArgument,
			Token:   tok.Text,
			Message: fmt.Sprintf("flags are not valid filter predicates: --%s", tok.Text),
		}
	}

	if tok.Kind == TokenQuoted || !strings.Contains(tok.Text, ":") {
		return Predicate{Kind: BySubstring, Value: tok.Text}, nil
	}

	key, value, _ := strings.Cut(tok.Text, ":")
	if value == "" {
		return Predicate{}, &ParseError{
			Kind:    ErrBadArgument,
			Token:   tok.Text,
			Message: fmt.Sprintf("predicate %q has no value", tok.Text),
		}
	}

	switch key {
	case "tag":
		return Predicate{Kind: ByTag, Value: value}, nil
	case "status":
		status, ok := snapshot.ParseStatus(value)
		if !ok {
			return Predicate{}, &ParseError{
				Kind:    ErrBadArgument,
				Token:   tok.Text,
				Message: fmt.Sprintf("unknown status %q, expected passed, failed or unknown", value),
			}
		}
		return Predicate{Kind: ByStatus, Status: status}, nil
	case "name":
		return Predicate{Kind: ByName, Value: value}, nil
	case "cmd":
		return Predicate{Kind: ByCmd, Value: value}, nil
	default:
		return Predicate{}, &ParseError{
			Kind:    ErrUnknownFilterKey,
			Token:   key,
			Message: fmt.Sprintf("unknown filter key %q, expected tag, status, name or cmd", key),
		}
	}
}

// ParsePredicates compiles raw predicate arguments, one or more per
// string, as accepted by `parrot ls --filter`.
func ParsePredicates(args []string) ([]Predicate, error) {
	var preds []Predicate
	for _, arg := range args {
		tokens, err := Scan(arg)
		if err != nil {
			return nil, err
		}
		for _, tok := range tokens {
			p, err := parsePredicate(tok)
			if err != nil {
				return nil, err
			}
			preds = append(preds, p)
		}
	}
	return preds, nil
}

// Match evaluates the predicate against a snapshot.
func (p Predicate) Match(s *snapshot.Snapshot) bool {
	switch p.Kind {
	case ByTag:
		return s.HasTag(p.Value)
	case ByStatus:
		return s.Status == p.Status
	case ByName:
		return matchPattern(p.Value, s.Name)
	case ByCmd:
		return matchPattern(p.Value, s.Cmd)
	default:
		return strings.Contains(s.Name, p.Value) || strings.Contains(s.Cmd, p.Value)
	}
}

// matchPattern glob-matches when the pattern carries glob
// metacharacters, and falls back to substring containment otherwise.
func matchPattern(pattern, value string) bool {
	if strings.ContainsAny(pattern, "*?[{") {
		ok, err := doublestar.Match(pattern, value)
		return err == nil && ok
	}
	return strings.Contains(value, pattern)
}
