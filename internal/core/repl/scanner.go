// Package repl implements the interactive command language: a scanner
// and parser for the prompt's micro-grammar, and the filterable,
// cursor-addressable view over the snapshot collection.
package repl

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenKind classifies a scanned token.
type TokenKind int

const (
	// TokenWord is a bare word.
	TokenWord TokenKind = iota
	// TokenQuoted is a single- or double-quoted string, quotes stripped.
	TokenQuoted
	// TokenFlag is a `-` or `--` prefixed token, dashes stripped.
	TokenFlag
)

// Token is one lexical unit of a command line. Offset is the byte
// offset of the token's first character in the raw input, used for
// error reporting.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// ScanError reports a lexical error, carrying the byte offset where
// the offending construct begins.
type ScanError struct {
	Offset  int
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", e.Message, e.Offset)
}

// Scan tokenizes a raw command line. Splitting happens on unquoted
// whitespace; a token opening with a quote runs to the matching quote
// regardless of embedded whitespace. Scanning performs no semantic
// validation and is deterministic: the same input always yields the
// same token sequence.
func Scan(raw string) ([]Token, error) {
	var tokens []Token

	runes := []rune(raw)
	i := 0
	for i < len(runes) {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}

		start := i
		switch {
		case runes[i] == '\'' || runes[i] == '"':
			quote := runes[i]
			i++
			var sb strings.Builder
			for i < len(runes) && runes[i] != quote {
				sb.WriteRune(runes[i])
				i++
			}
			if i >= len(runes) {
				return nil, &ScanError{
					Offset:  byteOffset(runes, start),
					Message: "unterminated quote",
				}
			}
			i++ // closing quote
			tokens = append(tokens, Token{Kind: TokenQuoted, Text: sb.String(), Offset: byteOffset(runes, start)})

		case runes[i] == '-':
			for i < len(runes) && runes[i] == '-' {
				i++
			}
			wordStart := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: TokenFlag, Text: string(runes[wordStart:i]), Offset: byteOffset(runes, start)})

		default:
			for i < len(runes) && !unicode.IsSpace(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: TokenWord, Text: string(runes[start:i]), Offset: byteOffset(runes, start)})
		}
	}

	return tokens, nil
}

// byteOffset converts a rune index into a byte offset in the original
// string, so reported positions match what the user typed.
func byteOffset(runes []rune, runeIdx int) int {
	return len(string(runes[:runeIdx]))
}
