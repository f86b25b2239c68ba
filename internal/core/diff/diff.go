// Package diff implements a line-oriented diff over raw bytes.
//
// Blobs are split on line feeds only (a CR is ordinary data), so the
// diff is safe on content that is not valid text. The edit script is
// the classic longest-common-subsequence line diff.
package diff

import "bytes"

// Kind classifies a single line of a diff.
type Kind int

const (
	Unchanged Kind = iota
	Added
	Removed
)

// Line is one annotated line of the edit script, in display order.
type Line struct {
	Kind Kind
	Text []byte
}

// SplitLines splits a blob on LF boundaries. The result always has at
// least one element; a trailing newline yields a final empty line.
func SplitLines(b []byte) [][]byte {
	return bytes.Split(b, []byte{'\n'})
}

// Equal reports whether two blobs are byte-identical.
func Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}

// Lines computes the minimal line edit script turning a into b.
// Removed lines come from a, Added lines from b; unchanged lines are
// emitted once. Diffing a blob against itself yields only Unchanged
// lines whose LF-joined concatenation reconstructs the input exactly.
func Lines(a, b []byte) []Line {
	al := SplitLines(a)
	bl := SplitLines(b)

	// LCS length table: lcs[i][j] is the LCS of al[i:] and bl[j:].
	lcs := make([][]int, len(al)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(bl)+1)
	}
	for i := len(al) - 1; i >= 0; i-- {
		for j := len(bl) - 1; j >= 0; j-- {
			if bytes.Equal(al[i], bl[j]) {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var out []Line
	i, j := 0, 0
	for i < len(al) && j < len(bl) {
		switch {
		case bytes.Equal(al[i], bl[j]):
			out = append(out, Line{Kind: Unchanged, Text: al[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			out = append(out, Line{Kind: Removed, Text: al[i]})
			i++
		default:
			out = append(out, Line{Kind: Added, Text: bl[j]})
			j++
		}
	}
	for ; i < len(al); i++ {
		out = append(out, Line{Kind: Removed, Text: al[i]})
	}
	for ; j < len(bl); j++ {
		out = append(out, Line{Kind: Added, Text: bl[j]})
	}

	return out
}
