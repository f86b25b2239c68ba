package diff

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(lines []Line) []Kind {
	out := make([]Kind, len(lines))
	for i, l := range lines {
		out[i] = l.Kind
	}
	return out
}

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want []Kind
	}{
		{
			name: "identical single line",
			a:    "hi\n",
			b:    "hi\n",
			want: []Kind{Unchanged, Unchanged},
		},
		{
			name: "single line replaced",
			a:    "hi\n",
			b:    "bye\n",
			want: []Kind{Removed, Added, Unchanged},
		},
		{
			name: "line added in middle",
			a:    "a\nc\n",
			b:    "a\nb\nc\n",
			want: []Kind{Unchanged, Added, Unchanged, Unchanged},
		},
		{
			name: "line removed at end",
			a:    "a\nb\n",
			b:    "a\n",
			want: []Kind{Unchanged, Removed, Unchanged},
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: []Kind{Unchanged},
		},
		{
			name: "empty vs content",
			a:    "",
			b:    "x",
			want: []Kind{Removed, Added},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines([]byte(tt.a), []byte(tt.b))
			assert.Equal(t, tt.want, kinds(got))
		})
	}
}

func TestLines_ReplacedPairCarriesText(t *testing.T) {
	got := Lines([]byte("hi\n"), []byte("bye\n"))
	require.Len(t, got, 3)
	assert.Equal(t, Removed, got[0].Kind)
	assert.Equal(t, "hi", string(got[0].Text))
	assert.Equal(t, Added, got[1].Kind)
	assert.Equal(t, "bye", string(got[1].Text))
}

func TestLines_SelfDiffReconstructs(t *testing.T) {
	blobs := [][]byte{
		[]byte("one\ntwo\nthree\n"),
		[]byte("no trailing newline"),
		[]byte("embedded \r carriage\r\nreturns\n"),
		{0x00, 0x01, '\n', 0xff, 0xfe},
		{},
	}

	for _, blob := range blobs {
		got := Lines(blob, blob)

		var parts [][]byte
		for _, line := range got {
			require.Equal(t, Unchanged, line.Kind)
			parts = append(parts, line.Text)
		}
		assert.Equal(t, blob, bytes.Join(parts, []byte{'\n'}))
	}
}

func TestLines_BinarySafe(t *testing.T) {
	a := []byte{0xde, 0xad, '\n', 0xbe, 0xef}
	b := []byte{0xde, 0xad, '\n', 0xca, 0xfe}

	got := Lines(a, b)
	assert.Equal(t, []Kind{Unchanged, Removed, Added}, kinds(got))
	assert.Equal(t, []byte{0xbe, 0xef}, got[1].Text)
	assert.Equal(t, []byte{0xca, 0xfe}, got[2].Text)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal([]byte("a"), []byte("a")))
	assert.True(t, Equal(nil, []byte{}))
	assert.False(t, Equal([]byte("a"), []byte("b")))
}
