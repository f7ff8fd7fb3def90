package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainOf reassembles the raw text an alignment covers.
func plainOf(start int, buffer string, als []aligned) string {
	var sb strings.Builder
	sb.WriteString(buffer[:start])
	for _, al := range als {
		sb.WriteString(al.glue)
		sb.WriteString(al.word)
	}
	return sb.String()
}

func TestAlignWords(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		start  int
		words  []string
		want   []aligned
	}{
		{
			name:   "simple args",
			buffer: "cat a.txt b.txt",
			start:  3,
			words:  []string{"cat", "a.txt", "b.txt"},
			want: []aligned{
				{glue: " ", word: "a.txt"},
				{glue: " ", word: "b.txt"},
			},
		},
		{
			name:   "multiple spaces preserved",
			buffer: "cat   a.txt",
			start:  3,
			words:  []string{"cat", "a.txt"},
			want:   []aligned{{glue: "   ", word: "a.txt"}},
		},
		{
			name:   "quotes around word preserved as glue",
			buffer: `cat "my file.txt"`,
			start:  3,
			words:  []string{"cat", "my file.txt"},
			want: []aligned{
				{glue: ` "`, word: "my file.txt"},
				{glue: `"`},
			},
		},
		{
			name:   "trailing whitespace kept",
			buffer: "cat a.txt  ",
			start:  3,
			words:  []string{"cat", "a.txt"},
			want: []aligned{
				{glue: " ", word: "a.txt"},
				{glue: "  "},
			},
		},
		{
			name:   "word not in buffer truncates alignment",
			buffer: "cat abc def",
			start:  3,
			words:  []string{"cat", "zzz", "def"},
			want:   []aligned{{glue: " abc def"}},
		},
		{
			name:   "empty words skipped",
			buffer: "cat a.txt",
			start:  3,
			words:  []string{"cat", "", "a.txt"},
			want:   []aligned{{glue: " ", word: "a.txt"}},
		},
		{
			name:   "no argument words",
			buffer: "cat ",
			start:  3,
			words:  []string{"cat"},
			want:   []aligned{{glue: " "}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alignWords(tt.buffer, tt.start, tt.words)
			assert.Equal(t, tt.want, got)
			require.Equal(t, tt.buffer, plainOf(tt.start, tt.buffer, got),
				"alignment must cover the raw buffer exactly")
		})
	}
}

func TestAlignWords_EscapedWordDiverges(t *testing.T) {
	// The parser strips the backslash, so the word text differs from the
	// raw buffer and cannot be found; the remainder is echoed verbatim.
	buffer := `cat my\ file.txt`
	words := []string{"cat", "my file.txt"}

	got := alignWords(buffer, 3, words)
	require.Equal(t, []aligned{{glue: ` my\ file.txt`}}, got)
	require.Equal(t, buffer, plainOf(3, buffer, got))
}
