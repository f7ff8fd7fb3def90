package highlight

import (
	"strings"

	"github.com/glintsh/glint/internal/log"
)

// aligned pairs a parsed word with the raw glue that precedes it in the
// buffer. A trailing entry with an empty word carries any raw bytes left
// after the last word.
type aligned struct {
	glue string
	word string
}

// alignWords recovers the raw-buffer ranges the parsed words occupy. The
// parser may have stripped quotes and escapes, so each word is searched for
// in the remaining buffer; everything between matches is emitted verbatim.
// start is the end of the raw command slice, so word 0 is never re-emitted.
//
// When a word cannot be found (quote or escape stripping changed its literal
// text), alignment stops and the rest of the buffer becomes one verbatim
// unit. Best effort, never an error.
func alignWords(buffer string, start int, words []string) []aligned {
	out := make([]aligned, 0, len(words))
	idx := start
	for _, w := range words[1:] {
		if w == "" {
			continue
		}
		off := strings.Index(buffer[idx:], w)
		if off < 0 {
			log.Debug(log.CatHighlight, "word not found in raw buffer, emitting remainder verbatim", "word", w)
			out = append(out, aligned{glue: buffer[idx:]})
			return out
		}
		wordStart := idx + off
		out = append(out, aligned{glue: buffer[idx:wordStart], word: w})
		idx = wordStart + len(w)
	}
	if idx < len(buffer) {
		out = append(out, aligned{glue: buffer[idx:]})
	}
	return out
}
