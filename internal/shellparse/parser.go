// Package shellparse splits a shell-like input line into words and
// normalizes command names. The split uses completion semantics: a quote
// left unterminated while the user is still typing yields the trailing word
// instead of an error.
package shellparse

import (
	"strings"
	"unicode"
)

// Parser tokenizes shell-like input. The zero value is not usable; create
// one with New.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// SplitWords splits line into words, honoring single quotes, double quotes,
// and backslash escaping outside single quotes. Quote and escape characters
// are stripped from the returned words. An unterminated final quote or
// trailing escape still yields the partial word.
func (p *Parser) SplitWords(line string) []string {
	var out []string
	var cur []rune
	inSingle := false
	inDouble := false
	escaped := false

	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
	}

	for _, r := range line {
		if escaped {
			cur = append(cur, r)
			escaped = false
			continue
		}
		switch {
		case r == '\\' && !inSingle:
			escaped = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case !inSingle && !inDouble && unicode.IsSpace(r):
			flush()
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return out
}

// CommandName normalizes the first word of a buffer for classification.
// Surrounding quotes are stripped; a pure variable assignment (NAME=value)
// is not a command and normalizes to "".
func (p *Parser) CommandName(word string) string {
	word = stripQuotes(word)
	if isAssignment(word) {
		return ""
	}
	return word
}

func stripQuotes(word string) string {
	if len(word) >= 2 {
		first, last := word[0], word[len(word)-1]
		if (first == '\'' || first == '"') && first == last {
			return word[1 : len(word)-1]
		}
	}
	// An unterminated leading quote is still being typed; classify on the
	// content so far.
	if len(word) >= 1 && (word[0] == '\'' || word[0] == '"') {
		return word[1:]
	}
	return word
}

// isAssignment reports whether word has the NAME=value shape.
func isAssignment(word string) bool {
	eq := strings.IndexByte(word, '=')
	if eq <= 0 {
		return false
	}
	for i, r := range word[:eq] {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
