// Package highlight renders an interactive input line with colors without
// altering it: the command token, filesystem path arguments colored per
// segment, and optionally an embedded language. The output is visually
// lossless: concatenating its plain text reproduces the buffer exactly.
package highlight

import (
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// SyntaxHighlighter styles a slice of the buffer. Implementations must
// preserve the input text exactly; only styling may differ.
type SyntaxHighlighter interface {
	Highlight(text string) Text
}

// Func adapts a function to the SyntaxHighlighter interface.
type Func func(text string) Text

// Highlight calls f.
func (f Func) Highlight(text string) Text { return f(text) }

// Parser splits a buffer into words and normalizes command names. The word
// split uses completion semantics: an unterminated final quote still yields
// the trailing word.
type Parser interface {
	SplitWords(line string) []string
	CommandName(word string) string
}

// Registry answers whether a name is a runnable command, script, or alias.
type Registry interface {
	IsCommandOrScript(name string) bool
	IsCommandAlias(name string) bool
}

// StyleResolver maps a file-role key (".ln", ".di", ".ex", ".fi") or an
// extension pattern (".*.go") to a style. ok is false when no style is
// configured for the key.
type StyleResolver interface {
	Resolve(key string) (lipgloss.Style, bool)
}

// PathConfig describes the path conventions used when splitting file
// arguments. It is passed in rather than detected so highlighting stays
// testable across platforms.
type PathConfig struct {
	// Separator is the platform path separator, e.g. "/" or "\\".
	Separator string
	// ForwardSlash forces "/" regardless of Separator.
	ForwardSlash bool
	// DriveLetters recognizes "C:" style prefixes. It also marks a platform
	// that does not track the executable bit, so the executable style is
	// skipped.
	DriveLetters bool
}

// DefaultPathConfig returns the conventions of the running platform.
func DefaultPathConfig() PathConfig {
	return PathConfig{
		Separator:    string(os.PathSeparator),
		DriveLetters: runtime.GOOS == "windows",
	}
}

// EffectiveSeparator returns the separator file arguments are split on.
func (p PathConfig) EffectiveSeparator() string {
	if p.ForwardSlash {
		return "/"
	}
	return p.Separator
}

// Snapshot is a read-only view of the editor state for one highlight call.
type Snapshot struct {
	// SearchTerm is the active incremental-search term, empty when none.
	SearchTerm string
	// Selection reports whether a region selection is active.
	Selection bool
	// ErrorIndex is the position of an active error marker, negative when
	// none.
	ErrorIndex int
	// ErrorPattern is the active error pattern, empty when none.
	ErrorPattern string
	// Paths carries the path conventions for file-argument highlighting.
	Paths PathConfig
}

// NewSnapshot returns a Snapshot with no active editor state and the
// platform path conventions.
func NewSnapshot() Snapshot {
	return Snapshot{ErrorIndex: -1, Paths: DefaultPathConfig()}
}

// editorStateActive reports whether search, selection, or an error marker is
// active, in which case the buffer is handed to the default highlighter.
func (s Snapshot) editorStateActive() bool {
	return s.SearchTerm != "" || s.Selection || s.ErrorIndex > -1 || s.ErrorPattern != ""
}

// Mode identifies the dispatch route chosen for a buffer.
type Mode int

const (
	// ModePlain passes the buffer through unstyled, or hands it to the
	// default highlighter when editor state (search, selection, error) is
	// active.
	ModePlain Mode = iota
	// ModeFile highlights arguments of a registered file command as paths.
	ModeFile
	// ModeCommand splits a known command into command and argument slices.
	ModeCommand
	// ModeLang hands the whole buffer to the language highlighter.
	ModeLang
)

func (m Mode) String() string {
	switch m {
	case ModeFile:
		return "file"
	case ModeCommand:
		return "command"
	case ModeLang:
		return "lang"
	default:
		return "plain"
	}
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithCommandHighlighter sets the styler for the command slice.
func WithCommandHighlighter(h SyntaxHighlighter) Option {
	return func(hl *Highlighter) { hl.command = h }
}

// WithArgsHighlighter sets the styler for the argument slice and for
// flag-shaped file arguments.
func WithArgsHighlighter(h SyntaxHighlighter) Option {
	return func(hl *Highlighter) { hl.args = h }
}

// WithLangHighlighter sets the fallback language highlighter used when the
// first word is not a known command.
func WithLangHighlighter(h SyntaxHighlighter) Option {
	return func(hl *Highlighter) { hl.lang = h }
}

// WithDefaultHighlighter sets the highlighter used while search, selection,
// or an error marker is active.
func WithDefaultHighlighter(h SyntaxHighlighter) Option {
	return func(hl *Highlighter) { hl.fallback = h }
}

// Highlighter decides which sub-highlighter applies to which slice of the
// buffer. Collaborators are injected at construction; there is no global
// state. Safe for concurrent use: the file-highlight set is guarded by a
// read-mostly lock so configuration never corrupts an in-flight call.
type Highlighter struct {
	parser   Parser
	registry Registry
	resolver StyleResolver

	command  SyntaxHighlighter
	args     SyntaxHighlighter
	lang     SyntaxHighlighter
	fallback SyntaxHighlighter

	mu            sync.RWMutex
	fileHighlight map[string]struct{}
}

// New creates a Highlighter. Any sub-highlighter left unset passes its slice
// through unstyled.
func New(parser Parser, registry Registry, resolver StyleResolver, opts ...Option) *Highlighter {
	h := &Highlighter{
		parser:        parser,
		registry:      registry,
		resolver:      resolver,
		fileHighlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddFileHighlight registers commands whose arguments are highlighted as
// filesystem paths. Idempotent and order-independent.
func (h *Highlighter) AddFileHighlight(commands ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range commands {
		h.fileHighlight[c] = struct{}{}
	}
}

func (h *Highlighter) isFileCommand(name string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.fileHighlight[name]
	return ok
}

// Mode returns the dispatch route Highlight would take for the buffer.
func (h *Highlighter) Mode(buffer string, snap Snapshot) Mode {
	if snap.editorStateActive() {
		return ModePlain
	}
	trimmed := strings.TrimSpace(buffer)
	if trimmed == "" {
		return ModePlain
	}
	command := h.commandOf(trimmed)
	switch {
	case h.isFileCommand(command):
		return ModeFile
	case h.isKnownCommand(command):
		return ModeCommand
	case h.lang != nil:
		return ModeLang
	default:
		return ModePlain
	}
}

// Highlight returns the styled rendering of buffer. Every byte of the input
// appears exactly once, in order, in the result.
func (h *Highlighter) Highlight(buffer string, snap Snapshot) Text {
	if snap.editorStateActive() {
		if h.fallback != nil {
			return h.fallback.Highlight(buffer)
		}
		return Plain(buffer)
	}
	trimmed := strings.TrimSpace(buffer)
	if trimmed == "" {
		return Plain(buffer)
	}
	command := h.commandOf(trimmed)
	switch {
	case h.isFileCommand(command):
		return h.fileArgsHighlight(buffer, snap)
	case h.isKnownCommand(command):
		return h.commandHighlight(buffer)
	case h.lang != nil:
		return h.lang.Highlight(buffer)
	default:
		return Plain(buffer)
	}
}

// commandOf extracts the first maximal run of non-whitespace characters and
// normalizes it through the parser. Quote handling is the parser's job.
func (h *Highlighter) commandOf(trimmed string) string {
	first := trimmed
	if i := strings.IndexFunc(trimmed, isSpace); i >= 0 {
		first = trimmed[:i]
	}
	if h.parser != nil {
		return h.parser.CommandName(first)
	}
	return first
}

func (h *Highlighter) isKnownCommand(name string) bool {
	if h.registry == nil || name == "" {
		return false
	}
	return h.registry.IsCommandOrScript(name) || h.registry.IsCommandAlias(name)
}

// commandHighlight splits the buffer at the first whitespace boundary after
// the command token and styles the two slices independently.
func (h *Highlighter) commandHighlight(buffer string) Text {
	if h.command == nil && h.args == nil {
		return Plain(buffer)
	}
	var b Builder
	idx := commandIndex(buffer)
	if idx < 0 {
		h.styleCommand(buffer, &b)
	} else {
		h.styleCommand(buffer[:idx], &b)
		h.styleArgs(buffer[idx:], &b)
	}
	return b.Text()
}

// fileArgsHighlight styles the command slice, then aligns the parsed
// argument words back onto the raw buffer and highlights each as a path.
// Raw glue between words (whitespace, quotes, escapes) is echoed verbatim.
func (h *Highlighter) fileArgsHighlight(buffer string, snap Snapshot) Text {
	var b Builder
	idx := commandIndex(buffer)
	if idx < 0 {
		h.styleCommand(buffer, &b)
		return b.Text()
	}
	h.styleCommand(buffer[:idx], &b)

	var words []string
	if h.parser != nil {
		words = h.parser.SplitWords(buffer)
	}
	if len(words) < 2 {
		b.Plain(buffer[idx:])
		return b.Text()
	}
	for _, al := range alignWords(buffer, idx, words) {
		b.Plain(al.glue)
		if al.word != "" {
			h.fileArg(al.word, snap, &b)
		}
	}
	return b.Text()
}

func (h *Highlighter) styleCommand(s string, b *Builder) {
	if h.command != nil {
		b.Append(h.command.Highlight(s))
	} else {
		b.Plain(s)
	}
}

func (h *Highlighter) styleArgs(s string, b *Builder) {
	if h.args != nil {
		b.Append(h.args.Highlight(s))
	} else {
		b.Plain(s)
	}
}

// commandIndex returns the index of the first space after the leading
// command token, or -1 when the buffer has no split point.
func commandIndex(buffer string) int {
	cmdFound := false
	for i := 0; i < len(buffer); i++ {
		switch {
		case buffer[i] != ' ' && buffer[i] != '\t':
			cmdFound = true
		case cmdFound:
			return i
		}
	}
	return -1
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
