// Package styles contains the directory-listing style table: a resolver
// from file-role keys and extension patterns to Lip Gloss styles.
package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/glintsh/glint/internal/highlight"
)

var (
	// Path segment colors.
	SymlinkColor    = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"} // teal
	DirectoryColor  = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue
	ExecutableColor = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"} // green
	FileColor       = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#CDD6F4"} // text

	// Command line colors.
	CommandColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve
	FlagColor    = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"} // red

	// CommandStyle is the default style for a recognized command token.
	CommandStyle = lipgloss.NewStyle().Foreground(CommandColor).Bold(true)

	// FlagStyle is the default style for flag-shaped argument tokens.
	FlagStyle = lipgloss.NewStyle().Foreground(FlagColor)

	// UI chrome colors.
	PlaceholderColor = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"} // overlay
	StatusColor      = lipgloss.AdaptiveColor{Light: "#7C7F93", Dark: "#9399B2"} // subtext
)

// Table maps role keys (".ln", ".di", ".ex", ".fi") and extension patterns
// (".*.go") to styles. It implements the highlight.StyleResolver interface.
// Safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	entries map[string]lipgloss.Style
}

// New creates an empty table: every lookup answers "no style configured".
func New() *Table {
	return &Table{entries: make(map[string]lipgloss.Style)}
}

// DefaultTable returns a table with the house palette for the four file
// roles and no extension patterns.
func DefaultTable() *Table {
	t := New()
	t.Set(highlight.KeySymlink, lipgloss.NewStyle().Foreground(SymlinkColor))
	t.Set(highlight.KeyDir, lipgloss.NewStyle().Foreground(DirectoryColor).Bold(true))
	t.Set(highlight.KeyExec, lipgloss.NewStyle().Foreground(ExecutableColor))
	t.Set(highlight.KeyFile, lipgloss.NewStyle().Foreground(FileColor))
	return t
}

// Set configures the style for a key.
func (t *Table) Set(key string, style lipgloss.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key] = style
}

// Resolve returns the style configured for key. ok is false when none is.
func (t *Table) Resolve(key string) (lipgloss.Style, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	style, ok := t.entries[key]
	return style, ok
}

// Keys returns the configured keys.
func (t *Table) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	return keys
}

// ApplyOverrides sets foreground colors from a key -> color map, as loaded
// from the theme config. Keys are resolver keys ("di", ".di", "*.go", and
// ".*.go" forms are all accepted); empty colors are ignored.
func (t *Table) ApplyOverrides(colors map[string]string) {
	for key, color := range colors {
		if color == "" {
			continue
		}
		t.Set(normalizeKey(key), lipgloss.NewStyle().Foreground(lipgloss.Color(color)))
	}
}

// normalizeKey maps LS_COLORS-style keys onto resolver keys.
func normalizeKey(key string) string {
	switch key {
	case "ln", "di", "ex", "fi":
		return "." + key
	}
	if len(key) > 1 && key[0] == '*' {
		// "*.go" -> ".*.go"
		return highlight.ExtKey(key[1:])
	}
	return key
}
