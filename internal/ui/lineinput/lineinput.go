// Package lineinput provides a single-line text input with live syntax
// highlighting and ANSI-aware wrapping.
package lineinput

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/glintsh/glint/internal/styles"
)

// HighlightFunc renders a buffer to a styled string. The plain text of the
// result must equal the input; the cursor mapping depends on it.
type HighlightFunc func(string) string

// Model is a single-line text input. The highlight hook runs on every
// render, so edits restyle immediately.
type Model struct {
	value       string
	cursor      int // byte position, 0 = before first char
	focused     bool
	width       int
	placeholder string
	highlight   HighlightFunc

	cursorStyle      lipgloss.Style
	placeholderStyle lipgloss.Style
}

// New creates an input with the given highlight hook. A nil hook renders
// the value verbatim.
func New(highlight HighlightFunc) Model {
	return Model{
		width:            40,
		highlight:        highlight,
		cursorStyle:      lipgloss.NewStyle().Reverse(true),
		placeholderStyle: lipgloss.NewStyle().Foreground(styles.PlaceholderColor),
	}
}

// Value returns the current text value.
func (m Model) Value() string {
	return m.value
}

// SetValue sets the text value and clamps the cursor.
func (m *Model) SetValue(v string) {
	m.value = v
	if m.cursor > len(v) {
		m.cursor = len(v)
	}
}

// Cursor returns the current cursor position.
func (m Model) Cursor() int {
	return m.cursor
}

// SetCursor sets the cursor position, clamped to the value bounds.
func (m *Model) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(m.value) {
		pos = len(m.value)
	}
	m.cursor = pos
}

// Focused returns whether the input is focused.
func (m Model) Focused() bool {
	return m.focused
}

// Focus focuses the input.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes focus from the input.
func (m *Model) Blur() {
	m.focused = false
}

// SetWidth sets the display width.
func (m *Model) SetWidth(w int) {
	if w < 1 {
		w = 1
	}
	m.width = w
}

// Width returns the display width.
func (m Model) Width() int {
	return m.width
}

// SetPlaceholder sets the placeholder shown while the value is empty.
func (m *Model) SetPlaceholder(p string) {
	m.placeholder = p
}

// Height returns the number of display lines the current content needs.
func (m Model) Height() int {
	lines := m.wrapped()
	if len(lines) == 0 {
		return 1
	}
	return len(lines)
}

// Update handles key messages. Unfocused inputs ignore everything.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyLeft:
			if msg.Alt {
				m.cursor = prevWordStart(m.value, m.cursor)
			} else if m.cursor > 0 {
				m.cursor--
			}
		case tea.KeyRight:
			if msg.Alt {
				m.cursor = nextWordEnd(m.value, m.cursor)
			} else if m.cursor < len(m.value) {
				m.cursor++
			}
		case tea.KeyHome, tea.KeyCtrlA:
			m.cursor = 0
		case tea.KeyEnd, tea.KeyCtrlE:
			m.cursor = len(m.value)
		case tea.KeyBackspace:
			if m.cursor > 0 {
				m.value = m.value[:m.cursor-1] + m.value[m.cursor:]
				m.cursor--
			}
		case tea.KeyDelete:
			if m.cursor < len(m.value) {
				m.value = m.value[:m.cursor] + m.value[m.cursor+1:]
			}
		case tea.KeyCtrlK:
			// Kill to end of line
			m.value = m.value[:m.cursor]
		case tea.KeyCtrlU:
			// Kill to beginning of line
			m.value = m.value[m.cursor:]
			m.cursor = 0
		case tea.KeyCtrlW:
			// Kill previous word
			start := prevWordStart(m.value, m.cursor)
			m.value = m.value[:start] + m.value[m.cursor:]
			m.cursor = start
		case tea.KeyRunes:
			// Alt+f/b word navigation (macOS option+arrow sends these)
			if msg.Alt && len(msg.Runes) == 1 {
				switch msg.Runes[0] {
				case 'f':
					m.cursor = nextWordEnd(m.value, m.cursor)
					return m, nil
				case 'b':
					m.cursor = prevWordStart(m.value, m.cursor)
					return m, nil
				}
			}
			for _, r := range msg.Runes {
				m.value = m.value[:m.cursor] + string(r) + m.value[m.cursor:]
				m.cursor += len(string(r))
			}
		case tea.KeySpace:
			m.value = m.value[:m.cursor] + " " + m.value[m.cursor:]
			m.cursor++
		}
	}

	return m, nil
}

// ANSI codes for the cursor. Only reverse video is toggled so the codes
// compose with whatever style the highlighter put on the character.
const (
	cursorOn  = "\x1b[7m"
	cursorOff = "\x1b[27m"
)

// View renders the input. Returns multiple lines joined by newlines when
// the content exceeds the width.
func (m Model) View() string {
	return strings.Join(m.wrapped(), "\n")
}

func (m Model) highlighted() string {
	if m.highlight == nil {
		return m.value
	}
	return m.highlight(m.value)
}

func (m Model) wrapped() []string {
	if m.value == "" {
		if m.focused {
			return []string{cursorOn + " " + cursorOff}
		}
		if m.placeholder != "" {
			p := runewidth.Truncate(m.placeholder, m.width, "…")
			return []string{m.placeholderStyle.Render(p)}
		}
		return []string{""}
	}

	out := m.highlighted()
	if m.focused {
		out = insertCursor(out, m.value, m.cursor)
	}

	if ansi.StringWidth(out) <= m.width {
		return []string{out}
	}
	return wrapStyled(out, m.width)
}

// wrapStyled wraps styled text at word boundaries, preserving every byte.
// Escape sequences carry zero width and never split.
func wrapStyled(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		maxWidth = 40
	}

	var lines []string
	var line strings.Builder
	width := 0
	lastSpaceIdx := -1  // byte index in line of the last space
	lastSpaceWidth := 0 // visual width up to that space

	i := 0
	for i < len(text) {
		if text[i] == '\x1b' {
			start := i
			for i < len(text) && text[i] != 'm' {
				i++
			}
			if i < len(text) {
				i++
			}
			line.WriteString(text[start:i])
			continue
		}

		if width >= maxWidth {
			if lastSpaceIdx > 0 {
				content := line.String()
				lines = append(lines, content[:lastSpaceIdx+1])
				rest := content[lastSpaceIdx+1:]
				line.Reset()
				line.WriteString(rest)
				width = width - lastSpaceWidth - 1
			} else {
				lines = append(lines, line.String())
				line.Reset()
				width = 0
			}
			lastSpaceIdx = -1
			lastSpaceWidth = 0
		}

		if text[i] == ' ' {
			lastSpaceIdx = line.Len()
			lastSpaceWidth = width
		}

		line.WriteByte(text[i])
		width++
		i++
	}

	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// insertCursor places the cursor at the given position of the styled text
// by walking original and styled strings in lockstep, skipping escapes.
func insertCursor(styled, original string, cursor int) string {
	if cursor >= len(original) {
		return styled + cursorOn + " " + cursorOff
	}

	origIdx := 0
	sIdx := 0
	for origIdx < cursor && sIdx < len(styled) {
		if styled[sIdx] == '\x1b' {
			for sIdx < len(styled) && styled[sIdx] != 'm' {
				sIdx++
			}
			if sIdx < len(styled) {
				sIdx++
			}
			continue
		}
		origIdx++
		sIdx++
	}

	// Escapes sitting exactly at the cursor belong to the next run.
	for sIdx < len(styled) && styled[sIdx] == '\x1b' {
		for sIdx < len(styled) && styled[sIdx] != 'm' {
			sIdx++
		}
		if sIdx < len(styled) {
			sIdx++
		}
	}

	if sIdx >= len(styled) {
		return styled + cursorOn + " " + cursorOff
	}
	under := string(styled[sIdx])
	return styled[:sIdx] + cursorOn + under + cursorOff + styled[sIdx+1:]
}

// nextWordEnd finds the position after the word following pos.
func nextWordEnd(s string, pos int) int {
	n := len(s)
	for pos < n && !isWordChar(rune(s[pos])) {
		pos++
	}
	for pos < n && isWordChar(rune(s[pos])) {
		pos++
	}
	return pos
}

// prevWordStart finds the start of the word preceding pos.
func prevWordStart(s string, pos int) int {
	for pos > 0 && !isWordChar(rune(s[pos-1])) {
		pos--
	}
	for pos > 0 && isWordChar(rune(s[pos-1])) {
		pos--
	}
	return pos
}

func isWordChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
