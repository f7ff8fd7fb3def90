package lineinput

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func init() {
	// Force ANSI color output in tests (lipgloss disables colors when no TTY)
	lipgloss.SetColorProfile(termenv.ANSI256)
}

// testHighlight styles the first word and leaves the rest alone.
func testHighlight(s string) string {
	cmd, rest, found := strings.Cut(s, " ")
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	if !found {
		return style.Render(cmd)
	}
	return style.Render(cmd) + " " + rest
}

func TestNew_DefaultValues(t *testing.T) {
	m := New(testHighlight)

	if m.Value() != "" {
		t.Errorf("expected empty value, got %q", m.Value())
	}
	if m.Cursor() != 0 {
		t.Errorf("expected cursor at 0, got %d", m.Cursor())
	}
	if m.Focused() {
		t.Error("expected not focused by default")
	}
	if m.Width() != 40 {
		t.Errorf("expected width 40, got %d", m.Width())
	}
}

func TestSetValue_ClampsCursor(t *testing.T) {
	m := New(nil)
	m.SetValue("hello")
	m.SetCursor(5)

	m.SetValue("hi")

	if m.Cursor() != 2 {
		t.Errorf("expected cursor clamped to 2, got %d", m.Cursor())
	}
}

func TestSetCursor_ClampsToRange(t *testing.T) {
	m := New(nil)
	m.SetValue("test")

	m.SetCursor(-5)
	if m.Cursor() != 0 {
		t.Errorf("expected 0 for negative, got %d", m.Cursor())
	}

	m.SetCursor(100)
	if m.Cursor() != 4 {
		t.Errorf("expected 4 (length), got %d", m.Cursor())
	}

	m.SetCursor(2)
	if m.Cursor() != 2 {
		t.Errorf("expected 2, got %d", m.Cursor())
	}
}

func TestFocusBlur(t *testing.T) {
	m := New(nil)

	m.Focus()
	if !m.Focused() {
		t.Error("expected focused after Focus()")
	}

	m.Blur()
	if m.Focused() {
		t.Error("expected not focused after Blur()")
	}
}

func TestSetWidth_Minimum(t *testing.T) {
	m := New(nil)

	m.SetWidth(100)
	if m.Width() != 100 {
		t.Errorf("expected 100, got %d", m.Width())
	}

	m.SetWidth(0)
	if m.Width() != 1 {
		t.Errorf("expected minimum width 1, got %d", m.Width())
	}
}

func TestUpdate_NotFocused_IgnoresKeys(t *testing.T) {
	m := New(nil)
	m.SetValue("test")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	if m.Value() != "test" {
		t.Errorf("expected value unchanged when not focused, got %q", m.Value())
	}
}

func TestUpdate_InsertChars(t *testing.T) {
	m := New(nil)
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	if m.Value() != "ls" {
		t.Errorf("expected 'ls', got %q", m.Value())
	}
	if m.Cursor() != 2 {
		t.Errorf("expected cursor at 2, got %d", m.Cursor())
	}
}

func TestUpdate_InsertInMiddle(t *testing.T) {
	m := New(nil)
	m.SetValue("hllo")
	m.SetCursor(1)
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	if m.Value() != "hello" {
		t.Errorf("expected 'hello', got %q", m.Value())
	}
	if m.Cursor() != 2 {
		t.Errorf("expected cursor at 2, got %d", m.Cursor())
	}
}

func TestUpdate_InsertMultibyteRune(t *testing.T) {
	m := New(nil)
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'é'}})

	if m.Value() != "é" {
		t.Errorf("expected 'é', got %q", m.Value())
	}
	if m.Cursor() != len("é") {
		t.Errorf("expected cursor past rune bytes, got %d", m.Cursor())
	}
}

func TestUpdate_Space(t *testing.T) {
	m := New(nil)
	m.SetValue("ab")
	m.SetCursor(1)
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})

	if m.Value() != "a b" {
		t.Errorf("expected 'a b', got %q", m.Value())
	}
}

func TestUpdate_Backspace(t *testing.T) {
	m := New(nil)
	m.SetValue("hello")
	m.SetCursor(5)
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if m.Value() != "hell" {
		t.Errorf("expected 'hell', got %q", m.Value())
	}
	if m.Cursor() != 4 {
		t.Errorf("expected cursor at 4, got %d", m.Cursor())
	}

	m.SetCursor(0)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Value() != "hell" {
		t.Errorf("expected unchanged at start, got %q", m.Value())
	}
}

func TestUpdate_Delete(t *testing.T) {
	m := New(nil)
	m.SetValue("hello")
	m.SetCursor(0)
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDelete})

	if m.Value() != "ello" {
		t.Errorf("expected 'ello', got %q", m.Value())
	}

	m.SetCursor(4)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if m.Value() != "ello" {
		t.Errorf("expected unchanged at end, got %q", m.Value())
	}
}

func TestUpdate_KillLine(t *testing.T) {
	m := New(nil)
	m.SetValue("ls -la /tmp")
	m.SetCursor(2)
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	if m.Value() != "ls" {
		t.Errorf("expected 'ls' after ctrl+k, got %q", m.Value())
	}

	m.SetValue("ls -la")
	m.SetCursor(3)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if m.Value() != "-la" {
		t.Errorf("expected '-la' after ctrl+u, got %q", m.Value())
	}
	if m.Cursor() != 0 {
		t.Errorf("expected cursor at 0 after ctrl+u, got %d", m.Cursor())
	}
}

func TestUpdate_KillWord(t *testing.T) {
	m := New(nil)
	m.SetValue("cat file.txt")
	m.SetCursor(12)
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})

	if m.Value() != "cat file." {
		t.Errorf("expected 'cat file.' after ctrl+w, got %q", m.Value())
	}
	if m.Cursor() != 9 {
		t.Errorf("expected cursor at 9, got %d", m.Cursor())
	}
}

func TestUpdate_CursorMovement(t *testing.T) {
	m := New(nil)
	m.SetValue("hello")
	m.SetCursor(2)
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Cursor() != 1 {
		t.Errorf("expected cursor at 1 after left, got %d", m.Cursor())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Cursor() != 2 {
		t.Errorf("expected cursor at 2 after right, got %d", m.Cursor())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if m.Cursor() != 0 {
		t.Errorf("expected cursor at 0 after home, got %d", m.Cursor())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	if m.Cursor() != 5 {
		t.Errorf("expected cursor at 5 after end, got %d", m.Cursor())
	}

	// bounds
	m.SetCursor(0)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Cursor() != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", m.Cursor())
	}
	m.SetCursor(5)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Cursor() != 5 {
		t.Errorf("expected cursor to stay at 5, got %d", m.Cursor())
	}
}

func TestUpdate_WordNavigation(t *testing.T) {
	keys := []struct {
		name string
		msg  tea.KeyMsg
		from int
		want int
	}{
		{"alt+right forward", tea.KeyMsg{Type: tea.KeyRight, Alt: true}, 0, 5},
		{"alt+left backward", tea.KeyMsg{Type: tea.KeyLeft, Alt: true}, 11, 6},
		{"alt+f forward", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}, Alt: true}, 0, 5},
		{"alt+b backward", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true}, 11, 6},
	}

	for _, tt := range keys {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil)
			m.SetValue("hello world")
			m.SetCursor(tt.from)
			m.Focus()

			m, _ = m.Update(tt.msg)

			if m.Cursor() != tt.want {
				t.Errorf("expected cursor at %d, got %d", tt.want, m.Cursor())
			}
			if m.Value() != "hello world" {
				t.Errorf("expected value unchanged, got %q", m.Value())
			}
		})
	}
}

func TestNextWordEnd(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		pos      int
		expected int
	}{
		{"from start", "hello world", 0, 5},
		{"from middle of word", "hello world", 2, 5},
		{"from space", "hello world", 5, 11},
		{"at end", "hello", 5, 5},
		{"with punctuation", "file.txt", 0, 4},
		{"multiple spaces", "a   b", 0, 1},
		{"empty string", "", 0, 0},
		{"underscores", "my_var next", 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := nextWordEnd(tt.s, tt.pos)
			if result != tt.expected {
				t.Errorf("nextWordEnd(%q, %d) = %d, expected %d", tt.s, tt.pos, result, tt.expected)
			}
		})
	}
}

func TestPrevWordStart(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		pos      int
		expected int
	}{
		{"from end", "hello world", 11, 6},
		{"from middle of second word", "hello world", 8, 6},
		{"from space", "hello world", 6, 0},
		{"at start", "hello", 0, 0},
		{"with punctuation", "file.txt", 8, 5},
		{"empty string", "", 0, 0},
		{"underscores", "my_var next", 11, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := prevWordStart(tt.s, tt.pos)
			if result != tt.expected {
				t.Errorf("prevWordStart(%q, %d) = %d, expected %d", tt.s, tt.pos, result, tt.expected)
			}
		})
	}
}

func TestView_EmptyFocused(t *testing.T) {
	m := New(nil)
	m.Focus()

	view := m.View()
	if !strings.Contains(view, cursorOn) {
		t.Error("expected cursor for focused empty input")
	}
}

func TestView_EmptyNotFocused(t *testing.T) {
	m := New(nil)

	if view := m.View(); view != "" {
		t.Errorf("expected empty view, got %q", view)
	}
}

func TestView_Placeholder(t *testing.T) {
	m := New(nil)
	m.SetPlaceholder("Type a command")

	view := m.View()
	if !strings.Contains(view, "Type a command") {
		t.Errorf("expected placeholder in view, got %q", view)
	}
}

func TestView_PlaceholderTruncated(t *testing.T) {
	m := New(nil)
	m.SetWidth(10)
	m.SetPlaceholder("a very long placeholder that cannot fit")

	view := m.View()
	if ansi.StringWidth(view) > 10 {
		t.Errorf("expected placeholder truncated to width, got width %d: %q", ansi.StringWidth(view), view)
	}
	if !strings.Contains(view, "…") {
		t.Errorf("expected ellipsis in truncated placeholder, got %q", view)
	}
}

func TestView_HighlightHookRuns(t *testing.T) {
	m := New(testHighlight)
	m.SetValue("ls -la")

	view := m.View()
	if !strings.Contains(view, "\x1b[") {
		t.Error("expected ANSI codes in view for highlighting")
	}
	if !strings.Contains(view, "-la") {
		t.Errorf("expected args in view, got %q", view)
	}
}

func TestView_NilHookVerbatim(t *testing.T) {
	m := New(nil)
	m.SetValue("ls -la")

	if view := m.View(); view != "ls -la" {
		t.Errorf("expected verbatim value, got %q", view)
	}
}

func TestView_FocusedShowsOneCursor(t *testing.T) {
	m := New(testHighlight)
	m.SetValue("ls -la /tmp")
	m.Focus()

	for pos := 0; pos <= len(m.Value()); pos++ {
		m.SetCursor(pos)
		view := m.View()
		if n := strings.Count(view, cursorOn); n != 1 {
			t.Errorf("cursor at %d: expected exactly 1 cursor marker, got %d", pos, n)
		}
	}
}

func TestView_CursorPreservesText(t *testing.T) {
	m := New(testHighlight)
	m.SetValue("cat notes.txt")
	m.Focus()
	m.SetCursor(4)

	view := m.View()
	if got := ansi.Strip(view); got != "cat notes.txt" {
		t.Errorf("expected stripped view to equal value, got %q", got)
	}
}

func TestHeight(t *testing.T) {
	m := New(nil)
	m.SetWidth(40)

	if m.Height() != 1 {
		t.Errorf("expected height 1 for empty, got %d", m.Height())
	}

	m.SetValue("ls -la")
	if m.Height() != 1 {
		t.Errorf("expected height 1 for short text, got %d", m.Height())
	}

	m.SetWidth(20)
	m.SetValue("cp src/main.go build/output/main.go backup/main.go")
	if m.Height() < 2 {
		t.Errorf("expected height >= 2 for long text, got %d", m.Height())
	}
}

func TestView_MultiLine(t *testing.T) {
	m := New(testHighlight)
	m.SetWidth(20)
	m.SetValue("cp src/main.go build/output/main.go backup/main.go")

	view := m.View()
	if !strings.Contains(view, "\n") {
		t.Error("expected newlines in wrapped text")
	}

	lineCount := strings.Count(view, "\n") + 1
	if lineCount != m.Height() {
		t.Errorf("expected %d lines (from Height()), got %d", m.Height(), lineCount)
	}

	// No visible content lost to wrapping.
	joined := strings.ReplaceAll(ansi.Strip(view), "\n", "")
	if joined != m.Value() {
		t.Errorf("expected wrap to preserve all characters, got %q", joined)
	}
}

func TestView_WordBoundaryWrapping(t *testing.T) {
	m := New(nil)
	m.SetWidth(15)
	m.SetValue("mv old name.txt archive dir backup")

	lines := strings.Split(m.View(), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %d", len(lines))
	}
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > 15+1 {
			t.Errorf("line too long: width=%d, line=%q", w, line)
		}
	}
}

func TestView_HardBreakLongRun(t *testing.T) {
	m := New(nil)
	m.SetWidth(10)
	m.SetValue(strings.Repeat("x", 25))

	view := m.View()
	joined := strings.ReplaceAll(view, "\n", "")
	if joined != m.Value() {
		t.Errorf("expected hard break to preserve all characters, got %q", joined)
	}
	if strings.Count(view, "\n") != 2 {
		t.Errorf("expected 3 lines, got %d", strings.Count(view, "\n")+1)
	}
}
