// Package playground provides an interactive TUI for trying the
// highlighter: a live input plus a status line naming the dispatch route.
package playground

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/glintsh/glint/internal/highlight"
	"github.com/glintsh/glint/internal/log"
	"github.com/glintsh/glint/internal/pubsub"
	"github.com/glintsh/glint/internal/styles"
	"github.com/glintsh/glint/internal/ui/lineinput"
)

const logTail = 3

// KeyMap defines the playground key bindings.
type KeyMap struct {
	Quit  key.Binding
	Clear key.Binding
	Route key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Route: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle route"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Clear, k.Route}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Options configures the playground.
type Options struct {
	Highlighter *highlight.Highlighter
	Placeholder string
	ShowRoute   bool
	Debug       bool
}

// ReloadMsg swaps in a rebuilt highlighter, sent when the config file
// changes under a running playground.
type ReloadMsg struct {
	Highlighter *highlight.Highlighter
}

type logMsg string

// Model holds the playground state.
type Model struct {
	input       lineinput.Model
	highlighter *highlight.Highlighter
	snap        highlight.Snapshot
	keys        KeyMap
	help        help.Model

	placeholder string
	showRoute   bool
	debug       bool
	logs      []string
	logCh     <-chan pubsub.Event[string]
	cancelLog context.CancelFunc

	width    int
	height   int
	quitting bool

	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style
}

// New creates a playground model around the given highlighter.
func New(opts Options) Model {
	m := Model{
		highlighter: opts.Highlighter,
		snap:        highlight.NewSnapshot(),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		placeholder: opts.Placeholder,
		showRoute:   opts.ShowRoute,
		debug:       opts.Debug,
		width:       80,
		height:      24,
		titleStyle:  lipgloss.NewStyle().Bold(true),
		statusStyle: lipgloss.NewStyle().Foreground(styles.StatusColor),
	}

	m.input = newInput(opts.Highlighter)
	m.input.SetPlaceholder(opts.Placeholder)
	m.input.Focus()

	if opts.Debug {
		ctx, cancel := context.WithCancel(context.Background())
		m.logCh = log.Subscribe(ctx)
		m.cancelLog = cancel
	}
	return m
}

func newInput(h *highlight.Highlighter) lineinput.Model {
	return lineinput.New(func(s string) string {
		return h.Highlight(s, highlight.NewSnapshot()).Render()
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.logCh != nil {
		return listenLogs(m.logCh)
	}
	return nil
}

// listenLogs waits for the next log event.
func listenLogs(ch <-chan pubsub.Event[string]) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return logMsg(event.Payload)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(msg.Width-4, 10))
		m.help.Width = msg.Width
		return m, nil

	case ReloadMsg:
		m.highlighter = msg.Highlighter
		value, cursor := m.input.Value(), m.input.Cursor()
		m.input = newInput(msg.Highlighter)
		m.input.SetPlaceholder(m.placeholder)
		m.input.SetWidth(max(m.width-4, 10))
		m.input.SetValue(value)
		m.input.SetCursor(cursor)
		m.input.Focus()
		return m, nil

	case logMsg:
		m.logs = append(m.logs, string(msg))
		if len(m.logs) > logTail {
			m.logs = m.logs[len(m.logs)-logTail:]
		}
		return m, listenLogs(m.logCh)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			if m.cancelLog != nil {
				m.cancelLog()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.input.SetValue("")
			m.input.SetCursor(0)
			return m, nil
		case key.Matches(msg, m.keys.Route):
			m.showRoute = !m.showRoute
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.titleStyle.Render("glint playground"))
	b.WriteString("\n\n")
	b.WriteString("> ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.showRoute {
		route := m.highlighter.Mode(m.input.Value(), m.snap)
		status := "route: " + route.String()
		b.WriteString("\n")
		b.WriteString(m.statusStyle.Render(truncate.String(status, uint(max(m.width, 1)))))
		b.WriteString("\n")
	}

	if m.debug && len(m.logs) > 0 {
		b.WriteString("\n")
		for _, line := range m.logs {
			b.WriteString(m.statusStyle.Render(truncate.String(line, uint(max(m.width, 1)))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
