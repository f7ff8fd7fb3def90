package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is a run of text rendered with a single style.
type Segment struct {
	Text  string
	Style lipgloss.Style
}

// Text is an ordered, append-only sequence of styled segments. Stripping the
// styles from a Text always yields the exact input it was built from.
type Text []Segment

// Plain returns the raw text of all segments concatenated in order.
func (t Text) Plain() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// Render returns the text with ANSI styling applied per segment.
func (t Text) Render() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Style.Render(seg.Text))
	}
	return sb.String()
}

// Plain wraps s as a single unstyled segment.
func Plain(s string) Text {
	if s == "" {
		return nil
	}
	return Text{{Text: s}}
}

// Builder accumulates segments left to right.
type Builder struct {
	segs Text
}

// Plain appends an unstyled segment.
func (b *Builder) Plain(s string) {
	if s == "" {
		return
	}
	b.segs = append(b.segs, Segment{Text: s})
}

// Styled appends a segment rendered with the given style.
func (b *Builder) Styled(style lipgloss.Style, s string) {
	if s == "" {
		return
	}
	b.segs = append(b.segs, Segment{Text: s, Style: style})
}

// Append appends all segments of t.
func (b *Builder) Append(t Text) {
	for _, seg := range t {
		if seg.Text == "" {
			continue
		}
		b.segs = append(b.segs, seg)
	}
}

// Text returns the accumulated segments.
func (b *Builder) Text() Text {
	return b.segs
}
