package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/glintsh/glint/internal/log"
)

// ParseLSColors builds a table from an LS_COLORS specification such as
// "di=01;34:ln=01;36:*.go=0;32". Only the file roles the classifier uses
// (ln, di, ex, fi) and extension patterns are kept; other entries and
// malformed values are skipped.
func ParseLSColors(spec string) *Table {
	t := New()
	for _, entry := range strings.Split(spec, ":") {
		if entry == "" {
			continue
		}
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		key := normalizeKey(k)
		if !keptKey(key) {
			continue
		}
		style, styled := styleFromSGR(v)
		if !styled {
			log.Debug(log.CatStyles, "skipping LS_COLORS entry", "key", k, "value", v)
			continue
		}
		t.Set(key, style)
	}
	return t
}

func keptKey(key string) bool {
	switch key {
	case ".ln", ".di", ".ex", ".fi":
		return true
	}
	return strings.HasPrefix(key, ".*")
}

// styleFromSGR converts an SGR attribute list ("01;34", "38;5;208") to a
// style. styled is false when the value sets no attribute.
func styleFromSGR(v string) (lipgloss.Style, bool) {
	style := lipgloss.NewStyle()
	styled := false
	parts := strings.Split(v, ";")
	for i := 0; i < len(parts); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return lipgloss.Style{}, false
		}
		switch {
		case n == 0:
			style = lipgloss.NewStyle()
			styled = false
		case n == 1:
			style = style.Bold(true)
			styled = true
		case n == 3:
			style = style.Italic(true)
			styled = true
		case n == 4:
			style = style.Underline(true)
			styled = true
		case n == 7:
			style = style.Reverse(true)
			styled = true
		case n >= 30 && n <= 37:
			style = style.Foreground(lipgloss.Color(strconv.Itoa(n - 30)))
			styled = true
		case n >= 90 && n <= 97:
			style = style.Foreground(lipgloss.Color(strconv.Itoa(n - 90 + 8)))
			styled = true
		case n >= 40 && n <= 47:
			style = style.Background(lipgloss.Color(strconv.Itoa(n - 40)))
			styled = true
		case n >= 100 && n <= 107:
			style = style.Background(lipgloss.Color(strconv.Itoa(n - 100 + 8)))
			styled = true
		case n == 38 || n == 48:
			color, consumed := extendedColor(parts[i+1:])
			if consumed == 0 {
				return lipgloss.Style{}, false
			}
			if n == 38 {
				style = style.Foreground(color)
			} else {
				style = style.Background(color)
			}
			styled = true
			i += consumed
		}
	}
	return style, styled
}

// extendedColor parses the tail of a 38/48 sequence: "5;n" (256 color) or
// "2;r;g;b" (truecolor). Returns the number of parts consumed, 0 on error.
func extendedColor(parts []string) (lipgloss.Color, int) {
	if len(parts) >= 2 && parts[0] == "5" {
		if _, err := strconv.Atoi(parts[1]); err != nil {
			return "", 0
		}
		return lipgloss.Color(parts[1]), 2
	}
	if len(parts) >= 4 && parts[0] == "2" {
		rgb := make([]int, 3)
		for i := 0; i < 3; i++ {
			n, err := strconv.Atoi(parts[1+i])
			if err != nil || n < 0 || n > 255 {
				return "", 0
			}
			rgb[i] = n
		}
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])), 4
	}
	return "", 0
}
