package highlight

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Resolver keys for path-segment roles. Extension patterns use the
// ".*<ext>" form, e.g. ".*.go".
const (
	KeySymlink = ".ln"
	KeyDir     = ".di"
	KeyExec    = ".ex"
	KeyFile    = ".fi"
)

// ExtKey returns the resolver key for a file extension, dot included.
func ExtKey(ext string) string {
	return ".*" + ext
}

// fileArg appends one argument token styled as a filesystem path. Tokens
// shaped like flags are not paths and go to the args highlighter. Any
// failure during decomposition or inspection falls back to the verbatim
// argument; highlighting never aborts a redraw.
func (h *Highlighter) fileArg(arg string, snap Snapshot, b *Builder) {
	if strings.HasPrefix(arg, "-") {
		h.styleArgs(arg, b)
		return
	}
	text, ok := h.pathText(arg, snap.Paths)
	if !ok {
		b.Plain(arg)
		return
	}
	b.Append(text)
}

// pathText decomposes arg into path segments, classifies each against the
// filesystem, and reassembles a styled Text whose plain form equals arg.
func (h *Highlighter) pathText(arg string, cfg PathConfig) (text Text, ok bool) {
	defer func() {
		if recover() != nil {
			text, ok = nil, false
		}
	}()
	sep := cfg.EffectiveSeparator()
	if sep == "" {
		return nil, false
	}

	var pb Builder
	rest := arg
	cum := ""
	switch {
	case cfg.DriveLetters && hasDrivePrefix(arg):
		// A drive prefix is a single unstyled leading segment.
		switch {
		case len(arg) == 2:
			pb.Plain(arg)
			cum, rest = arg, ""
		case arg[2] == sep[0]:
			pb.Plain(arg[:3])
			cum, rest = arg[:3], arg[3:]
		default:
			pb.Plain(arg[:2])
			cum, rest = arg[:2], arg[2:]
		}
	case strings.HasPrefix(rest, sep):
		pb.Plain(sep)
		cum, rest = sep, rest[len(sep):]
	}

	if rest != "" {
		for i, comp := range strings.Split(rest, sep) {
			if i > 0 {
				pb.Plain(sep)
				cum += sep
			}
			if comp == "" {
				continue
			}
			cum += comp
			if style, styled := h.classify(cum, comp, cfg); styled {
				pb.Styled(style, comp)
			} else {
				pb.Plain(comp)
			}
		}
	}
	return pb.Text(), true
}

// classify resolves the style for one path segment. Precedence: symlink,
// directory, executable (skipped on platforms without an exec bit),
// extension pattern, regular file. Nonexistent paths and special files fall
// through unstyled.
func (h *Highlighter) classify(path, name string, cfg PathConfig) (lipgloss.Style, bool) {
	if h.resolver == nil {
		return lipgloss.Style{}, false
	}
	if li, err := os.Lstat(path); err == nil && li.Mode()&os.ModeSymlink != 0 {
		return h.resolver.Resolve(KeySymlink)
	}
	fi, serr := os.Stat(path)
	if serr == nil {
		if fi.IsDir() {
			return h.resolver.Resolve(KeyDir)
		}
		if !cfg.DriveLetters && fi.Mode().IsRegular() && fi.Mode()&0o111 != 0 {
			return h.resolver.Resolve(KeyExec)
		}
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		if style, ok := h.resolver.Resolve(ExtKey(name[i:])); ok {
			return style, true
		}
	}
	if serr == nil && fi.Mode().IsRegular() {
		return h.resolver.Resolve(KeyFile)
	}
	return lipgloss.Style{}, false
}

// hasDrivePrefix reports whether arg starts with a "C:" style drive letter.
func hasDrivePrefix(arg string) bool {
	if len(arg) < 2 || arg[1] != ':' {
		return false
	}
	c := arg[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
