// Package config provides configuration types, defaults, and persistence
// for glint.
package config

import (
	"os"

	"github.com/glintsh/glint/internal/log"
	"github.com/glintsh/glint/internal/styles"
)

// UIConfig holds playground options.
type UIConfig struct {
	// ShowRoute shows the dispatch route (file/command/lang/plain) in the
	// playground status line.
	ShowRoute bool `mapstructure:"show_route"`
	// Placeholder is the input placeholder text.
	Placeholder string `mapstructure:"placeholder"`
}

// ThemeConfig holds style customization options.
type ThemeConfig struct {
	// LSColors honors the LS_COLORS environment variable as the base style
	// table when set.
	LSColors bool `mapstructure:"ls_colors"`

	// Colors overrides individual style keys with foreground colors.
	// Keys accept both "di" / "*.go" and ".di" / ".*.go" forms.
	// Example:
	//   colors:
	//     di: "#89B4FA"
	//     "*.go": "#A6E3A1"
	Colors map[string]string `mapstructure:"colors"`
}

// Config holds all configuration options for glint.
type Config struct {
	// Debug enables the debug log file.
	Debug bool `mapstructure:"debug"`
	// LogFile is the debug log path.
	LogFile string `mapstructure:"log_file"`
	// FileCommands are commands whose arguments are highlighted as paths.
	FileCommands []string `mapstructure:"file_commands"`
	Theme        ThemeConfig `mapstructure:"theme"`
	UI           UIConfig    `mapstructure:"ui"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LogFile: "glint.log",
		FileCommands: []string{
			"cat", "cd", "cp", "diff", "head", "less", "ls",
			"mkdir", "mv", "nano", "rm", "rmdir", "tail", "touch", "vi", "vim",
		},
		Theme: ThemeConfig{LSColors: true},
		UI:    UIConfig{ShowRoute: true, Placeholder: "type a command line..."},
	}
}

// StyleTable composes the style table: the house defaults, LS_COLORS from
// the environment when enabled, then explicit color overrides on top.
func (c Config) StyleTable() *styles.Table {
	table := styles.DefaultTable()
	if c.Theme.LSColors {
		if spec := os.Getenv("LS_COLORS"); spec != "" {
			parsed := styles.ParseLSColors(spec)
			for _, key := range parsed.Keys() {
				if style, ok := parsed.Resolve(key); ok {
					table.Set(key, style)
				}
			}
			log.Debug(log.CatStyles, "applied LS_COLORS", "keys", len(parsed.Keys()))
		}
	}
	table.ApplyOverrides(c.Theme.Colors)
	return table
}
