package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with yaml tags for the default write-out.
type fileConfig struct {
	Debug        bool              `yaml:"debug"`
	LogFile      string            `yaml:"log_file"`
	FileCommands []string          `yaml:"file_commands"`
	Theme        fileThemeConfig   `yaml:"theme"`
	UI           fileUIConfig      `yaml:"ui"`
}

type fileThemeConfig struct {
	LSColors bool              `yaml:"ls_colors"`
	Colors   map[string]string `yaml:"colors,omitempty"`
}

type fileUIConfig struct {
	ShowRoute   bool   `yaml:"show_route"`
	Placeholder string `yaml:"placeholder"`
}

// WriteDefaultConfig writes the default configuration to path, creating
// parent directories as needed. Fails if the file already exists.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	d := Defaults()
	out := fileConfig{
		Debug:        d.Debug,
		LogFile:      d.LogFile,
		FileCommands: d.FileCommands,
		Theme:        fileThemeConfig{LSColors: d.Theme.LSColors, Colors: d.Theme.Colors},
		UI:           fileUIConfig{ShowRoute: d.UI.ShowRoute, Placeholder: d.UI.Placeholder},
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
