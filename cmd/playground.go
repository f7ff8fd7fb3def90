package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/glintsh/glint/internal/log"
	"github.com/glintsh/glint/internal/mode/playground"
	"github.com/glintsh/glint/internal/watcher"
)

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Interactive highlighting playground",
	Long: `Launch an interactive input that highlights as you type and names
the dispatch route taken (file/command/lang/plain). Edits to the config
file restyle the running session.`,
	RunE: runPlayground,
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}

func runPlayground(cmd *cobra.Command, args []string) error {
	closeLog := initLogging()
	defer closeLog()

	model := playground.New(playground.Options{
		Highlighter: buildHighlighter(cfg),
		Placeholder: cfg.UI.Placeholder,
		ShowRoute:   cfg.UI.ShowRoute,
		Debug:       cfg.Debug,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	// Rebuild the highlighter when the config file changes.
	if cfgPath := viper.ConfigFileUsed(); cfgPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(cfgPath))
		if err != nil {
			log.ErrorErr(log.CatWatcher, "watcher setup failed", err)
		} else if reloads, err := w.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "watcher start failed", err)
		} else {
			defer func() { _ = w.Stop() }()
			go func() {
				for range reloads {
					if err := viper.ReadInConfig(); err != nil {
						log.ErrorErr(log.CatConfig, "config reload failed", err)
						continue
					}
					if err := viper.Unmarshal(&cfg); err != nil {
						log.ErrorErr(log.CatConfig, "config reload failed", err)
						continue
					}
					log.Info(log.CatConfig, "config reloaded", "path", cfgPath)
					p.Send(playground.ReloadMsg{Highlighter: buildHighlighter(cfg)})
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running playground: %w", err)
	}
	return nil
}
