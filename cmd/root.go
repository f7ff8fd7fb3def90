package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/glintsh/glint/internal/config"
	"github.com/glintsh/glint/internal/highlight"
	"github.com/glintsh/glint/internal/log"
	"github.com/glintsh/glint/internal/paths"
	"github.com/glintsh/glint/internal/registry"
	"github.com/glintsh/glint/internal/shellparse"
	"github.com/glintsh/glint/internal/styles"
)

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	forceColor bool
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "glint [text...]",
	Short: "Shell command-line highlighter",
	Long: `Highlights shell command lines the way an interactive line editor
would: known commands, flags, and file arguments classified per path
segment (directory, symlink, executable, extension).

With arguments, highlights them as one buffer and prints the result.
Without arguments, highlights each stdin line.`,
	Version: version,
	RunE:    runHighlight,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .glint/config.yaml, then ~/.config/glint/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging")
	rootCmd.Flags().BoolVar(&forceColor, "color", false,
		"emit colors even when stdout is not a terminal")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	viper.SetEnvPrefix("GLINT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	defaults := config.Defaults()
	viper.SetDefault("log_file", defaults.LogFile)
	viper.SetDefault("file_commands", defaults.FileCommands)
	viper.SetDefault("theme.ls_colors", defaults.Theme.LSColors)
	viper.SetDefault("ui.show_route", defaults.UI.ShowRoute)
	viper.SetDefault("ui.placeholder", defaults.UI.Placeholder)

	if cfgFile != "" {
		viper.SetConfigFile(paths.ExpandUser(cfgFile))
	} else {
		// Config lookup order:
		// 1. .glint/config.yaml (current directory)
		// 2. ~/.config/glint/config.yaml (user config)
		if _, err := os.Stat(".glint/config.yaml"); err == nil {
			viper.SetConfigFile(".glint/config.yaml")
		} else {
			viper.AddConfigPath(paths.UserConfigDir("glint"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .glint/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".glint/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initLogging starts the debug log when enabled. The returned closer is a
// no-op otherwise.
func initLogging() func() {
	if !cfg.Debug {
		return func() {}
	}
	closer, err := log.Init(paths.ExpandUser(cfg.LogFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "glint: cannot open log file: %v\n", err)
		return func() {}
	}
	log.SetMinLevel(log.LevelDebug)
	return closer
}

// shellBuiltins are names every shell answers for without a PATH hit.
var shellBuiltins = []string{
	"alias", "bg", "cd", "echo", "eval", "exec", "exit", "export",
	"fg", "history", "jobs", "pwd", "set", "source", "type", "unalias",
	"unset",
}

func newRegistry() *registry.Registry {
	reg := registry.New()
	reg.Register(shellBuiltins...)
	return reg
}

// buildHighlighter assembles a highlighter from the loaded config.
func buildHighlighter(cfg config.Config) *highlight.Highlighter {
	h := highlight.New(shellparse.New(), newRegistry(), cfg.StyleTable(),
		highlight.WithCommandHighlighter(styledWhole(styles.CommandStyle)),
		highlight.WithArgsHighlighter(styledWhole(styles.FlagStyle)))
	h.AddFileHighlight(cfg.FileCommands...)
	return h
}

// styledWhole renders a slice as a single styled segment.
func styledWhole(style lipgloss.Style) highlight.SyntaxHighlighter {
	return highlight.Func(func(s string) highlight.Text {
		if s == "" {
			return nil
		}
		return highlight.Text{{Text: s, Style: style}}
	})
}

func runHighlight(cmd *cobra.Command, args []string) error {
	closeLog := initLogging()
	defer closeLog()

	if forceColor {
		lipgloss.SetColorProfile(termenv.ANSI256)
	}

	h := buildHighlighter(cfg)
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		buffer := strings.Join(args, " ")
		fmt.Fprintln(out, h.Highlight(buffer, highlight.NewSnapshot()).Render())
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		fmt.Fprintln(out, h.Highlight(scanner.Text(), highlight.NewSnapshot()).Render())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
