package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registryListCmd = &cobra.Command{
	Use:   "registry:list",
	Short: "List what the highlighter treats as known commands",
	Long: `List the registered builtins, aliases, and file-highlight commands.

File-highlight commands get their arguments classified as paths; builtins
and aliases (plus anything on PATH) get command styling.

Examples:
  # List everything
  glint registry:list

  # Just the file-highlight commands from the config
  glint registry:list | grep '^file'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		reg := newRegistry()
		for _, name := range reg.Builtins() {
			fmt.Fprintf(out, "builtin\t%s\n", name)
		}
		for _, name := range reg.Aliases() {
			fmt.Fprintf(out, "alias\t%s\n", name)
		}
		for _, name := range cfg.FileCommands {
			fmt.Fprintf(out, "file\t%s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registryListCmd)
}
