package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/plugdata-labs/plug-cli/internal/adapters/driving/tui"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive SQL shell",
	Long: `Open an interactive shell that sends each entered statement to the
Plug query endpoint and renders the result table.

Keys:
  enter      execute the statement
  up/down    walk the input history
  esc, ctrl+c  leave the shell`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(_ *cobra.Command, _ []string) error {
	model := tui.NewShell(queryService)
	_, err := tea.NewProgram(model).Run()
	return err
}
