package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <table>",
	Short: "Download every row of one table",
	Long: `Download a whole table, equivalent to "SELECT * FROM <table>".

The table name must be a plain SQL identifier, optionally schema-qualified.

Examples:
  plug download Contratos_VIEW
  plug download dbo.Obras --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

var downloadJSON bool

func init() {
	downloadCmd.Flags().BoolVar(
		&downloadJSON, "json", false, "Print the result as JSON instead of a table")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	table, err := queryService.DownloadTable(context.Background(), args[0])
	if err != nil {
		return err
	}

	return printTable(cmd, table, downloadJSON)
}
