package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

var queryCmd = &cobra.Command{
	Use:   "query <sql-template>",
	Short: "Execute a SQL query against the Plug API",
	Long: `Execute a SQL query and print the result table.

The template may carry {name} placeholders; each --param value is rendered
as a safely quoted SQL literal of the matching type. The template structure
itself is sent as written.

Examples:
  plug query "SELECT TOP 10 * FROM Contratos_VIEW"
  plug query "SELECT * FROM Obras WHERE municipio = {city} AND ano >= {year}" \
    --param city=Recife --param year=2023
  plug query "SELECT * FROM Obras WHERE id IN {ids}" --param "ids=[12,13,14]" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

// Flags for query.
var (
	queryParams []string
	queryJSON   bool
)

func init() {
	queryCmd.Flags().StringArrayVarP(
		&queryParams, "param", "p", nil, "Named value as name=value (repeatable)")
	queryCmd.Flags().BoolVar(
		&queryJSON, "json", false, "Print the result as JSON instead of a table")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	params, err := parseParams(queryParams)
	if err != nil {
		return err
	}

	table, err := queryService.Execute(context.Background(), args[0], params)
	if err != nil {
		return err
	}

	return printTable(cmd, table, queryJSON)
}

// parseParams turns repeated name=value flags into typed values:
// integers, floats and booleans are detected, [a,b,c] becomes a list,
// everything else stays a string.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --param %q, expected name=value", pair)
		}
		params[name] = parseValue(raw)
	}
	return params, nil
}

func parseValue(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		inner := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
		parts := strings.Split(inner, ",")
		values := make([]any, 0, len(parts))
		for _, part := range parts {
			values = append(values, parseValue(strings.TrimSpace(part)))
		}
		return values
	}
	return raw
}

// printTable renders the result either as a styled table or as JSON.
func printTable(cmd *cobra.Command, table *domain.Table, asJSON bool) error {
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	}

	if table.Empty() {
		fmt.Fprintln(out, "No rows returned.")
		return nil
	}

	fmt.Fprintln(out, renderTable(table))
	fmt.Fprintf(out, "%d row(s)\n", table.NumRows())
	return nil
}
