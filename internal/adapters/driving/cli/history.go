package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the local log of executed queries",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent queries, newest first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the query history",
	RunE:  runHistoryClear,
}

var historyLimit int

func init() {
	historyListCmd.Flags().IntVar(
		&historyLimit, "limit", 20, "Maximum number of entries to show (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Query history is unavailable.")
		return nil
	}

	entries, err := historyStore.List(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No queries recorded.")
		return nil
	}

	table := &domain.Table{
		Columns: []string{"executed_at", "status", "rows", "duration", "sql"},
	}
	for _, entry := range entries {
		table.Rows = append(table.Rows, []any{
			entry.ExecutedAt.Local().Format(time.DateTime),
			entry.Status,
			entry.RowCount,
			entry.Duration.Truncate(time.Millisecond).String(),
			entry.SQL,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(table))
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Query history is unavailable.")
		return nil
	}

	if err := historyStore.Clear(context.Background()); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Query history cleared.")
	return nil
}
