package domain

import "time"

// History entry statuses.
const (
	// HistoryStatusOK marks a query that returned a result.
	HistoryStatusOK = "ok"
	// HistoryStatusError marks a query that failed.
	HistoryStatusError = "error"
)

// HistoryEntry is one executed query in the local audit log.
// History is append-only and purely informational; recording failures never
// affect query results.
type HistoryEntry struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`
	// ExecutedAt is when the query was issued.
	ExecutedAt time.Time `json:"executed_at"`
	// SQL is the interpolated query text as sent to the API.
	SQL string `json:"sql"`
	// Endpoint is the query endpoint URL used.
	Endpoint string `json:"endpoint"`
	// RowCount is the number of rows returned (0 on failure).
	RowCount int `json:"row_count"`
	// Duration is the round-trip time of the query call.
	Duration time.Duration `json:"duration"`
	// Status is one of HistoryStatusOK or HistoryStatusError.
	Status string `json:"status"`
}
