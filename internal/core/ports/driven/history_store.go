package driven

import (
	"context"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

// HistoryStore persists the local audit log of executed queries.
type HistoryStore interface {
	// Record appends one history entry.
	Record(ctx context.Context, entry domain.HistoryEntry) error

	// List returns the most recent entries, newest first, up to limit.
	// A limit of 0 or less returns all entries.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
