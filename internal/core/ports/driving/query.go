package driving

import (
	"context"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

// QueryService forwards SQL to the Plug query endpoint and returns tabular
// results. All failures are surfaced as errors, including the inability to
// produce a token (domain.ErrAuthRequired).
type QueryService interface {
	// Execute interpolates the named params into the {name} placeholders
	// of the template using value-safe SQL literal quoting, then issues
	// the query. The template structure itself is trusted, not sanitised.
	Execute(ctx context.Context, template string, params map[string]any) (*domain.Table, error)

	// DownloadTable fetches all rows of one table. The table name must be
	// a plain SQL identifier (optionally schema-qualified); it is
	// substituted verbatim, producing exactly "SELECT * FROM <name>".
	DownloadTable(ctx context.Context, tableName string) (*domain.Table, error)
}
