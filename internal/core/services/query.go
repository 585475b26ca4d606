package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
	"github.com/plugdata-labs/plug-cli/internal/core/ports/driven"
	"github.com/plugdata-labs/plug-cli/internal/core/ports/driving"
	"github.com/plugdata-labs/plug-cli/internal/logger"
	"github.com/plugdata-labs/plug-cli/internal/sqltemplate"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// tokenSource yields a currently valid bearer token.
type tokenSource interface {
	ValidToken(ctx context.Context) (domain.Token, bool)
}

// QueryService forwards SQL text to the Plug query endpoint. Unlike the
// credential path, every failure here is surfaced to the caller.
type QueryService struct {
	tokens   tokenSource
	api      driven.QueryAPI
	history  driven.HistoryStore
	endpoint string
}

// QueryOption customises QueryService creation.
type QueryOption func(*QueryService)

// WithHistory enables best-effort recording of executed queries.
// The endpoint is stored alongside each entry for auditing.
func WithHistory(store driven.HistoryStore, endpoint string) QueryOption {
	return func(s *QueryService) {
		s.history = store
		s.endpoint = endpoint
	}
}

// NewQueryService creates a query service on top of a token source and the
// Plug query API.
func NewQueryService(tokens tokenSource, api driven.QueryAPI, opts ...QueryOption) *QueryService {
	s := &QueryService{
		tokens: tokens,
		api:    api,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Execute validates the template, obtains a valid token, interpolates the
// named params as quoted SQL literals and issues the query.
func (s *QueryService) Execute(ctx context.Context, template string, params map[string]any) (*domain.Table, error) {
	if strings.TrimSpace(template) == "" {
		return nil, fmt.Errorf("sql template must not be empty: %w", domain.ErrInvalidInput)
	}

	token, ok := s.tokens.ValidToken(ctx)
	if !ok {
		return nil, fmt.Errorf("cannot authenticate against the Plug API: %w", domain.ErrAuthRequired)
	}

	sqlText, err := sqltemplate.Interpolate(template, params)
	if err != nil {
		return nil, fmt.Errorf("interpolate template: %w", err)
	}

	return s.run(ctx, token, sqlText)
}

// DownloadTable fetches every row of one table. The name is substituted
// verbatim (no literal quoting) but must be a plain SQL identifier, so the
// emitted text for a trusted name is exactly "SELECT * FROM <name>".
func (s *QueryService) DownloadTable(ctx context.Context, tableName string) (*domain.Table, error) {
	tableName = strings.TrimSpace(tableName)
	if tableName == "" {
		return nil, fmt.Errorf("table name must not be empty: %w", domain.ErrInvalidInput)
	}
	if !sqltemplate.ValidIdentifier(tableName) {
		return nil, fmt.Errorf("table name %q is not a valid identifier: %w", tableName, domain.ErrInvalidInput)
	}

	token, ok := s.tokens.ValidToken(ctx)
	if !ok {
		return nil, fmt.Errorf("cannot authenticate against the Plug API: %w", domain.ErrAuthRequired)
	}

	return s.run(ctx, token, "SELECT * FROM "+tableName)
}

// run issues the query call and records it in the history log.
func (s *QueryService) run(ctx context.Context, token domain.Token, sqlText string) (*domain.Table, error) {
	logger.Info("executing query: %s", sqlText)

	start := time.Now()
	table, err := s.api.ExecuteQuery(ctx, token.Value, sqlText)
	elapsed := time.Since(start)

	s.record(ctx, sqlText, table, elapsed, err)

	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}

	logger.Debug("query returned %d rows in %s", table.NumRows(), elapsed)
	return table, nil
}

// record appends a history entry. History is best-effort: failures are
// reported as a notice and never affect the query result.
func (s *QueryService) record(ctx context.Context, sqlText string, table *domain.Table, elapsed time.Duration, qerr error) {
	if s.history == nil {
		return
	}

	entry := domain.HistoryEntry{
		ID:         uuid.NewString(),
		ExecutedAt: time.Now().Add(-elapsed),
		SQL:        sqlText,
		Endpoint:   s.endpoint,
		Duration:   elapsed,
		Status:     domain.HistoryStatusOK,
	}
	if qerr != nil {
		entry.Status = domain.HistoryStatusError
	} else if table != nil {
		entry.RowCount = table.NumRows()
	}

	if err := s.history.Record(ctx, entry); err != nil {
		logger.Notice("could not record query history: %v", err)
	}
}
