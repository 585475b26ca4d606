package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

// stubTokens is a scripted token source.
type stubTokens struct {
	token domain.Token
	ok    bool
}

func (s *stubTokens) ValidToken(_ context.Context) (domain.Token, bool) {
	return s.token, s.ok
}

// stubQueryAPI records the SQL it receives.
type stubQueryAPI struct {
	gotToken string
	gotSQL   []string
	table    *domain.Table
	err      error
}

func (s *stubQueryAPI) ExecuteQuery(_ context.Context, token, sqlText string) (*domain.Table, error) {
	s.gotToken = token
	s.gotSQL = append(s.gotSQL, sqlText)
	if s.err != nil {
		return nil, s.err
	}
	if s.table != nil {
		return s.table, nil
	}
	return &domain.Table{}, nil
}

// recordingHistory collects history entries.
type recordingHistory struct {
	entries []domain.HistoryEntry
	err     error
}

func (h *recordingHistory) Record(_ context.Context, entry domain.HistoryEntry) error {
	if h.err != nil {
		return h.err
	}
	h.entries = append(h.entries, entry)
	return nil
}

func (h *recordingHistory) List(_ context.Context, _ int) ([]domain.HistoryEntry, error) {
	return h.entries, nil
}

func (h *recordingHistory) Clear(_ context.Context) error {
	h.entries = nil
	return nil
}

func validTokens() *stubTokens {
	return &stubTokens{token: domain.Token{Value: "tok"}, ok: true}
}

func TestQueryService_Execute_EmptyTemplate(t *testing.T) {
	api := &stubQueryAPI{}
	svc := NewQueryService(validTokens(), api)

	for _, template := range []string{"", "   ", "\n\t"} {
		_, err := svc.Execute(context.Background(), template, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	}
	assert.Empty(t, api.gotSQL, "no network call for invalid templates")
}

func TestQueryService_Execute_NoToken(t *testing.T) {
	api := &stubQueryAPI{}
	svc := NewQueryService(&stubTokens{ok: false}, api)

	_, err := svc.Execute(context.Background(), "SELECT 1", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuthRequired))
	assert.Empty(t, api.gotSQL)
}

func TestQueryService_Execute_Interpolates(t *testing.T) {
	api := &stubQueryAPI{table: &domain.Table{Columns: []string{"n"}, Rows: [][]any{{"x"}}}}
	svc := NewQueryService(validTokens(), api)

	table, err := svc.Execute(context.Background(),
		"SELECT * FROM Obras WHERE municipio = {city} AND ano = {year}",
		map[string]any{"city": "Recife", "year": 2024},
	)
	require.NoError(t, err)
	require.Len(t, api.gotSQL, 1)
	assert.Equal(t, "SELECT * FROM Obras WHERE municipio = 'Recife' AND ano = 2024", api.gotSQL[0])
	assert.Equal(t, "tok", api.gotToken)
	assert.Equal(t, 1, table.NumRows())
}

func TestQueryService_Execute_InterpolationError(t *testing.T) {
	api := &stubQueryAPI{}
	svc := NewQueryService(validTokens(), api)

	_, err := svc.Execute(context.Background(), "SELECT {missing}", nil)
	require.Error(t, err)
	assert.Empty(t, api.gotSQL)
}

func TestQueryService_Execute_APIErrorSurfaced(t *testing.T) {
	api := &stubQueryAPI{err: domain.ErrUnexpectedContentType}
	svc := NewQueryService(validTokens(), api)

	_, err := svc.Execute(context.Background(), "SELECT 1", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnexpectedContentType))
}

func TestQueryService_DownloadTable_ExactSQL(t *testing.T) {
	api := &stubQueryAPI{}
	svc := NewQueryService(validTokens(), api)

	_, err := svc.DownloadTable(context.Background(), "Contratos_VIEW")
	require.NoError(t, err)
	require.Len(t, api.gotSQL, 1)
	assert.Equal(t, "SELECT * FROM Contratos_VIEW", api.gotSQL[0])
}

func TestQueryService_DownloadTable_Validation(t *testing.T) {
	api := &stubQueryAPI{}
	svc := NewQueryService(validTokens(), api)
	ctx := context.Background()

	_, err := svc.DownloadTable(ctx, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = svc.DownloadTable(ctx, "x; DROP TABLE y")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Empty(t, api.gotSQL)
}

func TestQueryService_RecordsHistory(t *testing.T) {
	api := &stubQueryAPI{table: &domain.Table{Columns: []string{"a"}, Rows: [][]any{{1}, {2}}}}
	history := &recordingHistory{}
	svc := NewQueryService(validTokens(), api,
		WithHistory(history, "https://plug.example/executeQuery"))

	_, err := svc.Execute(context.Background(), "SELECT 1", nil)
	require.NoError(t, err)

	require.Len(t, history.entries, 1)
	entry := history.entries[0]
	assert.Equal(t, "SELECT 1", entry.SQL)
	assert.Equal(t, 2, entry.RowCount)
	assert.Equal(t, domain.HistoryStatusOK, entry.Status)
	assert.Equal(t, "https://plug.example/executeQuery", entry.Endpoint)
	assert.NotEmpty(t, entry.ID)
}

func TestQueryService_RecordsFailedQuery(t *testing.T) {
	api := &stubQueryAPI{err: errors.New("boom")}
	history := &recordingHistory{}
	svc := NewQueryService(validTokens(), api, WithHistory(history, ""))

	_, err := svc.Execute(context.Background(), "SELECT 1", nil)
	require.Error(t, err)

	require.Len(t, history.entries, 1)
	assert.Equal(t, domain.HistoryStatusError, history.entries[0].Status)
	assert.Equal(t, 0, history.entries[0].RowCount)
}

func TestQueryService_HistoryFailureDoesNotFailQuery(t *testing.T) {
	api := &stubQueryAPI{}
	history := &recordingHistory{err: errors.New("disk full")}
	svc := NewQueryService(validTokens(), api, WithHistory(history, ""))

	_, err := svc.Execute(context.Background(), "SELECT 1", nil)
	assert.NoError(t, err)
}
