package plug

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

func testCreds() domain.Credentials {
	return domain.Credentials{Username: "user", Password: "pass"}
}

func TestClient_Authenticate_JSONResponse(t *testing.T) {
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"token": "abc123", "expires": "whatever"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	token, err := client.Authenticate(context.Background(), testCreds())

	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	assert.Equal(t, "user", gotBody["UserName"])
	assert.Equal(t, "pass", gotBody["Password"])
}

func TestClient_Authenticate_PlainTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("  \"raw-token\"\n"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	token, err := client.Authenticate(context.Background(), testCreds())

	require.NoError(t, err)
	assert.Equal(t, "raw-token", token)
}

func TestClient_Authenticate_UnexpectedContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>login page</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.Authenticate(context.Background(), testCreds())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnexpectedContentType))
}

func TestClient_Authenticate_MissingTokenField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.Authenticate(context.Background(), testCreds())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token field")
}

func TestClient_Authenticate_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.Authenticate(context.Background(), testCreds())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnexpectedStatus))
	assert.Contains(t, err.Error(), "bad credentials")
}

func TestClient_ExecuteQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "SELECT * FROM Contratos_VIEW", body["sqlQuery"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "obra": "ponte"}, {"id": 2, "obra": "rodovia"}]`))
	}))
	defer srv.Close()

	client := NewClient("", srv.URL)
	table, err := client.ExecuteQuery(context.Background(), "tok", "SELECT * FROM Contratos_VIEW")

	require.NoError(t, err)
	assert.Equal(t, []string{"id", "obra"}, table.Columns)
	assert.Equal(t, 2, table.NumRows())
}

func TestClient_ExecuteQuery_CSVContentTypeFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("id,obra\n1,ponte\n"))
	}))
	defer srv.Close()

	client := NewClient("", srv.URL)
	_, err := client.ExecuteQuery(context.Background(), "tok", "SELECT 1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnexpectedContentType))
}

func TestClient_ExecuteQuery_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "token expired", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient("", srv.URL)
	_, err := client.ExecuteQuery(context.Background(), "tok", "SELECT 1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnexpectedStatus))
}

func TestClient_Defaults(t *testing.T) {
	client := NewClient("", "")
	assert.Equal(t, DefaultQueryURL, client.QueryURL())
	assert.Equal(t, DefaultAuthURL, client.authURL)
}

func TestClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Authenticate(ctx, testCreds())
	require.Error(t, err)
}
