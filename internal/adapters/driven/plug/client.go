package plug

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
	"github.com/plugdata-labs/plug-cli/internal/core/ports/driven"
	"github.com/plugdata-labs/plug-cli/internal/logger"
)

const (
	// DefaultAuthURL is the production authentication endpoint.
	DefaultAuthURL = "https://plug.der.pe.gov.br/MadrixApi/authenticate/"

	// DefaultQueryURL is the production query endpoint.
	DefaultQueryURL = "https://plug.der.pe.gov.br/MadrixApi/executeQuery"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response body is echoed
	// into error messages.
	maxErrorBody = 512
)

// Ensure Client implements both API ports.
var (
	_ driven.AuthAPI  = (*Client)(nil)
	_ driven.QueryAPI = (*Client)(nil)
)

// Client talks to the Plug authentication and query endpoints.
type Client struct {
	authURL    string
	queryURL   string
	httpClient *http.Client
	throttle   *throttle
}

// Option customises Client creation.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for outbound calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient creates a Plug API client. Empty URLs fall back to the
// production endpoints.
func NewClient(authURL, queryURL string, opts ...Option) *Client {
	c := &Client{
		authURL:    authURL,
		queryURL:   queryURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		throttle:   newThrottle(),
	}
	if c.authURL == "" {
		c.authURL = DefaultAuthURL
	}
	if c.queryURL == "" {
		c.queryURL = DefaultQueryURL
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// QueryURL returns the query endpoint this client targets.
func (c *Client) QueryURL() string {
	return c.queryURL
}

// authRequest is the authentication request body. Field names follow the
// remote API's casing.
type authRequest struct {
	UserName string `json:"UserName"`
	Password string `json:"Password"`
}

// authResponse is the JSON shape of a successful authentication.
type authResponse struct {
	Token string `json:"token"`
}

// Authenticate posts the credential pair and returns the issued token.
// The remote answers either JSON with a "token" field or a plain-text body
// that is the token itself.
func (c *Client) Authenticate(ctx context.Context, creds domain.Credentials) (string, error) {
	body, err := json.Marshal(authRequest{UserName: creds.Username, Password: creds.Password})
	if err != nil {
		return "", fmt.Errorf("encode auth request: %w", err)
	}

	logger.Debug("POST %s", c.authURL)
	resp, err := c.post(ctx, c.authURL, "", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	switch mediaType(resp) {
	case "application/json":
		var auth authResponse
		if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
			return "", fmt.Errorf("decode auth response: %w", err)
		}
		if auth.Token == "" {
			return "", fmt.Errorf("auth response carries no token field")
		}
		return auth.Token, nil
	case "text/plain":
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read auth response: %w", err)
		}
		token := strings.Trim(strings.TrimSpace(string(raw)), `"`)
		if token == "" {
			return "", fmt.Errorf("auth response body is empty")
		}
		return token, nil
	default:
		return "", fmt.Errorf("auth response has content type %q: %w",
			resp.Header.Get("Content-Type"), domain.ErrUnexpectedContentType)
	}
}

// queryRequest is the query request body.
type queryRequest struct {
	SQLQuery string `json:"sqlQuery"`
}

// ExecuteQuery posts the SQL text with the bearer token attached and
// decodes the JSON array of row objects into an ordered table.
func (c *Client) ExecuteQuery(ctx context.Context, token, sqlText string) (*domain.Table, error) {
	body, err := json.Marshal(queryRequest{SQLQuery: sqlText})
	if err != nil {
		return nil, fmt.Errorf("encode query request: %w", err)
	}

	logger.Debug("POST %s", c.queryURL)
	resp, err := c.post(ctx, c.queryURL, token, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	if mt := mediaType(resp); mt != "application/json" {
		return nil, fmt.Errorf("query response has content type %q: %w",
			resp.Header.Get("Content-Type"), domain.ErrUnexpectedContentType)
	}

	table, err := decodeTable(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	return table, nil
}

// post issues one throttled POST with a JSON body. A non-empty token is
// attached as a bearer credential.
func (c *Client) post(ctx context.Context, url, token string, body []byte) (*http.Response, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, fmt.Errorf("throttle wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	return resp, nil
}

// mediaType returns the response content type without parameters.
func mediaType(resp *http.Response) string {
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// statusError builds an error for a non-200 response, echoing a bounded
// slice of the body.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	snippet := strings.TrimSpace(string(raw))
	if snippet != "" {
		return fmt.Errorf("%w %d: %s", domain.ErrUnexpectedStatus, resp.StatusCode, snippet)
	}
	return fmt.Errorf("%w %d", domain.ErrUnexpectedStatus, resp.StatusCode)
}
