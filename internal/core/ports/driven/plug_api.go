package driven

import (
	"context"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

// AuthAPI performs the remote authentication exchange.
type AuthAPI interface {
	// Authenticate posts the credential pair to the authentication
	// endpoint and returns the issued bearer token value. The remote
	// answers either JSON carrying a "token" field or a plain-text body
	// that is the token itself; any other content type is an error.
	Authenticate(ctx context.Context, creds domain.Credentials) (string, error)
}

// QueryAPI forwards finished SQL text to the remote query endpoint.
type QueryAPI interface {
	// ExecuteQuery posts the SQL text with the bearer token attached and
	// decodes the JSON response into an ordered table. A non-JSON
	// response is an error (domain.ErrUnexpectedContentType).
	ExecuteQuery(ctx context.Context, token, sqlText string) (*domain.Table, error)
}
