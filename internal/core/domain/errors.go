package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, such as an
	// empty username, password, SQL template or table name.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthRequired indicates no valid token could be produced.
	// Token-cache failures are absorbed internally; this is the hard
	// failure they resurface as when a query actually needs the token.
	ErrAuthRequired = errors.New("authentication required")

	// ErrUnexpectedContentType indicates the remote API answered with a
	// content type the client does not accept.
	ErrUnexpectedContentType = errors.New("unexpected content type")

	// ErrUnexpectedStatus indicates a non-success HTTP status from the
	// remote API.
	ErrUnexpectedStatus = errors.New("unexpected status")
)
