package driving

import (
	"context"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

// CredentialService manages the stored credential pair and the cached
// bearer token.
//
// Read operations follow the absorbed-failure policy: problems talking to
// the secret store or the authentication endpoint are reported as a notice
// and returned as an explicit absent result (false), never as an error.
// Only input validation surfaces errors.
type CredentialService interface {
	// Store validates and persists the username/password pair,
	// overwriting any previous pair. Empty username or password is
	// domain.ErrInvalidInput; storage failures are absorbed.
	Store(ctx context.Context, username, password string) error

	// Credentials returns the stored pair, or false when nothing is
	// stored or the store is unreachable.
	Credentials(ctx context.Context) (domain.Credentials, bool)

	// Token returns the cached token record without refreshing it, or
	// false when nothing is cached. The returned token may be expired.
	Token(ctx context.Context) (domain.Token, bool)

	// ValidToken returns a currently valid token, re-authenticating
	// against the remote endpoint when the cached one is absent or
	// expired. False means "cannot authenticate".
	ValidToken(ctx context.Context) (domain.Token, bool)

	// Clear removes the stored credentials and any cached token.
	Clear(ctx context.Context) error
}
