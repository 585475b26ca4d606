// Package services implements the core use cases: the credential store with
// its lazy token cache, and the query executor.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
	"github.com/plugdata-labs/plug-cli/internal/core/ports/driven"
	"github.com/plugdata-labs/plug-cli/internal/core/ports/driving"
	"github.com/plugdata-labs/plug-cli/internal/logger"
)

// Ensure CredentialService implements the interface.
var _ driving.CredentialService = (*CredentialService)(nil)

// CredentialService stores the credential pair and caches the bearer token
// in the secret store, refreshing it lazily on expiry.
//
// Refresh is lazy and lock-free: there is exactly one logical credential
// scope and no concurrent callers to race. Freshness depends only on the
// clock comparison "now before expiry".
type CredentialService struct {
	secrets  driven.SecretStore
	auth     driven.AuthAPI
	validity time.Duration
	now      func() time.Time
}

// CredentialOption customises CredentialService creation.
type CredentialOption func(*CredentialService)

// WithValidity overrides the token validity window (default 3600s).
func WithValidity(d time.Duration) CredentialOption {
	return func(s *CredentialService) {
		if d > 0 {
			s.validity = d
		}
	}
}

// WithNowFunc overrides the clock used for expiry checks (testing).
func WithNowFunc(now func() time.Time) CredentialOption {
	return func(s *CredentialService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewCredentialService creates a credential service backed by the given
// secret store and authentication API.
func NewCredentialService(secrets driven.SecretStore, auth driven.AuthAPI, opts ...CredentialOption) *CredentialService {
	s := &CredentialService{
		secrets:  secrets,
		auth:     auth,
		validity: domain.DefaultValiditySeconds * time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Store validates and persists the username/password pair.
// Validation failures are surfaced; storage failures are absorbed into a
// notice per the credential-path failure policy.
func (s *CredentialService) Store(_ context.Context, username, password string) error {
	if username == "" {
		return fmt.Errorf("username must not be empty: %w", domain.ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("password must not be empty: %w", domain.ErrInvalidInput)
	}

	if err := s.secrets.Set(driven.SecretKeyUsername, username); err != nil {
		logger.Notice("could not store username in the secret store: %v", err)
		return nil
	}
	if err := s.secrets.Set(driven.SecretKeyPassword, password); err != nil {
		logger.Notice("could not store password in the secret store: %v", err)
		return nil
	}

	logger.Debug("stored credentials for %q", username)
	return nil
}

// Credentials returns the stored pair, or false when nothing usable is
// stored or the secret store is unreachable.
func (s *CredentialService) Credentials(_ context.Context) (domain.Credentials, bool) {
	creds, ok := s.readCredentials()
	if !ok {
		return domain.Credentials{}, false
	}
	return creds, true
}

// Token returns the cached token record without refreshing it.
func (s *CredentialService) Token(_ context.Context) (domain.Token, bool) {
	token, ok := s.readToken()
	if !ok {
		logger.Notice("no token cached")
		return domain.Token{}, false
	}
	return token, true
}

// ValidToken returns a currently valid token, re-authenticating when the
// cached one is absent or expired. Every failure on the refresh path is
// absorbed: a notice is printed and false is returned.
func (s *CredentialService) ValidToken(ctx context.Context) (domain.Token, bool) {
	if cached, ok := s.readToken(); ok && cached.ValidAt(s.now()) {
		logger.Debug("token cache hit, expires at %s", cached.ExpiresAt.Format(time.RFC3339))
		return cached, true
	}

	creds, ok := s.readCredentials()
	if !ok {
		logger.Notice("no credentials stored; run 'plug auth set' first")
		return domain.Token{}, false
	}

	logger.Debug("token absent or expired, re-authenticating as %q", creds.Username)
	value, err := s.auth.Authenticate(ctx, creds)
	if err != nil {
		logger.Notice("authentication failed: %v", err)
		return domain.Token{}, false
	}

	token := domain.Token{
		Value:     value,
		ExpiresAt: s.now().Add(s.validity),
	}
	if !s.writeToken(token) {
		return domain.Token{}, false
	}

	logger.Debug("new token cached, expires at %s", token.ExpiresAt.Format(time.RFC3339))
	return token, true
}

// Clear removes the stored credentials and any cached token.
func (s *CredentialService) Clear(_ context.Context) error {
	var errs []error
	for _, key := range []string{
		driven.SecretKeyUsername,
		driven.SecretKeyPassword,
		driven.SecretKeyToken,
		driven.SecretKeyTokenExpiration,
	} {
		if err := s.secrets.Delete(key); err != nil && !errors.Is(err, domain.ErrNotFound) {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// readCredentials loads the pair from the secret store. A missing or
// partial pair counts as absent.
func (s *CredentialService) readCredentials() (domain.Credentials, bool) {
	username, err := s.secrets.Get(driven.SecretKeyUsername)
	if err != nil {
		s.debugStoreMiss(driven.SecretKeyUsername, err)
		return domain.Credentials{}, false
	}
	password, err := s.secrets.Get(driven.SecretKeyPassword)
	if err != nil {
		s.debugStoreMiss(driven.SecretKeyPassword, err)
		return domain.Credentials{}, false
	}

	creds := domain.Credentials{Username: username, Password: password}
	if !creds.Complete() {
		return domain.Credentials{}, false
	}
	return creds, true
}

// readToken loads the cached token record. An unparsable expiry yields a
// zero expiry, which callers treat as expired.
func (s *CredentialService) readToken() (domain.Token, bool) {
	value, err := s.secrets.Get(driven.SecretKeyToken)
	if err != nil {
		s.debugStoreMiss(driven.SecretKeyToken, err)
		return domain.Token{}, false
	}

	token := domain.Token{Value: value}
	raw, err := s.secrets.Get(driven.SecretKeyTokenExpiration)
	if err != nil {
		s.debugStoreMiss(driven.SecretKeyTokenExpiration, err)
		return token, true
	}
	if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
		token.ExpiresAt = time.Unix(unix, 0)
	} else {
		logger.Warn("unparsable token expiration %q, treating token as expired", raw)
	}
	return token, true
}

// writeToken persists the token record, reporting (and absorbing) storage
// failures.
func (s *CredentialService) writeToken(token domain.Token) bool {
	if err := s.secrets.Set(driven.SecretKeyToken, token.Value); err != nil {
		logger.Notice("could not cache token in the secret store: %v", err)
		return false
	}
	expiry := strconv.FormatInt(token.ExpiresAt.Unix(), 10)
	if err := s.secrets.Set(driven.SecretKeyTokenExpiration, expiry); err != nil {
		logger.Notice("could not cache token expiration in the secret store: %v", err)
		return false
	}
	return true
}

func (s *CredentialService) debugStoreMiss(key string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		logger.Debug("secret store has no %s", key)
		return
	}
	logger.Notice("secret store unreachable reading %s: %v", key, err)
}
