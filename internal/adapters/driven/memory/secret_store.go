// Package memory provides an in-memory SecretStore implementation.
// It backs tests and the --no-keyring escape hatch; values live only for
// the lifetime of the process.
package memory

import (
	"fmt"
	"sync"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
	"github.com/plugdata-labs/plug-cli/internal/core/ports/driven"
)

// Ensure SecretStore implements the interface.
var _ driven.SecretStore = (*SecretStore)(nil)

// SecretStore is a thread-safe in-memory key-value secret store.
type SecretStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSecretStore creates an empty in-memory secret store.
func NewSecretStore() *SecretStore {
	return &SecretStore{
		values: make(map[string]string),
	}
}

// Get retrieves the value for a key.
func (s *SecretStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, domain.ErrNotFound)
	}
	return value, nil
}

// Set stores a value, overwriting any previous one.
func (s *SecretStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *SecretStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Len returns the number of stored values.
func (s *SecretStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
