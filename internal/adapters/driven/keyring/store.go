// Package keyring implements the SecretStore port on top of the operating
// system's secret manager (Keychain, Secret Service, Credential Manager)
// via zalando/go-keyring.
package keyring

import (
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
	"github.com/plugdata-labs/plug-cli/internal/core/ports/driven"
)

const (
	// ServicePrefix namespaces plug entries in the OS secret manager.
	// Each logical key becomes its own service entry.
	ServicePrefix = "plug."

	// Account is the fixed account scope. The client supports exactly
	// one credential scope per OS user.
	Account = "global"
)

// Ensure Store implements the interface.
var _ driven.SecretStore = (*Store)(nil)

// Store addresses OS keyring entries as (ServicePrefix+key, Account).
type Store struct{}

// NewStore creates an OS keyring-backed secret store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the value for a key.
func (*Store) Get(key string) (string, error) {
	value, err := gokeyring.Get(ServicePrefix+key, Account)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", key, domain.ErrNotFound)
		}
		return "", fmt.Errorf("keyring get %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value, overwriting any previous one.
func (*Store) Set(key, value string) error {
	if err := gokeyring.Set(ServicePrefix+key, Account, value); err != nil {
		return fmt.Errorf("keyring set %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (*Store) Delete(key string) error {
	if err := gokeyring.Delete(ServicePrefix+key, Account); err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("keyring delete %s: %w", key, err)
	}
	return nil
}
