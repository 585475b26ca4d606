package driven

// Secret store keys. Each key addresses one value in the operating
// system's secret manager, under the fixed "global" account scope.
const (
	// SecretKeyUsername stores the Plug account name.
	SecretKeyUsername = "username"
	// SecretKeyPassword stores the Plug account password.
	SecretKeyPassword = "password"
	// SecretKeyToken stores the cached bearer token.
	SecretKeyToken = "token"
	// SecretKeyTokenExpiration stores the token expiry as decimal Unix
	// seconds encoded as text.
	SecretKeyTokenExpiration = "token_expiration"
)

// SecretStore persists sensitive values in a durable key-value facility,
// typically the operating system's secret manager. Implementations map the
// logical key onto their own addressing scheme.
//
// Get returns domain.ErrNotFound (wrapped or bare) when the key has no
// value; any other error means the store itself is unreachable.
type SecretStore interface {
	// Get retrieves the value for a key.
	Get(key string) (string, error)

	// Set stores a value, overwriting any previous one.
	Set(key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
}
