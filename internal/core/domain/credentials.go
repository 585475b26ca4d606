package domain

import "time"

// Credentials holds the username/password pair used to authenticate against
// the Plug API. Exactly one logical instance exists per user ("global"
// scope); re-storing overwrites the previous pair.
type Credentials struct {
	// Username is the Plug account name.
	Username string `json:"username"`
	// Password is the Plug account password.
	Password string `json:"password"`
}

// Complete returns true if both username and password are present.
// A partial pair (one field empty) is treated as malformed.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

// Token is a short-lived bearer credential issued by the Plug API.
// At most one logical instance exists; it is overwritten on each refresh.
type Token struct {
	// Value is the opaque bearer token string.
	Value string `json:"value"`
	// ExpiresAt is the absolute expiry instant, computed as issue time
	// plus the configured validity window.
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidAt returns true if the token can still be used at the given instant.
// Validity depends only on the clock comparison; there is no refresh-ahead
// margin and no clock-skew compensation.
func (t Token) ValidAt(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// DefaultValiditySeconds is the validity window assumed for freshly issued
// tokens when none is configured.
const DefaultValiditySeconds = 3600
