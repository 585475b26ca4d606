package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredentials_Complete(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{"both present", Credentials{Username: "user", Password: "pass"}, true},
		{"missing password", Credentials{Username: "user"}, false},
		{"missing username", Credentials{Password: "pass"}, false},
		{"empty", Credentials{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.creds.Complete())
		})
	}
}

func TestToken_ValidAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token Token
		want  bool
	}{
		{"fresh", Token{Value: "abc", ExpiresAt: now.Add(time.Hour)}, true},
		{"expired", Token{Value: "abc", ExpiresAt: now.Add(-time.Second)}, false},
		{"expires exactly now", Token{Value: "abc", ExpiresAt: now}, false},
		{"empty value", Token{ExpiresAt: now.Add(time.Hour)}, false},
		{"zero expiry", Token{Value: "abc"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.token.ValidAt(now))
		})
	}
}
