package keyring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

func TestStore_RoundTrip(t *testing.T) {
	gokeyring.MockInit()
	store := NewStore()

	require.NoError(t, store.Set("username", "maria"))

	got, err := store.Get("username")
	require.NoError(t, err)
	assert.Equal(t, "maria", got)

	require.NoError(t, store.Delete("username"))

	_, err = store.Get("username")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_GetMissingMapsToNotFound(t *testing.T) {
	gokeyring.MockInit()
	store := NewStore()

	_, err := store.Get("token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_DeleteMissingIsNoError(t *testing.T) {
	gokeyring.MockInit()
	store := NewStore()

	assert.NoError(t, store.Delete("token"))
}

func TestStore_KeysAreNamespaced(t *testing.T) {
	gokeyring.MockInit()
	store := NewStore()

	require.NoError(t, store.Set("token", "abc"))

	// The raw entry lives under the prefixed service name.
	raw, err := gokeyring.Get(ServicePrefix+"token", Account)
	require.NoError(t, err)
	assert.Equal(t, "abc", raw)
}
