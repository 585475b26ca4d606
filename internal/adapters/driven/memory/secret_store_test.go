package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

func TestSecretStore_SetGet(t *testing.T) {
	store := NewSecretStore()

	require.NoError(t, store.Set("username", "maria"))

	got, err := store.Get("username")
	require.NoError(t, err)
	assert.Equal(t, "maria", got)
}

func TestSecretStore_GetMissing(t *testing.T) {
	store := NewSecretStore()

	_, err := store.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSecretStore_Overwrite(t *testing.T) {
	store := NewSecretStore()

	require.NoError(t, store.Set("token", "old"))
	require.NoError(t, store.Set("token", "new"))

	got, err := store.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestSecretStore_Delete(t *testing.T) {
	store := NewSecretStore()

	require.NoError(t, store.Set("token", "abc"))
	require.NoError(t, store.Delete("token"))
	require.NoError(t, store.Delete("token"), "deleting absent key is not an error")

	_, err := store.Get("token")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 0, store.Len())
}
