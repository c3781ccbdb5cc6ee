package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("install-secret")
	salt := []byte("alice")

	k1, err := DeriveKey(secret, salt)
	require.NoError(t, err)
	k2, err := DeriveKey(secret, salt)
	require.NoError(t, err)

	assert.Len(t, k1, KeySize)
	assert.Equal(t, k1, k2)
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	secret := []byte("install-secret")

	k1, err := DeriveKey(secret, []byte("alice"))
	require.NoError(t, err)
	k2, err := DeriveKey(secret, []byte("bob"))
	require.NoError(t, err)

	assert.False(t, bytes.Equal(k1, k2))
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key, err := DeriveKey([]byte("s"), []byte("alice"))
	require.NoError(t, err)

	sealed, err := Seal(key, []byte("hunter2"), []byte("alice"))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "hunter2")

	plain, err := Open(key, sealed, []byte("alice"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), plain)
}

func TestSeal_UsesFreshNonce(t *testing.T) {
	key, err := DeriveKey([]byte("s"), nil)
	require.NoError(t, err)

	a, err := Seal(key, []byte("same"), nil)
	require.NoError(t, err)
	b, err := Seal(key, []byte("same"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpen_Failures(t *testing.T) {
	key, err := DeriveKey([]byte("s"), nil)
	require.NoError(t, err)
	other, err := DeriveKey([]byte("other"), nil)
	require.NoError(t, err)

	sealed, err := Seal(key, []byte("pw"), []byte("alice"))
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := Open(other, sealed, []byte("alice"))
		require.Error(t, err)
	})

	t.Run("wrong additional data", func(t *testing.T) {
		_, err := Open(key, sealed, []byte("bob"))
		require.Error(t, err)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Open(key, sealed[:10], []byte("alice"))
		require.ErrorIs(t, err, ErrSealedTooShort)
	})

	t.Run("bad key size", func(t *testing.T) {
		_, err := Seal([]byte("short"), []byte("pw"), nil)
		require.Error(t, err)
	})
}
