package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

func TestScryptKeyDeriver_Derive(t *testing.T) {
	deriver := NewScryptKeyDeriver()
	salt := randomBytes(t, keysDomain.SaltSize)

	t.Run("Success_Deterministic", func(t *testing.T) {
		first, err := deriver.Derive("p@ss", salt)
		require.NoError(t, err)
		second, err := deriver.Derive("p@ss", salt)
		require.NoError(t, err)

		assert.Len(t, first, keysDomain.WrappingKeySize)
		assert.Equal(t, first, second)
	})

	t.Run("Success_DifferentSaltDifferentKey", func(t *testing.T) {
		first, err := deriver.Derive("p@ss", salt)
		require.NoError(t, err)
		second, err := deriver.Derive("p@ss", randomBytes(t, keysDomain.SaltSize))
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Success_DifferentPasswordDifferentKey", func(t *testing.T) {
		first, err := deriver.Derive("p@ss", salt)
		require.NoError(t, err)
		second, err := deriver.Derive("wrong", salt)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Success_LongerSalt", func(t *testing.T) {
		key, err := deriver.Derive("p@ss", randomBytes(t, 32))
		require.NoError(t, err)
		assert.Len(t, key, keysDomain.WrappingKeySize)
	})

	t.Run("Error_ShortSalt", func(t *testing.T) {
		key, err := deriver.Derive("p@ss", randomBytes(t, 15))
		assert.Nil(t, key)
		assert.ErrorIs(t, err, keysDomain.ErrInvalidSalt)
	})
}

func TestScryptKeyDeriver_Parameters(t *testing.T) {
	deriver, ok := NewScryptKeyDeriver().(*scryptKeyDeriver)
	require.True(t, ok)

	assert.Equal(t, 16384, deriver.n)
	assert.Equal(t, 8, deriver.r)
	assert.Equal(t, 1, deriver.p)
}
