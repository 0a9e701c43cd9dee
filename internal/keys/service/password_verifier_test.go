package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordVerifier(t *testing.T) {
	verifier, err := NewPasswordVerifier(PasswordPolicyInteractive)
	require.NoError(t, err)

	hash, err := verifier.Hash("p@ss")
	require.NoError(t, err)

	t.Run("hash is an argon2id PHC string", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(hash, "$"))
		assert.Contains(t, hash, "argon2id")
		assert.NotContains(t, hash, "p@ss")
	})

	t.Run("correct password verifies", func(t *testing.T) {
		ok, err := verifier.Verify("p@ss", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		ok, err := verifier.Verify("wrong", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("hashes are independently salted", func(t *testing.T) {
		other, err := verifier.Hash("p@ss")
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})

	t.Run("malformed hash never verifies", func(t *testing.T) {
		ok, _ := verifier.Verify("p@ss", "not-a-phc-string")
		assert.False(t, ok)
	})
}

func TestNewPasswordVerifier(t *testing.T) {
	t.Run("moderate policy", func(t *testing.T) {
		verifier, err := NewPasswordVerifier(PasswordPolicyModerate)
		require.NoError(t, err)
		assert.NotNil(t, verifier)
	})

	t.Run("unknown policy", func(t *testing.T) {
		verifier, err := NewPasswordVerifier("paranoid")
		assert.Nil(t, verifier)
		assert.EqualError(t, err, "unsupported password hash policy: paranoid")
	})
}
