package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/keyvault/internal/auth/domain"
	apperrors "github.com/allisson/keyvault/internal/errors"
)

type mockKMSService struct {
	mock.Mock
}

func (m *mockKMSService) OpenKeeper(ctx context.Context, keyURI string) (authDomain.KMSKeeper, error) {
	args := m.Called(ctx, keyURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(authDomain.KMSKeeper), args.Error(1)
}

type mockKeeper struct {
	mock.Mock
}

func (m *mockKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKeeper) Close() error {
	return m.Called().Error(0)
}

func TestLoadSigningSecret(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("plain secret", func(t *testing.T) {
		secret, err := LoadSigningSecret(ctx, NewKMSService(), SigningSecretConfig{Secret: "plain"}, logger)
		require.NoError(t, err)
		assert.Equal(t, []byte("plain"), secret)
	})

	t.Run("nothing configured", func(t *testing.T) {
		secret, err := LoadSigningSecret(ctx, NewKMSService(), SigningSecretConfig{}, logger)
		assert.Nil(t, secret)
		assert.ErrorIs(t, err, authDomain.ErrSigningSecretRequired)
	})

	t.Run("ciphertext without key uri", func(t *testing.T) {
		_, err := LoadSigningSecret(ctx, NewKMSService(), SigningSecretConfig{Ciphertext: "c2VhbGVk"}, logger)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("ciphertext not base64", func(t *testing.T) {
		_, err := LoadSigningSecret(ctx, NewKMSService(), SigningSecretConfig{
			Ciphertext: "%%%",
			KMSKeyURI:  "base64key://",
		}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode signing secret ciphertext")
	})

	t.Run("seal and open with local secrets", func(t *testing.T) {
		kms := NewKMSService()
		keyURI := generateLocalSecretsURI(t)
		plaintext := []byte("0123456789abcdef0123456789abcdef")

		ciphertext, err := SealSigningSecret(ctx, kms, keyURI, plaintext)
		require.NoError(t, err)
		assert.NotContains(t, ciphertext, string(plaintext))

		secret, err := LoadSigningSecret(ctx, kms, SigningSecretConfig{
			Secret:     "ignored",
			Ciphertext: ciphertext,
			KMSKeyURI:  keyURI,
		}, logger)
		require.NoError(t, err)
		assert.Equal(t, plaintext, secret)
	})

	t.Run("decrypt and close errors are joined", func(t *testing.T) {
		kms := &mockKMSService{}
		keeper := &mockKeeper{}
		decryptErr := errors.New("permission denied")
		closeErr := errors.New("close failed")

		kms.On("OpenKeeper", ctx, "awskms://alias/test").Return(keeper, nil).Once()
		keeper.On("Decrypt", ctx, []byte("sealed")).Return(nil, decryptErr).Once()
		keeper.On("Close").Return(closeErr).Once()

		secret, err := LoadSigningSecret(ctx, kms, SigningSecretConfig{
			Ciphertext: "c2VhbGVk",
			KMSKeyURI:  "awskms://alias/test",
		}, logger)

		assert.Nil(t, secret)
		assert.ErrorIs(t, err, decryptErr)
		assert.ErrorIs(t, err, closeErr)
		kms.AssertExpectations(t)
		keeper.AssertExpectations(t)
	})
}

func TestSealSigningSecret_OpenKeeperFails(t *testing.T) {
	ctx := context.Background()

	ciphertext, err := SealSigningSecret(ctx, NewKMSService(), "invalid://uri", []byte("secret"))

	assert.Empty(t, ciphertext)
	assert.Error(t, err)
}
