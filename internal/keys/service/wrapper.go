package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"

	apperrors "github.com/allisson/keyvault/internal/errors"
	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

// aesCBCWrapper implements Wrapper with AES-256-CBC and PKCS#7 padding.
// It carries no MAC: a wrong key is detected only through invalid padding.
// Additional data is ignored.
type aesCBCWrapper struct{}

// NewAESCBCWrapper creates an AES-256-CBC Wrapper.
func NewAESCBCWrapper() Wrapper {
	return &aesCBCWrapper{}
}

func (w *aesCBCWrapper) Encrypt(plaintext, key, iv, _ []byte) ([]byte, error) {
	block, err := newAESBlock(key, iv)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	defer keysDomain.Zero(padded)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}

func (w *aesCBCWrapper) Decrypt(ciphertext, key, iv, _ []byte) ([]byte, error) {
	block, err := newAESBlock(key, iv)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, keysDomain.ErrDecryptionFailed
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		keysDomain.Zero(padded)
		return nil, err
	}
	return plaintext, nil
}

// aesGCMWrapper implements Wrapper with AES-256-GCM using the 16-byte IV as nonce.
// The additional data (the record id) binds the ciphertext to its record.
type aesGCMWrapper struct{}

// NewAESGCMWrapper creates an AES-256-GCM Wrapper.
func NewAESGCMWrapper() Wrapper {
	return &aesGCMWrapper{}
}

func (w *aesGCMWrapper) Encrypt(plaintext, key, iv, aad []byte) ([]byte, error) {
	aead, err := newGCM(key, iv)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, iv, plaintext, aad), nil
}

func (w *aesGCMWrapper) Decrypt(ciphertext, key, iv, aad []byte) ([]byte, error) {
	aead, err := newGCM(key, iv)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, iv, ciphertext, aad)
	if err != nil {
		return nil, keysDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

func newAESBlock(key, iv []byte) (cipher.Block, error) {
	if len(key) != keysDomain.WrappingKeySize {
		return nil, keysDomain.ErrInvalidWrappingKey
	}
	if len(iv) != keysDomain.IVSize {
		return nil, keysDomain.ErrInvalidIV
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create aes cipher")
	}
	return block, nil
}

func newGCM(key, iv []byte) (cipher.AEAD, error) {
	block, err := newAESBlock(key, iv)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCMWithNonceSize(block, keysDomain.IVSize)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create gcm")
	}
	return aead, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data), len(data)+padding)
	copy(padded, data)
	return append(padded, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, keysDomain.ErrDecryptionFailed
	}

	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, keysDomain.ErrDecryptionFailed
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, keysDomain.ErrDecryptionFailed
		}
	}
	return data[:len(data)-padding], nil
}
