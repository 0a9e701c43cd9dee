// Package usecase implements the key vault operations.
//
// keyUseCase coordinates the cryptographic services (keypair generation, key
// derivation, wrapping, password hashing) with the key record repository:
//
//	password ──scrypt(salt)──▶ wrapping key ──AES-256(iv)──▶ wrapped private key
//	password ──argon2id──────▶ password hash (gates access only)
//
// Salt and IV are fresh per record. The derived wrapping key and the plaintext
// private key are zeroed before returning.
//
// Ownership is the authorization boundary: every operation except Create
// compares the caller's owner id with the record's. Mutations load the row with
// GetForUpdate inside TxManager.WithTx so each read-modify-write is atomic.
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/keyvault/internal/database"
	apperrors "github.com/allisson/keyvault/internal/errors"
	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
	keysService "github.com/allisson/keyvault/internal/keys/service"
	customValidation "github.com/allisson/keyvault/internal/validation"
)

// keyUseCase implements KeyUseCase.
type keyUseCase struct {
	txManager        database.TxManager
	keyRepo          KeyRecordRepository
	keyGenerator     keysService.KeyPairGenerator
	keyDeriver       keysService.KeyDeriver
	wrapperManager   keysService.WrapperManager
	passwordVerifier keysService.PasswordVerifier
	workerPool       *keysService.WorkerPool
	wrapAlgorithm    keysDomain.WrapAlgorithm
}

// Create validates input in a fixed order (title, algorithm, password,
// confirmation) and reports the first violation. Keypair generation, password
// hashing and key derivation run concurrently on the worker pool; the record is
// persisted only after all of them succeed.
func (k *keyUseCase) Create(
	ctx context.Context,
	ownerID string,
	input *keysDomain.CreateKeyInput,
) (*keysDomain.KeyRecord, error) {
	if input == nil {
		input = &keysDomain.CreateKeyInput{}
	}

	alg, err := validateCreateInput(input)
	if err != nil {
		return nil, err
	}

	salt, err := randomBytes(keysDomain.SaltSize)
	if err != nil {
		return nil, err
	}
	iv, err := randomBytes(keysDomain.IVSize)
	if err != nil {
		return nil, err
	}

	wrapper, err := k.wrapperManager.Wrapper(k.wrapAlgorithm)
	if err != nil {
		return nil, err
	}

	var (
		keyPair      *keysService.KeyPair
		passwordHash string
		wrappingKey  []byte
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return k.workerPool.Run(gctx, func() error {
			kp, err := k.keyGenerator.Generate(gctx, alg)
			if err != nil {
				return apperrors.Wrap(err, "failed to generate keypair")
			}
			keyPair = kp
			return nil
		})
	})
	g.Go(func() error {
		return k.workerPool.Run(gctx, func() error {
			hash, err := k.passwordVerifier.Hash(input.Password)
			if err != nil {
				return err
			}
			passwordHash = hash
			return nil
		})
	})
	g.Go(func() error {
		return k.workerPool.Run(gctx, func() error {
			key, err := k.keyDeriver.Derive(input.Password, salt)
			if err != nil {
				return apperrors.Wrap(err, "failed to derive wrapping key")
			}
			wrappingKey = key
			return nil
		})
	})

	err = g.Wait()
	defer keysDomain.Zero(wrappingKey)
	if keyPair != nil {
		defer keysDomain.Zero(keyPair.PrivateKey)
	}
	if err != nil {
		return nil, err
	}

	id := uuid.Must(uuid.NewV7())

	wrapped, err := wrapper.Encrypt(keyPair.PrivateKey, wrappingKey, iv, id[:])
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to wrap private key")
	}

	now := time.Now().UTC()
	record := &keysDomain.KeyRecord{
		ID:                id,
		OwnerID:           ownerID,
		Title:             strings.TrimSpace(input.Title),
		Algorithm:         alg,
		PublicKey:         keyPair.PublicKey,
		WrappedPrivateKey: base64.StdEncoding.EncodeToString(wrapped),
		WrapAlgorithm:     k.wrapAlgorithm,
		PasswordHash:      passwordHash,
		Salt:              base64.StdEncoding.EncodeToString(salt),
		IV:                base64.StdEncoding.EncodeToString(iv),
		Status:            keysDomain.StatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := k.keyRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// DecryptPrivateKey checks existence, ownership and the password, in that
// order, before unwrapping. The unwrapped key must reproduce the stored public
// key; otherwise ErrDecryptionFailed is returned.
func (k *keyUseCase) DecryptPrivateKey(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
	password string,
) (*keysDomain.DecryptedKey, error) {
	record, err := k.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	var ok bool
	if err := k.workerPool.Run(ctx, func() error {
		var verifyErr error
		ok, verifyErr = k.passwordVerifier.Verify(password, record.PasswordHash)
		return verifyErr
	}); err != nil {
		return nil, err
	}
	if !ok {
		return nil, keysDomain.ErrWrongPassword
	}

	salt, err := base64.StdEncoding.DecodeString(record.Salt)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode salt")
	}
	iv, err := base64.StdEncoding.DecodeString(record.IV)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode iv")
	}
	wrapped, err := base64.StdEncoding.DecodeString(record.WrappedPrivateKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode wrapped private key")
	}

	wrapper, err := k.wrapperManager.Wrapper(record.WrapAlgorithm)
	if err != nil {
		return nil, err
	}

	var wrappingKey []byte
	if err := k.workerPool.Run(ctx, func() error {
		var deriveErr error
		wrappingKey, deriveErr = k.keyDeriver.Derive(password, salt)
		return deriveErr
	}); err != nil {
		return nil, apperrors.Wrap(err, "failed to derive wrapping key")
	}
	defer keysDomain.Zero(wrappingKey)

	privateKey, err := wrapper.Decrypt(wrapped, wrappingKey, iv, record.ID[:])
	if err != nil {
		return nil, err
	}

	publicKey, err := k.keyGenerator.DerivePublicKey(record.Algorithm, privateKey)
	if err != nil || publicKey != record.PublicKey {
		keysDomain.Zero(privateKey)
		return nil, keysDomain.ErrDecryptionFailed
	}

	return &keysDomain.DecryptedKey{
		ID:         record.ID,
		Algorithm:  record.Algorithm,
		PrivateKey: privateKey,
	}, nil
}

// GetPublicKey returns an owned record for public key export.
func (k *keyUseCase) GetPublicKey(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
) (*keysDomain.KeyRecord, error) {
	return k.getOwned(ctx, ownerID, id)
}

// ListByOwner returns the owner's records, newest first.
func (k *keyUseCase) ListByOwner(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*keysDomain.KeySummary, error) {
	records, err := k.keyRepo.ListByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]*keysDomain.KeySummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, record.Summary())
	}
	return summaries, nil
}

// Rename sets a new title on an owned record.
func (k *keyUseCase) Rename(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
	title string,
) (*keysDomain.KeySummary, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	return k.mutate(ctx, ownerID, id, func(record *keysDomain.KeyRecord) {
		record.Title = strings.TrimSpace(title)
	})
}

// ToggleStatus flips an owned record between active and inactive.
func (k *keyUseCase) ToggleStatus(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
) (*keysDomain.KeySummary, error) {
	return k.mutate(ctx, ownerID, id, func(record *keysDomain.KeyRecord) {
		record.Status = record.Status.Toggle()
	})
}

// Delete permanently removes a record. A record that is absent or owned by
// someone else is not among the caller's records, so both fail with
// ErrKeyRecordNotOwned.
func (k *keyUseCase) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return k.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := k.keyRepo.GetForUpdate(ctx, id)
		if err != nil {
			if apperrors.Is(err, keysDomain.ErrKeyRecordNotFound) {
				return keysDomain.ErrKeyRecordNotOwned
			}
			return err
		}

		if !record.IsOwnedBy(ownerID) {
			return keysDomain.ErrKeyRecordNotOwned
		}

		return k.keyRepo.Delete(ctx, id)
	})
}

// mutate applies fn to an owned record under a row lock and persists it.
func (k *keyUseCase) mutate(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
	fn func(record *keysDomain.KeyRecord),
) (*keysDomain.KeySummary, error) {
	var summary *keysDomain.KeySummary

	err := k.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := k.keyRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !record.IsOwnedBy(ownerID) {
			return keysDomain.ErrKeyRecordNotOwned
		}

		fn(record)
		record.UpdatedAt = time.Now().UTC()

		if err := k.keyRepo.Update(ctx, record); err != nil {
			return err
		}

		summary = record.Summary()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (k *keyUseCase) getOwned(ctx context.Context, ownerID string, id uuid.UUID) (*keysDomain.KeyRecord, error) {
	record, err := k.keyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !record.IsOwnedBy(ownerID) {
		return nil, keysDomain.ErrKeyRecordNotOwned
	}

	return record, nil
}

// validateCreateInput returns the parsed algorithm or the first violated rule.
func validateCreateInput(input *keysDomain.CreateKeyInput) (keysDomain.Algorithm, error) {
	if err := validateTitle(input.Title); err != nil {
		return "", err
	}

	alg, err := keysDomain.ParseAlgorithm(input.Algorithm)
	if err != nil {
		return "", keysDomain.ErrInvalidAlgorithm
	}

	if err := validation.Validate(input.Password, validation.Required); err != nil {
		return "", keysDomain.ErrPasswordRequired
	}

	if err := validation.Validate(input.ConfirmPassword, customValidation.Matches(input.Password)); err != nil {
		return "", keysDomain.ErrPasswordMismatch
	}

	return alg, nil
}

func validateTitle(title string) error {
	if err := validation.Validate(title, validation.Required, customValidation.NotBlank); err != nil {
		return keysDomain.ErrTitleRequired
	}

	trimmed := strings.TrimSpace(title)
	if err := validation.Validate(trimmed, validation.RuneLength(0, keysDomain.MaxTitleLength)); err != nil {
		return keysDomain.ErrTitleTooLong
	}

	return nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, apperrors.Wrap(err, "failed to read random bytes")
	}
	return b, nil
}

// NewKeyUseCase creates a new KeyUseCase sealing new records with wrapAlgorithm.
func NewKeyUseCase(
	txManager database.TxManager,
	keyRepo KeyRecordRepository,
	keyGenerator keysService.KeyPairGenerator,
	keyDeriver keysService.KeyDeriver,
	wrapperManager keysService.WrapperManager,
	passwordVerifier keysService.PasswordVerifier,
	workerPool *keysService.WorkerPool,
	wrapAlgorithm keysDomain.WrapAlgorithm,
) KeyUseCase {
	return &keyUseCase{
		txManager:        txManager,
		keyRepo:          keyRepo,
		keyGenerator:     keyGenerator,
		keyDeriver:       keyDeriver,
		wrapperManager:   wrapperManager,
		passwordVerifier: passwordVerifier,
		workerPool:       workerPool,
		wrapAlgorithm:    wrapAlgorithm,
	}
}
