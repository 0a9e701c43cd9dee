package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
	"github.com/allisson/keyvault/internal/metrics"
)

const metricsDomain = "keys"

// keyUseCaseWithMetrics decorates KeyUseCase with metrics instrumentation.
type keyUseCaseWithMetrics struct {
	next    KeyUseCase
	metrics metrics.BusinessMetrics
}

// NewKeyUseCaseWithMetrics wraps a KeyUseCase with metrics recording.
func NewKeyUseCaseWithMetrics(useCase KeyUseCase, m metrics.BusinessMetrics) KeyUseCase {
	return &keyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (k *keyUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFor(err)
	k.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	k.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Create records metrics for key creation operations.
func (k *keyUseCaseWithMetrics) Create(
	ctx context.Context,
	ownerID string,
	input *keysDomain.CreateKeyInput,
) (*keysDomain.KeyRecord, error) {
	start := time.Now()
	record, err := k.next.Create(ctx, ownerID, input)
	k.record(ctx, "key_create", start, err)
	return record, err
}

// DecryptPrivateKey records metrics for private key decryption operations.
func (k *keyUseCaseWithMetrics) DecryptPrivateKey(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
	password string,
) (*keysDomain.DecryptedKey, error) {
	start := time.Now()
	key, err := k.next.DecryptPrivateKey(ctx, ownerID, id, password)
	k.record(ctx, "key_decrypt", start, err)
	return key, err
}

// GetPublicKey records metrics for public key export operations.
func (k *keyUseCaseWithMetrics) GetPublicKey(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
) (*keysDomain.KeyRecord, error) {
	start := time.Now()
	record, err := k.next.GetPublicKey(ctx, ownerID, id)
	k.record(ctx, "key_get_public", start, err)
	return record, err
}

// ListByOwner records metrics for key listing operations.
func (k *keyUseCaseWithMetrics) ListByOwner(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*keysDomain.KeySummary, error) {
	start := time.Now()
	summaries, err := k.next.ListByOwner(ctx, ownerID, offset, limit)
	k.record(ctx, "key_list", start, err)
	return summaries, err
}

// Rename records metrics for key rename operations.
func (k *keyUseCaseWithMetrics) Rename(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
	title string,
) (*keysDomain.KeySummary, error) {
	start := time.Now()
	summary, err := k.next.Rename(ctx, ownerID, id, title)
	k.record(ctx, "key_rename", start, err)
	return summary, err
}

// ToggleStatus records metrics for status toggle operations.
func (k *keyUseCaseWithMetrics) ToggleStatus(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
) (*keysDomain.KeySummary, error) {
	start := time.Now()
	summary, err := k.next.ToggleStatus(ctx, ownerID, id)
	k.record(ctx, "key_toggle_status", start, err)
	return summary, err
}

// Delete records metrics for key deletion operations.
func (k *keyUseCaseWithMetrics) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	start := time.Now()
	err := k.next.Delete(ctx, ownerID, id)
	k.record(ctx, "key_delete", start, err)
	return err
}
