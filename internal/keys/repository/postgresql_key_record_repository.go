// Package repository implements persistence for protected key records.
//
// Two implementations share the same contract:
//   - PostgreSQL: native UUID ids, TIMESTAMPTZ timestamps, $n placeholders
//   - MySQL: BINARY(16) ids via uuid.MarshalBinary, DATETIME(6) timestamps, ? placeholders
//
// Every method resolves its executor with database.GetTx, so calls made inside
// database.TxManager.WithTx share the transaction. GetForUpdate locks the row
// (SELECT ... FOR UPDATE) and must be called inside a transaction for the lock
// to outlive the statement.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/keyvault/internal/database"
	apperrors "github.com/allisson/keyvault/internal/errors"
	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

const postgresSelectKeyRecord = `SELECT id, owner_id, title, algorithm, public_key, wrapped_private_key,
	wrap_algorithm, password_hash, salt, iv, status, created_at, updated_at
	FROM key_records WHERE id = $1`

// PostgreSQLKeyRecordRepository implements key record persistence for PostgreSQL.
type PostgreSQLKeyRecordRepository struct {
	db *sql.DB
}

// NewPostgreSQLKeyRecordRepository creates a new PostgreSQL key record repository.
func NewPostgreSQLKeyRecordRepository(db *sql.DB) *PostgreSQLKeyRecordRepository {
	return &PostgreSQLKeyRecordRepository{db: db}
}

// Create inserts a new key record.
func (p *PostgreSQLKeyRecordRepository) Create(ctx context.Context, record *keysDomain.KeyRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO key_records (id, owner_id, title, algorithm, public_key, wrapped_private_key,
			  wrap_algorithm, password_hash, salt, iv, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.OwnerID,
		record.Title,
		string(record.Algorithm),
		record.PublicKey,
		record.WrappedPrivateKey,
		string(record.WrapAlgorithm),
		record.PasswordHash,
		record.Salt,
		record.IV,
		string(record.Status),
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create key record")
	}
	return nil
}

// Get retrieves a key record by id, returning ErrKeyRecordNotFound when absent.
func (p *PostgreSQLKeyRecordRepository) Get(ctx context.Context, id uuid.UUID) (*keysDomain.KeyRecord, error) {
	return p.get(ctx, postgresSelectKeyRecord, id)
}

// GetForUpdate retrieves a key record by id and locks the row for the current transaction.
func (p *PostgreSQLKeyRecordRepository) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*keysDomain.KeyRecord, error) {
	return p.get(ctx, postgresSelectKeyRecord+" FOR UPDATE", id)
}

func (p *PostgreSQLKeyRecordRepository) get(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*keysDomain.KeyRecord, error) {
	querier := database.GetTx(ctx, p.db)

	var record keysDomain.KeyRecord
	var algorithm, wrapAlgorithm, status string

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.OwnerID,
		&record.Title,
		&algorithm,
		&record.PublicKey,
		&record.WrappedPrivateKey,
		&wrapAlgorithm,
		&record.PasswordHash,
		&record.Salt,
		&record.IV,
		&status,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, keysDomain.ErrKeyRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get key record")
	}

	record.Algorithm = keysDomain.Algorithm(algorithm)
	record.WrapAlgorithm = keysDomain.WrapAlgorithm(wrapAlgorithm)
	record.Status = keysDomain.Status(status)

	return &record, nil
}

// ListByOwner returns the owner's records newest first. Only non-sensitive
// columns are read; key material, salts, IVs and hashes stay in the database.
func (p *PostgreSQLKeyRecordRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*keysDomain.KeyRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, title, algorithm, status, created_at, updated_at
			  FROM key_records
			  WHERE owner_id = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list key records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*keysDomain.KeyRecord, 0)
	for rows.Next() {
		var record keysDomain.KeyRecord
		var algorithm, status string

		if err := rows.Scan(
			&record.ID,
			&record.OwnerID,
			&record.Title,
			&algorithm,
			&status,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan key record")
		}

		record.Algorithm = keysDomain.Algorithm(algorithm)
		record.Status = keysDomain.Status(status)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate key records")
	}

	return records, nil
}

// Update persists the mutable fields (title, status, updated_at) of a record.
func (p *PostgreSQLKeyRecordRepository) Update(ctx context.Context, record *keysDomain.KeyRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE key_records SET title = $1, status = $2, updated_at = $3 WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		record.Title,
		string(record.Status),
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update key record")
	}

	return requireAffected(result, "failed to update key record")
}

// Delete permanently removes a record.
func (p *PostgreSQLKeyRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM key_records WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete key record")
	}

	return requireAffected(result, "failed to delete key record")
}

// requireAffected maps a zero row count to ErrKeyRecordNotFound.
func requireAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if affected == 0 {
		return keysDomain.ErrKeyRecordNotFound
	}
	return nil
}
