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

const mysqlSelectKeyRecord = `SELECT id, owner_id, title, algorithm, public_key, wrapped_private_key,
	wrap_algorithm, password_hash, salt, iv, status, created_at, updated_at
	FROM key_records WHERE id = ?`

// MySQLKeyRecordRepository implements key record persistence for MySQL.
// Ids are stored as BINARY(16).
type MySQLKeyRecordRepository struct {
	db *sql.DB
}

// NewMySQLKeyRecordRepository creates a new MySQL key record repository.
func NewMySQLKeyRecordRepository(db *sql.DB) *MySQLKeyRecordRepository {
	return &MySQLKeyRecordRepository{db: db}
}

// Create inserts a new key record.
func (m *MySQLKeyRecordRepository) Create(ctx context.Context, record *keysDomain.KeyRecord) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal key record id")
	}

	query := `INSERT INTO key_records (id, owner_id, title, algorithm, public_key, wrapped_private_key,
			  wrap_algorithm, password_hash, salt, iv, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLKeyRecordRepository) Get(ctx context.Context, id uuid.UUID) (*keysDomain.KeyRecord, error) {
	return m.get(ctx, mysqlSelectKeyRecord, id)
}

// GetForUpdate retrieves a key record by id and locks the row for the current transaction.
func (m *MySQLKeyRecordRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*keysDomain.KeyRecord, error) {
	return m.get(ctx, mysqlSelectKeyRecord+" FOR UPDATE", id)
}

func (m *MySQLKeyRecordRepository) get(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*keysDomain.KeyRecord, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal key record id")
	}

	var record keysDomain.KeyRecord
	var rawID []byte
	var algorithm, wrapAlgorithm, status string

	err = querier.QueryRowContext(ctx, query, idBytes).Scan(
		&rawID,
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

	if err := record.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal key record id")
	}

	record.Algorithm = keysDomain.Algorithm(algorithm)
	record.WrapAlgorithm = keysDomain.WrapAlgorithm(wrapAlgorithm)
	record.Status = keysDomain.Status(status)

	return &record, nil
}

// ListByOwner returns the owner's records newest first, reading only non-sensitive columns.
func (m *MySQLKeyRecordRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*keysDomain.KeyRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, owner_id, title, algorithm, status, created_at, updated_at
			  FROM key_records
			  WHERE owner_id = ?
			  ORDER BY created_at DESC, id DESC
			  LIMIT ? OFFSET ?`

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
		var rawID []byte
		var algorithm, status string

		if err := rows.Scan(
			&rawID,
			&record.OwnerID,
			&record.Title,
			&algorithm,
			&status,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan key record")
		}

		if err := record.ID.UnmarshalBinary(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal key record id")
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
//
// MySQL reports zero affected rows when the new values equal the stored ones,
// so existence is not inferred from the row count here; callers load the
// record first inside the same transaction.
func (m *MySQLKeyRecordRepository) Update(ctx context.Context, record *keysDomain.KeyRecord) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal key record id")
	}

	query := `UPDATE key_records SET title = ?, status = ?, updated_at = ? WHERE id = ?`

	if _, err := querier.ExecContext(
		ctx,
		query,
		record.Title,
		string(record.Status),
		record.UpdatedAt,
		id,
	); err != nil {
		return apperrors.Wrap(err, "failed to update key record")
	}

	return nil
}

// Delete permanently removes a record.
func (m *MySQLKeyRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal key record id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM key_records WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete key record")
	}

	return requireAffected(result, "failed to delete key record")
}
