package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_transfer_app/internal/core/ports/repositories"
	"github.com/SscSPs/fx_transfer_app/internal/models"
	"github.com/SscSPs/fx_transfer_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const transferColumns = `
	transfer_id, idempotency_key, from_user, to_user, from_account, to_account,
	source_amount, converted_amount, from_currency, to_currency, exchange_rate,
	status, failure_reason, from_balance, to_balance, created_at`

// PgxTransferRepository stores the transfer audit trail.
type PgxTransferRepository struct {
	BaseRepository
}

// newPgxTransferRepository creates a new repository for transfer records.
func newPgxTransferRepository(pool PgxPool) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

// SaveTransfer appends a record. A second record with the same sender and
// idempotency key is rejected with apperrors.ErrDuplicate.
func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, record domain.TransferRecord) error {
	m := mapping.ToModelTransferRecord(record)
	query := `INSERT INTO transfer_records (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`

	_, err := r.Pool.Exec(ctx, query,
		m.TransferID, m.IdempotencyKey, m.FromUser, m.ToUser, m.FromAccount, m.ToAccount,
		m.SourceAmount, m.ConvertedAmount, m.FromCurrency, m.ToCurrency, m.ExchangeRate,
		m.Status, m.FailureReason, m.FromBalance, m.ToBalance, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transfer %s or its idempotency key already recorded", apperrors.ErrDuplicate, m.TransferID)
		}
		return fmt.Errorf("failed to save transfer record: %w", err)
	}
	return nil
}

// ReserveTransfer claims the sender's idempotency key with a PENDING row.
func (r *PgxTransferRepository) ReserveTransfer(ctx context.Context, record domain.TransferRecord) error {
	m := mapping.ToModelTransferRecord(record)
	query := `INSERT INTO transfer_records (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (from_user, idempotency_key) WHERE idempotency_key IS NOT NULL DO NOTHING;`

	tag, err := r.Pool.Exec(ctx, query,
		m.TransferID, m.IdempotencyKey, m.FromUser, m.ToUser, m.FromAccount, m.ToAccount,
		m.SourceAmount, m.ConvertedAmount, m.FromCurrency, m.ToCurrency, m.ExchangeRate,
		m.Status, m.FailureReason, m.FromBalance, m.ToBalance, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transfer %s already recorded", apperrors.ErrDuplicate, m.TransferID)
		}
		return fmt.Errorf("failed to reserve transfer record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: idempotency key %s already claimed by %s", apperrors.ErrDuplicate, m.IdempotencyKey.String, m.FromUser)
	}
	return nil
}

// FinalizeTransfer writes the outcome columns of a PENDING row.
func (r *PgxTransferRepository) FinalizeTransfer(ctx context.Context, record domain.TransferRecord) error {
	m := mapping.ToModelTransferRecord(record)
	query := `UPDATE transfer_records
		SET status = $2, failure_reason = $3, from_balance = $4, to_balance = $5, created_at = $6
		WHERE transfer_id = $1 AND status = 'PENDING';`

	tag, err := r.Pool.Exec(ctx, query,
		m.TransferID, m.Status, m.FailureReason, m.FromBalance, m.ToBalance, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize transfer record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("pending transfer " + m.TransferID + " not found")
	}
	return nil
}

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.TransferRecord, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_records WHERE transfer_id = $1;`
	return r.findOne(ctx, query, transferID)
}

func (r *PgxTransferRepository) FindTransferByIdempotencyKey(ctx context.Context, fromUser, key string) (*domain.TransferRecord, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_records WHERE from_user = $1 AND idempotency_key = $2;`
	return r.findOne(ctx, query, fromUser, key)
}

// ListTransfersByUser returns records sent or received by userID, newest
// first, using (created_at, transfer_id) as the keyset.
func (r *PgxTransferRepository) ListTransfersByUser(ctx context.Context, userID string, limit int, beforeTime *time.Time, beforeID string) ([]domain.TransferRecord, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_records WHERE (from_user = $1 OR to_user = $1)`
	args := []interface{}{userID}
	if beforeTime != nil {
		query += ` AND (created_at, transfer_id) < ($2, $3)`
		args = append(args, *beforeTime, beforeID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, transfer_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer records: %w", err)
	}
	defer rows.Close()

	var modelRecords []models.TransferRecord
	for rows.Next() {
		m, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer record: %w", err)
		}
		modelRecords = append(modelRecords, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer records: %w", err)
	}

	return mapping.ToDomainTransferRecords(modelRecords), nil
}

func (r *PgxTransferRepository) findOne(ctx context.Context, query string, args ...interface{}) (*domain.TransferRecord, error) {
	m, err := scanTransfer(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transfer not found")
		}
		return nil, fmt.Errorf("failed to find transfer record: %w", err)
	}
	record := mapping.ToDomainTransferRecord(m)
	return &record, nil
}

func scanTransfer(row pgx.Row) (models.TransferRecord, error) {
	var m models.TransferRecord
	err := row.Scan(
		&m.TransferID, &m.IdempotencyKey, &m.FromUser, &m.ToUser, &m.FromAccount, &m.ToAccount,
		&m.SourceAmount, &m.ConvertedAmount, &m.FromCurrency, &m.ToCurrency, &m.ExchangeRate,
		&m.Status, &m.FailureReason, &m.FromBalance, &m.ToBalance, &m.CreatedAt,
	)
	return m, err
}
