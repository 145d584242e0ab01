package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
)

// TransferReader defines read operations for transfer records.
type TransferReader interface {
	FindTransferByID(ctx context.Context, transferID string) (*domain.TransferRecord, error)

	// FindTransferByIdempotencyKey looks up a prior attempt by the same sender.
	FindTransferByIdempotencyKey(ctx context.Context, fromUser, key string) (*domain.TransferRecord, error)

	// ListTransfersByUser lists records where userID is sender or receiver,
	// newest first. Only records strictly older than (beforeTime, beforeID) are returned when beforeTime is set.
	ListTransfersByUser(ctx context.Context, userID string, limit int, beforeTime *time.Time, beforeID string) ([]domain.TransferRecord, error)
}

// TransferWriter defines write operations for transfer records.
type TransferWriter interface {
	// SaveTransfer appends a finished record.
	SaveTransfer(ctx context.Context, record domain.TransferRecord) error

	// ReserveTransfer inserts a PENDING record, claiming its idempotency key
	// for the sender. A key already claimed yields apperrors.ErrDuplicate.
	ReserveTransfer(ctx context.Context, record domain.TransferRecord) error

	// FinalizeTransfer records the outcome of a reserved transfer. Only
	// PENDING records change; finished records are never updated.
	FinalizeTransfer(ctx context.Context, record domain.TransferRecord) error
}

// TransferRepositoryFacade combines all transfer record operations.
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}
