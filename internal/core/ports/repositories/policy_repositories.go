package repositories

import (
	"context"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
)

// PolicyReader reads the singleton administrative policy rows.
// Both methods return apperrors.ErrNotFound when the row was never set.
type PolicyReader interface {
	GetTransferLimit(ctx context.Context) (*domain.TransferLimitPolicy, error)
	GetConversionCutoff(ctx context.Context) (*domain.ConversionCutoff, error)
}

// PolicyWriter upserts the singleton policy rows.
type PolicyWriter interface {
	SaveTransferLimit(ctx context.Context, policy domain.TransferLimitPolicy) error
	SaveConversionCutoff(ctx context.Context, cutoff domain.ConversionCutoff) error
}

// PolicyRepositoryFacade combines all policy operations.
type PolicyRepositoryFacade interface {
	PolicyReader
	PolicyWriter
}
