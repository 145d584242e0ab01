package services

import (
	"context"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/dto"
)

// TransferExecutorSvc moves money between two ledger accounts.
type TransferExecutorSvc interface {
	Transfer(ctx context.Context, req dto.TransferRequest, requestingUserID string) (*domain.TransferResult, error)
}

// TransferReaderSvc reads the transfer audit trail.
type TransferReaderSvc interface {
	GetTransfer(ctx context.Context, transferID string, requestingUserID string) (*domain.TransferRecord, error)
	ListTransfers(ctx context.Context, requestingUserID string, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error)
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferExecutorSvc
	TransferReaderSvc
}
