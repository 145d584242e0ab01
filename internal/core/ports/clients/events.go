package clients

import (
	"context"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
)

// TransferEventPublisher emits transfer outcomes to downstream consumers.
type TransferEventPublisher interface {
	PublishTransfer(ctx context.Context, record domain.TransferRecord) error

	// PublishReconciliation flags a transfer whose ledger state could not be restored.
	PublishReconciliation(ctx context.Context, record domain.TransferRecord, cause error) error
}
