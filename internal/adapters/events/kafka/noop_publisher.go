package kafka

import (
	"context"
	"log/slog"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	"github.com/SscSPs/fx_transfer_app/internal/middleware"
)

// NoopPublisher is used when no brokers are configured. Reconciliation
// events are still logged so they are not lost entirely.
type NoopPublisher struct{}

var _ clients.TransferEventPublisher = NoopPublisher{}

func (NoopPublisher) PublishTransfer(context.Context, domain.TransferRecord) error {
	return nil
}

func (NoopPublisher) PublishReconciliation(ctx context.Context, record domain.TransferRecord, cause error) error {
	args := []any{
		slog.String("transfer_id", record.TransferID),
		slog.String("from_account", record.FromAccount),
		slog.String("amount", record.SourceAmount.String()),
		slog.Bool("reconciliation_required", true),
	}
	if cause != nil {
		args = append(args, slog.String("error", cause.Error()))
	}
	middleware.GetLoggerFromCtx(ctx).Error("Reconciliation event not published: no brokers configured", args...)
	return nil
}

func (NoopPublisher) Close() error { return nil }
