package clients

import (
	"context"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountLedger is the remote owner of account balances. None of its
// mutations are idempotent, so callers must not retry them blindly.
type AccountLedger interface {
	// GetAccount reads the current balance. apperrors.ErrAccountNotFound when absent.
	GetAccount(ctx context.Context, userID, accountID string) (*domain.Account, error)

	// SetBalance overwrites the absolute balance of an account.
	SetBalance(ctx context.Context, accountID string, newBalance decimal.Decimal) error

	// Credit adds amount to the balance of an account.
	Credit(ctx context.Context, userID, accountID string, amount decimal.Decimal) error
}
