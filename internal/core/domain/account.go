package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a balance held by the external ledger. The core only reads it
// and asks the ledger to adjust it; it never caches one between calls.
type Account struct {
	OwnerID   string          `json:"ownerID"`
	AccountID string          `json:"accountID"`
	Currency  CurrencyCode    `json:"currency"` // empty when the ledger does not report it
	Balance   decimal.Decimal `json:"balance"`
}

// CanCover reports whether the balance is at least amount.
func (a Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
