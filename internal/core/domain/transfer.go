package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transfer amounts are recorded as NUMERIC(24,10): at most 10 decimal
// places and 14 integer digits.
const MaxAmountScale = 10

// MaxTransferAmount is the exclusive upper bound of a transfer amount.
var MaxTransferAmount = decimal.New(1, 14)

// CheckTransferAmount reports why amount cannot be recorded exactly, or nil.
func CheckTransferAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(MaxAmountScale)) {
		return fmt.Errorf("amount supports at most %d decimal places", MaxAmountScale)
	}
	if amount.Abs().GreaterThanOrEqual(MaxTransferAmount) {
		return fmt.Errorf("amount must be below %s", MaxTransferAmount.String())
	}
	return nil
}

// TransferStatus is the state of a transfer attempt that reached the ledger.
type TransferStatus string

const (
	TransferPending TransferStatus = "PENDING" // idempotency key claimed, ledger outcome not yet recorded
	TransferSuccess TransferStatus = "SUCCESS"
	TransferFailed  TransferStatus = "FAILED"
)

// TransferRecord is the audit row written once per attempt that reaches the
// ledger-mutation stage. Only a PENDING row is ever updated.
type TransferRecord struct {
	TransferID      string           `json:"transferID"`
	IdempotencyKey  string           `json:"idempotencyKey,omitempty"`
	FromUser        string           `json:"fromUser"`
	ToUser          string           `json:"toUser"`
	FromAccount     string           `json:"fromAccount"`
	ToAccount       string           `json:"toAccount"`
	SourceAmount    decimal.Decimal  `json:"sourceAmount"`
	ConvertedAmount decimal.Decimal  `json:"convertedAmount"` // unrounded
	FromCurrency    CurrencyCode     `json:"fromCurrency"`
	ToCurrency      CurrencyCode     `json:"toCurrency"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate"` // nil for same-currency transfers
	Status          TransferStatus   `json:"status"`
	FailureReason   string           `json:"failureReason,omitempty"`
	FromBalance     decimal.Decimal  `json:"fromBalance"` // source balance after the transfer
	ToBalance       decimal.Decimal  `json:"toBalance"`   // destination balance after the transfer
	Timestamp       time.Time        `json:"timestamp"`
}

// IsConversion reports whether the record moved money across currencies.
func (r TransferRecord) IsConversion() bool {
	return r.FromCurrency != r.ToCurrency
}

// TransferCommand is a validated transfer request.
type TransferCommand struct {
	RequestedBy    string
	IdempotencyKey string
	FromUser       string
	ToUser         string
	FromAccount    string
	ToAccount      string
	Amount         decimal.Decimal
	FromCurrency   CurrencyCode
	ToCurrency     CurrencyCode
}

// IsConversion reports whether the command needs a rate.
func (c TransferCommand) IsConversion() bool {
	return c.FromCurrency != c.ToCurrency
}

// TransferResult is what a completed transfer reports back.
type TransferResult struct {
	Record          TransferRecord
	RecordPersisted bool
	Replayed        bool
}
