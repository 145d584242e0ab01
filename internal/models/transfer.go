package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TransferRecord is a row of the append-only transfer_records table.
type TransferRecord struct {
	TransferID      string              `db:"transfer_id"`
	IdempotencyKey  sql.NullString      `db:"idempotency_key"`
	FromUser        string              `db:"from_user"`
	ToUser          string              `db:"to_user"`
	FromAccount     string              `db:"from_account"`
	ToAccount       string              `db:"to_account"`
	SourceAmount    decimal.Decimal     `db:"source_amount"`
	ConvertedAmount decimal.Decimal     `db:"converted_amount"`
	FromCurrency    string              `db:"from_currency"`
	ToCurrency      string              `db:"to_currency"`
	ExchangeRate    decimal.NullDecimal `db:"exchange_rate"` // NULL for same-currency transfers
	Status          string              `db:"status"`
	FailureReason   sql.NullString      `db:"failure_reason"`
	FromBalance     decimal.Decimal     `db:"from_balance"`
	ToBalance       decimal.Decimal     `db:"to_balance"`
	CreatedAt       time.Time           `db:"created_at"`
}
