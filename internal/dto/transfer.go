package dto

import (
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest defines the body of a transfer between two ledger accounts.
// Field presence and amount sign are validated by the transfer service.
type TransferRequest struct {
	FromUserID     string           `json:"fromUserId"`
	ToUserID       string           `json:"toUserId"`
	FromAccountID  string           `json:"fromAccountId"`
	ToAccountID    string           `json:"toAccountId"`
	Amount         *decimal.Decimal `json:"amount" swaggertype:"string"`
	FromCurrency   string           `json:"fromCurrency" binding:"omitempty,currency"`
	ToCurrency     string           `json:"toCurrency" binding:"omitempty,currency"`
	IdempotencyKey string           `json:"idempotencyKey,omitempty" binding:"omitempty,max=128"`
}

// TransferResponse is returned for a completed (or replayed) transfer.
// Monetary values are rounded to the minor unit of their currency.
type TransferResponse struct {
	Message           string           `json:"message"`
	TransactionID     string           `json:"transactionId"`
	FromUserBalance   decimal.Decimal  `json:"fromUserBalance" swaggertype:"string"`
	ToUserBalance     decimal.Decimal  `json:"toUserBalance" swaggertype:"string"`
	AmountTransferred decimal.Decimal  `json:"amountTransferred" swaggertype:"string"`
	ConvertedAmount   decimal.Decimal  `json:"convertedAmount" swaggertype:"string"`
	FromCurrency      string           `json:"fromCurrency"`
	ToCurrency        string           `json:"toCurrency"`
	ExchangeRate      *decimal.Decimal `json:"exchangeRate" swaggertype:"string"`
	Timestamp         time.Time        `json:"timestamp"`
	RecordPersisted   bool             `json:"recordPersisted"`
	Replayed          bool             `json:"replayed,omitempty"`
}

// ToTransferResponse formats a transfer result for the API.
func ToTransferResponse(result *domain.TransferResult) TransferResponse {
	rec := result.Record
	message := "Transfer successful"
	if result.Replayed {
		message = "Transfer already processed"
	}
	return TransferResponse{
		Message:           message,
		TransactionID:     rec.TransferID,
		FromUserBalance:   rec.FromBalance.Round(rec.FromCurrency.Precision()),
		ToUserBalance:     rec.ToBalance.Round(rec.ToCurrency.Precision()),
		AmountTransferred: rec.SourceAmount.Round(rec.FromCurrency.Precision()),
		ConvertedAmount:   rec.ConvertedAmount.Round(rec.ToCurrency.Precision()),
		FromCurrency:      rec.FromCurrency.String(),
		ToCurrency:        rec.ToCurrency.String(),
		ExchangeRate:      rec.ExchangeRate,
		Timestamp:         rec.Timestamp,
		RecordPersisted:   result.RecordPersisted,
		Replayed:          result.Replayed,
	}
}

// TransferRecordResponse is one entry of the transfer history.
type TransferRecordResponse struct {
	TransferID      string           `json:"transferId"`
	FromUserID      string           `json:"fromUserId"`
	ToUserID        string           `json:"toUserId"`
	FromAccountID   string           `json:"fromAccountId"`
	ToAccountID     string           `json:"toAccountId"`
	SourceAmount    decimal.Decimal  `json:"sourceAmount" swaggertype:"string"`
	ConvertedAmount decimal.Decimal  `json:"convertedAmount" swaggertype:"string"`
	FromCurrency    string           `json:"fromCurrency"`
	ToCurrency      string           `json:"toCurrency"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate" swaggertype:"string"`
	Status          string           `json:"status"`
	FailureReason   string           `json:"failureReason,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
}

// ToTransferRecordResponse converts a domain.TransferRecord to its API form.
func ToTransferRecordResponse(rec domain.TransferRecord) TransferRecordResponse {
	return TransferRecordResponse{
		TransferID:      rec.TransferID,
		FromUserID:      rec.FromUser,
		ToUserID:        rec.ToUser,
		FromAccountID:   rec.FromAccount,
		ToAccountID:     rec.ToAccount,
		SourceAmount:    rec.SourceAmount.Round(rec.FromCurrency.Precision()),
		ConvertedAmount: rec.ConvertedAmount.Round(rec.ToCurrency.Precision()),
		FromCurrency:    rec.FromCurrency.String(),
		ToCurrency:      rec.ToCurrency.String(),
		ExchangeRate:    rec.ExchangeRate,
		Status:          string(rec.Status),
		FailureReason:   rec.FailureReason,
		Timestamp:       rec.Timestamp,
	}
}

// ListTransfersParams defines the query parameters for listing transfers.
type ListTransfersParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransfersResponse is one page of transfer history.
type ListTransfersResponse struct {
	Transfers []TransferRecordResponse `json:"transfers"`
	NextToken *string                  `json:"nextToken,omitempty"`
}
