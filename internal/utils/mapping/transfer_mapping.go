package mapping

import (
	"database/sql"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelTransferRecord converts a domain TransferRecord to a model TransferRecord
func ToModelTransferRecord(d domain.TransferRecord) models.TransferRecord {
	m := models.TransferRecord{
		TransferID:      d.TransferID,
		IdempotencyKey:  sql.NullString{String: d.IdempotencyKey, Valid: d.IdempotencyKey != ""},
		FromUser:        d.FromUser,
		ToUser:          d.ToUser,
		FromAccount:     d.FromAccount,
		ToAccount:       d.ToAccount,
		SourceAmount:    d.SourceAmount,
		ConvertedAmount: d.ConvertedAmount,
		FromCurrency:    d.FromCurrency.String(),
		ToCurrency:      d.ToCurrency.String(),
		Status:          string(d.Status),
		FailureReason:   sql.NullString{String: d.FailureReason, Valid: d.FailureReason != ""},
		FromBalance:     d.FromBalance,
		ToBalance:       d.ToBalance,
		CreatedAt:       d.Timestamp,
	}
	if d.ExchangeRate != nil {
		m.ExchangeRate = decimal.NewNullDecimal(*d.ExchangeRate)
	}
	return m
}

// ToDomainTransferRecord converts a model TransferRecord to a domain TransferRecord
func ToDomainTransferRecord(m models.TransferRecord) domain.TransferRecord {
	d := domain.TransferRecord{
		TransferID:      m.TransferID,
		IdempotencyKey:  m.IdempotencyKey.String,
		FromUser:        m.FromUser,
		ToUser:          m.ToUser,
		FromAccount:     m.FromAccount,
		ToAccount:       m.ToAccount,
		SourceAmount:    m.SourceAmount,
		ConvertedAmount: m.ConvertedAmount,
		FromCurrency:    domain.CurrencyCode(m.FromCurrency),
		ToCurrency:      domain.CurrencyCode(m.ToCurrency),
		Status:          domain.TransferStatus(m.Status),
		FailureReason:   m.FailureReason.String,
		FromBalance:     m.FromBalance,
		ToBalance:       m.ToBalance,
		Timestamp:       m.CreatedAt.UTC(),
	}
	if m.ExchangeRate.Valid {
		rate := m.ExchangeRate.Decimal
		d.ExchangeRate = &rate
	}
	return d
}

// ToDomainTransferRecords converts a slice of model TransferRecords
func ToDomainTransferRecords(ms []models.TransferRecord) []domain.TransferRecord {
	ds := make([]domain.TransferRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransferRecord(m)
	}
	return ds
}
