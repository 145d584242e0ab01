package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/models"
	"github.com/SscSPs/fx_transfer_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferRecordMapping_NullableColumns(t *testing.T) {
	rate := decimal.RequireFromString("3.75")
	conversion := domain.TransferRecord{TransferID: "t1", ExchangeRate: &rate, IdempotencyKey: "k1", FromCurrency: "USD", ToCurrency: "PEN"}
	plain := domain.TransferRecord{TransferID: "t2", FromCurrency: "USD", ToCurrency: "USD"}

	m := mapping.ToModelTransferRecord(conversion)
	assert.True(t, m.ExchangeRate.Valid)
	assert.True(t, m.IdempotencyKey.Valid)
	assert.False(t, m.FailureReason.Valid)

	m = mapping.ToModelTransferRecord(plain)
	assert.False(t, m.ExchangeRate.Valid)
	assert.False(t, m.IdempotencyKey.Valid)
	assert.Nil(t, mapping.ToDomainTransferRecord(m).ExchangeRate)
}

func TestCachedRateMapping(t *testing.T) {
	fetched := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rate := domain.NewExchangeRate("USD", "PEN", decimal.RequireFromString("3.75"), fetched, time.Hour)

	doc := mapping.ToCachedRate(rate)
	assert.Equal(t, "3.75", doc.Rate)
	assert.Equal(t, fetched.Add(time.Hour).Unix(), doc.Expiration)
	assert.Equal(t, doc.Expiration, doc.TTL)

	back, err := mapping.FromCachedRate(doc)
	require.NoError(t, err)
	assert.True(t, back.Rate.Equal(rate.Rate))
	assert.Equal(t, rate.ExpiresAt, back.ExpiresAt)

	_, err = mapping.FromCachedRate(models.CachedRate{From: "USD", To: "PEN", Rate: "abc"})
	assert.Error(t, err)
}

func TestPolicyMapping(t *testing.T) {
	row := models.PolicyConfig{ConfigKey: models.PolicyKeyTransferLimit, Value: []byte(`{"amount":"250.50"}`)}
	limit, err := mapping.ToDomainTransferLimit(row)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReferenceCurrency, limit.ReferenceCurrency, "currency_type defaults to USD")
	assert.True(t, limit.MaxAmount.Equal(decimal.RequireFromString("250.5")))

	row = models.PolicyConfig{ConfigKey: models.PolicyKeyConversionCutoff, Value: []byte(`{"date_limit":"2026-12-31"}`)}
	cutoff, err := mapping.ToDomainConversionCutoff(row)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), cutoff.CutoffDate)

	encoded, err := mapping.ToModelConversionCutoff(cutoff)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date_limit":"2026-12-31T00:00:00Z"}`, string(encoded.Value))
}
