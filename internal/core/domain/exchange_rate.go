package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a cached quotation for one currency pair.
// ExpiresAt is always FetchedAt plus the cache TTL.
type ExchangeRate struct {
	Source    CurrencyCode    `json:"from"`
	Target    CurrencyCode    `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetchedAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// NewExchangeRate stamps the expiry of a freshly fetched rate.
func NewExchangeRate(source, target CurrencyCode, rate decimal.Decimal, fetchedAt time.Time, ttl time.Duration) ExchangeRate {
	return ExchangeRate{
		Source:    source,
		Target:    target,
		Rate:      rate,
		FetchedAt: fetchedAt,
		ExpiresAt: fetchedAt.Add(ttl),
	}
}

// IsFresh reports whether the rate may still be used at now.
func (r ExchangeRate) IsFresh(now time.Time) bool {
	return !now.After(r.ExpiresAt)
}

// Pair returns the key of the rate.
func (r ExchangeRate) Pair() PairKey {
	return PairKey{Source: r.Source, Target: r.Target}
}

// Convert applies the rate. The result is not rounded.
func (r ExchangeRate) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.Rate)
}

// Conversion is the result of quoting an amount in another currency.
type Conversion struct {
	FromCurrency    CurrencyCode
	ToCurrency      CurrencyCode
	Amount          decimal.Decimal
	ConvertedAmount decimal.Decimal
	Rate            decimal.Decimal
	RateTimestamp   time.Time
}
