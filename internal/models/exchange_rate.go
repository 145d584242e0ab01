package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of the exchange_rate_cache table. One row per pair.
type ExchangeRate struct {
	SourceCurrency string          `db:"source_currency"`
	TargetCurrency string          `db:"target_currency"`
	Rate           decimal.Decimal `db:"rate"`
	FetchedAt      time.Time       `db:"fetched_at"`
	ExpiresAt      time.Time       `db:"expires_at"`
}

// CachedRate is the JSON document stored per pair by key-value backends.
// Expiration and TTL are epoch seconds.
type CachedRate struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Rate       string `json:"rate"`
	FetchedAt  int64  `json:"fetched_at"`
	Expiration int64  `json:"expiration"`
	TTL        int64  `json:"ttl"`
}
