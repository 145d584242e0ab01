package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateReader defines read operations for cached exchange rates.
type ExchangeRateReader interface {
	// GetRate returns the stored rate for a pair, expired or not.
	// It returns apperrors.ErrNotFound when nothing is stored.
	GetRate(ctx context.Context, source, target domain.CurrencyCode) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for cached exchange rates.
type ExchangeRateWriter interface {
	// PutRate stores a rate, replacing any prior entry for the pair.
	PutRate(ctx context.Context, source, target domain.CurrencyCode, rate decimal.Decimal, fetchedAt time.Time) (*domain.ExchangeRate, error)

	// PutAllRates deletes every stored pair for source, then inserts quotes.
	PutAllRates(ctx context.Context, source domain.CurrencyCode, quotes map[domain.PairKey]decimal.Decimal, fetchedAt time.Time) ([]domain.ExchangeRate, error)

	// DeleteRate removes a single pair.
	DeleteRate(ctx context.Context, source, target domain.CurrencyCode) error
}

// ExchangeRateStore combines all exchange rate cache operations.
type ExchangeRateStore interface {
	ExchangeRateReader
	ExchangeRateWriter
}
