package clients

import (
	"context"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateProvider fetches fresh quotations from an upstream source.
// Failures are reported as apperrors.KindRateUnavailable.
type RateProvider interface {
	FetchPair(ctx context.Context, source, target domain.CurrencyCode) (decimal.Decimal, time.Time, error)
	FetchAllForSource(ctx context.Context, source domain.CurrencyCode) (map[domain.PairKey]decimal.Decimal, time.Time, error)
}
