package ratesource

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	"github.com/shopspring/decimal"
)

// DefaultQuotes is the development table served when no upstream API is configured.
var DefaultQuotes = map[string]string{
	"USDUSD": "1.00",
	"USDEUR": "0.84",
	"USDJPY": "110.45",
	"USDPEN": "3.75",
}

// StaticProvider serves a fixed quote table.
type StaticProvider struct {
	quotes map[domain.PairKey]decimal.Decimal
	now    func() time.Time
}

// NewStaticProvider builds a provider from six letter keys such as "USDPEN".
func NewStaticProvider(table map[string]string, now func() time.Time) (clients.RateProvider, error) {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	quotes := make(map[domain.PairKey]decimal.Decimal, len(table))
	for key, value := range table {
		pair, err := domain.ParsePairKey(key)
		if err != nil {
			return nil, err
		}
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid static quote %s: %w", key, err)
		}
		quotes[pair] = rate
	}
	return &StaticProvider{quotes: quotes, now: now}, nil
}

var _ clients.RateProvider = (*StaticProvider)(nil)

func (p *StaticProvider) FetchPair(_ context.Context, source, target domain.CurrencyCode) (decimal.Decimal, time.Time, error) {
	rate, ok := p.quotes[domain.NewPairKey(source, target)]
	if !ok {
		return decimal.Zero, time.Time{}, apperrors.NewRateUnavailable(fmt.Sprintf("no quote for %s%s", source, target), nil)
	}
	return rate, p.now(), nil
}

func (p *StaticProvider) FetchAllForSource(_ context.Context, source domain.CurrencyCode) (map[domain.PairKey]decimal.Decimal, time.Time, error) {
	out := make(map[domain.PairKey]decimal.Decimal)
	for pair, rate := range p.quotes {
		if pair.Source == source {
			out[pair] = rate
		}
	}
	if len(out) == 0 {
		return nil, time.Time{}, apperrors.NewRateUnavailable("no quotes for source "+source.String(), nil)
	}
	return out, p.now(), nil
}
