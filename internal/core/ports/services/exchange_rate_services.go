package services

import (
	"context"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResolver returns a rate that is fresh at call time, refreshing the
// cache from the upstream provider on a miss or expiry.
type RateResolver interface {
	ResolveRate(ctx context.Context, source, target domain.CurrencyCode) (*domain.ExchangeRate, error)
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	RateResolver
}

// ExchangeRateMaintenanceSvc defines cache maintenance operations.
type ExchangeRateMaintenanceSvc interface {
	// RefreshSource replaces every cached pair for source with a fresh upstream table.
	RefreshSource(ctx context.Context, source domain.CurrencyCode) ([]domain.ExchangeRate, error)

	// RefreshPair fetches and stores one pair regardless of cache state.
	RefreshPair(ctx context.Context, source, target domain.CurrencyCode) (*domain.ExchangeRate, error)

	// DeleteRate evicts one pair.
	DeleteRate(ctx context.Context, source, target domain.CurrencyCode) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateMaintenanceSvc
}

// ConversionSvc quotes an amount in another currency without moving money.
type ConversionSvc interface {
	Convert(ctx context.Context, from, to domain.CurrencyCode, amount decimal.Decimal) (*domain.Conversion, error)
}
