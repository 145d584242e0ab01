package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/fx_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/SscSPs/fx_transfer_app/internal/metrics"
	"github.com/shopspring/decimal"
)

// ExchangeRateServiceOption configures an exchange rate service.
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRateClock overrides the clock used for freshness checks.
func WithRateClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.BaseService.now = now
	}
}

// WithRateMetrics records cache and upstream metrics.
func WithRateMetrics(m *metrics.TransferMetrics) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.metrics = m
	}
}

// exchangeRateService reads rates through the cache and keeps it filled.
type exchangeRateService struct {
	BaseService
	store    portsrepo.ExchangeRateStore
	provider clients.RateProvider
	metrics  *metrics.TransferMetrics
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(store portsrepo.ExchangeRateStore, provider clients.RateProvider, opts ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		store:    store,
		provider: provider,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// ResolveRate returns a rate that is fresh now. A missing or expired cache
// entry is replaced by a single upstream fetch.
func (s *exchangeRateService) ResolveRate(ctx context.Context, source, target domain.CurrencyCode) (*domain.ExchangeRate, error) {
	now := s.Now()
	if source == target {
		identity := domain.ExchangeRate{Source: source, Target: target, Rate: decimal.NewFromInt(1), FetchedAt: now, ExpiresAt: now}
		return &identity, nil
	}

	cached, err := s.store.GetRate(ctx, source, target)
	switch {
	case err == nil && cached.IsFresh(now):
		s.metrics.RecordCacheLookup(metrics.CacheHit)
		s.LogDebug(ctx, "Exchange rate served from cache", slog.String("pair", cached.Pair().String()))
		return cached, nil
	case err == nil:
		s.metrics.RecordCacheLookup(metrics.CacheExpired)
	case errors.Is(err, apperrors.ErrNotFound):
		s.metrics.RecordCacheLookup(metrics.CacheMiss)
	default:
		// An unreadable cache degrades to an upstream fetch.
		s.metrics.RecordCacheLookup(metrics.CacheMiss)
		s.LogError(ctx, err, "Failed to read exchange rate cache", slog.String("source", source.String()), slog.String("target", target.String()))
	}

	value, fetchedAt, err := s.fetchPair(ctx, source, target)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.PutRate(ctx, source, target, value, fetchedAt)
	if err != nil {
		// The fetched rate is still usable for this request. It expires at
		// its fetch time so it is never mistaken for a cached entry.
		s.LogError(ctx, err, "Failed to store exchange rate", slog.String("source", source.String()), slog.String("target", target.String()))
		unstored := domain.ExchangeRate{Source: source, Target: target, Rate: value, FetchedAt: fetchedAt, ExpiresAt: fetchedAt}
		return &unstored, nil
	}
	return stored, nil
}

// RefreshPair fetches and stores one pair regardless of cache state.
func (s *exchangeRateService) RefreshPair(ctx context.Context, source, target domain.CurrencyCode) (*domain.ExchangeRate, error) {
	value, fetchedAt, err := s.fetchPair(ctx, source, target)
	if err != nil {
		return nil, err
	}
	rate, err := s.store.PutRate(ctx, source, target, value, fetchedAt)
	if err != nil {
		s.LogError(ctx, err, "Failed to store exchange rate", slog.String("source", source.String()), slog.String("target", target.String()))
		return nil, apperrors.NewPersistenceError("failed to store exchange rate", err)
	}
	s.LogInfo(ctx, "Exchange rate refreshed", slog.String("pair", rate.Pair().String()), slog.String("rate", rate.Rate.String()))
	return rate, nil
}

// RefreshSource replaces every cached pair for source with the upstream table.
func (s *exchangeRateService) RefreshSource(ctx context.Context, source domain.CurrencyCode) ([]domain.ExchangeRate, error) {
	start := time.Now()
	quotes, fetchedAt, err := s.provider.FetchAllForSource(ctx, source)
	s.metrics.ObserveProviderFetch("fetch_all", start)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch exchange rates from provider", slog.String("source", source.String()))
		return nil, asRateUnavailable(err, fmt.Sprintf("no quotations available for %s", source))
	}
	if len(quotes) == 0 {
		return nil, apperrors.NewRateUnavailable(fmt.Sprintf("no quotations available for %s", source), nil)
	}

	rates, err := s.store.PutAllRates(ctx, source, quotes, fetchedAt)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to store exchange rates", slog.String("source", source.String()))
		return nil, apperrors.NewPersistenceError("failed to store exchange rates", err)
	}

	sort.Slice(rates, func(i, j int) bool { return rates[i].Target < rates[j].Target })
	s.LogInfo(ctx, "Exchange rates refreshed for source", slog.String("source", source.String()), slog.Int("count", len(rates)))
	return rates, nil
}

// DeleteRate evicts one pair from the cache.
func (s *exchangeRateService) DeleteRate(ctx context.Context, source, target domain.CurrencyCode) error {
	if err := s.store.DeleteRate(ctx, source, target); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete exchange rate", slog.String("source", source.String()), slog.String("target", target.String()))
			return apperrors.NewPersistenceError("failed to delete exchange rate", err)
		}
		return err
	}
	s.LogInfo(ctx, "Exchange rate deleted", slog.String("source", source.String()), slog.String("target", target.String()))
	return nil
}

// fetchPair asks the provider for one pair.
func (s *exchangeRateService) fetchPair(ctx context.Context, source, target domain.CurrencyCode) (decimal.Decimal, time.Time, error) {
	start := time.Now()
	value, fetchedAt, err := s.provider.FetchPair(ctx, source, target)
	s.metrics.ObserveProviderFetch("fetch_pair", start)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch exchange rate from provider", slog.String("source", source.String()), slog.String("target", target.String()))
		return decimal.Zero, time.Time{}, asRateUnavailable(err, fmt.Sprintf("no exchange rate available for %s to %s", source, target))
	}
	if !value.IsPositive() {
		return decimal.Zero, time.Time{}, apperrors.NewRateUnavailable(fmt.Sprintf("provider returned a non-positive rate for %s%s", source, target), nil)
	}
	return value, fetchedAt, nil
}

func asRateUnavailable(err error, message string) error {
	if apperrors.KindOf(err) == apperrors.KindRateUnavailable {
		return err
	}
	return apperrors.NewRateUnavailable(message, err)
}
