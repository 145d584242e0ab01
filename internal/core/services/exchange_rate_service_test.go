package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/SscSPs/fx_transfer_app/internal/core/services"
	"github.com/SscSPs/fx_transfer_app/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockStore    *MockRateStore
	mockProvider *MockRateProvider
	now          time.Time
	service      portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockStore = new(MockRateStore)
	suite.mockProvider = new(MockRateProvider)
	suite.now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewExchangeRateService(
		suite.mockStore,
		suite.mockProvider,
		services.WithRateClock(func() time.Time { return suite.now }),
		services.WithRateMetrics(metrics.NewTransferMetrics(prometheus.NewRegistry())),
	)
}

func (suite *ExchangeRateServiceTestSuite) TearDownTest() {
	suite.mockStore.AssertExpectations(suite.T())
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) cachedRate(rate string, fetchedAt time.Time) *domain.ExchangeRate {
	r := domain.NewExchangeRate("USD", "PEN", decimal.RequireFromString(rate), fetchedAt, time.Hour)
	return &r
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_FreshCacheHit() {
	ctx := context.Background()
	cached := suite.cachedRate("3.75", suite.now.Add(-30*time.Minute))
	suite.mockStore.On("GetRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN")).Return(cached, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "USD", "PEN")

	suite.Require().NoError(err)
	suite.Equal(cached, rate)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchPair", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_UsableAtExactExpiry() {
	ctx := context.Background()
	cached := suite.cachedRate("3.75", suite.now.Add(-time.Hour))
	suite.mockStore.On("GetRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN")).Return(cached, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "USD", "PEN")

	suite.Require().NoError(err)
	suite.True(rate.Rate.Equal(decimal.RequireFromString("3.75")))
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_MissFetchesAndStores() {
	ctx := context.Background()
	fetchedAt := suite.now
	stored := suite.cachedRate("3.76", fetchedAt)
	suite.mockStore.On("GetRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchPair", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN")).Return(decimal.RequireFromString("3.76"), fetchedAt, nil).Once()
	suite.mockStore.On("PutRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN"), decEq("3.76"), fetchedAt).Return(stored, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "USD", "PEN")

	suite.Require().NoError(err)
	suite.Equal(stored, rate)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_ExpiredEntryIsRefetched() {
	ctx := context.Background()
	expired := suite.cachedRate("3.70", suite.now.Add(-2*time.Hour))
	fresh := suite.cachedRate("3.75", suite.now)
	suite.mockStore.On("GetRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN")).Return(expired, nil).Once()
	suite.mockProvider.On("FetchPair", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN")).Return(decimal.RequireFromString("3.75"), suite.now, nil).Once()
	suite.mockStore.On("PutRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN"), decEq("3.75"), suite.now).Return(fresh, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "USD", "PEN")

	suite.Require().NoError(err)
	suite.True(rate.Rate.Equal(decimal.RequireFromString("3.75")))
	suite.True(rate.IsFresh(suite.now))
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_ProviderLacksPair() {
	ctx := context.Background()
	suite.mockStore.On("GetRate", ctx, domain.CurrencyCode("PEN"), domain.CurrencyCode("JPY")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchPair", ctx, domain.CurrencyCode("PEN"), domain.CurrencyCode("JPY")).
		Return(decimal.Zero, time.Time{}, errors.New("quote PENJPY missing")).Once()

	rate, err := suite.service.ResolveRate(ctx, "PEN", "JPY")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockStore.AssertNotCalled(suite.T(), "PutRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_StoreWriteFailureStillReturnsRate() {
	ctx := context.Background()
	suite.mockStore.On("GetRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("EUR")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchPair", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("EUR")).Return(decimal.RequireFromString("0.84"), suite.now, nil).Once()
	suite.mockStore.On("PutRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("EUR"), decEq("0.84"), suite.now).Return(nil, errors.New("db down")).Once()

	rate, err := suite.service.ResolveRate(ctx, "USD", "EUR")

	suite.Require().NoError(err)
	suite.True(rate.Rate.Equal(decimal.RequireFromString("0.84")))
	suite.Equal(suite.now, rate.FetchedAt)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_CacheReadFailureFallsBackToProvider() {
	ctx := context.Background()
	fresh := suite.cachedRate("3.75", suite.now)
	suite.mockStore.On("GetRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN")).Return(nil, errors.New("connection refused")).Once()
	suite.mockProvider.On("FetchPair", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN")).Return(decimal.RequireFromString("3.75"), suite.now, nil).Once()
	suite.mockStore.On("PutRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN"), decEq("3.75"), suite.now).Return(fresh, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "USD", "PEN")

	suite.Require().NoError(err)
	suite.Equal(fresh, rate)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_SameCurrencyIsIdentity() {
	rate, err := suite.service.ResolveRate(context.Background(), "USD", "USD")

	suite.Require().NoError(err)
	suite.True(rate.Rate.Equal(decimal.NewFromInt(1)))
	suite.mockStore.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshSource_ReplacesTable() {
	ctx := context.Background()
	quotes := map[domain.PairKey]decimal.Decimal{
		domain.NewPairKey("USD", "PEN"): decimal.RequireFromString("3.75"),
		domain.NewPairKey("USD", "EUR"): decimal.RequireFromString("0.84"),
	}
	stored := []domain.ExchangeRate{
		domain.NewExchangeRate("USD", "PEN", decimal.RequireFromString("3.75"), suite.now, time.Hour),
		domain.NewExchangeRate("USD", "EUR", decimal.RequireFromString("0.84"), suite.now, time.Hour),
	}
	suite.mockProvider.On("FetchAllForSource", ctx, domain.CurrencyCode("USD")).Return(quotes, suite.now, nil).Once()
	suite.mockStore.On("PutAllRates", ctx, domain.CurrencyCode("USD"), quotes, suite.now).Return(stored, nil).Once()

	rates, err := suite.service.RefreshSource(ctx, "USD")

	suite.Require().NoError(err)
	suite.Require().Len(rates, 2)
	suite.Equal(domain.CurrencyCode("EUR"), rates[0].Target, "rates are ordered by target")
	suite.Equal(domain.CurrencyCode("PEN"), rates[1].Target)
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshSource_MalformedUpstreamLeavesCacheUntouched() {
	ctx := context.Background()
	suite.mockProvider.On("FetchAllForSource", ctx, domain.CurrencyCode("USD")).
		Return(nil, time.Time{}, apperrors.NewRateUnavailable("provider reported failure", nil)).Once()

	rates, err := suite.service.RefreshSource(ctx, "USD")

	suite.Nil(rates)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockStore.AssertNotCalled(suite.T(), "PutAllRates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshSource_StoreFailure() {
	ctx := context.Background()
	quotes := map[domain.PairKey]decimal.Decimal{domain.NewPairKey("USD", "PEN"): decimal.RequireFromString("3.75")}
	suite.mockProvider.On("FetchAllForSource", ctx, domain.CurrencyCode("USD")).Return(quotes, suite.now, nil).Once()
	suite.mockStore.On("PutAllRates", ctx, domain.CurrencyCode("USD"), quotes, suite.now).Return(nil, errors.New("deadlock")).Once()

	_, err := suite.service.RefreshSource(ctx, "USD")

	suite.ErrorIs(err, apperrors.ErrPersistenceFailure)
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshPair_StoresRegardlessOfCache() {
	ctx := context.Background()
	stored := suite.cachedRate("3.80", suite.now)
	suite.mockProvider.On("FetchPair", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN")).Return(decimal.RequireFromString("3.80"), suite.now, nil).Once()
	suite.mockStore.On("PutRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN"), decEq("3.80"), suite.now).Return(stored, nil).Once()

	rate, err := suite.service.RefreshPair(ctx, "USD", "PEN")

	suite.Require().NoError(err)
	suite.Equal(stored, rate)
	suite.mockStore.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestDeleteRate() {
	ctx := context.Background()
	suite.mockStore.On("DeleteRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("PEN")).Return(nil).Once()
	suite.mockStore.On("DeleteRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("XAU")).Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.DeleteRate(ctx, "USD", "PEN"))
	suite.ErrorIs(suite.service.DeleteRate(ctx, "USD", "XAU"), apperrors.ErrNotFound)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
