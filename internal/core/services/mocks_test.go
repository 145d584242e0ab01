package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// decEq matches a decimal argument by value, ignoring its exponent.
func decEq(value string) interface{} {
	want := decimal.RequireFromString(value)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

// --- Mock ExchangeRateStore ---
type MockRateStore struct {
	mock.Mock
}

func (m *MockRateStore) GetRate(ctx context.Context, source, target domain.CurrencyCode) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateStore) PutRate(ctx context.Context, source, target domain.CurrencyCode, rate decimal.Decimal, fetchedAt time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, source, target, rate, fetchedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateStore) PutAllRates(ctx context.Context, source domain.CurrencyCode, quotes map[domain.PairKey]decimal.Decimal, fetchedAt time.Time) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, source, quotes, fetchedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockRateStore) DeleteRate(ctx context.Context, source, target domain.CurrencyCode) error {
	args := m.Called(ctx, source, target)
	return args.Error(0)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchPair(ctx context.Context, source, target domain.CurrencyCode) (decimal.Decimal, time.Time, error) {
	args := m.Called(ctx, source, target)
	return args.Get(0).(decimal.Decimal), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockRateProvider) FetchAllForSource(ctx context.Context, source domain.CurrencyCode) (map[domain.PairKey]decimal.Decimal, time.Time, error) {
	args := m.Called(ctx, source)
	var quotes map[domain.PairKey]decimal.Decimal
	if args.Get(0) != nil {
		quotes = args.Get(0).(map[domain.PairKey]decimal.Decimal)
	}
	return quotes, args.Get(1).(time.Time), args.Error(2)
}

// --- Mock RateResolver ---
type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) ResolveRate(ctx context.Context, source, target domain.CurrencyCode) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Mock PolicyGate ---
type MockPolicyGate struct {
	mock.Mock
}

func (m *MockPolicyGate) CheckCutoff(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}

func (m *MockPolicyGate) CheckAmount(ctx context.Context, amount decimal.Decimal, currency domain.CurrencyCode, resolver portssvc.RateResolver) error {
	args := m.Called(ctx, amount, currency, resolver)
	return args.Error(0)
}

// --- Mock PolicyRepository ---
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) GetTransferLimit(ctx context.Context) (*domain.TransferLimitPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferLimitPolicy), args.Error(1)
}

func (m *MockPolicyRepository) GetConversionCutoff(ctx context.Context) (*domain.ConversionCutoff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionCutoff), args.Error(1)
}

func (m *MockPolicyRepository) SaveTransferLimit(ctx context.Context, policy domain.TransferLimitPolicy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

func (m *MockPolicyRepository) SaveConversionCutoff(ctx context.Context, cutoff domain.ConversionCutoff) error {
	args := m.Called(ctx, cutoff)
	return args.Error(0)
}

// --- Mock AccountLedger ---
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GetAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedger) SetBalance(ctx context.Context, accountID string, newBalance decimal.Decimal) error {
	args := m.Called(ctx, accountID, newBalance)
	return args.Error(0)
}

func (m *MockLedger) Credit(ctx context.Context, userID, accountID string, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, accountID, amount)
	return args.Error(0)
}

// --- Mock TransferRepository ---
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.TransferRecord, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRecord), args.Error(1)
}

func (m *MockTransferRepository) FindTransferByIdempotencyKey(ctx context.Context, fromUser, key string) (*domain.TransferRecord, error) {
	args := m.Called(ctx, fromUser, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRecord), args.Error(1)
}

func (m *MockTransferRepository) ListTransfersByUser(ctx context.Context, userID string, limit int, beforeTime *time.Time, beforeID string) ([]domain.TransferRecord, error) {
	args := m.Called(ctx, userID, limit, beforeTime, beforeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRecord), args.Error(1)
}

func (m *MockTransferRepository) SaveTransfer(ctx context.Context, record domain.TransferRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransferRepository) ReserveTransfer(ctx context.Context, record domain.TransferRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransferRepository) FinalizeTransfer(ctx context.Context, record domain.TransferRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Mock TransferEventPublisher ---
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishTransfer(ctx context.Context, record domain.TransferRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPublisher) PublishReconciliation(ctx context.Context, record domain.TransferRecord, cause error) error {
	args := m.Called(ctx, record, cause)
	return args.Error(0)
}
