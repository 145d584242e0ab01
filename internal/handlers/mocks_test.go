package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/SscSPs/fx_transfer_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Fake TokenValidator ---
type fakeValidator map[string]string

func (f fakeValidator) ValidateToken(_ context.Context, token string) (string, error) {
	if userID, ok := f[token]; ok {
		return userID, nil
	}
	return "", apperrors.ErrUnauthorized
}

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, req dto.TransferRequest, requestingUserID string) (*domain.TransferResult, error) {
	args := m.Called(ctx, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

func (m *MockTransferService) GetTransfer(ctx context.Context, transferID string, requestingUserID string) (*domain.TransferRecord, error) {
	args := m.Called(ctx, transferID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRecord), args.Error(1)
}

func (m *MockTransferService) ListTransfers(ctx context.Context, requestingUserID string, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error) {
	args := m.Called(ctx, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransfersResponse), args.Error(1)
}

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, from, to domain.CurrencyCode, amount decimal.Decimal) (*domain.Conversion, error) {
	args := m.Called(ctx, from, to, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) ResolveRate(ctx context.Context, source, target domain.CurrencyCode) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) RefreshSource(ctx context.Context, source domain.CurrencyCode) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) RefreshPair(ctx context.Context, source, target domain.CurrencyCode) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) DeleteRate(ctx context.Context, source, target domain.CurrencyCode) error {
	return m.Called(ctx, source, target).Error(0)
}

// --- Mock PolicyService ---
type MockPolicyService struct {
	mock.Mock
}

func (m *MockPolicyService) CheckCutoff(ctx context.Context, now time.Time) error {
	return m.Called(ctx, now).Error(0)
}

func (m *MockPolicyService) CheckAmount(ctx context.Context, amount decimal.Decimal, currency domain.CurrencyCode, resolver portssvc.RateResolver) error {
	return m.Called(ctx, amount, currency, resolver).Error(0)
}

func (m *MockPolicyService) GetTransferLimit(ctx context.Context) (*domain.TransferLimitPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferLimitPolicy), args.Error(1)
}

func (m *MockPolicyService) SetTransferLimit(ctx context.Context, maxAmount decimal.Decimal, referenceCurrency string, adminUserID string) (*domain.TransferLimitPolicy, error) {
	args := m.Called(ctx, maxAmount, referenceCurrency, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferLimitPolicy), args.Error(1)
}

func (m *MockPolicyService) GetConversionCutoff(ctx context.Context) (*domain.ConversionCutoff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionCutoff), args.Error(1)
}

func (m *MockPolicyService) SetConversionCutoff(ctx context.Context, cutoff time.Time, adminUserID string) (*domain.ConversionCutoff, error) {
	args := m.Called(ctx, cutoff, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionCutoff), args.Error(1)
}

func decEq(value string) interface{} {
	want := decimal.RequireFromString(value)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}
