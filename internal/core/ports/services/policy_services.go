package services

import (
	"context"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PolicyGate evaluates the administrative constraints on converting transfers.
// Denials are apperrors.KindPolicyViolation.
type PolicyGate interface {
	CheckCutoff(ctx context.Context, now time.Time) error
	CheckAmount(ctx context.Context, amount decimal.Decimal, currency domain.CurrencyCode, resolver RateResolver) error
}

// PolicyAdminSvc reads and writes the policy rows.
type PolicyAdminSvc interface {
	GetTransferLimit(ctx context.Context) (*domain.TransferLimitPolicy, error)
	SetTransferLimit(ctx context.Context, maxAmount decimal.Decimal, referenceCurrency string, adminUserID string) (*domain.TransferLimitPolicy, error)
	GetConversionCutoff(ctx context.Context) (*domain.ConversionCutoff, error)
	SetConversionCutoff(ctx context.Context, cutoff time.Time, adminUserID string) (*domain.ConversionCutoff, error)
}

// PolicySvcFacade combines all policy-related service interfaces
type PolicySvcFacade interface {
	PolicyGate
	PolicyAdminSvc
}
