package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// PolicyServiceOption configures a policy service.
type PolicyServiceOption func(*policyService)

// WithPolicyClock overrides the clock used for audit stamps.
func WithPolicyClock(now func() time.Time) PolicyServiceOption {
	return func(s *policyService) {
		s.BaseService.now = now
	}
}

// policyService enforces and administers the conversion constraints.
// An unset policy row allows everything.
type policyService struct {
	BaseService
	repo portsrepo.PolicyRepositoryFacade
}

// NewPolicyService creates a new policy service.
func NewPolicyService(repo portsrepo.PolicyRepositoryFacade, opts ...PolicyServiceOption) portssvc.PolicySvcFacade {
	svc := &policyService{repo: repo}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.PolicySvcFacade = (*policyService)(nil)

// CheckCutoff denies conversions once now is after the configured cutoff.
func (s *policyService) CheckCutoff(ctx context.Context, now time.Time) error {
	cutoff, err := s.repo.GetConversionCutoff(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "Failed to read conversion cutoff")
		return fmt.Errorf("failed to read conversion cutoff: %w", err)
	}
	if cutoff.HasPassed(now) {
		s.LogInfo(ctx, "Conversion refused after cutoff", slog.Time("cutoff", cutoff.CutoffDate))
		return apperrors.NewPolicyViolation(fmt.Sprintf("currency conversion is not allowed after %s", cutoff.CutoffDate.Format(time.RFC3339)))
	}
	return nil
}

// CheckAmount denies conversions whose amount, expressed in the reference
// currency, is above the configured maximum.
func (s *policyService) CheckAmount(ctx context.Context, amount decimal.Decimal, currency domain.CurrencyCode, resolver portssvc.RateResolver) error {
	policy, err := s.repo.GetTransferLimit(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "Failed to read transfer limit")
		return fmt.Errorf("failed to read transfer limit: %w", err)
	}

	reference := policy.ReferenceCurrency
	if reference == "" {
		reference = domain.DefaultReferenceCurrency
	}

	referenceAmount := amount
	if currency != reference {
		rate, err := resolver.ResolveRate(ctx, currency, reference)
		if err != nil {
			return err
		}
		referenceAmount = rate.Convert(amount)
	}

	if policy.Exceeds(referenceAmount) {
		s.LogInfo(ctx, "Conversion refused above transfer limit",
			slog.String("reference_amount", referenceAmount.String()),
			slog.String("max_amount", policy.MaxAmount.String()))
		return apperrors.NewPolicyViolation(fmt.Sprintf("amount exceeds the transfer limit of %s %s", policy.MaxAmount.String(), reference))
	}
	return nil
}

func (s *policyService) GetTransferLimit(ctx context.Context) (*domain.TransferLimitPolicy, error) {
	return s.repo.GetTransferLimit(ctx)
}

func (s *policyService) SetTransferLimit(ctx context.Context, maxAmount decimal.Decimal, referenceCurrency string, adminUserID string) (*domain.TransferLimitPolicy, error) {
	if !maxAmount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be greater than zero")
	}
	reference := domain.DefaultReferenceCurrency
	if referenceCurrency != "" {
		code, err := domain.NormalizeCurrency(referenceCurrency)
		if err != nil {
			return nil, apperrors.New(apperrors.KindInvalidRequest, "invalid currency_type", err)
		}
		reference = code
	}

	policy := domain.TransferLimitPolicy{MaxAmount: maxAmount, ReferenceCurrency: reference}
	existing, err := s.repo.GetTransferLimit(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read transfer limit: %w", err)
	}
	var prior *domain.AuditFields
	if existing != nil {
		prior = &existing.AuditFields
	}
	policy.AuditFields = s.stamp(prior, adminUserID)

	if err := s.repo.SaveTransferLimit(ctx, policy); err != nil {
		s.LogError(ctx, err, "Failed to save transfer limit")
		return nil, apperrors.NewPersistenceError("failed to save transfer limit", err)
	}
	s.LogInfo(ctx, "Transfer limit updated", slog.String("amount", maxAmount.String()), slog.String("currency", reference.String()), slog.String("admin_id", adminUserID))
	return &policy, nil
}

func (s *policyService) GetConversionCutoff(ctx context.Context) (*domain.ConversionCutoff, error) {
	return s.repo.GetConversionCutoff(ctx)
}

func (s *policyService) SetConversionCutoff(ctx context.Context, cutoffDate time.Time, adminUserID string) (*domain.ConversionCutoff, error) {
	if cutoffDate.IsZero() {
		return nil, apperrors.NewValidationError("date_limit is required")
	}

	cutoff := domain.ConversionCutoff{CutoffDate: cutoffDate.UTC()}
	existing, err := s.repo.GetConversionCutoff(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read conversion cutoff: %w", err)
	}
	var prior *domain.AuditFields
	if existing != nil {
		prior = &existing.AuditFields
	}
	cutoff.AuditFields = s.stamp(prior, adminUserID)

	if err := s.repo.SaveConversionCutoff(ctx, cutoff); err != nil {
		s.LogError(ctx, err, "Failed to save conversion cutoff")
		return nil, apperrors.NewPersistenceError("failed to save conversion cutoff", err)
	}
	s.LogInfo(ctx, "Conversion cutoff updated", slog.Time("cutoff", cutoff.CutoffDate), slog.String("admin_id", adminUserID))
	return &cutoff, nil
}

// stamp keeps the creation fields of a prior row and marks the update.
func (s *policyService) stamp(prior *domain.AuditFields, userID string) domain.AuditFields {
	now := s.Now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
	if prior != nil && !prior.CreatedAt.IsZero() {
		audit.CreatedAt = prior.CreatedAt
		audit.CreatedBy = prior.CreatedBy
	}
	return audit
}
