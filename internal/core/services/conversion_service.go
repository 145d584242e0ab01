package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// conversionService quotes amounts using the fresh-rate path. It never
// touches the ledger and writes no audit record.
type conversionService struct {
	BaseService
	rates portssvc.RateResolver
}

// NewConversionService creates a new conversion service.
func NewConversionService(rates portssvc.RateResolver) portssvc.ConversionSvc {
	return &conversionService{rates: rates}
}

var _ portssvc.ConversionSvc = (*conversionService)(nil)

func (s *conversionService) Convert(ctx context.Context, from, to domain.CurrencyCode, amount decimal.Decimal) (*domain.Conversion, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be greater than zero")
	}

	rate, err := s.rates.ResolveRate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	conversion := &domain.Conversion{
		FromCurrency:    from,
		ToCurrency:      to,
		Amount:          amount,
		ConvertedAmount: rate.Convert(amount),
		Rate:            rate.Rate,
		RateTimestamp:   rate.FetchedAt,
	}
	s.LogDebug(ctx, "Conversion quoted",
		slog.String("from", from.String()),
		slog.String("to", to.String()),
		slog.String("rate", rate.Rate.String()))
	return conversion, nil
}
