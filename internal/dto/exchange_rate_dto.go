package dto

import (
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RefreshRatesRequest names the source currency whose whole table should be refreshed.
type RefreshRatesRequest struct {
	From string `json:"from" binding:"required,currency"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      decimal.Decimal `json:"rate" swaggertype:"string"`
	FetchedAt time.Time       `json:"fetchedAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// RefreshRatesResponse reports the rates stored by a bulk refresh.
type RefreshRatesResponse struct {
	Message string                 `json:"message"`
	Rates   []ExchangeRateResponse `json:"rates"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		From:      rate.Source.String(),
		To:        rate.Target.String(),
		Rate:      rate.Rate,
		FetchedAt: rate.FetchedAt,
		ExpiresAt: rate.ExpiresAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
