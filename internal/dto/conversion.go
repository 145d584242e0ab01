package dto

import (
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionRequest asks for a quote of amount in another currency.
type ConversionRequest struct {
	FromCurrency string           `json:"fromCurrency" binding:"required,currency"`
	ToCurrency   string           `json:"toCurrency" binding:"required,currency"`
	Amount       *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string"`
}

// ConversionResponse carries the converted amount and the rate used.
type ConversionResponse struct {
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount" swaggertype:"string"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate" swaggertype:"string"`
	Timestamp       time.Time       `json:"timestamp"`
}

// ToConversionResponse converts a domain.Conversion, rounding the converted amount for display.
func ToConversionResponse(c *domain.Conversion) ConversionResponse {
	return ConversionResponse{
		FromCurrency:    c.FromCurrency.String(),
		ToCurrency:      c.ToCurrency.String(),
		Amount:          c.Amount,
		ConvertedAmount: c.ConvertedAmount.Round(c.ToCurrency.Precision()),
		ExchangeRate:    c.Rate,
		Timestamp:       c.RateTimestamp,
	}
}
