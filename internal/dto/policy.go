package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetTransferLimitRequest sets the maximum size of a converting transfer.
type SetTransferLimitRequest struct {
	Amount       *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string"`
	CurrencyType string           `json:"currency_type" binding:"omitempty,currency"` // defaults to USD
}

// TransferLimitResponse describes the configured limit.
type TransferLimitResponse struct {
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	CurrencyType  string          `json:"currency_type"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToTransferLimitResponse converts a domain.TransferLimitPolicy.
func ToTransferLimitResponse(p *domain.TransferLimitPolicy) TransferLimitResponse {
	return TransferLimitResponse{
		Amount:        p.MaxAmount,
		CurrencyType:  p.ReferenceCurrency.String(),
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// SetConversionCutoffRequest sets the date after which converting transfers are refused.
type SetConversionCutoffRequest struct {
	DateLimit string `json:"date_limit" binding:"required"` // ISO-8601, date or date-time
}

// dateLimitLayouts are tried in order when parsing date_limit.
var dateLimitLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDateLimit parses an ISO-8601 date or date-time. Values without a zone are UTC.
func ParseDateLimit(value string) (time.Time, error) {
	for _, layout := range dateLimitLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("date_limit %q is not an ISO-8601 date", value)
}

// ConversionCutoffResponse describes the configured cutoff.
type ConversionCutoffResponse struct {
	DateLimit     time.Time `json:"date_limit"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToConversionCutoffResponse converts a domain.ConversionCutoff.
func ToConversionCutoffResponse(c *domain.ConversionCutoff) ConversionCutoffResponse {
	return ConversionCutoffResponse{
		DateLimit:     c.CutoffDate,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}
