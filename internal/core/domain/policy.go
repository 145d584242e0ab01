package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReferenceCurrency is used when an administrator sets a limit
// without naming a currency.
const DefaultReferenceCurrency CurrencyCode = "USD"

// TransferLimitPolicy caps the size of a converting transfer, expressed in ReferenceCurrency.
type TransferLimitPolicy struct {
	MaxAmount         decimal.Decimal `json:"amount"`
	ReferenceCurrency CurrencyCode    `json:"currency_type"`
	AuditFields
}

// Exceeds reports whether an amount already expressed in the reference currency is over the cap.
func (p TransferLimitPolicy) Exceeds(referenceAmount decimal.Decimal) bool {
	return referenceAmount.GreaterThan(p.MaxAmount)
}

// ConversionCutoff is the instant after which converting transfers are refused.
type ConversionCutoff struct {
	CutoffDate time.Time `json:"date_limit"`
	AuditFields
}

// HasPassed reports whether now is strictly after the cutoff.
func (c ConversionCutoff) HasPassed(now time.Time) bool {
	return now.After(c.CutoffDate)
}
