package utils_test

import (
	"testing"

	"github.com/SscSPs/fx_transfer_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCurrencyPrecision(t *testing.T) {
	amount := decimal.RequireFromString("12.3456")
	assert.Equal(t, "12.35", utils.FormatWithCurrencyPrecision(amount, "USD"))
	assert.Equal(t, "12", utils.FormatWithCurrencyPrecision(amount, "JPY"))
	assert.Equal(t, "12.346", utils.FormatWithCurrencyPrecision(amount, "KWD"))
	assert.Equal(t, "187.50", utils.FormatWithCurrencyPrecision(decimal.RequireFromString("187.5"), "PEN"))
	assert.Equal(t, "3.7500", utils.FormatWithPrecision(decimal.RequireFromString("3.75"), 4))
}
