package models

import "github.com/shopspring/decimal"

// Keys of the singleton rows in policy_config.
const (
	PolicyKeyTransferLimit    = "currency_limit"
	PolicyKeyConversionCutoff = "currency_date_limit"
)

// PolicyConfig is a row of the policy_config table. Value holds one of the
// JSON documents below.
type PolicyConfig struct {
	ConfigKey string `db:"config_key"`
	Value     []byte `db:"config_value"`
	AuditFields
}

// TransferLimitValue is the config_value of the currency_limit row.
type TransferLimitValue struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyType string          `json:"currency_type"`
}

// ConversionCutoffValue is the config_value of the currency_date_limit row.
// DateLimit is ISO-8601.
type ConversionCutoffValue struct {
	DateLimit string `json:"date_limit"`
}
