package mapping

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/dto"
	"github.com/SscSPs/fx_transfer_app/internal/models"
)

// ToModelTransferLimit converts a domain TransferLimitPolicy to its policy_config row.
func ToModelTransferLimit(d domain.TransferLimitPolicy) (models.PolicyConfig, error) {
	value, err := json.Marshal(models.TransferLimitValue{Amount: d.MaxAmount, CurrencyType: d.ReferenceCurrency.String()})
	if err != nil {
		return models.PolicyConfig{}, fmt.Errorf("failed to encode transfer limit: %w", err)
	}
	return models.PolicyConfig{
		ConfigKey:   models.PolicyKeyTransferLimit,
		Value:       value,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainTransferLimit converts a currency_limit row to a domain TransferLimitPolicy.
// A missing currency_type means the default reference currency.
func ToDomainTransferLimit(m models.PolicyConfig) (domain.TransferLimitPolicy, error) {
	var value models.TransferLimitValue
	if err := json.Unmarshal(m.Value, &value); err != nil {
		return domain.TransferLimitPolicy{}, fmt.Errorf("failed to decode transfer limit: %w", err)
	}
	reference := domain.DefaultReferenceCurrency
	if value.CurrencyType != "" {
		code, err := domain.NormalizeCurrency(value.CurrencyType)
		if err != nil {
			return domain.TransferLimitPolicy{}, fmt.Errorf("failed to decode transfer limit: %w", err)
		}
		reference = code
	}
	return domain.TransferLimitPolicy{
		MaxAmount:         value.Amount,
		ReferenceCurrency: reference,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelConversionCutoff converts a domain ConversionCutoff to its policy_config row.
func ToModelConversionCutoff(d domain.ConversionCutoff) (models.PolicyConfig, error) {
	value, err := json.Marshal(models.ConversionCutoffValue{DateLimit: d.CutoffDate.UTC().Format(time.RFC3339Nano)})
	if err != nil {
		return models.PolicyConfig{}, fmt.Errorf("failed to encode conversion cutoff: %w", err)
	}
	return models.PolicyConfig{
		ConfigKey:   models.PolicyKeyConversionCutoff,
		Value:       value,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainConversionCutoff converts a currency_date_limit row to a domain ConversionCutoff.
func ToDomainConversionCutoff(m models.PolicyConfig) (domain.ConversionCutoff, error) {
	var value models.ConversionCutoffValue
	if err := json.Unmarshal(m.Value, &value); err != nil {
		return domain.ConversionCutoff{}, fmt.Errorf("failed to decode conversion cutoff: %w", err)
	}
	cutoff, err := dto.ParseDateLimit(value.DateLimit)
	if err != nil {
		return domain.ConversionCutoff{}, fmt.Errorf("failed to decode conversion cutoff: %w", err)
	}
	return domain.ConversionCutoff{
		CutoffDate:  cutoff,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}, nil
}
