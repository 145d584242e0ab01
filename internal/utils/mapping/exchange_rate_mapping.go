package mapping

import (
	"fmt"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		SourceCurrency: d.Source.String(),
		TargetCurrency: d.Target.String(),
		Rate:           d.Rate,
		FetchedAt:      d.FetchedAt,
		ExpiresAt:      d.ExpiresAt,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		Source:    domain.CurrencyCode(m.SourceCurrency),
		Target:    domain.CurrencyCode(m.TargetCurrency),
		Rate:      m.Rate,
		FetchedAt: m.FetchedAt.UTC(),
		ExpiresAt: m.ExpiresAt.UTC(),
	}
}

// ToCachedRate converts a domain ExchangeRate to its key-value document.
func ToCachedRate(d domain.ExchangeRate) models.CachedRate {
	return models.CachedRate{
		From:       d.Source.String(),
		To:         d.Target.String(),
		Rate:       d.Rate.String(),
		FetchedAt:  d.FetchedAt.Unix(),
		Expiration: d.ExpiresAt.Unix(),
		TTL:        d.ExpiresAt.Unix(),
	}
}

// FromCachedRate converts a key-value document back to a domain ExchangeRate.
func FromCachedRate(m models.CachedRate) (domain.ExchangeRate, error) {
	rate, err := decimal.NewFromString(m.Rate)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("invalid cached rate %q for %s%s: %w", m.Rate, m.From, m.To, err)
	}
	return domain.ExchangeRate{
		Source:    domain.CurrencyCode(m.From),
		Target:    domain.CurrencyCode(m.To),
		Rate:      rate,
		FetchedAt: time.Unix(m.FetchedAt, 0).UTC(),
		ExpiresAt: time.Unix(m.Expiration, 0).UTC(),
	}, nil
}
