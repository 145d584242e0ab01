package pgsql

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_transfer_app/internal/core/ports/repositories"
	"github.com/SscSPs/fx_transfer_app/internal/models"
	"github.com/SscSPs/fx_transfer_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PgxExchangeRateRepository caches exchange rates in the exchange_rate_cache table.
type PgxExchangeRateRepository struct {
	BaseRepository
	ttl time.Duration
}

// newPgxExchangeRateRepository creates a rate cache whose entries live for ttl.
func newPgxExchangeRateRepository(pool PgxPool, ttl time.Duration) portsrepo.ExchangeRateStore {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ttl:            ttl,
	}
}

var _ portsrepo.ExchangeRateStore = (*PgxExchangeRateRepository)(nil)

// GetRate returns the stored entry for a pair, expired or not.
func (r *PgxExchangeRateRepository) GetRate(ctx context.Context, source, target domain.CurrencyCode) (*domain.ExchangeRate, error) {
	query := `
		SELECT source_currency, target_currency, rate, fetched_at, expires_at
		FROM exchange_rate_cache
		WHERE source_currency = $1 AND target_currency = $2;
	`
	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, source.String(), target.String()).Scan(
		&modelRate.SourceCurrency, &modelRate.TargetCurrency, &modelRate.Rate,
		&modelRate.FetchedAt, &modelRate.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate " + source.String() + target.String() + " not cached")
		}
		return nil, fmt.Errorf("failed to get exchange rate: %w", err)
	}

	rate := mapping.ToDomainExchangeRate(modelRate)
	return &rate, nil
}

// PutRate upserts one pair.
func (r *PgxExchangeRateRepository) PutRate(ctx context.Context, source, target domain.CurrencyCode, rate decimal.Decimal, fetchedAt time.Time) (*domain.ExchangeRate, error) {
	entry := domain.NewExchangeRate(source, target, rate, fetchedAt, r.ttl)
	modelRate := mapping.ToModelExchangeRate(entry)

	query := `
		INSERT INTO exchange_rate_cache (source_currency, target_currency, rate, fetched_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (source_currency, target_currency)
		DO UPDATE SET rate = EXCLUDED.rate, fetched_at = EXCLUDED.fetched_at, expires_at = EXCLUDED.expires_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRate.SourceCurrency, modelRate.TargetCurrency, modelRate.Rate,
		modelRate.FetchedAt, modelRate.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save exchange rate %s: %w", entry.Pair(), err)
	}
	return &entry, nil
}

// PutAllRates replaces the table of a source. Delete and insert share one
// transaction so readers never observe a partial table.
func (r *PgxExchangeRateRepository) PutAllRates(ctx context.Context, source domain.CurrencyCode, quotes map[domain.PairKey]decimal.Decimal, fetchedAt time.Time) ([]domain.ExchangeRate, error) {
	entries := make([]domain.ExchangeRate, 0, len(quotes))
	for pair, rate := range quotes {
		if pair.Source != source {
			return nil, apperrors.NewValidationError(fmt.Sprintf("quote %s does not belong to source %s", pair, source))
		}
		entries = append(entries, domain.NewExchangeRate(pair.Source, pair.Target, rate, fetchedAt, r.ttl))
	}
	slices.SortFunc(entries, func(a, b domain.ExchangeRate) int {
		return strings.Compare(a.Target.String(), b.Target.String())
	})

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM exchange_rate_cache WHERE source_currency = $1;`, source.String()); err != nil {
		return nil, fmt.Errorf("failed to clear exchange rates for %s: %w", source, err)
	}

	if len(entries) > 0 {
		query, args := insertRatesQuery(entries)
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("failed to insert exchange rates for %s: %w", source, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entries, nil
}

// insertRatesQuery builds one multi-row INSERT for a source table.
func insertRatesQuery(entries []domain.ExchangeRate) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO exchange_rate_cache (source_currency, target_currency, rate, fetched_at, expires_at) VALUES `)
	args := make([]interface{}, 0, len(entries)*5)
	for i, entry := range entries {
		m := mapping.ToModelExchangeRate(entry)
		if i > 0 {
			sb.WriteString(", ")
		}
		n := len(args)
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5)
		args = append(args, m.SourceCurrency, m.TargetCurrency, m.Rate, m.FetchedAt, m.ExpiresAt)
	}
	sb.WriteString(";")
	return sb.String(), args
}

// DeleteRate removes one pair.
func (r *PgxExchangeRateRepository) DeleteRate(ctx context.Context, source, target domain.CurrencyCode) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM exchange_rate_cache WHERE source_currency = $1 AND target_currency = $2;`,
		source.String(), target.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to delete exchange rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("exchange rate " + source.String() + target.String() + " not cached")
	}
	return nil
}
