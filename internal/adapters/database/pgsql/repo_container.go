package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/fx_transfer_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ PgxPool = (*pgxpool.Pool)(nil)

// NewRepositoryProvider wires the Postgres repositories. rateStore replaces
// the Postgres rate cache when another backend is configured.
func NewRepositoryProvider(dbPool *pgxpool.Pool, rateTTL time.Duration, rateStore portsrepo.ExchangeRateStore) portsrepo.RepositoryProvider {
	if rateStore == nil {
		rateStore = newPgxExchangeRateRepository(dbPool, rateTTL)
	}

	return portsrepo.RepositoryProvider{
		RateStore:    rateStore,
		TransferRepo: newPgxTransferRepository(dbPool),
		PolicyRepo:   newPgxPolicyRepository(dbPool),
	}
}
