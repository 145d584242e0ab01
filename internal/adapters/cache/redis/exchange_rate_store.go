package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_transfer_app/internal/core/ports/repositories"
	"github.com/SscSPs/fx_transfer_app/internal/models"
	"github.com/SscSPs/fx_transfer_app/internal/utils/mapping"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	defaultNamespace = "fx"

	// putAllAttempts bounds the optimistic retries of PutAllRates.
	putAllAttempts = 10
)

// ExchangeRateStore keeps one JSON document per pair with a native key expiry.
// A set per source currency indexes the targets so PutAllRates can replace
// a whole table.
type ExchangeRateStore struct {
	client    goredis.UniversalClient
	ttl       time.Duration
	namespace string
}

// StoreOption configures an ExchangeRateStore.
type StoreOption func(*ExchangeRateStore)

// WithNamespace prefixes every key, e.g. to isolate tests.
func WithNamespace(ns string) StoreOption {
	return func(s *ExchangeRateStore) {
		s.namespace = ns
	}
}

// NewExchangeRateStore creates a Redis backed rate cache whose entries live for ttl.
func NewExchangeRateStore(client goredis.UniversalClient, ttl time.Duration, opts ...StoreOption) portsrepo.ExchangeRateStore {
	s := &ExchangeRateStore{
		client:    client,
		ttl:       ttl,
		namespace: defaultNamespace,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portsrepo.ExchangeRateStore = (*ExchangeRateStore)(nil)

// NewClient builds a client for a single node, or a cluster when several
// addresses are given.
func NewClient(addrs []string, password string) goredis.UniversalClient {
	if len(addrs) > 1 {
		return goredis.NewClusterClient(&goredis.ClusterOptions{
			Addrs:    addrs,
			Password: password,
		})
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     addrs[0],
		Password: password,
		DB:       0,
	})
}

// Keys of one source share the {SRC} hash tag so a cluster keeps them in one slot.
func (s *ExchangeRateStore) rateKey(source, target domain.CurrencyCode) string {
	return s.namespace + ":rate:{" + source.String() + "}" + target.String()
}

func (s *ExchangeRateStore) indexKey(source domain.CurrencyCode) string {
	return s.namespace + ":rates:{" + source.String() + "}"
}

func (s *ExchangeRateStore) GetRate(ctx context.Context, source, target domain.CurrencyCode) (*domain.ExchangeRate, error) {
	raw, err := s.client.Get(ctx, s.rateKey(source, target)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, apperrors.NewNotFoundError("exchange rate " + source.String() + target.String() + " not cached")
		}
		return nil, fmt.Errorf("failed to get exchange rate: %w", err)
	}

	var doc models.CachedRate
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cached rate %s%s: %w", source, target, err)
	}
	rate, err := mapping.FromCachedRate(doc)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (s *ExchangeRateStore) PutRate(ctx context.Context, source, target domain.CurrencyCode, rate decimal.Decimal, fetchedAt time.Time) (*domain.ExchangeRate, error) {
	entry := domain.NewExchangeRate(source, target, rate, fetchedAt, s.ttl)
	payload, err := json.Marshal(mapping.ToCachedRate(entry))
	if err != nil {
		return nil, fmt.Errorf("failed to encode exchange rate: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		s.queuePut(ctx, pipe, entry, payload)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put exchange rate %s: %w", entry.Pair(), err)
	}
	return &entry, nil
}

// PutAllRates replaces every pair of source in a single MULTI/EXEC block
// guarded by WATCH on the source index.
func (s *ExchangeRateStore) PutAllRates(ctx context.Context, source domain.CurrencyCode, quotes map[domain.PairKey]decimal.Decimal, fetchedAt time.Time) ([]domain.ExchangeRate, error) {
	entries := make([]domain.ExchangeRate, 0, len(quotes))
	payloads := make([][]byte, 0, len(quotes))
	for pair, rate := range quotes {
		if pair.Source != source {
			return nil, apperrors.NewValidationError(fmt.Sprintf("quote %s does not belong to source %s", pair, source))
		}
		entry := domain.NewExchangeRate(pair.Source, pair.Target, rate, fetchedAt, s.ttl)
		payload, err := json.Marshal(mapping.ToCachedRate(entry))
		if err != nil {
			return nil, fmt.Errorf("failed to encode exchange rate: %w", err)
		}
		entries = append(entries, entry)
		payloads = append(payloads, payload)
	}

	indexKey := s.indexKey(source)
	replace := func(tx *goredis.Tx) error {
		previous, err := tx.SMembers(ctx, indexKey).Result()
		if err != nil {
			return fmt.Errorf("failed to list cached targets of %s: %w", source, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			for _, target := range previous {
				pipe.Del(ctx, s.rateKey(source, domain.CurrencyCode(target)))
			}
			pipe.Del(ctx, indexKey)
			for i, entry := range entries {
				s.queuePut(ctx, pipe, entry, payloads[i])
			}
			return nil
		})
		return err
	}

	// WATCH aborts the EXEC when a concurrent PutRate or DeleteRate touches
	// the index between SMEMBERS and EXEC; the replacement is then retried.
	for attempt := 0; attempt < putAllAttempts; attempt++ {
		err := s.client.Watch(ctx, replace, indexKey)
		if err == nil {
			return entries, nil
		}
		if !errors.Is(err, goredis.TxFailedErr) {
			return nil, fmt.Errorf("failed to replace exchange rates of %s: %w", source, err)
		}
	}
	return nil, fmt.Errorf("failed to replace exchange rates of %s: index kept changing after %d attempts", source, putAllAttempts)
}

func (s *ExchangeRateStore) DeleteRate(ctx context.Context, source, target domain.CurrencyCode) error {
	var del *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		del = pipe.Del(ctx, s.rateKey(source, target))
		pipe.SRem(ctx, s.indexKey(source), target.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete exchange rate: %w", err)
	}
	if del.Val() == 0 {
		return apperrors.NewNotFoundError("exchange rate " + source.String() + target.String() + " not cached")
	}
	return nil
}

// queuePut writes the document and lets Redis drop it at ExpiresAt.
func (s *ExchangeRateStore) queuePut(ctx context.Context, pipe goredis.Pipeliner, entry domain.ExchangeRate, payload []byte) {
	key := s.rateKey(entry.Source, entry.Target)
	pipe.Set(ctx, key, payload, 0)
	pipe.ExpireAt(ctx, key, entry.ExpiresAt)
	pipe.SAdd(ctx, s.indexKey(entry.Source), entry.Target.String())
}
