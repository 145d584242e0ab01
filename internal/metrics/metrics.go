package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup outcomes.
const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheExpired = "expired"
)

// TransferMetrics holds the collectors for the transfer engine and the rate cache.
type TransferMetrics struct {
	TransfersTotal         *prometheus.CounterVec
	RateCacheLookupsTotal  *prometheus.CounterVec
	RateProviderFetchTime  *prometheus.HistogramVec
	LedgerMutationFailures *prometheus.CounterVec
}

// NewTransferMetrics registers the collectors on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewTransferMetrics(reg prometheus.Registerer) *TransferMetrics {
	factory := promauto.With(reg)
	return &TransferMetrics{
		TransfersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfers_total",
				Help: "Transfers that reached the ledger, by final status",
			},
			[]string{"status", "conversion"},
		),
		RateCacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Exchange rate cache lookups by result",
			},
			[]string{"result"},
		),
		RateProviderFetchTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rate_provider_fetch_duration_seconds",
				Help:    "Upstream quotation latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms .. ~5s
			},
			[]string{"operation"},
		),
		LedgerMutationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_mutation_failures_total",
				Help: "Failed ledger mutations by stage",
			},
			[]string{"stage"},
		),
	}
}

// RecordTransfer counts a transfer outcome.
func (m *TransferMetrics) RecordTransfer(status string, conversion bool) {
	if m == nil {
		return
	}
	conv := "false"
	if conversion {
		conv = "true"
	}
	m.TransfersTotal.WithLabelValues(status, conv).Inc()
}

// RecordCacheLookup counts a rate cache lookup.
func (m *TransferMetrics) RecordCacheLookup(result string) {
	if m == nil {
		return
	}
	m.RateCacheLookupsTotal.WithLabelValues(result).Inc()
}

// ObserveProviderFetch records the latency of an upstream call started at start.
func (m *TransferMetrics) ObserveProviderFetch(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.RateProviderFetchTime.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordLedgerFailure counts a failed debit, credit or compensation.
func (m *TransferMetrics) RecordLedgerFailure(stage string) {
	if m == nil {
		return
	}
	m.LedgerMutationFailures.WithLabelValues(stage).Inc()
}
