package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	"github.com/shopspring/decimal"
)

// liveResponse is the body of a currencylayer style /live call.
type liveResponse struct {
	Success   bool                   `json:"success"`
	Timestamp int64                  `json:"timestamp"`
	Source    string                 `json:"source"`
	Quotes    map[string]json.Number `json:"quotes"`
	Error     *struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error,omitempty"`
}

// HTTPProvider quotes rates from a currencylayer compatible API.
type HTTPProvider struct {
	baseURL   string
	accessKey string
	client    *http.Client
	now       func() time.Time
}

// HTTPProviderOption configures an HTTPProvider.
type HTTPProviderOption func(*HTTPProvider)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPProviderOption {
	return func(p *HTTPProvider) {
		p.client = c
	}
}

// WithProviderClock sets the clock used to stamp fetched rates.
func WithProviderClock(now func() time.Time) HTTPProviderOption {
	return func(p *HTTPProvider) {
		p.now = now
	}
}

// NewHTTPProvider creates a provider calling baseURL with the given access key.
func NewHTTPProvider(baseURL, accessKey string, timeout time.Duration, opts ...HTTPProviderOption) clients.RateProvider {
	p := &HTTPProvider{
		baseURL:   baseURL,
		accessKey: accessKey,
		client:    &http.Client{Timeout: timeout},
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ clients.RateProvider = (*HTTPProvider)(nil)

func (p *HTTPProvider) FetchPair(ctx context.Context, source, target domain.CurrencyCode) (decimal.Decimal, time.Time, error) {
	quotes, fetchedAt, err := p.live(ctx, source, target.String())
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	rate, ok := quotes[domain.NewPairKey(source, target)]
	if !ok {
		return decimal.Zero, time.Time{}, apperrors.NewRateUnavailable(fmt.Sprintf("no quote for %s%s", source, target), nil)
	}
	return rate, fetchedAt, nil
}

func (p *HTTPProvider) FetchAllForSource(ctx context.Context, source domain.CurrencyCode) (map[domain.PairKey]decimal.Decimal, time.Time, error) {
	return p.live(ctx, source, "")
}

func (p *HTTPProvider) live(ctx context.Context, source domain.CurrencyCode, currencies string) (map[domain.PairKey]decimal.Decimal, time.Time, error) {
	q := url.Values{}
	q.Set("access_key", p.accessKey)
	q.Set("source", source.String())
	if currencies != "" {
		q.Set("currencies", currencies)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/live?"+q.Encode(), nil)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, time.Time{}, apperrors.NewRateUnavailable("exchange rate API unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, time.Time{}, apperrors.NewRateUnavailable(fmt.Sprintf("exchange rate API returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, time.Time{}, apperrors.NewRateUnavailable("failed to read exchange rate response", err)
	}
	fetchedAt := p.now()

	var live liveResponse
	if err := json.Unmarshal(body, &live); err != nil {
		return nil, time.Time{}, apperrors.NewRateUnavailable("malformed exchange rate response", err)
	}
	if !live.Success {
		msg := "exchange rate API reported failure"
		if live.Error != nil && live.Error.Info != "" {
			msg += ": " + live.Error.Info
		}
		return nil, time.Time{}, apperrors.NewRateUnavailable(msg, nil)
	}

	quotes, err := parseQuotes(source, live.Quotes)
	if err != nil {
		return nil, time.Time{}, apperrors.NewRateUnavailable("malformed exchange rate response", err)
	}
	return quotes, fetchedAt, nil
}

// parseQuotes keeps only keys of source and rejects non numeric or non positive rates.
func parseQuotes(source domain.CurrencyCode, raw map[string]json.Number) (map[domain.PairKey]decimal.Decimal, error) {
	quotes := make(map[domain.PairKey]decimal.Decimal, len(raw))
	for key, value := range raw {
		pair, err := domain.ParsePairKey(key)
		if err != nil {
			return nil, err
		}
		if pair.Source != source {
			continue
		}
		rate, err := decimal.NewFromString(value.String())
		if err != nil {
			return nil, fmt.Errorf("quote %s: %w", key, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("quote %s is not positive", key)
		}
		quotes[pair] = rate
	}
	return quotes, nil
}
