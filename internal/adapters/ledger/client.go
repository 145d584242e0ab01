package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	"github.com/SscSPs/fx_transfer_app/internal/middleware"
	"github.com/shopspring/decimal"
)

type listAccountsRequest struct {
	UserID string `json:"user_id"`
}

type updateBalanceRequest struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type addMoneyRequest struct {
	UserID    string          `json:"usuario_id"`
	AccountID string          `json:"bankAccId"`
	Amount    decimal.Decimal `json:"amount"`
}

// envelope is the reply shape of every ledger call. Body is either the
// payload itself or the payload encoded as a JSON string.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

// accountEntry accepts both spellings the ledger uses for ids and balances.
type accountEntry struct {
	AccountID string           `json:"account_id"`
	CuentaID  string           `json:"cuenta_id"`
	Currency  string           `json:"currency"`
	Moneda    string           `json:"moneda"`
	Amount    *decimal.Decimal `json:"amount"`
	Saldo     *decimal.Decimal `json:"saldo"`
}

func (e accountEntry) id() string {
	if e.AccountID != "" {
		return e.AccountID
	}
	return e.CuentaID
}

func (e accountEntry) balance() decimal.Decimal {
	switch {
	case e.Amount != nil:
		return *e.Amount
	case e.Saldo != nil:
		return *e.Saldo
	default:
		return decimal.Zero
	}
}

func (e accountEntry) currency() string {
	if e.Currency != "" {
		return e.Currency
	}
	return e.Moneda
}

// Client talks to the account ledger over JSON/HTTP. Mutations are sent
// exactly once; the caller decides how to recover from a failure.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a ledger client with the given per call timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) clients.AccountLedger {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

var _ clients.AccountLedger = (*Client)(nil)

func (c *Client) GetAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	env, err := c.post(ctx, "/accounts/list", listAccountsRequest{UserID: userID})
	if err != nil {
		return nil, err
	}
	if env.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: user %s has no accounts", apperrors.ErrAccountNotFound, userID)
	}
	if env.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ledger list returned status %d", env.StatusCode)
	}

	var entries []accountEntry
	if err := decodeBody(env.Body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode ledger accounts: %w", err)
	}
	for _, e := range entries {
		if e.id() != accountID {
			continue
		}
		account := &domain.Account{
			OwnerID:   userID,
			AccountID: accountID,
			Balance:   e.balance(),
		}
		if raw := e.currency(); raw != "" {
			code, err := domain.NormalizeCurrency(raw)
			if err != nil {
				return nil, fmt.Errorf("ledger reported invalid currency for %s: %w", accountID, err)
			}
			account.Currency = code
		}
		return account, nil
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
}

func (c *Client) SetBalance(ctx context.Context, accountID string, newBalance decimal.Decimal) error {
	env, err := c.post(ctx, "/accounts/update", updateBalanceRequest{AccountID: accountID, Amount: newBalance})
	if err != nil {
		return err
	}
	if env.StatusCode != http.StatusOK {
		return fmt.Errorf("ledger update returned status %d", env.StatusCode)
	}
	return nil
}

func (c *Client) Credit(ctx context.Context, userID, accountID string, amount decimal.Decimal) error {
	env, err := c.post(ctx, "/accounts/add-money", addMoneyRequest{UserID: userID, AccountID: accountID, Amount: amount})
	if err != nil {
		return err
	}
	if env.StatusCode != http.StatusOK {
		return fmt.Errorf("ledger add-money returned status %d", env.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if token, ok := middleware.BearerTokenFromCtx(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	middleware.GetLoggerFromCtx(ctx).Debug("Ledger call completed",
		slog.String("path", path),
		slog.Int("http_status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger response: %w", err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("ledger %s returned HTTP %d", path, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode ledger response: %w", err)
	}
	if env.StatusCode == 0 {
		env.StatusCode = resp.StatusCode
	}
	return &env, nil
}

// decodeBody unmarshals body into v, unwrapping a string encoded payload first.
func decodeBody(body json.RawMessage, v interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return err
		}
		trimmed = []byte(inner)
	}
	if len(trimmed) == 0 {
		return nil
	}
	return json.Unmarshal(trimmed, v)
}
