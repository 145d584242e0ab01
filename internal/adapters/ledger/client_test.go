package ledger_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/adapters/ledger"
	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	path   string
	body   map[string]interface{}
	auth   string
	apiKey string
}

func newLedger(t *testing.T, replies map[string]string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		calls = append(calls, recorded{path: r.URL.Path, body: body, auth: r.Header.Get("Authorization"), apiKey: r.Header.Get("X-API-Key")})

		reply, ok := replies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestClient_GetAccount(t *testing.T) {
	srv, calls := newLedger(t, map[string]string{
		"/accounts/list": `{"statusCode":200,"body":[{"account_id":"acc-1","currency":"usd","amount":"100.50"},{"cuenta_id":"acc-2","saldo":7}]}`,
	})
	c := ledger.NewClient(srv.URL+"/", "key-1", time.Second)
	ctx := middleware.WithAuthenticatedUser(context.Background(), "u-1", "tok")

	account, err := c.GetAccount(ctx, "u-1", "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.AccountID)
	assert.Equal(t, "u-1", account.OwnerID)
	assert.Equal(t, "USD", account.Currency.String())
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("100.50")))

	second, err := c.GetAccount(ctx, "u-1", "acc-2")
	require.NoError(t, err)
	assert.Empty(t, second.Currency)
	assert.True(t, second.Balance.Equal(decimal.NewFromInt(7)))

	require.Len(t, *calls, 2)
	assert.Equal(t, "u-1", (*calls)[0].body["user_id"])
	assert.Equal(t, "Bearer tok", (*calls)[0].auth)
	assert.Equal(t, "key-1", (*calls)[0].apiKey)
}

func TestClient_GetAccount_StringEncodedBody(t *testing.T) {
	srv, _ := newLedger(t, map[string]string{
		"/accounts/list": `{"statusCode":200,"body":"[{\"account_id\":\"acc-1\",\"amount\":\"5\"}]"}`,
	})
	c := ledger.NewClient(srv.URL, "", time.Second)

	account, err := c.GetAccount(context.Background(), "u-1", "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(5)))
}

func TestClient_GetAccount_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "unknown account", reply: `{"statusCode":200,"body":[{"account_id":"other","amount":"1"}]}`},
		{name: "no accounts", reply: `{"statusCode":404,"body":{"error":"not found"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newLedger(t, map[string]string{"/accounts/list": tt.reply})
			c := ledger.NewClient(srv.URL, "", time.Second)

			_, err := c.GetAccount(context.Background(), "u-1", "acc-1")
			assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
		})
	}
}

func TestClient_SetBalanceAndCredit(t *testing.T) {
	srv, calls := newLedger(t, map[string]string{
		"/accounts/update":    `{"statusCode":200}`,
		"/accounts/add-money": `{"statusCode":200}`,
	})
	c := ledger.NewClient(srv.URL, "", time.Second)

	require.NoError(t, c.SetBalance(context.Background(), "acc-1", decimal.RequireFromString("50.25")))
	require.NoError(t, c.Credit(context.Background(), "u-2", "acc-9", decimal.RequireFromString("187.5")))

	require.Len(t, *calls, 2)
	assert.Equal(t, map[string]interface{}{"account_id": "acc-1", "amount": "50.25"}, (*calls)[0].body)
	assert.Equal(t, map[string]interface{}{"usuario_id": "u-2", "bankAccId": "acc-9", "amount": "187.5"}, (*calls)[1].body)
}

func TestClient_MutationFailures(t *testing.T) {
	srv, _ := newLedger(t, map[string]string{
		"/accounts/update": `{"statusCode":400,"body":{"error":"bad"}}`,
	})
	c := ledger.NewClient(srv.URL, "", time.Second)

	assert.Error(t, c.SetBalance(context.Background(), "acc-1", decimal.NewFromInt(1)))
	// add-money is not routed, so the server replies 404 with no envelope.
	assert.Error(t, c.Credit(context.Background(), "u-1", "acc-1", decimal.NewFromInt(1)))
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	c := ledger.NewClient(srv.URL, "", time.Second)

	err := c.SetBalance(context.Background(), "acc-1", decimal.NewFromInt(1))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrAccountNotFound)
}
