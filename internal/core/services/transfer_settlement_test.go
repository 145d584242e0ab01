package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/SscSPs/fx_transfer_app/internal/core/services"
	"github.com/SscSPs/fx_transfer_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// memLedger keeps balances in memory. Mutations fail once their context is done.
type memLedger struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	delay    time.Duration
	debits   atomic.Int32

	// onSetBalance runs at the start of every SetBalance call.
	onSetBalance func()
}

func (l *memLedger) GetAccount(_ context.Context, userID, accountID string) (*domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[accountID]
	if !ok || acc.OwnerID != userID {
		return nil, apperrors.ErrAccountNotFound
	}
	return &acc, nil
}

func (l *memLedger) SetBalance(ctx context.Context, accountID string, newBalance decimal.Decimal) error {
	l.debits.Add(1)
	if l.onSetBalance != nil {
		l.onSetBalance()
	}
	select {
	case <-time.After(l.delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	acc := l.accounts[accountID]
	acc.Balance = newBalance
	l.accounts[accountID] = acc
	return nil
}

func (l *memLedger) Credit(ctx context.Context, userID, accountID string, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[accountID]
	if !ok || acc.OwnerID != userID {
		return apperrors.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(amount)
	l.accounts[accountID] = acc
	return nil
}

func (l *memLedger) balance(accountID string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[accountID].Balance
}

// memTransferRepo enforces one record per (sender, idempotency key) the way
// the unique index does.
type memTransferRepo struct {
	mu      sync.Mutex
	records []domain.TransferRecord
}

func (r *memTransferRepo) FindTransferByID(_ context.Context, transferID string) (*domain.TransferRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.TransferID == transferID {
			return &rec, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memTransferRepo) FindTransferByIdempotencyKey(_ context.Context, fromUser, key string) (*domain.TransferRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.FromUser == fromUser && rec.IdempotencyKey == key {
			return &rec, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memTransferRepo) ListTransfersByUser(context.Context, string, int, *time.Time, string) ([]domain.TransferRecord, error) {
	return nil, nil
}

func (r *memTransferRepo) SaveTransfer(_ context.Context, record domain.TransferRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *memTransferRepo) ReserveTransfer(_ context.Context, record domain.TransferRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.FromUser == record.FromUser && rec.IdempotencyKey == record.IdempotencyKey {
			return apperrors.ErrDuplicate
		}
	}
	r.records = append(r.records, record)
	return nil
}

func (r *memTransferRepo) FinalizeTransfer(_ context.Context, record domain.TransferRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.TransferID == record.TransferID && rec.Status == domain.TransferPending {
			r.records[i] = record
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memTransferRepo) snapshot() []domain.TransferRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.TransferRecord(nil), r.records...)
}

type TransferSettlementTestSuite struct {
	suite.Suite
	ledger *memLedger
	repo   *memTransferRepo
}

func (suite *TransferSettlementTestSuite) SetupTest() {
	suite.ledger = &memLedger{accounts: map[string]domain.Account{
		aliceUSD: {OwnerID: aliceID, AccountID: aliceUSD, Currency: "USD", Balance: decimal.NewFromInt(100)},
		bobUSD:   {OwnerID: bobID, AccountID: bobUSD, Currency: "USD", Balance: decimal.Zero},
	}}
	suite.repo = &memTransferRepo{}
}

func (suite *TransferSettlementTestSuite) newService() portssvc.TransferSvcFacade {
	return services.NewTransferService(suite.ledger, new(MockRateResolver), new(MockPolicyGate), suite.repo,
		services.WithSettleTimeout(5*time.Second))
}

func (suite *TransferSettlementTestSuite) request(key string) dto.TransferRequest {
	return dto.TransferRequest{
		IdempotencyKey: key,
		FromUserID:     aliceID,
		ToUserID:       bobID,
		FromAccountID:  aliceUSD,
		ToAccountID:    bobUSD,
		Amount:         amountPtr("50"),
		FromCurrency:   "USD",
		ToCurrency:     "USD",
	}
}

func (suite *TransferSettlementTestSuite) TestCallerCancelDuringDebitStillSettles() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	suite.ledger.delay = 10 * time.Millisecond
	suite.ledger.onSetBalance = cancel

	result, err := suite.newService().Transfer(ctx, suite.request("key-cancel"), aliceID)

	suite.Require().NoError(err)
	suite.Equal(domain.TransferSuccess, result.Record.Status)
	suite.True(result.RecordPersisted)
	suite.True(decimal.NewFromInt(50).Equal(suite.ledger.balance(aliceUSD)))
	suite.True(decimal.NewFromInt(50).Equal(suite.ledger.balance(bobUSD)))

	records := suite.repo.snapshot()
	suite.Require().Len(records, 1)
	suite.Equal(domain.TransferSuccess, records[0].Status)
	suite.True(decimal.NewFromInt(50).Equal(records[0].ToBalance))
}

func (suite *TransferSettlementTestSuite) TestCallerCancelWithoutKeyStillRecordsOutcome() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	suite.ledger.onSetBalance = cancel

	result, err := suite.newService().Transfer(ctx, suite.request(""), aliceID)

	suite.Require().NoError(err)
	suite.Equal(domain.TransferSuccess, result.Record.Status)
	suite.True(decimal.NewFromInt(50).Equal(suite.ledger.balance(bobUSD)))
	suite.Len(suite.repo.snapshot(), 1)
}

func (suite *TransferSettlementTestSuite) TestConcurrentSameKeyDebitsOnce() {
	suite.ledger.delay = 20 * time.Millisecond
	svc := suite.newService()

	var wg sync.WaitGroup
	results := make([]*domain.TransferResult, 2)
	errs := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Transfer(context.Background(), suite.request("key-race"), aliceID)
		}(i)
	}
	wg.Wait()

	suite.EqualValues(1, suite.ledger.debits.Load())
	suite.True(decimal.NewFromInt(50).Equal(suite.ledger.balance(aliceUSD)))
	suite.True(decimal.NewFromInt(50).Equal(suite.ledger.balance(bobUSD)))

	settled := 0
	for i := range results {
		if errs[i] != nil {
			suite.ErrorIs(errs[i], apperrors.ErrConflict)
			continue
		}
		if !results[i].Replayed {
			settled++
		}
	}
	suite.Equal(1, settled)

	records := suite.repo.snapshot()
	suite.Require().Len(records, 1)
	suite.Equal(domain.TransferSuccess, records[0].Status)
}

func TestTransferSettlementTestSuite(t *testing.T) {
	suite.Run(t, new(TransferSettlementTestSuite))
}
