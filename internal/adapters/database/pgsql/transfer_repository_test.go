package pgsql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransferRepositoryTestSuite struct {
	suite.Suite
	pool   pgxmock.PgxPoolIface
	repo   *PgxTransferRepository
	record domain.TransferRecord
}

func (s *TransferRepositoryTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.pool = pool
	s.repo = newPgxTransferRepository(pool).(*PgxTransferRepository)
	s.record = domain.TransferRecord{
		TransferID: "t-1", IdempotencyKey: "key-1", FromUser: "user-a", ToUser: "user-b",
		FromAccount: "acc-a", ToAccount: "acc-b",
		SourceAmount: decimal.NewFromInt(50), ConvertedAmount: decimal.NewFromInt(50),
		FromCurrency: "USD", ToCurrency: "USD",
		FromBalance: decimal.NewFromInt(100), ToBalance: decimal.Zero,
		Status: domain.TransferPending, Timestamp: time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC),
	}
}

func (s *TransferRepositoryTestSuite) TearDownTest() {
	s.NoError(s.pool.ExpectationsWereMet())
	s.pool.Close()
}

func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func (s *TransferRepositoryTestSuite) reserveQuery() string {
	return regexp.QuoteMeta("ON CONFLICT (from_user, idempotency_key) WHERE idempotency_key IS NOT NULL DO NOTHING")
}

func (s *TransferRepositoryTestSuite) TestReserveTransferClaimsKey() {
	s.pool.ExpectExec(s.reserveQuery()).
		WithArgs(anyArgs(16)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s.NoError(s.repo.ReserveTransfer(context.Background(), s.record))
}

func (s *TransferRepositoryTestSuite) TestReserveTransferKeyAlreadyClaimed() {
	s.pool.ExpectExec(s.reserveQuery()).
		WithArgs(anyArgs(16)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := s.repo.ReserveTransfer(context.Background(), s.record)

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *TransferRepositoryTestSuite) TestReserveTransferDuplicateID() {
	s.pool.ExpectExec(s.reserveQuery()).
		WithArgs(anyArgs(16)...).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := s.repo.ReserveTransfer(context.Background(), s.record)

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *TransferRepositoryTestSuite) TestFinalizeTransferOnlyTouchesPending() {
	s.record.Status = domain.TransferSuccess
	s.pool.ExpectExec(regexp.QuoteMeta("WHERE transfer_id = $1 AND status = 'PENDING';")).
		WithArgs("t-1", "SUCCESS", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), s.record.Timestamp).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	s.pool.ExpectExec(regexp.QuoteMeta("WHERE transfer_id = $1 AND status = 'PENDING';")).
		WithArgs("t-1", "SUCCESS", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), s.record.Timestamp).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	s.NoError(s.repo.FinalizeTransfer(context.Background(), s.record))
	s.ErrorIs(s.repo.FinalizeTransfer(context.Background(), s.record), apperrors.ErrNotFound)
}

func TestTransferRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TransferRepositoryTestSuite))
}
