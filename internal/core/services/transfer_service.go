package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/fx_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/SscSPs/fx_transfer_app/internal/dto"
	"github.com/SscSPs/fx_transfer_app/internal/metrics"
	"github.com/SscSPs/fx_transfer_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultTransferPageSize = 20

	// defaultSettleTimeout bounds the ledger mutations and the record write
	// once a transfer has committed to touching the ledger.
	defaultSettleTimeout = 30 * time.Second
)

// TransferServiceOption configures a transfer service.
type TransferServiceOption func(*transferService)

// WithTransferClock overrides the clock used for cutoff checks and record timestamps.
func WithTransferClock(now func() time.Time) TransferServiceOption {
	return func(s *transferService) {
		s.BaseService.now = now
	}
}

// WithTransferIDGenerator overrides how transfer IDs are minted.
func WithTransferIDGenerator(newID func() string) TransferServiceOption {
	return func(s *transferService) {
		s.newID = newID
	}
}

// WithTransferEventPublisher publishes outcomes after each transfer.
func WithTransferEventPublisher(publisher clients.TransferEventPublisher) TransferServiceOption {
	return func(s *transferService) {
		s.publisher = publisher
	}
}

// WithSettleTimeout overrides how long debit, credit, compensation and the
// record write may take after the caller has gone away.
func WithSettleTimeout(d time.Duration) TransferServiceOption {
	return func(s *transferService) {
		s.settleTimeout = d
	}
}

// WithTransferMetrics records transfer and ledger failure counters.
func WithTransferMetrics(m *metrics.TransferMetrics) TransferServiceOption {
	return func(s *transferService) {
		s.metrics = m
	}
}

// transferService runs one transfer per call: validate, check policy,
// read balances, resolve the rate, debit, credit, then record.
type transferService struct {
	BaseService
	ledger    clients.AccountLedger
	rates     portssvc.RateResolver
	policy    portssvc.PolicyGate
	repo      portsrepo.TransferRepositoryFacade
	publisher clients.TransferEventPublisher
	metrics   *metrics.TransferMetrics
	newID     func() string

	settleTimeout time.Duration
}

// NewTransferService creates a new transfer service.
func NewTransferService(
	ledger clients.AccountLedger,
	rates portssvc.RateResolver,
	policy portssvc.PolicyGate,
	repo portsrepo.TransferRepositoryFacade,
	opts ...TransferServiceOption,
) portssvc.TransferSvcFacade {
	svc := &transferService{
		ledger: ledger,
		rates:  rates,
		policy: policy,
		repo:   repo,
		newID:  uuid.NewString,

		settleTimeout: defaultSettleTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) Transfer(ctx context.Context, req dto.TransferRequest, requestingUserID string) (*domain.TransferResult, error) {
	cmd, err := s.validate(req, requestingUserID)
	if err != nil {
		return nil, err
	}
	logger := s.GetLogger(ctx).With(
		slog.String("from_account", cmd.FromAccount),
		slog.String("to_account", cmd.ToAccount),
		slog.String("from_currency", cmd.FromCurrency.String()),
		slog.String("to_currency", cmd.ToCurrency.String()),
	)

	if cmd.IdempotencyKey != "" {
		result, err := s.replay(ctx, cmd)
		if err != nil || result != nil {
			return result, err
		}
	}

	if cmd.IsConversion() {
		if err := s.policy.CheckCutoff(ctx, s.Now()); err != nil {
			return nil, err
		}
		if err := s.policy.CheckAmount(ctx, cmd.Amount, cmd.FromCurrency, s.rates); err != nil {
			return nil, err
		}
	}

	from, err := s.readAccount(ctx, cmd.FromUser, cmd.FromAccount, cmd.FromCurrency, "source")
	if err != nil {
		return nil, err
	}
	to, err := s.readAccount(ctx, cmd.ToUser, cmd.ToAccount, cmd.ToCurrency, "destination")
	if err != nil {
		return nil, err
	}
	if !from.CanCover(cmd.Amount) {
		logger.Info("Transfer refused for insufficient funds")
		return nil, apperrors.New(apperrors.KindInsufficientFunds, "insufficient balance in source account", nil)
	}

	converted := cmd.Amount
	var rateValue *decimal.Decimal
	if cmd.IsConversion() {
		rate, err := s.rates.ResolveRate(ctx, cmd.FromCurrency, cmd.ToCurrency)
		if err != nil {
			return nil, err
		}
		converted = rate.Convert(cmd.Amount)
		rateValue = &rate.Rate
	}

	record := domain.TransferRecord{
		TransferID:      s.newID(),
		IdempotencyKey:  cmd.IdempotencyKey,
		FromUser:        cmd.FromUser,
		ToUser:          cmd.ToUser,
		FromAccount:     cmd.FromAccount,
		ToAccount:       cmd.ToAccount,
		SourceAmount:    cmd.Amount,
		ConvertedAmount: converted,
		FromCurrency:    cmd.FromCurrency,
		ToCurrency:      cmd.ToCurrency,
		ExchangeRate:    rateValue,
		FromBalance:     from.Balance,
		ToBalance:       to.Balance,
	}
	logger = logger.With(slog.String("transfer_id", record.TransferID))

	reserved := false
	if cmd.IdempotencyKey != "" {
		result, err := s.reserve(ctx, cmd, record)
		if err != nil || result != nil {
			return result, err
		}
		reserved = true
	}

	// From the debit on, the transfer must reach a recorded outcome even if
	// the caller disconnects, so the rest runs detached from its cancellation.
	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.settleTimeout)
	defer cancel()

	newFromBalance := from.Balance.Sub(cmd.Amount)
	if err := s.ledger.SetBalance(settleCtx, cmd.FromAccount, newFromBalance); err != nil {
		s.metrics.RecordLedgerFailure(apperrors.StageDebit)
		logger.Error("Ledger debit failed", slog.String("error", err.Error()))
		s.recordFailure(settleCtx, &record, reserved, fmt.Sprintf("debit failed: %v", err))
		return nil, &apperrors.LedgerMutationError{Stage: apperrors.StageDebit, TransferID: record.TransferID, Err: err}
	}

	if err := s.ledger.Credit(settleCtx, cmd.ToUser, cmd.ToAccount, converted); err != nil {
		s.metrics.RecordLedgerFailure(apperrors.StageCredit)
		return nil, s.compensate(settleCtx, logger, &record, reserved, err)
	}

	record.Status = domain.TransferSuccess
	record.FromBalance = newFromBalance
	record.ToBalance = to.Balance.Add(converted)
	record.Timestamp = s.Now()

	result := &domain.TransferResult{Record: record, RecordPersisted: true}
	if err := s.store(settleCtx, record, reserved); err != nil {
		// Money has moved; the caller still gets the computed result.
		result.RecordPersisted = false
		logger.Error("Failed to persist transfer record after ledger mutation",
			slog.String("error", err.Error()),
			slog.Bool("reconciliation_required", true))
	}
	s.publish(settleCtx, record)
	s.metrics.RecordTransfer(string(domain.TransferSuccess), record.IsConversion())

	logger.Info("Transfer completed",
		slog.String("amount", cmd.Amount.String()),
		slog.String("converted_amount", converted.String()))
	return result, nil
}

// reserve claims the idempotency key with a PENDING record before any
// ledger mutation. When another request holds the key, its outcome is
// replayed, or a conflict is returned while it is still running.
func (s *transferService) reserve(ctx context.Context, cmd domain.TransferCommand, record domain.TransferRecord) (*domain.TransferResult, error) {
	record.Status = domain.TransferPending
	record.Timestamp = s.Now()

	err := s.repo.ReserveTransfer(ctx, record)
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, apperrors.ErrDuplicate) {
		s.LogError(ctx, err, "Failed to reserve idempotency key", slog.String("transfer_id", record.TransferID))
		return nil, apperrors.NewPersistenceError("failed to reserve idempotency key", err)
	}

	result, err := s.replay(ctx, cmd)
	if err != nil || result != nil {
		return result, err
	}
	return nil, apperrors.New(apperrors.KindConflict, "idempotency key is held by another transfer", nil)
}

// store writes a finished record, completing the reservation when there is one.
func (s *transferService) store(ctx context.Context, record domain.TransferRecord, reserved bool) error {
	if reserved {
		return s.repo.FinalizeTransfer(ctx, record)
	}
	return s.repo.SaveTransfer(ctx, record)
}

// compensate reverses the debit after a failed credit by crediting the
// source account with the original amount.
func (s *transferService) compensate(ctx context.Context, logger *slog.Logger, record *domain.TransferRecord, reserved bool, creditErr error) error {
	reason := fmt.Sprintf("credit failed: %v", creditErr)
	compensated := true
	if err := s.ledger.Credit(ctx, record.FromUser, record.FromAccount, record.SourceAmount); err != nil {
		compensated = false
		s.metrics.RecordLedgerFailure(apperrors.StageCompensation)
		reason = fmt.Sprintf("%s; debit reversal failed: %v", reason, err)
		logger.Error("Ledger credit failed and debit could not be reversed",
			slog.String("error", creditErr.Error()),
			slog.String("compensation_error", err.Error()),
			slog.Bool("reconciliation_required", true))
	} else {
		logger.Error("Ledger credit failed, debit reversed", slog.String("error", creditErr.Error()))
	}

	if !compensated {
		// Balance after the debit that could not be undone.
		record.FromBalance = record.FromBalance.Sub(record.SourceAmount)
	}
	s.recordFailure(ctx, record, reserved, reason)
	if !compensated && s.publisher != nil {
		if err := s.publisher.PublishReconciliation(ctx, *record, creditErr); err != nil {
			logger.Error("Failed to publish reconciliation event", slog.String("error", err.Error()))
		}
	}
	return &apperrors.LedgerMutationError{Stage: apperrors.StageCredit, Compensated: compensated, TransferID: record.TransferID, Err: creditErr}
}

// recordFailure persists a Failed record for an attempt that reached the ledger.
func (s *transferService) recordFailure(ctx context.Context, record *domain.TransferRecord, reserved bool, reason string) {
	record.Status = domain.TransferFailed
	record.FailureReason = reason
	record.Timestamp = s.Now()
	if err := s.store(ctx, *record, reserved); err != nil {
		s.LogError(ctx, err, "Failed to persist failed transfer record", slog.String("transfer_id", record.TransferID))
	}
	s.publish(ctx, *record)
	s.metrics.RecordTransfer(string(domain.TransferFailed), record.IsConversion())
}

func (s *transferService) publish(ctx context.Context, record domain.TransferRecord) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransfer(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to publish transfer event", slog.String("transfer_id", record.TransferID))
	}
}

// replay returns the stored outcome of a prior attempt with the same key.
// Both return values are nil when the key is new.
func (s *transferService) replay(ctx context.Context, cmd domain.TransferCommand) (*domain.TransferResult, error) {
	prior, err := s.repo.FindTransferByIdempotencyKey(ctx, cmd.FromUser, cmd.IdempotencyKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to look up idempotency key")
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}

	if prior.ToUser != cmd.ToUser || prior.FromAccount != cmd.FromAccount || prior.ToAccount != cmd.ToAccount ||
		!prior.SourceAmount.Equal(cmd.Amount) || prior.FromCurrency != cmd.FromCurrency || prior.ToCurrency != cmd.ToCurrency {
		return nil, apperrors.NewValidationError("idempotency key was already used for a different transfer")
	}

	if prior.Status == domain.TransferPending {
		return nil, apperrors.New(apperrors.KindConflict, "transfer "+prior.TransferID+" with this idempotency key is still in progress", nil)
	}
	s.LogInfo(ctx, "Replaying transfer for idempotency key", slog.String("transfer_id", prior.TransferID), slog.String("status", string(prior.Status)))
	if prior.Status != domain.TransferSuccess {
		return nil, apperrors.New(apperrors.KindLedgerMutationFailure, "transfer "+prior.TransferID+" previously failed: "+prior.FailureReason, nil)
	}
	return &domain.TransferResult{Record: *prior, RecordPersisted: true, Replayed: true}, nil
}

// readAccount reads an account and checks its currency when the ledger reports one.
func (s *transferService) readAccount(ctx context.Context, userID, accountID string, currency domain.CurrencyCode, side string) (*domain.Account, error) {
	account, err := s.ledger.GetAccount(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.New(apperrors.KindAccountNotFound, side+" account not found", err)
		}
		s.LogError(ctx, err, "Failed to read account from ledger", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to read %s account: %w", side, err)
	}
	if account.Currency != "" && account.Currency != currency {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s account is held in %s, not %s", side, account.Currency, currency))
	}
	return account, nil
}

// validate checks field presence, the amount sign and the currency codes.
func (s *transferService) validate(req dto.TransferRequest, requestingUserID string) (domain.TransferCommand, error) {
	fields := []struct{ name, value string }{
		{"fromUserId", req.FromUserID},
		{"toUserId", req.ToUserID},
		{"fromAccountId", req.FromAccountID},
		{"toAccountId", req.ToAccountID},
		{"fromCurrency", req.FromCurrency},
		{"toCurrency", req.ToCurrency},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if req.Amount == nil {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return domain.TransferCommand{}, apperrors.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	if !req.Amount.IsPositive() {
		return domain.TransferCommand{}, apperrors.NewValidationError("amount must be greater than zero")
	}
	if err := domain.CheckTransferAmount(*req.Amount); err != nil {
		return domain.TransferCommand{}, apperrors.New(apperrors.KindInvalidRequest, err.Error(), nil)
	}

	fromCurrency, err := domain.NormalizeCurrency(req.FromCurrency)
	if err != nil {
		return domain.TransferCommand{}, apperrors.New(apperrors.KindInvalidRequest, "invalid fromCurrency", err)
	}
	toCurrency, err := domain.NormalizeCurrency(req.ToCurrency)
	if err != nil {
		return domain.TransferCommand{}, apperrors.New(apperrors.KindInvalidRequest, "invalid toCurrency", err)
	}

	cmd := domain.TransferCommand{
		RequestedBy:    requestingUserID,
		IdempotencyKey: strings.TrimSpace(req.IdempotencyKey),
		FromUser:       strings.TrimSpace(req.FromUserID),
		ToUser:         strings.TrimSpace(req.ToUserID),
		FromAccount:    strings.TrimSpace(req.FromAccountID),
		ToAccount:      strings.TrimSpace(req.ToAccountID),
		Amount:         *req.Amount,
		FromCurrency:   fromCurrency,
		ToCurrency:     toCurrency,
	}
	if cmd.FromUser == cmd.ToUser && cmd.FromAccount == cmd.ToAccount {
		return domain.TransferCommand{}, apperrors.NewValidationError("source and destination accounts must differ")
	}
	if cmd.RequestedBy != cmd.FromUser {
		return domain.TransferCommand{}, apperrors.New(apperrors.KindForbidden, "transfers can only be made from your own accounts", nil)
	}
	return cmd, nil
}

func (s *transferService) GetTransfer(ctx context.Context, transferID string, requestingUserID string) (*domain.TransferRecord, error) {
	record, err := s.repo.FindTransferByID(ctx, transferID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transfer", slog.String("transfer_id", transferID))
		}
		return nil, err
	}
	// Records are visible to either party only; others see a plain not found.
	if record.FromUser != requestingUserID && record.ToUser != requestingUserID {
		return nil, apperrors.NewNotFoundError("transfer not found")
	}
	return record, nil
}

func (s *transferService) ListTransfers(ctx context.Context, requestingUserID string, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransferPageSize
	}

	var beforeTime *time.Time
	var beforeID string
	if params.NextToken != nil && *params.NextToken != "" {
		ts, id, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, apperrors.New(apperrors.KindInvalidRequest, "invalid nextToken", err)
		}
		beforeTime, beforeID = &ts, id
	}

	// One extra row tells us whether another page exists.
	records, err := s.repo.ListTransfersByUser(ctx, requestingUserID, limit+1, beforeTime, beforeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers", slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	resp := &dto.ListTransfersResponse{Transfers: []dto.TransferRecordResponse{}}
	if len(records) > limit {
		last := records[limit-1]
		token := pagination.EncodeToken(last.Timestamp, last.TransferID)
		resp.NextToken = &token
		records = records[:limit]
	}
	for _, rec := range records {
		resp.Transfers = append(resp.Transfers, dto.ToTransferRecordResponse(rec))
	}
	return resp, nil
}
