package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("transfer failed: %w", apperrors.NewPolicyViolation("conversion cutoff passed"))

	assert.True(t, errors.Is(err, apperrors.ErrPolicyViolation))
	assert.False(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, apperrors.KindPolicyViolation, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "conversion cutoff passed")
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "bare sentinel", err: apperrors.ErrInsufficientFunds, want: apperrors.KindInsufficientFunds},
		{name: "wrapped sentinel", err: fmt.Errorf("%w: bad amount", apperrors.ErrValidation), want: apperrors.KindInvalidRequest},
		{name: "conflict", err: apperrors.New(apperrors.KindConflict, "still in progress", nil), want: apperrors.KindConflict},
		{name: "unknown", err: errors.New("boom"), want: apperrors.KindInternal},
		{name: "ledger mutation", err: &apperrors.LedgerMutationError{Stage: "credit", Err: errors.New("timeout")}, want: apperrors.KindLedgerMutationFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.KindOf(tt.err))
		})
	}
}

func TestLedgerMutationError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &apperrors.LedgerMutationError{Stage: "credit", Compensated: true, TransferID: "t-1", Err: cause}

	assert.ErrorIs(t, err, apperrors.ErrLedgerMutationFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "debit reversed")

	err.Compensated = false
	assert.Contains(t, err.Error(), "manual reconciliation required")

	debitErr := &apperrors.LedgerMutationError{Stage: apperrors.StageDebit, TransferID: "t-2", Err: cause}
	assert.Contains(t, debitErr.Error(), "no funds moved")
}
