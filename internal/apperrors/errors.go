package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can tell retryable infrastructure
// failures apart from terminal validation or policy failures.
type Kind string

const (
	KindInvalidRequest        Kind = "INVALID_REQUEST"
	KindUnauthorized          Kind = "UNAUTHORIZED"
	KindForbidden             Kind = "FORBIDDEN"
	KindPolicyViolation       Kind = "POLICY_VIOLATION"
	KindAccountNotFound       Kind = "ACCOUNT_NOT_FOUND"
	KindInsufficientFunds     Kind = "INSUFFICIENT_FUNDS"
	KindRateUnavailable       Kind = "RATE_UNAVAILABLE"
	KindLedgerMutationFailure Kind = "LEDGER_MUTATION_FAILURE"
	KindPersistenceFailure    Kind = "PERSISTENCE_FAILURE"
	KindNotFound              Kind = "NOT_FOUND"
	KindConflict              Kind = "CONFLICT"
	KindInternal              Kind = "INTERNAL"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrPolicyViolation       = errors.New("policy violation")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrRateUnavailable       = errors.New("exchange rate unavailable")
	ErrLedgerMutationFailure = errors.New("ledger mutation failure")
	ErrPersistenceFailure    = errors.New("persistence failure")
	ErrInternal              = errors.New("internal error")
	ErrConflict              = errors.New("conflict")
)

var sentinels = map[Kind]error{
	KindInvalidRequest:        ErrValidation,
	KindUnauthorized:          ErrUnauthorized,
	KindForbidden:             ErrForbidden,
	KindPolicyViolation:       ErrPolicyViolation,
	KindAccountNotFound:       ErrAccountNotFound,
	KindInsufficientFunds:     ErrInsufficientFunds,
	KindRateUnavailable:       ErrRateUnavailable,
	KindLedgerMutationFailure: ErrLedgerMutationFailure,
	KindPersistenceFailure:    ErrPersistenceFailure,
	KindNotFound:              ErrNotFound,
	KindConflict:              ErrConflict,
	KindInternal:              ErrInternal,
}

// AppError carries a Kind, a human readable message and an optional cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports a match against the sentinel registered for the error's kind,
// so errors.Is(err, ErrPolicyViolation) works for any wrapped AppError.
func (e *AppError) Is(target error) bool {
	if s, ok := sentinels[e.Kind]; ok && s == target {
		return true
	}
	return false
}

// New creates an AppError of the given kind.
func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain. Bare sentinels are
// recognised too; anything else is KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	for kind, s := range sentinels {
		if errors.Is(err, s) {
			return kind
		}
	}
	return KindInternal
}

// NewValidationError creates an InvalidRequest error.
func NewValidationError(message string) *AppError {
	return New(KindInvalidRequest, message, nil)
}

// NewNotFoundError creates a NotFound error.
func NewNotFoundError(message string) *AppError {
	return New(KindNotFound, message, nil)
}

// NewPersistenceError wraps a storage failure.
func NewPersistenceError(message string, err error) *AppError {
	return New(KindPersistenceFailure, message, err)
}

// NewPolicyViolation creates a PolicyViolation error carrying the offending reason.
func NewPolicyViolation(reason string) *AppError {
	return New(KindPolicyViolation, reason, nil)
}

// NewRateUnavailable wraps an upstream quotation failure.
func NewRateUnavailable(message string, err error) *AppError {
	return New(KindRateUnavailable, message, err)
}

// Ledger mutation stages.
const (
	StageDebit        = "debit"
	StageCredit       = "credit"
	StageCompensation = "compensation"
)

// LedgerMutationError reports a transfer whose ledger mutation failed. For a
// failed credit, Compensated is true when the debit was reversed.
type LedgerMutationError struct {
	Stage       string
	Compensated bool
	TransferID  string
	Err         error
}

func (e *LedgerMutationError) Error() string {
	state := "manual reconciliation required"
	switch {
	case e.Stage == StageDebit:
		state = "no funds moved"
	case e.Compensated:
		state = "debit reversed"
	}
	return fmt.Sprintf("ledger %s failed for transfer %s (%s): %v", e.Stage, e.TransferID, state, e.Err)
}

func (e *LedgerMutationError) Unwrap() error {
	return e.Err
}

func (e *LedgerMutationError) Is(target error) bool {
	return target == ErrLedgerMutationFailure
}
