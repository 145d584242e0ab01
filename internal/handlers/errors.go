package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForKind maps an error kind to its HTTP status.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindInvalidRequest, apperrors.KindPolicyViolation, apperrors.KindInsufficientFunds:
		return http.StatusBadRequest
	case apperrors.KindAccountNotFound, apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindRateUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error body for err. Client errors are logged
// at WARN, everything else at ERROR. Internal details are not echoed back.
func respondError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)
	body := gin.H{"error": err.Error(), "code": string(kind)}

	var ledgerErr *apperrors.LedgerMutationError
	switch {
	case errors.As(err, &ledgerErr):
		logger.Error(msg,
			slog.String("error", err.Error()),
			slog.String("transfer_id", ledgerErr.TransferID),
			slog.String("stage", ledgerErr.Stage),
			slog.Bool("compensated", ledgerErr.Compensated),
			slog.Bool("reconciliation_required", !ledgerErr.Compensated && ledgerErr.Stage != apperrors.StageDebit),
		)
		body["transferId"] = ledgerErr.TransferID
		body["compensated"] = ledgerErr.Compensated
	case status >= http.StatusInternalServerError && status != http.StatusBadGateway:
		logger.Error(msg, slog.String("error", err.Error()), slog.String("kind", string(kind)))
		body["error"] = msg
	default:
		logger.Warn(msg, slog.String("error", err.Error()), slog.String("kind", string(kind)))
	}

	c.JSON(status, body)
}

// respondBindError reports a request that could not be decoded or failed binding validation.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "Invalid request format: " + err.Error(),
		"code":  string(apperrors.KindInvalidRequest),
	})
}
