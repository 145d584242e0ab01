package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/SscSPs/fx_transfer_app/internal/dto"
	"github.com/SscSPs/fx_transfer_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader may carry the idempotency key instead of the request body.
const IdempotencyKeyHeader = "Idempotency-Key"

// transferHandler handles HTTP requests related to transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: ts,
	}
}

// registerTransferRoutes registers routes related to transfers.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("", h.listTransfers)
		transfers.GET("/:transferID", h.getTransfer)
	}
}

// createTransfer godoc
// @Summary Transfer money between accounts
// @Description Moves an amount from one ledger account to another, converting currency when the currencies differ.
// @Description A repeated idempotency key returns the stored result without touching the ledger.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Param   Idempotency-Key header string false "Idempotency key, used when the body has none"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid input, policy violation or insufficient funds"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Source account does not belong to the caller"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Ledger mutation failed"
// @Failure 502 {object} map[string]string "Exchange rate unavailable"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)
	}

	result, err := h.transferService.Transfer(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Transfer failed")
		return
	}

	logger.Info("Transfer completed",
		slog.String("transfer_id", result.Record.TransferID),
		slog.Bool("replayed", result.Replayed),
		slog.Bool("record_persisted", result.RecordPersisted),
	)
	c.JSON(http.StatusOK, dto.ToTransferResponse(result))
}

// getTransfer godoc
// @Summary Get a transfer
// @Description Retrieves one transfer record. Only the sender or the receiver can see it.
// @Tags transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} dto.TransferRecordResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transfer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transfer"
// @Security BearerAuth
// @Router /transfers/{transferID} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.transferService.GetTransfer(c.Request.Context(), transferID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("transfer_id", transferID)), err, "Failed to retrieve transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferRecordResponse(*record))
}

// listTransfers godoc
// @Summary List transfers
// @Description Lists transfers sent or received by the caller, newest first.
// @Tags transfers
// @Produce  json
// @Param   limit query int false "Page size (1-100)" default(20)
// @Param   nextToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListTransfersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transfers"
// @Security BearerAuth
// @Router /transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	page, err := h.transferService.ListTransfers(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transfers")
		return
	}

	c.JSON(http.StatusOK, page)
}
