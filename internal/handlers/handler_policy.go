package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/SscSPs/fx_transfer_app/internal/dto"
	"github.com/SscSPs/fx_transfer_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// policyHandler serves the administrative transfer policy.
type policyHandler struct {
	policyService portssvc.PolicyAdminSvc
}

func newPolicyHandler(ps portssvc.PolicyAdminSvc) *policyHandler {
	return &policyHandler{policyService: ps}
}

// registerPolicyRoutes registers the /admin routes. Every route goes through adminOnly.
func registerPolicyRoutes(rg *gin.RouterGroup, policyService portssvc.PolicyAdminSvc, adminOnly gin.HandlerFunc) {
	h := newPolicyHandler(policyService)

	admin := rg.Group("/admin", adminOnly)
	{
		admin.GET("/transfer-limit", h.getTransferLimit)
		admin.PUT("/transfer-limit", h.setTransferLimit)
		admin.GET("/conversion-cutoff", h.getConversionCutoff)
		admin.PUT("/conversion-cutoff", h.setConversionCutoff)
	}
}

// getTransferLimit godoc
// @Summary Get the transfer limit
// @Description Returns the maximum amount of a converting transfer
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.TransferLimitResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an administrator"
// @Failure 404 {object} map[string]string "No limit configured"
// @Security BearerAuth
// @Router /admin/transfer-limit [get]
func (h *policyHandler) getTransferLimit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	policy, err := h.policyService.GetTransferLimit(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to get transfer limit")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferLimitResponse(policy))
}

// setTransferLimit godoc
// @Summary Set the transfer limit
// @Description Sets the maximum amount of a converting transfer, expressed in currency_type (default USD)
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   limit body dto.SetTransferLimitRequest true "Limit"
// @Success 200 {object} dto.TransferLimitResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an administrator"
// @Failure 500 {object} map[string]string "Failed to save limit"
// @Security BearerAuth
// @Router /admin/transfer-limit [put]
func (h *policyHandler) setTransferLimit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, _ := middleware.GetUserIDFromContext(c)

	var req dto.SetTransferLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	policy, err := h.policyService.SetTransferLimit(c.Request.Context(), *req.Amount, req.CurrencyType, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to set transfer limit")
		return
	}

	logger.Info("Transfer limit updated",
		slog.String("amount", policy.MaxAmount.String()),
		slog.String("currency", policy.ReferenceCurrency.String()),
	)
	c.JSON(http.StatusOK, dto.ToTransferLimitResponse(policy))
}

// getConversionCutoff godoc
// @Summary Get the conversion cutoff
// @Description Returns the instant after which converting transfers are refused
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.ConversionCutoffResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an administrator"
// @Failure 404 {object} map[string]string "No cutoff configured"
// @Security BearerAuth
// @Router /admin/conversion-cutoff [get]
func (h *policyHandler) getConversionCutoff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cutoff, err := h.policyService.GetConversionCutoff(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to get conversion cutoff")
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionCutoffResponse(cutoff))
}

// setConversionCutoff godoc
// @Summary Set the conversion cutoff
// @Description Sets the ISO-8601 date after which converting transfers are refused
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   cutoff body dto.SetConversionCutoffRequest true "Cutoff"
// @Success 200 {object} dto.ConversionCutoffResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an administrator"
// @Failure 500 {object} map[string]string "Failed to save cutoff"
// @Security BearerAuth
// @Router /admin/conversion-cutoff [put]
func (h *policyHandler) setConversionCutoff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, _ := middleware.GetUserIDFromContext(c)

	var req dto.SetConversionCutoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	cutoffDate, err := dto.ParseDateLimit(req.DateLimit)
	if err != nil {
		respondError(c, logger, apperrors.NewValidationError(err.Error()), "Invalid conversion cutoff")
		return
	}

	cutoff, err := h.policyService.SetConversionCutoff(c.Request.Context(), cutoffDate, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to set conversion cutoff")
		return
	}

	logger.Info("Conversion cutoff updated", slog.Time("date_limit", cutoff.CutoffDate))
	c.JSON(http.StatusOK, dto.ToConversionCutoffResponse(cutoff))
}
