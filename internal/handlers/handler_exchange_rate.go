package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/SscSPs/fx_transfer_app/internal/dto"
	"github.com/SscSPs/fx_transfer_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
// Reads are open to any caller; cache maintenance goes through adminOnly.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, adminOnly gin.HandlerFunc) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("/:from/:to", h.getExchangeRate)
		exchangeRates.POST("/refresh", adminOnly, h.refreshExchangeRates)
		exchangeRates.PUT("/:from/:to", adminOnly, h.refreshExchangeRate)
		exchangeRates.DELETE("/:from/:to", adminOnly, h.deleteExchangeRate)
	}
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Returns a fresh rate for a currency pair, refreshing the cache from the upstream provider when needed
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Exchange rate unavailable"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	from, to, logger, ok := pairFromPath(c)
	if !ok {
		return
	}

	rate, err := h.exchangeRateService.ResolveRate(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// refreshExchangeRates godoc
// @Summary Refresh all rates of a source currency
// @Description Fetches the full quote table of a source currency and replaces every cached pair for it (admin operation)
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   request body dto.RefreshRatesRequest true "Source currency"
// @Success 200 {object} dto.RefreshRatesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an administrator"
// @Failure 500 {object} map[string]string "Failed to store rates"
// @Failure 502 {object} map[string]string "Upstream provider failed"
// @Security BearerAuth
// @Router /exchange-rates/refresh [post]
func (h *exchangeRateHandler) refreshExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefreshRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	source, _ := domain.NormalizeCurrency(req.From)
	logger = logger.With(slog.String("source", source.String()))

	rates, err := h.exchangeRateService.RefreshSource(c.Request.Context(), source)
	if err != nil {
		respondError(c, logger, err, "Failed to refresh exchange rates")
		return
	}

	logger.Info("Exchange rates refreshed", slog.Int("count", len(rates)))
	c.JSON(http.StatusOK, dto.RefreshRatesResponse{
		Message: "Exchange rates updated",
		Rates:   dto.ToListExchangeRateResponse(rates),
	})
}

// refreshExchangeRate godoc
// @Summary Refresh one exchange rate
// @Description Fetches one pair from the upstream provider and stores it regardless of cache state (admin operation)
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an administrator"
// @Failure 500 {object} map[string]string "Failed to store rate"
// @Failure 502 {object} map[string]string "Upstream provider failed"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [put]
func (h *exchangeRateHandler) refreshExchangeRate(c *gin.Context) {
	from, to, logger, ok := pairFromPath(c)
	if !ok {
		return
	}

	rate, err := h.exchangeRateService.RefreshPair(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to refresh exchange rate")
		return
	}

	logger.Info("Exchange rate refreshed")
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// deleteExchangeRate godoc
// @Summary Delete a cached exchange rate
// @Description Evicts one pair from the rate cache (admin operation)
// @Tags exchange rates
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an administrator"
// @Failure 404 {object} map[string]string "Rate not cached"
// @Failure 500 {object} map[string]string "Failed to delete rate"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [delete]
func (h *exchangeRateHandler) deleteExchangeRate(c *gin.Context) {
	from, to, logger, ok := pairFromPath(c)
	if !ok {
		return
	}

	if err := h.exchangeRateService.DeleteRate(c.Request.Context(), from, to); err != nil {
		respondError(c, logger, err, "Failed to delete exchange rate")
		return
	}

	logger.Info("Exchange rate deleted")
	c.Status(http.StatusNoContent)
}

// pairFromPath normalizes the :from and :to parameters, writing a 400 when either is invalid.
func pairFromPath(c *gin.Context) (domain.CurrencyCode, domain.CurrencyCode, *slog.Logger, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, errFrom := domain.NormalizeCurrency(c.Param("from"))
	to, errTo := domain.NormalizeCurrency(c.Param("to"))
	if errFrom != nil || errTo != nil {
		logger.Warn("Invalid currency pair in path", slog.String("from", c.Param("from")), slog.String("to", c.Param("to")))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Currency codes must be 3 letters",
			"code":  string(apperrors.KindInvalidRequest),
		})
		return "", "", logger, false
	}

	return from, to, logger.With(slog.String("from_code", from.String()), slog.String("to_code", to.String())), true
}
