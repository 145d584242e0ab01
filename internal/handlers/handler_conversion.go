package handlers

import (
	"net/http"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/SscSPs/fx_transfer_app/internal/dto"
	"github.com/SscSPs/fx_transfer_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type conversionHandler struct {
	conversionService portssvc.ConversionSvc
}

func newConversionHandler(cs portssvc.ConversionSvc) *conversionHandler {
	return &conversionHandler{conversionService: cs}
}

func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvc) {
	h := newConversionHandler(conversionService)
	rg.POST("/conversions", h.convert)
}

// convert godoc
// @Summary Quote a currency conversion
// @Description Converts an amount at the current exchange rate. No money is moved.
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConversionRequest true "Conversion details"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Exchange rate unavailable"
// @Security BearerAuth
// @Router /conversions [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	// Both codes already passed the currency binding tag.
	from, _ := domain.NormalizeCurrency(req.FromCurrency)
	to, _ := domain.NormalizeCurrency(req.ToCurrency)

	conversion, err := h.conversionService.Convert(c.Request.Context(), from, to, *req.Amount)
	if err != nil {
		respondError(c, logger, err, "Conversion failed")
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(conversion))
}
