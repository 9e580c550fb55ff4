package handlers

import (
	"net/http"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/epeers/wealthboard/internal/services"
	"github.com/gin-gonic/gin"
)

// FXHandler exposes the exchange rate used for conversion
type FXHandler struct {
	currencySvc *services.CurrencyService
}

// NewFXHandler creates a new FXHandler
func NewFXHandler(currencySvc *services.CurrencyService) *FXHandler {
	return &FXHandler{
		currencySvc: currencySvc,
	}
}

// GetRate handles GET /fx/rate
// @Summary Current exchange rate
// @Description The rate applied to converted amounts and where it came from (live, stale or fallback)
// @Tags fx
// @Produce json
// @Success 200 {object} models.RateSnapshot
// @Router /fx/rate [get]
func (h *FXHandler) GetRate(c *gin.Context) {
	c.JSON(http.StatusOK, h.currencySvc.Rate())
}

// Refresh handles POST /fx/refresh
// @Summary Refresh the exchange rate
// @Description Fetch the live rate now. On failure the previous rate stays in use.
// @Tags fx
// @Produce json
// @Success 200 {object} models.RateSnapshot
// @Failure 502 {object} models.ErrorResponse
// @Router /fx/refresh [post]
func (h *FXHandler) Refresh(c *gin.Context) {
	snap, err := h.currencySvc.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, snap)
}
