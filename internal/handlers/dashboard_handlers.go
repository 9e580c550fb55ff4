package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/epeers/wealthboard/internal/services"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the dashboard and per-account endpoints
type DashboardHandler struct {
	dashboardSvc *services.DashboardService
	accountSvc   *services.AccountService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardSvc *services.DashboardService, accountSvc *services.AccountService) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
		accountSvc:   accountSvc,
	}
}

// Summary handles GET /dashboard
// @Summary Dashboard summary
// @Description Account cards, total value, combined allocation, recent transactions and insights, converted to the display currency
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.dashboardSvc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAccount handles GET /accounts/:kind
// @Summary Get one account
// @Tags accounts
// @Produce json
// @Param kind path string true "Account kind" Enums(current, isa, sipp)
// @Success 200 {object} models.AccountResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /accounts/{kind} [get]
func (h *DashboardHandler) GetAccount(c *gin.Context) {
	resp, err := h.accountSvc.Get(c.Request.Context(), c.Param("kind"))
	if err != nil {
		writeAccountError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Spending handles GET /accounts/current/spending
// @Summary Current account spending breakdown
// @Description Expenses grouped by transaction category with whole percentages of total spend
// @Tags accounts
// @Produce json
// @Success 200 {object} models.SpendingResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /accounts/current/spending [get]
func (h *DashboardHandler) Spending(c *gin.Context) {
	// only the current account has a spending report
	if c.Param("kind") != string(models.AccountKindCurrent) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "spending is only available for the current account",
		})
		return
	}
	resp, err := h.accountSvc.Spending(c.Request.Context())
	if err != nil {
		writeAccountError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func writeAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownAccountKind), errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
