package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/epeers/wealthboard/internal/services"
	"github.com/gin-gonic/gin"
)

// maxUploadSize caps holdings CSV uploads
const maxUploadSize = 1 << 20

// AllocationHandler handles allocation aggregation endpoints
type AllocationHandler struct{}

// NewAllocationHandler creates a new AllocationHandler
func NewAllocationHandler() *AllocationHandler {
	return &AllocationHandler{}
}

// Aggregate handles POST /allocations/aggregate
// @Summary Aggregate sub-portfolio allocations
// @Description Merge sub-portfolios, each given as percentages of its own base value, into whole percentages of the combined base
// @Tags allocations
// @Accept json
// @Produce json
// @Param request body models.AggregateRequest true "Sub-portfolios to merge"
// @Success 200 {object} models.AggregateResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /allocations/aggregate [post]
func (h *AllocationHandler) Aggregate(c *gin.Context) {
	var req models.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	h.respond(c, req.SubPortfolios)
}

// AggregateCSV handles POST /allocations/aggregate/csv
// @Summary Aggregate allocations from a CSV upload
// @Description CSV columns: portfolio, base_value, category, percentage. Rows with the same portfolio form one sub-portfolio.
// @Tags allocations
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Holdings CSV"
// @Success 200 {object} models.AggregateResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /allocations/aggregate/csv [post]
func (h *AllocationHandler) AggregateCSV(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "multipart field 'file' is required",
		})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: fmt.Sprintf("failed to open upload: %v", err),
		})
		return
	}
	defer f.Close()

	subs, err := ParseSubPortfoliosCSV(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	h.respond(c, subs)
}

func (h *AllocationHandler) respond(c *gin.Context, subs []models.SubPortfolio) {
	ctx := c.Request.Context()

	allocation, err := services.Aggregate(subs)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_input",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	for i, sp := range subs {
		if sp.BaseValue.IsZero() {
			services.AddWarning(ctx, models.Warning{
				Code:    models.WarnZeroValueAccount,
				Message: fmt.Sprintf("sub_portfolios[%d] %q has a zero base value and contributes nothing", i, sp.Label),
			})
		}
	}
	if drift := services.AllocationDrift(allocation); drift != 0 {
		services.AddWarning(ctx, models.Warning{
			Code:    models.WarnAllocationDrift,
			Message: fmt.Sprintf("rounded allocation sums to %d%%", allocation.Total()),
		})
	}

	c.JSON(http.StatusOK, models.AggregateResponse{
		Allocation: allocation,
		Chart:      services.ChartSlices(allocation),
		Warnings:   services.WarningsFromContext(ctx),
	})
}
