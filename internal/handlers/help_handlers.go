package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/epeers/wealthboard/internal/services"
	"github.com/gin-gonic/gin"
)

// HelpHandler handles the help page endpoints
type HelpHandler struct {
	helpSvc *services.HelpService
}

// NewHelpHandler creates a new HelpHandler
func NewHelpHandler(helpSvc *services.HelpService) *HelpHandler {
	return &HelpHandler{helpSvc: helpSvc}
}

// FAQ handles GET /help/faq
// @Summary Frequently asked questions
// @Tags help
// @Produce json
// @Param category query string false "Only this category (case-insensitive)"
// @Success 200 {object} models.FAQResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /help/faq [get]
func (h *HelpHandler) FAQ(c *gin.Context) {
	resp, err := h.helpSvc.FAQ(c.Request.Context(), c.Query("category"))
	if err != nil {
		if errors.Is(err, services.ErrFAQCategoryNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
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
	c.JSON(http.StatusOK, resp)
}
