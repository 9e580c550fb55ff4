package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API endpoints onto router
func RegisterRoutes(router gin.IRouter, dashboard *DashboardHandler, allocation *AllocationHandler, fx *FXHandler, help *HelpHandler) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/dashboard", dashboard.Summary)

	// Account routes
	router.GET("/accounts/:kind", dashboard.GetAccount)
	router.GET("/accounts/:kind/spending", dashboard.Spending)

	// Allocation routes
	router.POST("/allocations/aggregate", allocation.Aggregate)
	router.POST("/allocations/aggregate/csv", allocation.AggregateCSV)

	// Exchange rate routes
	router.GET("/fx/rate", fx.GetRate)
	router.POST("/fx/refresh", fx.Refresh)

	router.GET("/help/faq", help.FAQ)
}
