package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketfin-ledger/internal/api/handler"
	"github.com/pocketfin-ledger/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	ledgerHandler *handler.LedgerHandler,
	viewHandler *handler.ViewHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Onboarding and full-state reads
		v1.POST("/profile", ledgerHandler.InitializeProfile)
		v1.GET("/snapshot", ledgerHandler.GetSnapshot)
		v1.DELETE("/ledger", ledgerHandler.ClearLedger)

		// Ledger mutations
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", ledgerHandler.CreateTransaction)
			transactions.DELETE("/:id", ledgerHandler.DeleteTransaction)
		}
		v1.POST("/accounts", ledgerHandler.CreateAccount)

		// Derived views
		viewRoutes := v1.Group("/views")
		{
			viewRoutes.GET("/summary", viewHandler.GetSummary)
			viewRoutes.GET("/categories", viewHandler.GetCategoryBreakdown)
			viewRoutes.GET("/trend", viewHandler.GetBalanceTrend)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
