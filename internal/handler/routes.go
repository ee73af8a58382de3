package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/lumina-finance/lumina-backend/internal/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/lumina-finance/lumina-backend/docs"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, rateLimiter *middleware.RateLimiter, transactionHandler *TransactionHandler, dashboardHandler *DashboardHandler, insightHandler *InsightHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/trend", dashboardHandler.GetTrend)
	dashboard.GET("/categories", dashboardHandler.GetCategories)

	// Insight routes (rate limited, each call may hit the AI backend)
	insights := api.Group("/insights")
	insights.Use(middleware.RateLimitMiddleware(rateLimiter))
	insights.POST("/analyze", insightHandler.Analyze)
	insights.POST("/suggest-category", insightHandler.SuggestCategory)

	// WebSocket endpoint for live data change events
	e.GET("/ws", wsHandler.HandleWS)

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
