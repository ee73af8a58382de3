package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumina-finance/lumina-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard aggregation HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// SummaryResponse represents the dashboard totals
type SummaryResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// TrendPointResponse represents one day in the spending trend
type TrendPointResponse struct {
	Date    string `json:"date"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// CategoryTotalResponse represents an expense category and its total
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// GetSummary godoc
// @Summary Dashboard totals
// @Description Get total income, total expenses and current balance
// @Tags dashboard
// @Produce json
// @Success 200 {object} SummaryResponse
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	totals, err := h.dashboardService.GetTotals()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute dashboard totals")
		return NewInternalError(c, "Failed to compute dashboard totals")
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		Income:  totals.Income.StringFixed(2),
		Expense: totals.Expense.StringFixed(2),
		Balance: totals.Balance.StringFixed(2),
	})
}

// GetTrend godoc
// @Summary Daily spending trend
// @Description Get per-day income and expense totals for the last 30 days
// @Tags dashboard
// @Produce json
// @Success 200 {array} TrendPointResponse
// @Router /dashboard/trend [get]
func (h *DashboardHandler) GetTrend(c echo.Context) error {
	trend, err := h.dashboardService.GetDailyTrend()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute spending trend")
		return NewInternalError(c, "Failed to compute spending trend")
	}

	response := make([]TrendPointResponse, len(trend))
	for i, point := range trend {
		response[i] = TrendPointResponse{
			Date:    point.Date,
			Income:  point.Income.StringFixed(2),
			Expense: point.Expense.StringFixed(2),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetCategories godoc
// @Summary Expense category breakdown
// @Description Get expense totals grouped by category, largest first
// @Tags dashboard
// @Produce json
// @Success 200 {array} CategoryTotalResponse
// @Router /dashboard/categories [get]
func (h *DashboardHandler) GetCategories(c echo.Context) error {
	breakdown, err := h.dashboardService.GetCategoryBreakdown()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute category breakdown")
		return NewInternalError(c, "Failed to compute category breakdown")
	}

	response := make([]CategoryTotalResponse, len(breakdown))
	for i, entry := range breakdown {
		response[i] = CategoryTotalResponse{
			Category: string(entry.Category),
			Total:    entry.Total.StringFixed(2),
		}
	}
	return c.JSON(http.StatusOK, response)
}
