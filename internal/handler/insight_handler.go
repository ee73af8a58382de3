package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumina-finance/lumina-backend/internal/service"
)

// InsightHandler handles AI insight HTTP requests
type InsightHandler struct {
	insightService *service.InsightService
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// InsightResponse represents a generated financial analysis
type InsightResponse struct {
	Summary          string  `json:"summary"`
	SavingsTip       string  `json:"savingsTip"`
	UnusualSpending  *string `json:"unusualSpending,omitempty"`
	ProjectedSavings string  `json:"projectedSavings"`
}

// SuggestCategoryRequest represents the category suggestion request body
type SuggestCategoryRequest struct {
	Description string `json:"description"`
}

// SuggestCategoryResponse represents a category suggestion
type SuggestCategoryResponse struct {
	Category *string `json:"category"`
}

// Analyze godoc
// @Summary Generate a financial analysis
// @Description Analyze recent transactions and return a summary, savings tip and projection. Degrades to a static insight when the AI backend is unavailable.
// @Tags insights
// @Produce json
// @Success 200 {object} InsightResponse
// @Router /insights/analyze [post]
func (h *InsightHandler) Analyze(c echo.Context) error {
	insight := h.insightService.Analyze(c.Request().Context())

	return c.JSON(http.StatusOK, InsightResponse{
		Summary:          insight.Summary,
		SavingsTip:       insight.SavingsTip,
		UnusualSpending:  insight.UnusualSpending,
		ProjectedSavings: insight.ProjectedSavings,
	})
}

// SuggestCategory godoc
// @Summary Suggest a category
// @Description Suggest a spending category for a transaction description. Returns null when no confident suggestion exists.
// @Tags insights
// @Accept json
// @Produce json
// @Param request body SuggestCategoryRequest true "Description to categorize"
// @Success 200 {object} SuggestCategoryResponse
// @Failure 400 {object} ProblemDetails
// @Router /insights/suggest-category [post]
func (h *InsightHandler) SuggestCategory(c echo.Context) error {
	var req SuggestCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	suggestion := h.insightService.SuggestCategory(c.Request().Context(), req.Description)

	response := SuggestCategoryResponse{}
	if suggestion != nil {
		label := string(*suggestion)
		response.Category = &label
	}
	return c.JSON(http.StatusOK, response)
}
