package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lumina-finance/lumina-backend/internal/domain"
	"github.com/lumina-finance/lumina-backend/internal/service"
	"github.com/lumina-finance/lumina-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newDashboardHandler(transactionRepo *testutil.MockTransactionRepository) *DashboardHandler {
	dashboardService := service.NewDashboardService(transactionRepo)
	return NewDashboardHandler(dashboardService)
}

func seedRepo(repo *testutil.MockTransactionRepository) {
	now := time.Now().UTC()
	repo.AddTransaction(&domain.Transaction{
		ID: uuid.New(), Description: "Salary", Amount: decimal.NewFromInt(5000),
		Type: domain.TransactionTypeIncome, Category: domain.CategorySalary, Date: now.Add(-time.Hour),
	})
	repo.AddTransaction(&domain.Transaction{
		ID: uuid.New(), Description: "Rent", Amount: decimal.NewFromInt(1200),
		Type: domain.TransactionTypeExpense, Category: domain.CategoryHousing, Date: now.Add(-2 * time.Hour),
	})
	repo.AddTransaction(&domain.Transaction{
		ID: uuid.New(), Description: "Groceries", Amount: decimal.NewFromInt(300),
		Type: domain.TransactionTypeExpense, Category: domain.CategoryFood, Date: now.Add(-3 * time.Hour),
	})
}

func TestGetSummary(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	seedRepo(transactionRepo)
	handler := newDashboardHandler(transactionRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetSummary(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Income != "5000.00" {
		t.Errorf("Expected income '5000.00', got %s", response.Income)
	}
	if response.Expense != "1500.00" {
		t.Errorf("Expected expense '1500.00', got %s", response.Expense)
	}
	if response.Balance != "3500.00" {
		t.Errorf("Expected balance '3500.00', got %s", response.Balance)
	}
}

func TestGetSummary_EmptyCollection(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	handler := newDashboardHandler(transactionRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetSummary(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Income != "0.00" || response.Expense != "0.00" || response.Balance != "0.00" {
		t.Errorf("Expected zero totals, got %+v", response)
	}
}

func TestGetTrend(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	seedRepo(transactionRepo)
	handler := newDashboardHandler(transactionRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/trend", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetTrend(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []TrendPointResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) == 0 {
		t.Fatal("Expected at least one trend point")
	}
	for _, point := range response {
		if _, err := time.Parse("2006-01-02", point.Date); err != nil {
			t.Errorf("Expected a calendar date key, got %s", point.Date)
		}
	}
}

func TestGetCategories(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	seedRepo(transactionRepo)
	handler := newDashboardHandler(transactionRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetCategories(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []CategoryTotalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(response))
	}
	if response[0].Category != "Housing" || response[0].Total != "1200.00" {
		t.Errorf("Expected Housing with 1200.00 first, got %+v", response[0])
	}
}
