package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumina-finance/lumina-backend/internal/domain"
	"github.com/lumina-finance/lumina-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// newStubModelClient returns a genai client whose requests land on a local
// server that always answers with the given response body.
func newStubModelClient(t *testing.T, body string) *genai.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
		HTTPClient:  srv.Client(),
	})
	if err != nil {
		t.Fatalf("Expected no error creating client, got %v", err)
	}
	return client
}

// modelReply wraps a text part in the generateContent response envelope
func modelReply(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"role":"model","parts":[{"text":%q}]}}]}`, text)
}

func TestAnalyze_NoClient(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionRepo.AddTransaction(&domain.Transaction{
		ID: uuid.New(), Description: "Groceries", Amount: decimal.NewFromInt(50),
		Type: domain.TransactionTypeExpense, Category: domain.CategoryFood, Date: time.Now().UTC(),
	})
	insightService := NewInsightService(nil, "gemini-2.5-flash", transactionRepo)

	insight := insightService.Analyze(context.Background())
	if insight == nil {
		t.Fatal("Expected a fallback insight, got nil")
	}
	if insight.Summary == "" || insight.SavingsTip == "" || insight.ProjectedSavings == "" {
		t.Error("Expected every fallback field to be populated")
	}
	if insight.UnusualSpending != nil {
		t.Error("Expected no unusual spending in the fallback")
	}
}

func TestAnalyze_EmptyCollection(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	insightService := NewInsightService(nil, "gemini-2.5-flash", transactionRepo)

	insight := insightService.Analyze(context.Background())
	if insight == nil {
		t.Fatal("Expected a fallback insight, got nil")
	}
	if insight.ProjectedSavings != "Not enough data." {
		t.Errorf("Expected the setup fallback, got %q", insight.ProjectedSavings)
	}
}

func TestAnalyze_RepoFailure(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionRepo.GetAllFn = func() ([]*domain.Transaction, error) {
		return nil, errors.New("storage unavailable")
	}
	insightService := NewInsightService(nil, "gemini-2.5-flash", transactionRepo)

	insight := insightService.Analyze(context.Background())
	if insight == nil {
		t.Fatal("Expected a degraded insight, got nil")
	}
	if insight.ProjectedSavings != "--" {
		t.Errorf("Expected the degraded fallback, got %q", insight.ProjectedSavings)
	}
}

func TestAnalyze_ParsesModelReply(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionRepo.AddTransaction(&domain.Transaction{
		ID: uuid.New(), Description: "Groceries", Amount: decimal.NewFromInt(50),
		Type: domain.TransactionTypeExpense, Category: domain.CategoryFood, Date: time.Now().UTC(),
	})
	client := newStubModelClient(t, modelReply(`{"summary":"Mostly food spending.","savingsTip":"Cook at home.","projectedSavings":"50.00 per month"}`))
	insightService := NewInsightService(client, "gemini-2.5-flash", transactionRepo)

	insight := insightService.Analyze(context.Background())
	if insight.Summary != "Mostly food spending." {
		t.Errorf("Expected the model summary, got %q", insight.Summary)
	}
	if insight.SavingsTip != "Cook at home." {
		t.Errorf("Expected the model savings tip, got %q", insight.SavingsTip)
	}
	if insight.ProjectedSavings != "50.00 per month" {
		t.Errorf("Expected the model projection, got %q", insight.ProjectedSavings)
	}
}

func TestAnalyze_MalformedReply(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionRepo.AddTransaction(&domain.Transaction{
		ID: uuid.New(), Description: "Groceries", Amount: decimal.NewFromInt(50),
		Type: domain.TransactionTypeExpense, Category: domain.CategoryFood, Date: time.Now().UTC(),
	})
	client := newStubModelClient(t, modelReply("this is not a json document"))
	insightService := NewInsightService(client, "gemini-2.5-flash", transactionRepo)

	insight := insightService.Analyze(context.Background())
	if insight.ProjectedSavings != "--" {
		t.Errorf("Expected the degraded fallback for a malformed reply, got %q", insight.ProjectedSavings)
	}
}

func TestAnalyze_EmptyReply(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionRepo.AddTransaction(&domain.Transaction{
		ID: uuid.New(), Description: "Groceries", Amount: decimal.NewFromInt(50),
		Type: domain.TransactionTypeExpense, Category: domain.CategoryFood, Date: time.Now().UTC(),
	})
	client := newStubModelClient(t, `{"candidates":[]}`)
	insightService := NewInsightService(client, "gemini-2.5-flash", transactionRepo)

	insight := insightService.Analyze(context.Background())
	if insight.ProjectedSavings != "--" {
		t.Errorf("Expected the degraded fallback for an empty reply, got %q", insight.ProjectedSavings)
	}
}

func TestSuggestCategory_NoClient(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	insightService := NewInsightService(nil, "gemini-2.5-flash", transactionRepo)

	if got := insightService.SuggestCategory(context.Background(), "Monthly metro pass"); got != nil {
		t.Errorf("Expected no suggestion without a client, got %v", *got)
	}
}

func TestSuggestCategory_EmptyDescription(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	insightService := NewInsightService(nil, "gemini-2.5-flash", transactionRepo)

	if got := insightService.SuggestCategory(context.Background(), "   "); got != nil {
		t.Errorf("Expected no suggestion for a blank description, got %v", *got)
	}
}

func TestSuggestCategory_OutOfSetReply(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	client := newStubModelClient(t, modelReply("Groceries & Stuff"))
	insightService := NewInsightService(client, "gemini-2.5-flash", transactionRepo)

	if got := insightService.SuggestCategory(context.Background(), "Weekly shop"); got != nil {
		t.Errorf("Expected no suggestion for an out-of-set label, got %v", *got)
	}
}

func TestSuggestCategory_ValidReply(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	client := newStubModelClient(t, modelReply("Food\n"))
	insightService := NewInsightService(client, "gemini-2.5-flash", transactionRepo)

	got := insightService.SuggestCategory(context.Background(), "Weekly shop")
	if got == nil {
		t.Fatal("Expected a suggestion, got nil")
	}
	if *got != domain.CategoryFood {
		t.Errorf("Expected Food, got %v", *got)
	}
}

func TestEnabled(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	insightService := NewInsightService(nil, "gemini-2.5-flash", transactionRepo)

	if insightService.Enabled() {
		t.Error("Expected the service to report disabled without a client")
	}
}
