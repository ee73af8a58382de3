package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lumina-finance/lumina-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// maxInsightRecords caps how many records are sent to the model
const maxInsightRecords = 50

// InsightService requests AI-generated spending insights from Gemini.
// A nil client means no API key is configured; every request then resolves
// to the fallback insight without touching the network. Any failure on a
// live request resolves the same way: callers never see an error.
type InsightService struct {
	client          *genai.Client
	model           string
	transactionRepo domain.TransactionRepository
}

// NewInsightService creates a new InsightService. client may be nil.
func NewInsightService(client *genai.Client, model string, transactionRepo domain.TransactionRepository) *InsightService {
	return &InsightService{
		client:          client,
		model:           model,
		transactionRepo: transactionRepo,
	}
}

// Enabled reports whether a Gemini client is configured
func (s *InsightService) Enabled() bool {
	return s.client != nil
}

// insightRecord is the size-bounded projection sent to the model.
// Short keys keep the prompt small.
type insightRecord struct {
	Date        string  `json:"d"`
	Amount      float64 `json:"a"`
	Type        string  `json:"t"`
	Category    string  `json:"c"`
	Description string  `json:"desc"`
}

// Analyze summarizes the current collection into a FinancialInsight
func (s *InsightService) Analyze(ctx context.Context) *domain.FinancialInsight {
	transactions, err := s.transactionRepo.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load transactions for insight")
		return degradedInsight()
	}

	if s.client == nil || len(transactions) == 0 {
		return setupInsight()
	}

	if len(transactions) > maxInsightRecords {
		transactions = transactions[:maxInsightRecords]
	}

	records := make([]insightRecord, len(transactions))
	for i, t := range transactions {
		records[i] = insightRecord{
			Date:        t.Date.UTC().Format("2006-01-02"),
			Amount:      t.Amount.InexactFloat64(),
			Type:        string(t.Type),
			Category:    string(t.Category),
			Description: t.Description,
		}
	}

	payload, err := json.Marshal(records)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode insight payload")
		return degradedInsight()
	}

	prompt := fmt.Sprintf("Analyze this personal finance data (simplified JSON). "+
		"Provide a short summary, one practical savings tip, any unusual spending you notice (if any) and a simple savings projection.\nData: %s", payload)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"summary":          {Type: genai.TypeString},
				"savingsTip":       {Type: genai.TypeString},
				"unusualSpending":  {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				"projectedSavings": {Type: genai.TypeString},
			},
			Required: []string{"summary", "savingsTip", "projectedSavings"},
		},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), config)
	if err != nil {
		log.Warn().Err(err).Msg("Insight generation failed")
		return degradedInsight()
	}

	text := resp.Text()
	if text == "" {
		log.Warn().Msg("Empty insight response from model")
		return degradedInsight()
	}

	var insight domain.FinancialInsight
	if err := json.Unmarshal([]byte(text), &insight); err != nil {
		log.Warn().Err(err).Msg("Malformed insight response from model")
		return degradedInsight()
	}
	return &insight
}

// SuggestCategory maps a free-text description to one of the closed
// category values, or returns nil when there is no confident suggestion
func (s *InsightService) SuggestCategory(ctx context.Context, description string) *domain.Category {
	description = strings.TrimSpace(description)
	if s.client == nil || description == "" {
		return nil
	}

	labels := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		labels = append(labels, string(c))
	}

	prompt := fmt.Sprintf("Classify the transaction description %q into one of these categories: [%s]. "+
		"Return only the exact category name.", description, strings.Join(labels, ", "))

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		log.Warn().Err(err).Msg("Category suggestion failed")
		return nil
	}

	category := domain.Category(strings.TrimSpace(resp.Text()))
	if !category.Valid() {
		return nil
	}
	return &category
}

// setupInsight is returned when no client is configured or there is no
// data to analyze
func setupInsight() *domain.FinancialInsight {
	return &domain.FinancialInsight{
		Summary:          "Add transactions and configure an API key to receive insights.",
		SavingsTip:       "Try cutting back on non-essential spending.",
		UnusualSpending:  nil,
		ProjectedSavings: "Not enough data.",
	}
}

// degradedInsight is returned when a live request fails for any reason
func degradedInsight() *domain.FinancialInsight {
	return &domain.FinancialInsight{
		Summary:          "Could not generate an analysis right now.",
		SavingsTip:       "Check your connection or API key.",
		UnusualSpending:  nil,
		ProjectedSavings: "--",
	}
}
