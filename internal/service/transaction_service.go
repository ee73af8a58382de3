package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumina-finance/lumina-backend/internal/analytics"
	"github.com/lumina-finance/lumina-backend/internal/domain"
	"github.com/lumina-finance/lumina-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	events          websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, events websocket.EventPublisher) *TransactionService {
	if events == nil {
		events = &websocket.NoOpPublisher{}
	}
	return &TransactionService{
		transactionRepo: transactionRepo,
		events:          events,
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Description string
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Category    domain.Category
	Date        *time.Time
}

// CreateTransaction validates the input, assigns a fresh id and persists
// the record. Records are immutable afterwards.
func (s *TransactionService) CreateTransaction(input CreateTransactionInput) (*domain.Transaction, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.ErrDescriptionRequired
	}
	if len(description) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if !input.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}

	if !input.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}

	// Default date to now if not provided
	date := time.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}

	transaction := &domain.Transaction{
		ID:          uuid.New(),
		Description: description,
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
		Date:        date,
	}

	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, err
	}

	s.events.Publish(websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeTransaction, created))
	return created, nil
}

// DeleteTransaction removes a transaction by id
func (s *TransactionService) DeleteTransaction(id uuid.UUID) error {
	if err := s.transactionRepo.Delete(id); err != nil {
		return err
	}

	s.events.Publish(websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeTransaction, map[string]string{"id": id.String()}))
	return nil
}

// GetHistory returns the filtered collection sorted by date descending
func (s *TransactionService) GetHistory(period analytics.PeriodFilter, typeFilter analytics.TypeFilter, categoryFilter analytics.CategoryFilter) ([]*domain.Transaction, error) {
	transactions, err := s.transactionRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return analytics.Filter(transactions, period, typeFilter, categoryFilter, time.Now().UTC()), nil
}
