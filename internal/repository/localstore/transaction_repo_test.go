package localstore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumina-finance/lumina-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func newTestRepo(t *testing.T) (*TransactionRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lumina-data.json")
	repo, err := NewTransactionRepository(path)
	if err != nil {
		t.Fatalf("Expected no error opening the store, got %v", err)
	}
	return repo, path
}

func sampleTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:          uuid.New(),
		Description: "Groceries",
		Amount:      decimal.RequireFromString("42.50"),
		Type:        domain.TransactionTypeExpense,
		Category:    domain.CategoryFood,
		Date:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateAndGetAll(t *testing.T) {
	repo, _ := newTestRepo(t)

	transaction := sampleTransaction()
	if _, err := repo.Create(transaction); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	all, err := repo.GetAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(all))
	}
	if all[0].ID != transaction.ID {
		t.Error("Expected the stored transaction back")
	}
}

func TestCreate_DuplicateID(t *testing.T) {
	repo, _ := newTestRepo(t)

	transaction := sampleTransaction()
	if _, err := repo.Create(transaction); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := repo.Create(transaction); err == nil {
		t.Error("Expected an error for a duplicate id")
	}

	all, err := repo.GetAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected the original record to survive, got %d records", len(all))
	}
	if all[0].ID != transaction.ID {
		t.Error("Expected the original record to be untouched")
	}
}

func TestGetAll_NewestFirst(t *testing.T) {
	repo, _ := newTestRepo(t)

	older := sampleTransaction()
	newer := sampleTransaction()
	newer.Date = older.Date.Add(24 * time.Hour)

	if _, err := repo.Create(older); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := repo.Create(newer); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	all, err := repo.GetAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if all[0].ID != newer.ID || all[1].ID != older.ID {
		t.Error("Expected date-descending order")
	}
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepo(t)

	transaction := sampleTransaction()
	if _, err := repo.Create(transaction); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := repo.Delete(transaction.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	all, _ := repo.GetAll()
	if len(all) != 0 {
		t.Error("Expected an empty store after delete")
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Delete(uuid.New())
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}

func TestReopen_RoundTrip(t *testing.T) {
	repo, path := newTestRepo(t)

	transaction := sampleTransaction()
	if _, err := repo.Create(transaction); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	reopened, err := NewTransactionRepository(path)
	if err != nil {
		t.Fatalf("Expected no error reopening the store, got %v", err)
	}

	all, err := reopened.GetAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 transaction after reopen, got %d", len(all))
	}
	got := all[0]
	if got.ID != transaction.ID {
		t.Error("Expected the same id after reopen")
	}
	if !got.Amount.Equal(transaction.Amount) {
		t.Errorf("Expected amount %s, got %s", transaction.Amount, got.Amount)
	}
	if got.Type != transaction.Type || got.Category != transaction.Category {
		t.Error("Expected type and category to survive the round trip")
	}
	if !got.Date.Equal(transaction.Date) {
		t.Errorf("Expected date %v, got %v", transaction.Date, got.Date)
	}
}
