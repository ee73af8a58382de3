// Package localstore persists transactions as a single JSON document on
// disk, for running without a database.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lumina-finance/lumina-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// storedTransaction is the on-disk shape. Amounts are strings so the
// file never loses precision to float round-tripping.
type storedTransaction struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
}

// TransactionRepository implements domain.TransactionRepository on top of
// a local JSON file
type TransactionRepository struct {
	path string

	mu           sync.Mutex
	transactions map[uuid.UUID]*domain.Transaction
}

// NewTransactionRepository loads the store at path, creating an empty one
// if the file does not exist yet
func NewTransactionRepository(path string) (*TransactionRepository, error) {
	r := &TransactionRepository{
		path:         path,
		transactions: make(map[uuid.UUID]*domain.Transaction),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Create persists a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[transaction.ID]; ok {
		return nil, fmt.Errorf("transaction %s already exists", transaction.ID)
	}

	r.transactions[transaction.ID] = transaction
	if err := r.flush(); err != nil {
		delete(r.transactions, transaction.ID)
		return nil, err
	}
	return transaction, nil
}

// Delete removes a transaction by its ID
func (r *TransactionRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed, ok := r.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	delete(r.transactions, id)
	if err := r.flush(); err != nil {
		r.transactions[id] = removed
		return err
	}
	return nil
}

// GetAll retrieves every transaction, newest first
func (r *TransactionRepository) GetAll() ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Transaction, 0, len(r.transactions))
	for _, t := range r.transactions {
		result = append(result, t)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (r *TransactionRepository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read store: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var stored []storedTransaction
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("decode store: %w", err)
	}

	for _, s := range stored {
		amount, err := decimal.NewFromString(s.Amount)
		if err != nil {
			return fmt.Errorf("decode amount for %s: %w", s.ID, err)
		}
		r.transactions[s.ID] = &domain.Transaction{
			ID:          s.ID,
			Description: s.Description,
			Amount:      amount,
			Type:        domain.TransactionType(s.Type),
			Category:    domain.Category(s.Category),
			Date:        s.Date,
		}
	}
	return nil
}

// flush rewrites the whole document atomically via a temp file rename.
// Callers must hold r.mu.
func (r *TransactionRepository) flush() error {
	stored := make([]storedTransaction, 0, len(r.transactions))
	for _, t := range r.transactions {
		stored = append(stored, storedTransaction{
			ID:          t.ID,
			Description: t.Description,
			Amount:      t.Amount.String(),
			Type:        string(t.Type),
			Category:    string(t.Category),
			Date:        t.Date,
		})
	}
	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].Date.After(stored[j].Date)
	})

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".lumina-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
