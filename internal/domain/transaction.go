package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether the type is one of the closed set
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Category is a closed classification label applied to a transaction.
// There are no user-defined categories.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryHousing       Category = "Housing"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryShopping      Category = "Shopping"
	CategorySalary        Category = "Salary"
	CategoryInvestment    Category = "Investment"
	CategoryFreelance     Category = "Freelance"
	CategoryOther         Category = "Other"
)

// Categories returns the closed category set in display order
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryHousing,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryHealth,
		CategoryShopping,
		CategorySalary,
		CategoryInvestment,
		CategoryFreelance,
		CategoryOther,
	}
}

// Valid reports whether the category is one of the closed set
func (c Category) Valid() bool {
	for _, candidate := range Categories() {
		if c == candidate {
			return true
		}
	}
	return false
}

// Transaction is a single recorded income or expense event.
// Transactions are immutable once created: they are added and deleted,
// never edited.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    Category        `json:"category"`
	Date        time.Time       `json:"date"`
}

// TransactionRepository is the persistence boundary for the transaction
// collection. Implementations exist for PostgreSQL and for a local
// single-file store; callers never depend on which one is in use.
type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	Delete(id uuid.UUID) error
	GetAll() ([]*Transaction, error)
}
