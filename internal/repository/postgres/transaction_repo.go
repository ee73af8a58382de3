package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumina-finance/lumina-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create persists a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO transactions (id, description, amount, type, category, transaction_date)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		transaction.ID,
		transaction.Description,
		amount,
		string(transaction.Type),
		string(transaction.Category),
		transaction.Date,
	)
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// Delete removes a transaction by its ID
func (r *TransactionRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// GetAll retrieves every transaction, newest first
func (r *TransactionRepository) GetAll() ([]*domain.Transaction, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT id, description, amount, type, category, transaction_date
		 FROM transactions
		 ORDER BY transaction_date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		var (
			transaction domain.Transaction
			amount      pgtype.Numeric
			txType      string
			category    string
		)
		if err := rows.Scan(
			&transaction.ID,
			&transaction.Description,
			&amount,
			&txType,
			&category,
			&transaction.Date,
		); err != nil {
			return nil, err
		}
		transaction.Amount = pgNumericToDecimal(amount)
		transaction.Type = domain.TransactionType(txType)
		transaction.Category = domain.Category(category)
		result = append(result, &transaction)
	}
	return result, rows.Err()
}

// decimalToPgNumeric converts a decimal.Decimal to pgtype.Numeric
func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return num, err
	}
	return num, nil
}

// pgNumericToDecimal converts a pgtype.Numeric to decimal.Decimal
func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
