package domain

import "errors"

// Domain errors
var (
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrDescriptionRequired    = errors.New("description is required")
	ErrDescriptionTooLong     = errors.New("description exceeds maximum length")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidCategory        = errors.New("invalid category")
)

// Validation constants
const (
	MaxDescriptionLength = 255
)
