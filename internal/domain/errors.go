package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrSameAccount is returned when the source and target of a transfer
	// are the same account.
	ErrSameAccount = errors.New("source and target accounts cannot be the same")

	// ErrUnsupportedOperation is returned when an operation request carries
	// an unknown operation type.
	ErrUnsupportedOperation = errors.New("unsupported operation type")
)

// AccountNotFoundError is returned when an account id does not resolve.
type AccountNotFoundError struct {
	ID string
}

func (e *AccountNotFoundError) Error() string {
	return "could not find account with ID: " + e.ID
}

// CustomerNotFoundError is returned when a customer id does not resolve.
type CustomerNotFoundError struct {
	ID int64
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer not found with ID: %d", e.ID)
}

// OperationNotFoundError is returned when a ledger entry id does not resolve.
type OperationNotFoundError struct {
	ID string
}

func (e *OperationNotFoundError) Error() string {
	return "could not find operation with ID: " + e.ID
}

// InsufficientBalanceError is returned when a withdrawal exceeds the
// account balance. The balance and amount are carried for diagnostics.
type InsufficientBalanceError struct {
	Balance decimal.Decimal
	Amount  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance to withdraw! Balance=%s < Amount=%s", e.Balance, e.Amount)
}

// Violation is a single structural constraint failure on an entity,
// recorded as a (cause, attribute) pair.
type Violation struct {
	Cause     string
	Attribute string
}

// ValidationError collects the constraint violations found on an entity
// before persistence.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Attribute+": "+v.Cause)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
