package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationType represents the kind of monetary movement.
// A transfer is recorded as two operations, a WITHDRAWAL on the source
// account and a DEPOSIT on the target account.
type OperationType string

const (
	OperationTypeDeposit    OperationType = "DEPOSIT"
	OperationTypeWithdrawal OperationType = "WITHDRAWAL"
	OperationTypeTransfer   OperationType = "TRANSFER"
)

// MinOperationAmount is the smallest amount an operation may carry.
var MinOperationAmount = decimal.New(1, -2) // 0.01

// Operation is an immutable ledger entry recording a single monetary
// movement against one account. Operations are append-only; deletion is
// an administrative override with no compensating balance adjustment.
type Operation struct {
	ID            string
	AccountID     string
	Type          OperationType
	Amount        decimal.Decimal
	OperationDate time.Time
	Description   string
}

// NewOperation constructs a ledger entry for the given account with a
// generated id and the current time as operation date.
func NewOperation(accountID string, opType OperationType, amount decimal.Decimal, description string) *Operation {
	return &Operation{
		ID:            uuid.NewString(),
		AccountID:     accountID,
		Type:          opType,
		Amount:        amount,
		OperationDate: time.Now(),
		Description:   description,
	}
}

// Validate ensures the operation adheres to domain rules.
func (o *Operation) Validate() error {
	var violations []Violation

	if o.Amount.LessThan(MinOperationAmount) {
		violations = append(violations, Violation{
			Cause:     "amount should be strictly positive and at least 0.01",
			Attribute: "amount",
		})
	}
	if o.Type != OperationTypeDeposit && o.Type != OperationTypeWithdrawal {
		violations = append(violations, Violation{
			Cause:     "operation type must be DEPOSIT or WITHDRAWAL",
			Attribute: "operationType",
		})
	}
	if o.AccountID == "" {
		violations = append(violations, Violation{
			Cause:     "account id must not be empty",
			Attribute: "accountId",
		})
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
