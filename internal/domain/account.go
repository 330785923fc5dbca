package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType discriminates the closed set of account variants.
// Adding a variant requires touching every switch over this type.
type AccountType string

const (
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeSavings AccountType = "SAVINGS"
)

// AccountStatus represents the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusCreated   AccountStatus = "CREATED"
	AccountStatusActivated AccountStatus = "ACTIVATED"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// Account represents a bank account in the domain layer.
// CURRENT accounts carry an overdraft limit, SAVINGS accounts an interest
// rate; the two fields are mutually exclusive by type.
type Account struct {
	ID             string
	Type           AccountType
	Status         AccountStatus
	Balance        decimal.Decimal
	OverdraftLimit *decimal.Decimal // CURRENT only
	InterestRate   *decimal.Decimal // SAVINGS only
	CustomerID     int64
	CreatedOn      time.Time
	ModifiedOn     *time.Time
}

// NewCurrentAccount creates a CURRENT account in CREATED status with a
// freshly generated id.
func NewCurrentAccount(customerID int64, balance, overdraftLimit decimal.Decimal) *Account {
	return &Account{
		ID:             uuid.NewString(),
		Type:           AccountTypeCurrent,
		Status:         AccountStatusCreated,
		Balance:        balance,
		OverdraftLimit: &overdraftLimit,
		CustomerID:     customerID,
		CreatedOn:      time.Now(),
	}
}

// NewSavingsAccount creates a SAVINGS account in CREATED status with a
// freshly generated id.
func NewSavingsAccount(customerID int64, balance, interestRate decimal.Decimal) *Account {
	return &Account{
		ID:           uuid.NewString(),
		Type:         AccountTypeSavings,
		Status:       AccountStatusCreated,
		Balance:      balance,
		InterestRate: &interestRate,
		CustomerID:   customerID,
		CreatedOn:    time.Now(),
	}
}

// Validate ensures the account adheres to domain rules.
// Violations are collected into a single ValidationError.
func (a *Account) Validate() error {
	var violations []Violation

	if a.ID == "" {
		violations = append(violations, Violation{Cause: "id cannot be empty", Attribute: "id"})
	}
	if a.Balance.IsNegative() && a.Type == AccountTypeSavings {
		violations = append(violations, Violation{Cause: "savings balance cannot be negative", Attribute: "balance"})
	}

	switch a.Type {
	case AccountTypeCurrent:
		if a.OverdraftLimit == nil {
			violations = append(violations, Violation{Cause: "current account requires an overdraft limit", Attribute: "overdraftLimit"})
		}
		if a.InterestRate != nil {
			violations = append(violations, Violation{Cause: "current account cannot carry an interest rate", Attribute: "interestRate"})
		}
	case AccountTypeSavings:
		if a.InterestRate == nil {
			violations = append(violations, Violation{Cause: "savings account requires an interest rate", Attribute: "interestRate"})
		}
		if a.OverdraftLimit != nil {
			violations = append(violations, Violation{Cause: "savings account cannot carry an overdraft limit", Attribute: "overdraftLimit"})
		}
	default:
		violations = append(violations, Violation{Cause: "account type not supported", Attribute: "type"})
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// CanWithdraw reports whether a withdrawal of amount is permitted against
// balance. The overdraft limit of current accounts is deliberately not
// consulted here; withdrawals are rejected as soon as amount exceeds the
// plain balance.
func CanWithdraw(balance, amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(balance)
}

// Credit adds amount to the account balance and refreshes ModifiedOn.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
	a.Touch()
}

// Debit subtracts amount from the account balance and refreshes ModifiedOn.
// Callers must check CanWithdraw first.
func (a *Account) Debit(amount decimal.Decimal) {
	a.Balance = a.Balance.Sub(amount)
	a.Touch()
}

// Touch refreshes ModifiedOn. Every mutation of account state must go
// through it before the account is persisted.
func (a *Account) Touch() {
	now := time.Now()
	a.ModifiedOn = &now
}
