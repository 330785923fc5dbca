package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOperation(t *testing.T) {
	op := NewOperation("acc-1", OperationTypeDeposit, decimal.NewFromInt(50), "Amount Credited : 50")

	assert.NotEmpty(t, op.ID)
	assert.Equal(t, "acc-1", op.AccountID)
	assert.Equal(t, OperationTypeDeposit, op.Type)
	assert.False(t, op.OperationDate.IsZero())
	assert.NoError(t, op.Validate())
}

func TestOperationValidate_AmountBelowMinimum(t *testing.T) {
	for _, amount := range []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromFloat(0.009),
		decimal.NewFromInt(-5),
	} {
		op := NewOperation("acc-1", OperationTypeWithdrawal, amount, "")

		err := op.Validate()
		require.Error(t, err, "amount %s should be rejected", amount)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "amount", validationErr.Violations[0].Attribute)
	}
}

func TestOperationValidate_MinimumAmountIsAccepted(t *testing.T) {
	op := NewOperation("acc-1", OperationTypeDeposit, decimal.NewFromFloat(0.01), "")

	assert.NoError(t, op.Validate())
}

func TestOperationValidate_CollectsAllViolations(t *testing.T) {
	op := NewOperation("", OperationType("REVERSAL"), decimal.Zero, "")

	err := op.Validate()
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Violations, 3)
}

func TestCustomerValidate(t *testing.T) {
	valid := &Customer{Name: "Alice", Email: "alice@example.com"}
	assert.NoError(t, valid.Validate())

	invalid := &Customer{Name: "A1", Email: "not-an-email"}
	err := invalid.Validate()
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Violations, 2)
}
