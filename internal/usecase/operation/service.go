package operation

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fintave/bankaccount-backend/internal/domain"
)

// Service executes single monetary movements against one account: the
// account read, balance mutation and ledger write happen inside one
// relational transaction. Failed movements leave no partial state behind.
type Service struct {
	accounts   domain.AccountRepository
	operations domain.OperationRepository
	tx         domain.TxManager
}

// NewService creates a new operation Service instance.
func NewService(accounts domain.AccountRepository, operations domain.OperationRepository, tx domain.TxManager) *Service {
	return &Service{
		accounts:   accounts,
		operations: operations,
		tx:         tx,
	}
}

// DepositDescription builds the default description for a deposit.
func DepositDescription(amount decimal.Decimal) string {
	return "Amount Credited : " + amount.String()
}

// WithdrawalDescription builds the default description for a withdrawal.
func WithdrawalDescription(amount decimal.Decimal) string {
	return "Amount Debited : " + amount.String()
}

// Deposit adds amount to the account balance and records a DEPOSIT ledger
// entry. Returns the created entry.
func (s *Service) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Operation, error) {
	op := domain.NewOperation(accountID, domain.OperationTypeDeposit, amount, description)
	if err := op.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		account, err := s.accounts.Lock(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return &domain.AccountNotFoundError{ID: accountID}
		}

		account.Credit(amount)
		if err := s.accounts.Update(ctx, account); err != nil {
			return err
		}
		return s.operations.Create(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

// Withdraw subtracts amount from the account balance and records a
// WITHDRAWAL ledger entry. The balance check runs before any write, so a
// rejected withdrawal mutates nothing.
func (s *Service) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Operation, error) {
	op := domain.NewOperation(accountID, domain.OperationTypeWithdrawal, amount, description)
	if err := op.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		account, err := s.accounts.Lock(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return &domain.AccountNotFoundError{ID: accountID}
		}

		if !domain.CanWithdraw(account.Balance, amount) {
			return &domain.InsufficientBalanceError{Balance: account.Balance, Amount: amount}
		}

		account.Debit(amount)
		if err := s.accounts.Update(ctx, account); err != nil {
			return err
		}
		return s.operations.Create(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

// DeleteOperation removes a ledger entry. This is a ledger-correction
// primitive: the balance change the entry recorded is not reversed.
func (s *Service) DeleteOperation(ctx context.Context, operationID string) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		op, err := s.operations.FindByID(ctx, operationID)
		if err != nil {
			return err
		}
		if op == nil {
			return &domain.OperationNotFoundError{ID: operationID}
		}
		return s.operations.Delete(ctx, op.ID)
	})
}
