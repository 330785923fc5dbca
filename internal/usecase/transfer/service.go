package transfer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fintave/bankaccount-backend/internal/domain"
	"github.com/fintave/bankaccount-backend/internal/usecase/operation"
)

// Result holds the two ledger entries produced by a transfer, one per leg.
type Result struct {
	SourceOperation *domain.Operation
	TargetOperation *domain.Operation
}

// Service coordinates a transfer as a debit leg on the source account
// followed by a credit leg on the target account. Both legs run inside a
// single transaction, so a failed credit rolls the debit back.
type Service struct {
	operations *operation.Service
	accounts   domain.AccountRepository
	tx         domain.TxManager
}

// NewService creates a new transfer Service instance.
func NewService(operations *operation.Service, accounts domain.AccountRepository, tx domain.TxManager) *Service {
	return &Service{
		operations: operations,
		accounts:   accounts,
		tx:         tx,
	}
}

// Transfer moves amount from the source account to the target account and
// returns the ledger entries of both legs. Fails with ErrSameAccount when
// source and target are the same, regardless of balance.
func (s *Service) Transfer(ctx context.Context, sourceAccountID, targetAccountID string, amount decimal.Decimal) (*Result, error) {
	if sourceAccountID == targetAccountID {
		return nil, domain.ErrSameAccount
	}

	var result Result
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.lockBoth(ctx, sourceAccountID, targetAccountID); err != nil {
			return err
		}

		sourceOp, err := s.operations.Withdraw(ctx, sourceAccountID, amount, sourceLegDescription(amount, targetAccountID))
		if err != nil {
			return err
		}

		targetOp, err := s.operations.Deposit(ctx, targetAccountID, amount, targetLegDescription(amount, sourceAccountID))
		if err != nil {
			return err
		}

		result = Result{SourceOperation: sourceOp, TargetOperation: targetOp}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// lockBoth takes the row locks of both accounts in ascending id order, so
// two concurrent opposite transfers acquire them in the same order and
// cannot deadlock. The legs re-lock rows this transaction already holds.
func (s *Service) lockBoth(ctx context.Context, sourceAccountID, targetAccountID string) error {
	first, second := sourceAccountID, targetAccountID
	if second < first {
		first, second = second, first
	}

	for _, id := range []string{first, second} {
		account, err := s.accounts.Lock(ctx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return &domain.AccountNotFoundError{ID: id}
		}
	}
	return nil
}

func sourceLegDescription(amount decimal.Decimal, targetAccountID string) string {
	return "Transfer Amount " + amount.String() + " to accountId: " + truncateID(targetAccountID) + ".."
}

func targetLegDescription(amount decimal.Decimal, sourceAccountID string) string {
	return "Transfer Amount " + amount.String() + " from accountId: " + truncateID(sourceAccountID) + ".."
}

// truncateID keeps the first 8 characters of an account id; ids shorter
// than 8 characters are used in full.
func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
