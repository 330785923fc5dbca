package account

import (
	"context"
	"math"

	"github.com/shopspring/decimal"

	"github.com/fintave/bankaccount-backend/internal/domain"
)

// Details bundles an account with its owner and its full ledger.
type Details struct {
	Account    *domain.Account
	Customer   *domain.Customer
	Operations []*domain.Operation
}

// History is one page of an account's ledger.
type History struct {
	Account     *domain.Account
	CurrentPage int
	TotalPages  int
	PageSize    int
	Operations  []*domain.Operation
}

// UpdateInput carries the updatable account fields. Nil fields are left
// untouched. Type-specific fields may only be set on the matching account
// type.
type UpdateInput struct {
	Balance        *decimal.Decimal
	OverdraftLimit *decimal.Decimal
	InterestRate   *decimal.Decimal
}

// Service handles account lifecycle and read operations.
type Service struct {
	accounts   domain.AccountRepository
	customers  domain.CustomerRepository
	operations domain.OperationRepository
	tx         domain.TxManager
}

// NewService creates a new account Service instance.
func NewService(accounts domain.AccountRepository, customers domain.CustomerRepository, operations domain.OperationRepository, tx domain.TxManager) *Service {
	return &Service{
		accounts:   accounts,
		customers:  customers,
		operations: operations,
		tx:         tx,
	}
}

// CreateCurrentAccount opens a CURRENT account for the given customer.
func (s *Service) CreateCurrentAccount(ctx context.Context, customerID int64, balance, overdraftLimit decimal.Decimal) (*domain.Account, error) {
	account := domain.NewCurrentAccount(customerID, balance, overdraftLimit)
	return account, s.create(ctx, account)
}

// CreateSavingsAccount opens a SAVINGS account for the given customer.
func (s *Service) CreateSavingsAccount(ctx context.Context, customerID int64, balance, interestRate decimal.Decimal) (*domain.Account, error) {
	account := domain.NewSavingsAccount(customerID, balance, interestRate)
	return account, s.create(ctx, account)
}

func (s *Service) create(ctx context.Context, account *domain.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customers.FindByID(ctx, account.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return &domain.CustomerNotFoundError{ID: account.CustomerID}
		}
		return s.accounts.Create(ctx, account)
	})
}

// GetAccount retrieves an account by id.
func (s *Service) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, &domain.AccountNotFoundError{ID: accountID}
	}
	return account, nil
}

// ListAccounts retrieves all accounts.
func (s *Service) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts.FindAll(ctx)
}

// GetAccountDetails retrieves an account along with its owner and ledger.
func (s *Service) GetAccountDetails(ctx context.Context, accountID string) (*Details, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByID(ctx, account.CustomerID)
	if err != nil {
		return nil, err
	}
	operations, err := s.operations.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &Details{Account: account, Customer: customer, Operations: operations}, nil
}

// ListAccountDetails retrieves every account with its owner and ledger.
func (s *Service) ListAccountDetails(ctx context.Context) ([]*Details, error) {
	accounts, err := s.accounts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]*Details, 0, len(accounts))
	for _, account := range accounts {
		d, err := s.GetAccountDetails(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// UpdateAccount applies the given input to an account, dispatching the
// type-specific fields on the account's discriminator.
func (s *Service) UpdateAccount(ctx context.Context, accountID string, input UpdateInput) (*domain.Account, error) {
	var updated *domain.Account
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		account, err := s.accounts.Lock(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return &domain.AccountNotFoundError{ID: accountID}
		}

		switch account.Type {
		case domain.AccountTypeCurrent:
			if input.InterestRate != nil {
				return &domain.ValidationError{Violations: []domain.Violation{
					{Cause: "current account cannot carry an interest rate", Attribute: "interestRate"},
				}}
			}
			if input.OverdraftLimit != nil {
				account.OverdraftLimit = input.OverdraftLimit
			}
		case domain.AccountTypeSavings:
			if input.OverdraftLimit != nil {
				return &domain.ValidationError{Violations: []domain.Violation{
					{Cause: "savings account cannot carry an overdraft limit", Attribute: "overdraftLimit"},
				}}
			}
			if input.InterestRate != nil {
				account.InterestRate = input.InterestRate
			}
		}

		if input.Balance != nil {
			account.Balance = *input.Balance
		}
		account.Touch()

		if err := account.Validate(); err != nil {
			return err
		}
		if err := s.accounts.Update(ctx, account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAccount removes an account together with its ledger entries.
// Administrative operation; balances elsewhere are not compensated.
func (s *Service) DeleteAccount(ctx context.Context, accountID string) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		account, err := s.accounts.FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return &domain.AccountNotFoundError{ID: accountID}
		}
		return s.accounts.Delete(ctx, accountID)
	})
}

// AccountOperations retrieves the full ledger of an account.
func (s *Service) AccountOperations(ctx context.Context, accountID string) ([]*domain.Operation, error) {
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.operations.FindByAccountID(ctx, accountID)
}

// AccountHistory retrieves one page of an account's ledger together with
// paging metadata. Pages are zero-based.
func (s *Service) AccountHistory(ctx context.Context, accountID string, page, size int) (*History, error) {
	var violations []domain.Violation
	if page < 0 {
		violations = append(violations, domain.Violation{Cause: "page must be >= 0", Attribute: "page"})
	}
	if size < 1 {
		violations = append(violations, domain.Violation{Cause: "size must be >= 1", Attribute: "size"})
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	total, err := s.operations.CountByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	operations, err := s.operations.FindPageByAccountID(ctx, accountID, size, page*size)
	if err != nil {
		return nil, err
	}

	return &History{
		Account:     account,
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(total) / float64(size))),
		PageSize:    size,
		Operations:  operations,
	}, nil
}
