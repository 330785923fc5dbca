package customer

import (
	"context"

	"github.com/fintave/bankaccount-backend/internal/domain"
)

// Service handles customer lifecycle and read operations.
type Service struct {
	customers  domain.CustomerRepository
	accounts   domain.AccountRepository
	operations domain.OperationRepository
}

// NewService creates a new customer Service instance.
func NewService(customers domain.CustomerRepository, accounts domain.AccountRepository, operations domain.OperationRepository) *Service {
	return &Service{
		customers:  customers,
		accounts:   accounts,
		operations: operations,
	}
}

// CreateCustomer validates and persists a new customer, assigning its id.
func (s *Service) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by id.
func (s *Service) GetCustomer(ctx context.Context, customerID int64) (*domain.Customer, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, &domain.CustomerNotFoundError{ID: customerID}
	}
	return customer, nil
}

// ListCustomers retrieves all customers.
func (s *Service) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.customers.FindAll(ctx)
}

// SearchCustomers retrieves customers whose name contains the fragment.
func (s *Service) SearchCustomers(ctx context.Context, name string) ([]*domain.Customer, error) {
	return s.customers.SearchByName(ctx, name)
}

// UpdateCustomer applies new name and email to an existing customer.
func (s *Service) UpdateCustomer(ctx context.Context, customerID int64, name, email string) (*domain.Customer, error) {
	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer.Name = name
	customer.Email = email
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer. A customer still owning accounts
// cannot be removed.
func (s *Service) DeleteCustomer(ctx context.Context, customerID int64) error {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return err
	}

	accounts, err := s.accounts.FindByCustomerID(ctx, customerID)
	if err != nil {
		return err
	}
	if len(accounts) > 0 {
		return &domain.ValidationError{Violations: []domain.Violation{
			{Cause: "customer still owns accounts", Attribute: "customerId"},
		}}
	}

	return s.customers.Delete(ctx, customerID)
}

// CustomerAccounts retrieves the accounts owned by a customer.
func (s *Service) CustomerAccounts(ctx context.Context, customerID int64) ([]*domain.Account, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.accounts.FindByCustomerID(ctx, customerID)
}

// CustomerOperations retrieves the ledger entries of all accounts owned by
// a customer.
func (s *Service) CustomerOperations(ctx context.Context, customerID int64) ([]*domain.Operation, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.operations.FindByCustomerID(ctx, customerID)
}
