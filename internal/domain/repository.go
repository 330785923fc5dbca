package domain

import "context"

// AccountRepository defines the interface for account persistence operations.
// Finders return (nil, nil) when the account does not exist; raising the
// typed not-found error is the caller's concern.
type AccountRepository interface {
	// FindByID retrieves an account by its id.
	FindByID(ctx context.Context, id string) (*Account, error)

	// Lock retrieves an account by its id, taking a row lock when called
	// inside a transaction managed by TxManager.
	Lock(ctx context.Context, id string) (*Account, error)

	// FindAll retrieves all accounts.
	FindAll(ctx context.Context) ([]*Account, error)

	// FindByCustomerID retrieves the accounts owned by a customer.
	FindByCustomerID(ctx context.Context, customerID int64) ([]*Account, error)

	// Create persists a new account.
	Create(ctx context.Context, account *Account) error

	// Update persists the mutable fields of an existing account.
	Update(ctx context.Context, account *Account) error

	// Delete removes an account.
	Delete(ctx context.Context, id string) error
}

// OperationRepository defines the interface for ledger persistence
// operations. Operations are append-only; there is no update.
type OperationRepository interface {
	// Create persists a new ledger entry.
	Create(ctx context.Context, op *Operation) error

	// FindByID retrieves a ledger entry by its id, or (nil, nil) when absent.
	FindByID(ctx context.Context, id string) (*Operation, error)

	// FindByAccountID retrieves all ledger entries of an account, most
	// recent first.
	FindByAccountID(ctx context.Context, accountID string) ([]*Operation, error)

	// FindPageByAccountID retrieves one page of an account's ledger,
	// most recent first.
	FindPageByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*Operation, error)

	// CountByAccountID returns the number of ledger entries of an account.
	CountByAccountID(ctx context.Context, accountID string) (int, error)

	// FindByCustomerID retrieves the ledger entries of all accounts owned
	// by a customer.
	FindByCustomerID(ctx context.Context, customerID int64) ([]*Operation, error)

	// Delete removes a ledger entry. Administrative override only.
	Delete(ctx context.Context, id string) error
}

// CustomerRepository defines the interface for customer persistence
// operations.
type CustomerRepository interface {
	// FindByID retrieves a customer by its id, or (nil, nil) when absent.
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// FindAll retrieves all customers.
	FindAll(ctx context.Context) ([]*Customer, error)

	// SearchByName retrieves customers whose name contains the given
	// fragment, case-insensitively.
	SearchByName(ctx context.Context, name string) ([]*Customer, error)

	// Create persists a new customer and assigns its id.
	Create(ctx context.Context, customer *Customer) error

	// Update persists the mutable fields of an existing customer.
	Update(ctx context.Context, customer *Customer) error

	// Delete removes a customer.
	Delete(ctx context.Context, id int64) error
}

// TxManager runs a function within a single relational transaction.
// Nested calls join the ambient transaction instead of opening a new one,
// which lets a transfer wrap its two legs in one atomic unit.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
