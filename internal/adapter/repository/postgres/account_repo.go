package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fintave/bankaccount-backend/internal/domain"
)

const accountColumns = `id, account_type, status, balance, overdraft_limit, interest_rate, customer_id, created_on, modified_on`

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves an account by its id, or (nil, nil) when absent.
func (r *accountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findByID(ctx, id, false)
}

// Lock retrieves an account by its id with SELECT ... FOR UPDATE, taking a
// row lock for the duration of the ambient transaction.
func (r *accountRepository) Lock(ctx context.Context, id string) (*domain.Account, error) {
	return r.findByID(ctx, id, true)
}

func (r *accountRepository) findByID(ctx context.Context, id string, forUpdate bool) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	row := r.db.runner(ctx).QueryRowContext(ctx, query, id)
	account, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}
	return account, nil
}

// FindAll retrieves all accounts, oldest first.
func (r *accountRepository) FindAll(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_on
	`
	return r.queryAccounts(ctx, query)
}

// FindByCustomerID retrieves the accounts owned by a customer.
func (r *accountRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE customer_id = $1
		ORDER BY created_on
	`
	return r.queryAccounts(ctx, query, customerID)
}

func (r *accountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]*domain.Account, error) {
	rows, err := r.db.runner(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Create persists a new account.
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.runner(ctx).ExecContext(ctx, query,
		account.ID,
		string(account.Type),
		string(account.Status),
		account.Balance.String(),
		decimalOrNil(account.OverdraftLimit),
		decimalOrNil(account.InterestRate),
		account.CustomerID,
		account.CreatedOn,
		account.ModifiedOn,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing account. The creation
// timestamp is immutable and deliberately not written.
func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET status = $2, balance = $3, overdraft_limit = $4, interest_rate = $5, modified_on = $6
		WHERE id = $1
	`

	_, err := r.db.runner(ctx).ExecContext(ctx, query,
		account.ID,
		string(account.Status),
		account.Balance.String(),
		decimalOrNil(account.OverdraftLimit),
		decimalOrNil(account.InterestRate),
		account.ModifiedOn,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// Delete removes an account.
func (r *accountRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.runner(ctx).ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*domain.Account, error) {
	var account domain.Account
	var accountType, status, balanceStr string
	var overdraftStr, interestStr sql.NullString
	var modifiedOn sql.NullTime

	err := s.Scan(
		&account.ID,
		&accountType,
		&status,
		&balanceStr,
		&overdraftStr,
		&interestStr,
		&account.CustomerID,
		&account.CreatedOn,
		&modifiedOn,
	)
	if err != nil {
		return nil, err
	}

	account.Type = domain.AccountType(accountType)
	account.Status = domain.AccountStatus(status)

	account.Balance, err = decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	if account.OverdraftLimit, err = nullableDecimal(overdraftStr); err != nil {
		return nil, fmt.Errorf("failed to parse overdraft_limit: %w", err)
	}
	if account.InterestRate, err = nullableDecimal(interestStr); err != nil {
		return nil, fmt.Errorf("failed to parse interest_rate: %w", err)
	}
	if modifiedOn.Valid {
		t := modifiedOn.Time
		account.ModifiedOn = &t
	}

	return &account, nil
}

func nullableDecimal(v sql.NullString) (*decimal.Decimal, error) {
	if !v.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func decimalOrNil(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}
