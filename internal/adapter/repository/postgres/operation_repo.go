package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fintave/bankaccount-backend/internal/domain"
)

const operationColumns = `id, account_id, operation_type, amount, operation_date, description`

// operationRepository implements domain.OperationRepository
type operationRepository struct {
	db *DB
}

// NewOperationRepository creates a new operation repository
func NewOperationRepository(db *DB) domain.OperationRepository {
	return &operationRepository{db: db}
}

// Create persists a new ledger entry.
func (r *operationRepository) Create(ctx context.Context, op *domain.Operation) error {
	query := `
		INSERT INTO operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.runner(ctx).ExecContext(ctx, query,
		op.ID,
		op.AccountID,
		string(op.Type),
		op.Amount.String(),
		op.OperationDate,
		op.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to create operation: %w", err)
	}
	return nil
}

// FindByID retrieves a ledger entry by its id, or (nil, nil) when absent.
func (r *operationRepository) FindByID(ctx context.Context, id string) (*domain.Operation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operations
		WHERE id = $1
	`

	op, err := scanOperation(r.db.runner(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get operation by ID: %w", err)
	}
	return op, nil
}

// FindByAccountID retrieves all ledger entries of an account, most recent
// first.
func (r *operationRepository) FindByAccountID(ctx context.Context, accountID string) ([]*domain.Operation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operations
		WHERE account_id = $1
		ORDER BY operation_date DESC
	`
	return r.queryOperations(ctx, query, accountID)
}

// FindPageByAccountID retrieves one page of an account's ledger, most
// recent first.
func (r *operationRepository) FindPageByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*domain.Operation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operations
		WHERE account_id = $1
		ORDER BY operation_date DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryOperations(ctx, query, accountID, limit, offset)
}

// CountByAccountID returns the number of ledger entries of an account.
func (r *operationRepository) CountByAccountID(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.db.runner(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM operations WHERE account_id = $1`, accountID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count operations: %w", err)
	}
	return count, nil
}

// FindByCustomerID retrieves the ledger entries of every account owned by
// a customer, most recent first.
func (r *operationRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*domain.Operation, error) {
	query := `
		SELECT o.id, o.account_id, o.operation_type, o.amount, o.operation_date, o.description
		FROM operations o
		JOIN accounts a ON a.id = o.account_id
		WHERE a.customer_id = $1
		ORDER BY o.operation_date DESC
	`
	return r.queryOperations(ctx, query, customerID)
}

// Delete removes a ledger entry.
func (r *operationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.runner(ctx).ExecContext(ctx, `DELETE FROM operations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete operation: %w", err)
	}
	return nil
}

func (r *operationRepository) queryOperations(ctx context.Context, query string, args ...any) ([]*domain.Operation, error) {
	rows, err := r.db.runner(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	defer rows.Close()

	var operations []*domain.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		operations = append(operations, op)
	}
	return operations, rows.Err()
}

func scanOperation(s scanner) (*domain.Operation, error) {
	var op domain.Operation
	var opType, amountStr string

	err := s.Scan(
		&op.ID,
		&op.AccountID,
		&opType,
		&amountStr,
		&op.OperationDate,
		&op.Description,
	)
	if err != nil {
		return nil, err
	}

	op.Type = domain.OperationType(opType)
	op.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	return &op, nil
}
