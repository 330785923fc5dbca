package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintave/bankaccount-backend/internal/domain"
)

// customerRepository implements domain.CustomerRepository
type customerRepository struct {
	db *DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *DB) domain.CustomerRepository {
	return &customerRepository{db: db}
}

// FindByID retrieves a customer by its id, or (nil, nil) when absent.
func (r *customerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.runner(ctx).QueryRowContext(ctx,
		`SELECT id, name, email FROM customers WHERE id = $1`, id,
	).Scan(&customer.ID, &customer.Name, &customer.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer by ID: %w", err)
	}
	return &customer, nil
}

// FindAll retrieves all customers.
func (r *customerRepository) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	return r.queryCustomers(ctx, `SELECT id, name, email FROM customers ORDER BY id`)
}

// SearchByName retrieves customers whose name contains the fragment,
// case-insensitively.
func (r *customerRepository) SearchByName(ctx context.Context, name string) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, email
		FROM customers
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
	`
	return r.queryCustomers(ctx, query, name)
}

// Create persists a new customer and assigns its generated id.
func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	err := r.db.runner(ctx).QueryRowContext(ctx,
		`INSERT INTO customers (name, email) VALUES ($1, $2) RETURNING id`,
		customer.Name, customer.Email,
	).Scan(&customer.ID)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing customer.
func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	_, err := r.db.runner(ctx).ExecContext(ctx,
		`UPDATE customers SET name = $2, email = $3 WHERE id = $1`,
		customer.ID, customer.Name, customer.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// Delete removes a customer.
func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.runner(ctx).ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (r *customerRepository) queryCustomers(ctx context.Context, query string, args ...any) ([]*domain.Customer, error) {
	rows, err := r.db.runner(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Email); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, &customer)
	}
	return customers, rows.Err()
}
