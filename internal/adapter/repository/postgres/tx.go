package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintave/bankaccount-backend/internal/domain"
)

// txKey is the key type for storing a transaction in context.
type txKey struct{}

// TxManager implements domain.TxManager on top of database/sql.
type TxManager struct {
	db *DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db *DB) domain.TxManager {
	return &TxManager{db: db}
}

// WithTransaction executes fn within a database transaction carried in the
// context, so every repository call inside fn joins the same unit of work.
// A nested call joins the ambient transaction instead of opening a new one.
// If fn returns an error the transaction is rolled back, otherwise it is
// committed.
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// txFrom retrieves the transaction from context, or nil when absent.
func txFrom(ctx context.Context) *sql.Tx {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return nil
}
