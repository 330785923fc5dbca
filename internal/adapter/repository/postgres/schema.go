package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id    BIGSERIAL PRIMARY KEY,
		name  VARCHAR(20) NOT NULL,
		email VARCHAR(30) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id              VARCHAR(36) PRIMARY KEY,
		account_type    VARCHAR(20) NOT NULL,
		status          VARCHAR(20) NOT NULL,
		balance         NUMERIC(19, 2) NOT NULL,
		overdraft_limit NUMERIC(19, 2),
		interest_rate   NUMERIC(8, 4),
		customer_id     BIGINT NOT NULL REFERENCES customers (id),
		created_on      TIMESTAMPTZ NOT NULL,
		modified_on     TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS operations (
		id             VARCHAR(36) PRIMARY KEY,
		account_id     VARCHAR(36) NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		operation_type VARCHAR(20) NOT NULL,
		amount         NUMERIC(19, 2) NOT NULL CHECK (amount >= 0.01),
		operation_date TIMESTAMPTZ NOT NULL,
		description    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_customer_id ON accounts (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_operations_account_id ON operations (account_id)`,
}

// EnsureSchema creates the tables and indexes the repositories expect.
// Statements are idempotent, so running it on every startup is safe.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
