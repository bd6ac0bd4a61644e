// Package postgres provides the PostgreSQL data-access implementation.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"polydoc-api/internal/domain/repository"
)

// TxManager manages database transactions.
type TxManager struct {
	client *Client
}

// NewTxManager creates a transaction manager.
func NewTxManager(client *Client) *TxManager {
	return &TxManager{client: client}
}

// WithTransaction executes fn inside a transaction. Nested calls reuse the
// transaction already carried by the context.
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := getTxFromContext(ctx); tx != nil {
		return fn(ctx)
	}

	tx, err := m.client.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, repository.TxKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v, original error: %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func getTxFromContext(ctx context.Context) *sql.Tx {
	if tx, ok := ctx.Value(repository.TxKey{}).(*sql.Tx); ok {
		return tx
	}
	return nil
}

// Querier abstracts over a plain connection and a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// getQuerier returns the transaction carried by the context, if any, or the
// plain connection pool.
func getQuerier(ctx context.Context, db *sql.DB) Querier {
	if tx := getTxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
