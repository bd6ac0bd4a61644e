// Package repository defines the data-access layer interfaces.
package repository

import (
	"context"
)

// TxKey is the context key carrying an open transaction.
type TxKey struct{}

// Transactor runs a function inside a database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
