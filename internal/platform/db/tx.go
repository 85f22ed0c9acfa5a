package db

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

const txKey contextKey = "db_tx"

// WithTx runs fn inside a transaction. Repositories that resolve their
// handle through Conn pick the transaction up from ctx, so several
// repositories can take part in one atomic change.
func WithTx(ctx context.Context, gdb *gorm.DB, fn func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// TxFromContext returns the transaction stored by WithTx, or nil.
func TxFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey).(*gorm.DB)
	return tx
}

// Conn returns the transaction bound to ctx when there is one, otherwise the
// given handle scoped to ctx.
func Conn(ctx context.Context, gdb *gorm.DB) *gorm.DB {
	if tx := TxFromContext(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return gdb.WithContext(ctx)
}

// Runner runs fn as one atomic unit. Services hold a Runner instead of a
// store handle so they can be exercised with in-memory repositories.
type Runner func(ctx context.Context, fn func(ctx context.Context) error) error

// NewRunner returns a Runner backed by WithTx on gdb.
func NewRunner(gdb *gorm.DB) Runner {
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		return WithTx(ctx, gdb, fn)
	}
}

// NoTx calls fn directly.
func NoTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
