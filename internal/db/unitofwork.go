package db

import (
	"context"
	"database/sql"
	"fmt"
)

// TxFunc runs inside a transaction. Repositories built from tx see the
// transaction's uncommitted writes.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork runs a group of writes atomically.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// SQLiteUnitOfWork implements UnitOfWork with database/sql transactions.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// WithinTx commits when fn returns nil and rolls back on error or panic.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
