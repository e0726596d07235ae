package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertTag = `INSERT INTO tags (name, color, created_at) VALUES (?, '#000000', '2026-01-01T00:00:00Z')`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func tagExists(t *testing.T, database *sql.DB, name string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM tags WHERE name = ?`, name).Scan(&n))
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database := openTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertTag, "urgent")
		return err
	})
	require.NoError(t, err)

	assert.True(t, tagExists(t, database, "urgent"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database := openTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	sentinel := errors.New("second write failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertTag, "billing"); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	assert.False(t, tagExists(t, database, "billing"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database := openTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertTag, "waiting")
			panic("boom")
		})
	})

	assert.False(t, tagExists(t, database, "waiting"), "row should not exist after panic rollback")
}
