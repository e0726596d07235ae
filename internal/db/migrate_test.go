package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range Tables {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_ForeignKeysEnforced(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO dev_plans (project_id, name, created_at, updated_at)
		VALUES (999, 'orphan', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY")
}

func TestMigrate_CheckConstraintRejectsUnknownContext(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO leads (name, context, created_at, updated_at)
		VALUES ('x', 'work', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.Error(t, err)
}

func TestOpenDB_FileURLCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "curtisos.db")

	database, err := OpenDB("sqlite://" + path)
	require.NoError(t, err)
	defer database.Close()

	var mode string
	require.NoError(t, database.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		in     string
		path   string
		memory bool
	}{
		{":memory:", ":memory:", true},
		{"", ":memory:", true},
		{"sqlite://data/app.db", "data/app.db", false},
		{"file:data/app.db?cache=shared", "data/app.db", false},
		{"/var/lib/curtisos.db", "/var/lib/curtisos.db", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			path, memory := resolvePath(tc.in)
			assert.Equal(t, tc.path, path)
			assert.Equal(t, tc.memory, memory)
		})
	}
}
