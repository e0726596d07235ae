package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// TableDump is every row of one table in column order.
type TableDump struct {
	Table   string
	Columns []string
	Rows    [][]any
}

// Records returns the rows as column-keyed maps.
func (d *TableDump) Records() []map[string]any {
	out := make([]map[string]any, 0, len(d.Rows))
	for _, row := range d.Rows {
		rec := make(map[string]any, len(d.Columns))
		for i, col := range d.Columns {
			rec[col] = row[i]
		}
		out = append(out, rec)
	}
	return out
}

// SQLiteExportRepo implements ExportRepo using a SQLite database.
type SQLiteExportRepo struct {
	db db.DBTX
}

// NewSQLiteExportRepo creates a new SQLiteExportRepo.
func NewSQLiteExportRepo(conn db.DBTX) *SQLiteExportRepo {
	return &SQLiteExportRepo{db: conn}
}

// Dump reads a whole table. Only names in db.Tables are accepted, so the
// name is safe to splice into the statement.
func (r *SQLiteExportRepo) Dump(ctx context.Context, table string) (*TableDump, error) {
	if !slices.Contains(db.Tables, table) {
		return nil, domain.Invalid("tables", "unknown table %q", table)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT * FROM `+table+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("dumping %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading %s columns: %w", table, err)
	}
	dump := &TableDump{Table: table, Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		dump.Rows = append(dump.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", table, err)
	}
	return dump, nil
}
