package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/curtisos/curtisos/internal/domain"
)

// Timestamps are stored as fixed-width UTC TEXT with nanoseconds so lexical
// order matches chronological order. Rows written without fractional seconds
// still parse.
const (
	timeLayout      = "2006-01-02T15:04:05.000000000Z07:00"
	timeParseLayout = time.RFC3339Nano
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// parseNullableTime parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timeParseLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func parseTime(col, s string) (time.Time, error) {
	t, err := time.Parse(timeParseLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", col, err)
	}
	return t, nil
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite
// storage; nil becomes SQL NULL.
func nullableTimeToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

func timeToString(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// translate maps driver errors onto domain sentinels and wraps the rest.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "PRIMARY KEY constraint failed"):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidReference)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// requireAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// where accumulates AND-ed equality filters for list queries.
type where struct {
	conds []string
	args  []any
}

func (w *where) eq(col string, v any) {
	w.conds = append(w.conds, col+" = ?")
	w.args = append(w.args, v)
}

func (w *where) cond(expr string, args ...any) {
	w.conds = append(w.conds, expr)
	w.args = append(w.args, args...)
}

func (w *where) eqStr(col, v string) {
	if v != "" {
		w.eq(col, v)
	}
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// collect drains rows through scan, closing rows before returning.
func collect[T any](rows *sql.Rows, what string, scan func(scanner) (*T, error)) ([]*T, error) {
	defer rows.Close()
	out := []*T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", what, err)
	}
	return out, nil
}
