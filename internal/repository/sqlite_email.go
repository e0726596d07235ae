package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// SQLiteEmailRepo implements EmailRepo using a SQLite database.
type SQLiteEmailRepo struct {
	db db.DBTX
}

// NewSQLiteEmailRepo creates a new SQLiteEmailRepo.
func NewSQLiteEmailRepo(conn db.DBTX) *SQLiteEmailRepo {
	return &SQLiteEmailRepo{db: conn}
}

const emailColumns = `id, provider_message_id, thread_id, from_address, from_name, to_address, subject, snippet, body,
	received_at, context, priority, needs_response, summary, responded_at, task_id, created_at, updated_at`

func (r *SQLiteEmailRepo) Create(ctx context.Context, e *domain.Email) error {
	query := `INSERT INTO emails (provider_message_id, thread_id, from_address, from_name, to_address, subject, snippet, body,
		received_at, context, priority, needs_response, summary, responded_at, task_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		e.ProviderMessageID, e.ThreadID, e.FromAddress, e.FromName, e.ToAddress,
		e.Subject, e.Snippet, e.Body, timeToString(e.ReceivedAt),
		string(e.Context), string(e.Priority), boolToInt(e.NeedsResponse), e.Summary,
		nullableTimeToString(e.RespondedAt), nullableInt64(e.TaskID),
		timeToString(e.CreatedAt), timeToString(e.UpdatedAt),
	)
	if err != nil {
		return translate(err, "inserting email")
	}
	e.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteEmailRepo) GetByID(ctx context.Context, id int64) (*domain.Email, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+emailColumns+` FROM emails WHERE id = ?`, id)
	e, err := scanEmail(row)
	if err != nil {
		return nil, translate(err, "getting email")
	}
	return e, nil
}

func (r *SQLiteEmailRepo) List(ctx context.Context, f domain.EmailFilter) ([]*domain.Email, error) {
	var w where
	w.eqStr("context", string(f.Context))
	if f.NeedsResponse != nil {
		w.eq("needs_response", boolToInt(*f.NeedsResponse))
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+emailColumns+` FROM emails`+w.String()+` ORDER BY received_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing emails: %w", err)
	}
	return collect(rows, "emails", scanEmail)
}

func (r *SQLiteEmailRepo) Update(ctx context.Context, e *domain.Email) error {
	query := `UPDATE emails SET thread_id = ?, from_address = ?, from_name = ?, to_address = ?, subject = ?,
		snippet = ?, body = ?, received_at = ?, context = ?, priority = ?, needs_response = ?, summary = ?,
		responded_at = ?, task_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.ThreadID, e.FromAddress, e.FromName, e.ToAddress, e.Subject,
		e.Snippet, e.Body, timeToString(e.ReceivedAt),
		string(e.Context), string(e.Priority), boolToInt(e.NeedsResponse), e.Summary,
		nullableTimeToString(e.RespondedAt), nullableInt64(e.TaskID),
		timeToString(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return translate(err, "updating email")
	}
	return requireAffected(res, "updating email")
}

func (r *SQLiteEmailRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM emails WHERE id = ?`, id)
	if err != nil {
		return translate(err, "deleting email")
	}
	return requireAffected(res, "deleting email")
}

func (r *SQLiteEmailRepo) KnownProviderIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	known := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return known, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT provider_message_id FROM emails WHERE provider_message_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("checking known emails: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning provider id: %w", err)
		}
		known[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating provider ids: %w", err)
	}
	return known, nil
}

func (r *SQLiteEmailRepo) Stats(ctx context.Context) (*domain.EmailStats, error) {
	stats := &domain.EmailStats{
		ByContext:  map[domain.Context]int{},
		ByPriority: map[domain.Priority]int{},
	}
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN needs_response = 1 AND responded_at IS NULL THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN responded_at IS NOT NULL THEN 1 ELSE 0 END), 0)
		FROM emails`).Scan(&stats.Total, &stats.NeedsResponse, &stats.Responded)
	if err != nil {
		return nil, fmt.Errorf("counting emails: %w", err)
	}

	if err := r.groupCount(ctx, "context", func(k string, n int) {
		stats.ByContext[domain.Context(k)] = n
	}); err != nil {
		return nil, err
	}
	if err := r.groupCount(ctx, "priority", func(k string, n int) {
		stats.ByPriority[domain.Priority(k)] = n
	}); err != nil {
		return nil, err
	}
	return stats, nil
}

// groupCount runs COUNT(*) grouped by a fixed, trusted column name.
func (r *SQLiteEmailRepo) groupCount(ctx context.Context, col string, add func(string, int)) error {
	rows, err := r.db.QueryContext(ctx, `SELECT `+col+`, COUNT(*) FROM emails GROUP BY `+col)
	if err != nil {
		return fmt.Errorf("grouping emails by %s: %w", col, err)
	}
	defer rows.Close()
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return fmt.Errorf("scanning email %s count: %w", col, err)
		}
		add(k, n)
	}
	return rows.Err()
}

func scanEmail(s scanner) (*domain.Email, error) {
	var e domain.Email
	var receivedAt, ctxName, priority, createdAt, updatedAt string
	var needsResponse int
	var respondedAt sql.NullString
	var taskID sql.NullInt64

	err := s.Scan(
		&e.ID, &e.ProviderMessageID, &e.ThreadID, &e.FromAddress, &e.FromName, &e.ToAddress,
		&e.Subject, &e.Snippet, &e.Body, &receivedAt, &ctxName, &priority,
		&needsResponse, &e.Summary, &respondedAt, &taskID, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning email: %w", err)
	}

	e.Context = domain.Context(ctxName)
	e.Priority = domain.Priority(priority)
	e.NeedsResponse = intToBool(needsResponse)
	e.RespondedAt = parseNullableTime(respondedAt)
	e.TaskID = int64Ptr(taskID)
	if e.ReceivedAt, err = parseTime("received_at", receivedAt); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
