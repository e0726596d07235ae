package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, title, description, status, priority, context, project_id, client_id, assignee,
	due_date, completed_at, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (title, description, status, priority, context, project_id, client_id, assignee,
		due_date, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, string(t.Status), string(t.Priority), string(t.Context),
		nullableInt64(t.ProjectID), nullableInt64(t.ClientID), t.Assignee,
		nullableTimeToString(t.DueDate), nullableTimeToString(t.CompletedAt),
		timeToString(t.CreatedAt), timeToString(t.UpdatedAt),
	)
	if err != nil {
		return translate(err, "inserting task")
	}
	t.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, translate(err, "getting task")
	}
	return t, nil
}

// List orders open work first, then by due date with undated tasks last.
func (r *SQLiteTaskRepo) List(ctx context.Context, f domain.TaskFilter) ([]*domain.Task, error) {
	var w where
	w.eqStr("context", string(f.Context))
	w.eqStr("status", string(f.Status))
	w.eqStr("priority", string(f.Priority))
	if f.ProjectID != nil {
		w.eq("project_id", *f.ProjectID)
	}
	query := `SELECT ` + taskColumns + ` FROM tasks` + w.String() + `
		ORDER BY status = 'completed', due_date IS NULL, due_date, id`
	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return collect(rows, "tasks", scanTask)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, context = ?,
		project_id = ?, client_id = ?, assignee = ?, due_date = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, string(t.Status), string(t.Priority), string(t.Context),
		nullableInt64(t.ProjectID), nullableInt64(t.ClientID), t.Assignee,
		nullableTimeToString(t.DueDate), nullableTimeToString(t.CompletedAt),
		timeToString(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return translate(err, "updating task")
	}
	return requireAffected(res, "updating task")
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return translate(err, "deleting task")
	}
	return requireAffected(res, "deleting task")
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var status, priority, ctxName, createdAt, updatedAt string
	var projectID, clientID sql.NullInt64
	var dueDate, completedAt sql.NullString

	err := s.Scan(
		&t.ID, &t.Title, &t.Description, &status, &priority, &ctxName,
		&projectID, &clientID, &t.Assignee,
		&dueDate, &completedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = domain.TaskStatus(status)
	t.Priority = domain.Priority(priority)
	t.Context = domain.Context(ctxName)
	t.ProjectID = int64Ptr(projectID)
	t.ClientID = int64Ptr(clientID)
	t.DueDate = parseNullableTime(dueDate)
	t.CompletedAt = parseNullableTime(completedAt)
	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
