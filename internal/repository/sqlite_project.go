package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, name, description, client_id, status, context, budget, start_date, deadline, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (name, description, client_id, status, context, budget, start_date, deadline, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, nullableInt64(p.ClientID),
		string(p.Status), string(p.Context), p.Budget,
		nullableTimeToString(p.StartDate), nullableTimeToString(p.Deadline),
		timeToString(p.CreatedAt), timeToString(p.UpdatedAt),
	)
	if err != nil {
		return translate(err, "inserting project")
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, translate(err, "getting project")
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, error) {
	var w where
	w.eqStr("context", string(f.Context))
	w.eqStr("status", string(f.Status))
	if f.ClientID != nil {
		w.eq("client_id", *f.ClientID)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects`+w.String()+` ORDER BY created_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return collect(rows, "projects", scanProject)
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, description = ?, client_id = ?, status = ?, context = ?, budget = ?,
		start_date = ?, deadline = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, nullableInt64(p.ClientID),
		string(p.Status), string(p.Context), p.Budget,
		nullableTimeToString(p.StartDate), nullableTimeToString(p.Deadline),
		timeToString(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return translate(err, "updating project")
	}
	return requireAffected(res, "updating project")
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return translate(err, "deleting project")
	}
	return requireAffected(res, "deleting project")
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	var status, ctxName, createdAt, updatedAt string
	var clientID sql.NullInt64
	var startDate, deadline sql.NullString

	err := s.Scan(
		&p.ID, &p.Name, &p.Description, &clientID,
		&status, &ctxName, &p.Budget,
		&startDate, &deadline, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Status = domain.ProjectStatus(status)
	p.Context = domain.Context(ctxName)
	p.ClientID = int64Ptr(clientID)
	p.StartDate = parseNullableTime(startDate)
	p.Deadline = parseNullableTime(deadline)
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
