package repository

import (
	"context"
	"fmt"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (kind, entity_type, entity_id, description, context, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(a.Kind), string(a.EntityType), a.EntityID, a.Description, string(a.Context),
		timeToString(a.CreatedAt))
	if err != nil {
		return translate(err, "inserting activity")
	}
	a.ID, err = res.LastInsertId()
	return err
}

// List returns the newest activities first. A non-positive limit uses the
// default; limits above the maximum are clamped.
func (r *SQLiteActivityRepo) List(ctx context.Context, f domain.ActivityFilter) ([]*domain.Activity, error) {
	var w where
	w.eqStr("entity_type", string(f.EntityType))
	if f.EntityID > 0 {
		w.eq("entity_id", f.EntityID)
	}
	limit := f.Limit
	switch {
	case limit <= 0:
		limit = defaultActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}
	args := append(w.args, limit)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, entity_type, entity_id, description, context, created_at FROM activities`+
			w.String()+` ORDER BY created_at DESC, id DESC LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return collect(rows, "activities", scanActivity)
}

func scanActivity(s scanner) (*domain.Activity, error) {
	var a domain.Activity
	var kind, entityType, ctxName, createdAt string
	if err := s.Scan(&a.ID, &kind, &entityType, &a.EntityID, &a.Description, &ctxName, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning activity: %w", err)
	}
	a.Kind = domain.ActivityKind(kind)
	a.EntityType = domain.EntityType(entityType)
	a.Context = domain.Context(ctxName)
	var err error
	if a.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}
