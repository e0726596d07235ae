package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// SQLiteLeadRepo implements LeadRepo using a SQLite database.
type SQLiteLeadRepo struct {
	db db.DBTX
}

// NewSQLiteLeadRepo creates a new SQLiteLeadRepo.
func NewSQLiteLeadRepo(conn db.DBTX) *SQLiteLeadRepo {
	return &SQLiteLeadRepo{db: conn}
}

const leadColumns = `id, name, company, email, phone, website, source, status, value, context, notes,
	last_contacted_at, next_follow_up_at, created_at, updated_at`

func (r *SQLiteLeadRepo) Create(ctx context.Context, l *domain.Lead) error {
	query := `INSERT INTO leads (name, company, email, phone, website, source, status, value, context, notes,
		last_contacted_at, next_follow_up_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		l.Name, l.Company, l.Email, l.Phone, l.Website, l.Source,
		string(l.Status), l.Value, string(l.Context), l.Notes,
		nullableTimeToString(l.LastContactedAt),
		nullableTimeToString(l.NextFollowUpAt),
		timeToString(l.CreatedAt), timeToString(l.UpdatedAt),
	)
	if err != nil {
		return translate(err, "inserting lead")
	}
	l.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteLeadRepo) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	l, err := scanLead(row)
	if err != nil {
		return nil, translate(err, "getting lead")
	}
	return l, nil
}

func (r *SQLiteLeadRepo) List(ctx context.Context, f domain.LeadFilter) ([]*domain.Lead, error) {
	var w where
	w.eqStr("context", string(f.Context))
	w.eqStr("status", string(f.Status))
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads`+w.String()+` ORDER BY created_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	return collect(rows, "leads", scanLead)
}

func (r *SQLiteLeadRepo) Update(ctx context.Context, l *domain.Lead) error {
	query := `UPDATE leads SET name = ?, company = ?, email = ?, phone = ?, website = ?, source = ?,
		status = ?, value = ?, context = ?, notes = ?, last_contacted_at = ?, next_follow_up_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		l.Name, l.Company, l.Email, l.Phone, l.Website, l.Source,
		string(l.Status), l.Value, string(l.Context), l.Notes,
		nullableTimeToString(l.LastContactedAt),
		nullableTimeToString(l.NextFollowUpAt),
		timeToString(l.UpdatedAt), l.ID,
	)
	if err != nil {
		return translate(err, "updating lead")
	}
	return requireAffected(res, "updating lead")
}

func (r *SQLiteLeadRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return translate(err, "deleting lead")
	}
	return requireAffected(res, "deleting lead")
}

func scanLead(s scanner) (*domain.Lead, error) {
	var l domain.Lead
	var status, ctxName, createdAt, updatedAt string
	var lastContacted, nextFollowUp sql.NullString

	err := s.Scan(
		&l.ID, &l.Name, &l.Company, &l.Email, &l.Phone, &l.Website, &l.Source,
		&status, &l.Value, &ctxName, &l.Notes,
		&lastContacted, &nextFollowUp, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning lead: %w", err)
	}

	l.Status = domain.LeadStatus(status)
	l.Context = domain.Context(ctxName)
	l.LastContactedAt = parseNullableTime(lastContacted)
	l.NextFollowUpAt = parseNullableTime(nextFollowUp)
	if l.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
