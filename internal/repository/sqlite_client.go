package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// SQLiteClientRepo implements ClientRepo using a SQLite database.
type SQLiteClientRepo struct {
	db db.DBTX
}

// NewSQLiteClientRepo creates a new SQLiteClientRepo.
func NewSQLiteClientRepo(conn db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{db: conn}
}

const clientColumns = `id, name, company, email, phone, website, status, context, notes, lead_id, created_at, updated_at`

func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (name, company, email, phone, website, status, context, notes, lead_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Company, c.Email, c.Phone, c.Website,
		string(c.Status), string(c.Context), c.Notes,
		nullableInt64(c.LeadID),
		timeToString(c.CreatedAt), timeToString(c.UpdatedAt),
	)
	if err != nil {
		return translate(err, "inserting client")
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if err != nil {
		return nil, translate(err, "getting client")
	}
	return c, nil
}

func (r *SQLiteClientRepo) List(ctx context.Context, f domain.ClientFilter) ([]*domain.Client, error) {
	var w where
	w.eqStr("context", string(f.Context))
	w.eqStr("status", string(f.Status))
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients`+w.String()+` ORDER BY name COLLATE NOCASE, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return collect(rows, "clients", scanClient)
}

func (r *SQLiteClientRepo) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name = ?, company = ?, email = ?, phone = ?, website = ?, status = ?,
		context = ?, notes = ?, lead_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Company, c.Email, c.Phone, c.Website,
		string(c.Status), string(c.Context), c.Notes,
		nullableInt64(c.LeadID), timeToString(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return translate(err, "updating client")
	}
	return requireAffected(res, "updating client")
}

func (r *SQLiteClientRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return translate(err, "deleting client")
	}
	return requireAffected(res, "deleting client")
}

func scanClient(s scanner) (*domain.Client, error) {
	var c domain.Client
	var status, ctxName, createdAt, updatedAt string
	var leadID sql.NullInt64

	err := s.Scan(
		&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Website,
		&status, &ctxName, &c.Notes, &leadID, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning client: %w", err)
	}

	c.Status = domain.ClientStatus(status)
	c.Context = domain.Context(ctxName)
	c.LeadID = int64Ptr(leadID)
	if c.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
