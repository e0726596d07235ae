package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// SQLiteReportRepo implements ReportRepo using a SQLite database.
type SQLiteReportRepo struct {
	db db.DBTX
}

// NewSQLiteReportRepo creates a new SQLiteReportRepo.
func NewSQLiteReportRepo(conn db.DBTX) *SQLiteReportRepo {
	return &SQLiteReportRepo{db: conn}
}

const reportColumns = `id, title, kind, context, content, period_start, period_end, created_at, updated_at`

func (r *SQLiteReportRepo) Create(ctx context.Context, rep *domain.Report) error {
	query := `INSERT INTO reports (title, kind, context, content, period_start, period_end, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		rep.Title, string(rep.Kind), string(rep.Context), rep.Content,
		nullableTimeToString(rep.PeriodStart), nullableTimeToString(rep.PeriodEnd),
		timeToString(rep.CreatedAt), timeToString(rep.UpdatedAt),
	)
	if err != nil {
		return translate(err, "inserting report")
	}
	rep.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteReportRepo) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = ?`, id)
	rep, err := scanReport(row)
	if err != nil {
		return nil, translate(err, "getting report")
	}
	return rep, nil
}

func (r *SQLiteReportRepo) List(ctx context.Context, f domain.ReportFilter) ([]*domain.Report, error) {
	var w where
	w.eqStr("kind", string(f.Kind))
	w.eqStr("context", string(f.Context))
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM reports`+w.String()+` ORDER BY created_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	return collect(rows, "reports", scanReport)
}

func (r *SQLiteReportRepo) Update(ctx context.Context, rep *domain.Report) error {
	query := `UPDATE reports SET title = ?, kind = ?, context = ?, content = ?, period_start = ?, period_end = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rep.Title, string(rep.Kind), string(rep.Context), rep.Content,
		nullableTimeToString(rep.PeriodStart), nullableTimeToString(rep.PeriodEnd),
		timeToString(rep.UpdatedAt), rep.ID,
	)
	if err != nil {
		return translate(err, "updating report")
	}
	return requireAffected(res, "updating report")
}

func (r *SQLiteReportRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return translate(err, "deleting report")
	}
	return requireAffected(res, "deleting report")
}

func scanReport(s scanner) (*domain.Report, error) {
	var rep domain.Report
	var kind, ctxName, createdAt, updatedAt string
	var periodStart, periodEnd sql.NullString

	err := s.Scan(
		&rep.ID, &rep.Title, &kind, &ctxName, &rep.Content,
		&periodStart, &periodEnd, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning report: %w", err)
	}

	rep.Kind = domain.ReportKind(kind)
	rep.Context = domain.Context(ctxName)
	rep.PeriodStart = parseNullableTime(periodStart)
	rep.PeriodEnd = parseNullableTime(periodEnd)
	if rep.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if rep.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &rep, nil
}
