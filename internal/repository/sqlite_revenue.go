package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// SQLiteRevenueRepo implements RevenueRepo using a SQLite database.
type SQLiteRevenueRepo struct {
	db db.DBTX
}

// NewSQLiteRevenueRepo creates a new SQLiteRevenueRepo.
func NewSQLiteRevenueRepo(conn db.DBTX) *SQLiteRevenueRepo {
	return &SQLiteRevenueRepo{db: conn}
}

const revenueColumns = `id, amount, source, description, context, client_id, project_id, received_at, created_at, updated_at`

// metricsMonths is how many calendar months ByMonth covers, current included.
const metricsMonths = 12

func (r *SQLiteRevenueRepo) Create(ctx context.Context, rev *domain.Revenue) error {
	query := `INSERT INTO revenues (amount, source, description, context, client_id, project_id, received_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		rev.Amount, rev.Source, rev.Description, string(rev.Context),
		nullableInt64(rev.ClientID), nullableInt64(rev.ProjectID),
		timeToString(rev.ReceivedAt), timeToString(rev.CreatedAt), timeToString(rev.UpdatedAt),
	)
	if err != nil {
		return translate(err, "inserting revenue")
	}
	rev.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteRevenueRepo) GetByID(ctx context.Context, id int64) (*domain.Revenue, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+revenueColumns+` FROM revenues WHERE id = ?`, id)
	rev, err := scanRevenue(row)
	if err != nil {
		return nil, translate(err, "getting revenue")
	}
	return rev, nil
}

func (r *SQLiteRevenueRepo) List(ctx context.Context, ctxFilter domain.Context) ([]*domain.Revenue, error) {
	var w where
	w.eqStr("context", string(ctxFilter))
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+revenueColumns+` FROM revenues`+w.String()+` ORDER BY received_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing revenue: %w", err)
	}
	return collect(rows, "revenue", scanRevenue)
}

func (r *SQLiteRevenueRepo) Update(ctx context.Context, rev *domain.Revenue) error {
	query := `UPDATE revenues SET amount = ?, source = ?, description = ?, context = ?, client_id = ?, project_id = ?,
		received_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rev.Amount, rev.Source, rev.Description, string(rev.Context),
		nullableInt64(rev.ClientID), nullableInt64(rev.ProjectID),
		timeToString(rev.ReceivedAt), timeToString(rev.UpdatedAt), rev.ID,
	)
	if err != nil {
		return translate(err, "updating revenue")
	}
	return requireAffected(res, "updating revenue")
}

func (r *SQLiteRevenueRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM revenues WHERE id = ?`, id)
	if err != nil {
		return translate(err, "deleting revenue")
	}
	return requireAffected(res, "deleting revenue")
}

// Metrics totals revenue over calendar windows anchored at now (UTC).
func (r *SQLiteRevenueRepo) Metrics(ctx context.Context, ctxFilter domain.Context, now time.Time) (*domain.RevenueMetrics, error) {
	now = now.UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	nextMonth := thisMonth.AddDate(0, 1, 0)
	thisYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	firstWindowMonth := thisMonth.AddDate(0, -(metricsMonths - 1), 0)

	var w where
	w.eqStr("context", string(ctxFilter))
	filter := w.String()

	m := &domain.RevenueMetrics{ByContext: map[domain.Context]float64{}}
	args := append([]any{
		timeToString(thisMonth), timeToString(nextMonth),
		timeToString(lastMonth), timeToString(thisMonth),
		timeToString(thisYear),
	}, w.args...)
	err := r.db.QueryRowContext(ctx, `SELECT
		COALESCE(SUM(amount), 0),
		COALESCE(SUM(CASE WHEN received_at >= ? AND received_at < ? THEN amount END), 0),
		COALESCE(SUM(CASE WHEN received_at >= ? AND received_at < ? THEN amount END), 0),
		COALESCE(SUM(CASE WHEN received_at >= ? THEN amount END), 0)
		FROM revenues`+filter, args...).Scan(&m.Total, &m.ThisMonth, &m.LastMonth, &m.ThisYear)
	if err != nil {
		return nil, fmt.Errorf("summing revenue: %w", err)
	}

	byCtx, err := r.db.QueryContext(ctx, `SELECT context, SUM(amount) FROM revenues`+filter+` GROUP BY context`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("grouping revenue by context: %w", err)
	}
	for byCtx.Next() {
		var c string
		var total float64
		if err := byCtx.Scan(&c, &total); err != nil {
			byCtx.Close()
			return nil, fmt.Errorf("scanning revenue by context: %w", err)
		}
		m.ByContext[domain.Context(c)] = total
	}
	byCtx.Close()
	if err := byCtx.Err(); err != nil {
		return nil, fmt.Errorf("iterating revenue by context: %w", err)
	}

	var monthWhere where
	monthWhere.eqStr("context", string(ctxFilter))
	monthWhere.cond("received_at >= ?", timeToString(firstWindowMonth))
	byMonth, err := r.db.QueryContext(ctx, `SELECT substr(received_at, 1, 7), SUM(amount) FROM revenues`+
		monthWhere.String()+` GROUP BY 1`, monthWhere.args...)
	if err != nil {
		return nil, fmt.Errorf("grouping revenue by month: %w", err)
	}
	totals := map[string]float64{}
	for byMonth.Next() {
		var month string
		var total float64
		if err := byMonth.Scan(&month, &total); err != nil {
			byMonth.Close()
			return nil, fmt.Errorf("scanning revenue by month: %w", err)
		}
		totals[month] = total
	}
	byMonth.Close()
	if err := byMonth.Err(); err != nil {
		return nil, fmt.Errorf("iterating revenue by month: %w", err)
	}

	m.ByMonth = make([]domain.MonthTotal, 0, metricsMonths)
	for i := 0; i < metricsMonths; i++ {
		key := firstWindowMonth.AddDate(0, i, 0).Format("2006-01")
		m.ByMonth = append(m.ByMonth, domain.MonthTotal{Month: key, Total: totals[key]})
	}
	return m, nil
}

func scanRevenue(s scanner) (*domain.Revenue, error) {
	var rev domain.Revenue
	var ctxName, receivedAt, createdAt, updatedAt string
	var clientID, projectID sql.NullInt64

	err := s.Scan(
		&rev.ID, &rev.Amount, &rev.Source, &rev.Description, &ctxName,
		&clientID, &projectID, &receivedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning revenue: %w", err)
	}

	rev.Context = domain.Context(ctxName)
	rev.ClientID = int64Ptr(clientID)
	rev.ProjectID = int64Ptr(projectID)
	if rev.ReceivedAt, err = parseTime("received_at", receivedAt); err != nil {
		return nil, err
	}
	if rev.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if rev.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &rev, nil
}
