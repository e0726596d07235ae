package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
)

// SQLiteDashboardRepo implements DashboardRepo using a SQLite database.
type SQLiteDashboardRepo struct {
	db db.DBTX
}

// NewSQLiteDashboardRepo creates a new SQLiteDashboardRepo.
func NewSQLiteDashboardRepo(conn db.DBTX) *SQLiteDashboardRepo {
	return &SQLiteDashboardRepo{db: conn}
}

// Counts computes the dashboard summary in a single statement. "Today" is
// the UTC calendar day containing now.
func (r *SQLiteDashboardRepo) Counts(ctx context.Context, ctxFilter domain.Context, now time.Time) (*domain.DashboardCounts, error) {
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	// Each subquery filters by context when one is given; "" matches all.
	const byCtx = `(? = '' OR context = ?)`
	query := `SELECT
		(SELECT COUNT(*) FROM leads WHERE status NOT IN ('won','lost') AND ` + byCtx + `),
		(SELECT COUNT(*) FROM clients WHERE status = 'active' AND ` + byCtx + `),
		(SELECT COUNT(*) FROM projects WHERE status IN ('planning','in_progress','review') AND ` + byCtx + `),
		(SELECT COUNT(*) FROM tasks WHERE status <> 'completed' AND ` + byCtx + `),
		(SELECT COUNT(*) FROM tasks WHERE status <> 'completed' AND due_date IS NOT NULL AND due_date < ? AND ` + byCtx + `),
		(SELECT COUNT(*) FROM tasks WHERE status <> 'completed' AND due_date >= ? AND due_date < ? AND ` + byCtx + `),
		(SELECT COUNT(*) FROM emails WHERE needs_response = 1 AND responded_at IS NULL AND ` + byCtx + `),
		(SELECT COALESCE(SUM(amount), 0) FROM revenues WHERE received_at >= ? AND received_at < ? AND ` + byCtx + `)`

	c := string(ctxFilter)
	args := []any{
		c, c,
		c, c,
		c, c,
		c, c,
		timeToString(now), c, c,
		timeToString(dayStart), timeToString(dayEnd), c, c,
		c, c,
		timeToString(monthStart), timeToString(monthEnd), c, c,
	}

	var out domain.DashboardCounts
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&out.OpenLeads, &out.ActiveClients, &out.ActiveProjects,
		&out.OpenTasks, &out.OverdueTasks, &out.TasksDueToday,
		&out.EmailsNeedingResponse, &out.RevenueThisMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("computing dashboard counts: %w", err)
	}
	return &out, nil
}
