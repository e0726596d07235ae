package repository

import (
	"context"
	"time"

	"github.com/curtisos/curtisos/internal/domain"
)

type LeadRepo interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context, f domain.LeadFilter) ([]*domain.Lead, error)
	Update(ctx context.Context, l *domain.Lead) error
	Delete(ctx context.Context, id int64) error
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, f domain.ClientFilter) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int64) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, f domain.TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
}

type DevPlanRepo interface {
	Create(ctx context.Context, d *domain.DevPlan) error
	GetByID(ctx context.Context, id int64) (*domain.DevPlan, error)
	GetByProject(ctx context.Context, projectID int64) (*domain.DevPlan, error)
	List(ctx context.Context) ([]*domain.DevPlan, error)
	Update(ctx context.Context, d *domain.DevPlan) error
	Delete(ctx context.Context, id int64) error
}

type EpisodeRepo interface {
	Create(ctx context.Context, e *domain.Episode) error
	GetByID(ctx context.Context, id int64) (*domain.Episode, error)
	List(ctx context.Context, status domain.EpisodeStatus) ([]*domain.Episode, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Episode, error)
	Update(ctx context.Context, e *domain.Episode) error
	Delete(ctx context.Context, id int64) error
}

type EmailRepo interface {
	Create(ctx context.Context, e *domain.Email) error
	GetByID(ctx context.Context, id int64) (*domain.Email, error)
	List(ctx context.Context, f domain.EmailFilter) ([]*domain.Email, error)
	Update(ctx context.Context, e *domain.Email) error
	Delete(ctx context.Context, id int64) error
	// KnownProviderIDs returns the subset of ids already stored.
	KnownProviderIDs(ctx context.Context, ids []string) (map[string]bool, error)
	Stats(ctx context.Context) (*domain.EmailStats, error)
}

type RevenueRepo interface {
	Create(ctx context.Context, r *domain.Revenue) error
	GetByID(ctx context.Context, id int64) (*domain.Revenue, error)
	List(ctx context.Context, ctxFilter domain.Context) ([]*domain.Revenue, error)
	Update(ctx context.Context, r *domain.Revenue) error
	Delete(ctx context.Context, id int64) error
	Metrics(ctx context.Context, ctxFilter domain.Context, now time.Time) (*domain.RevenueMetrics, error)
}

type ReportRepo interface {
	Create(ctx context.Context, r *domain.Report) error
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	List(ctx context.Context, f domain.ReportFilter) ([]*domain.Report, error)
	Update(ctx context.Context, r *domain.Report) error
	Delete(ctx context.Context, id int64) error
}

type TagRepo interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id int64) error
	Assign(ctx context.Context, a *domain.TagAssignment) error
	Unassign(ctx context.Context, tagID int64, entityType domain.EntityType, entityID int64) error
	ListAssignments(ctx context.Context, tagID int64) ([]*domain.TagAssignment, error)
	ListForEntity(ctx context.Context, entityType domain.EntityType, entityID int64) ([]*domain.Tag, error)
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	List(ctx context.Context, f domain.ActivityFilter) ([]*domain.Activity, error)
}

// DashboardRepo answers the cross-table summary queries.
type DashboardRepo interface {
	Counts(ctx context.Context, ctxFilter domain.Context, now time.Time) (*domain.DashboardCounts, error)
}

// ExportRepo dumps whole tables as ordered column/value rows.
type ExportRepo interface {
	Dump(ctx context.Context, table string) (*TableDump, error)
}
