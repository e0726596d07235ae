package service

import (
	"context"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/intelligence"
	"github.com/curtisos/curtisos/internal/repository"
)

type LeadService interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context, f domain.LeadFilter) ([]*domain.Lead, error)
	Update(ctx context.Context, id int64, patch domain.LeadPatch) (*domain.Lead, error)
	Delete(ctx context.Context, id int64) error
	// Convert turns a lead into a client with a first project, atomically.
	Convert(ctx context.Context, id int64, req ConvertLeadRequest) (*LeadConversion, error)
}

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, f domain.ClientFilter) ([]*domain.Client, error)
	Update(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
	Projects(ctx context.Context, id int64) ([]*domain.Project, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
	Tasks(ctx context.Context, id int64) ([]*domain.Task, error)
	DevPlan(ctx context.Context, id int64) (*domain.DevPlanView, error)
	Blockers(ctx context.Context, id int64) ([]string, error)
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, f domain.TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

type DevPlanService interface {
	Create(ctx context.Context, d *domain.DevPlan) (*domain.DevPlanView, error)
	GetByID(ctx context.Context, id int64) (*domain.DevPlanView, error)
	List(ctx context.Context) ([]domain.DevPlanView, error)
	Update(ctx context.Context, id int64, patch domain.DevPlanPatch) (*domain.DevPlanView, error)
	Delete(ctx context.Context, id int64) error
	AdvanceStage(ctx context.Context, id int64, req AdvanceStageRequest) (*domain.DevPlanView, error)
}

type EpisodeService interface {
	Create(ctx context.Context, e *domain.Episode) error
	GetByID(ctx context.Context, id int64) (*domain.Episode, error)
	List(ctx context.Context, status domain.EpisodeStatus) ([]*domain.Episode, error)
	Update(ctx context.Context, id int64, patch domain.EpisodePatch) (*domain.Episode, error)
	Delete(ctx context.Context, id int64) error
}

type EmailService interface {
	GetByID(ctx context.Context, id int64) (*domain.Email, error)
	List(ctx context.Context, f domain.EmailFilter) ([]*domain.Email, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.EmailStats, error)
	MarkResponded(ctx context.Context, id int64, responded bool) (*domain.Email, error)
	Reply(ctx context.Context, id int64, req ReplyRequest) (*domain.Email, error)
}

type EmailSyncService interface {
	Sync(ctx context.Context) (*SyncResult, error)
}

type RevenueService interface {
	Create(ctx context.Context, r *domain.Revenue) error
	GetByID(ctx context.Context, id int64) (*domain.Revenue, error)
	List(ctx context.Context, c domain.Context) ([]*domain.Revenue, error)
	Update(ctx context.Context, id int64, patch domain.RevenuePatch) (*domain.Revenue, error)
	Delete(ctx context.Context, id int64) error
	Metrics(ctx context.Context, c domain.Context) (*domain.RevenueMetrics, error)
}

type ReportService interface {
	Create(ctx context.Context, r *domain.Report) error
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	List(ctx context.Context, f domain.ReportFilter) ([]*domain.Report, error)
	Update(ctx context.Context, id int64, patch domain.ReportPatch) (*domain.Report, error)
	Delete(ctx context.Context, id int64) error
}

type TagService interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
	Update(ctx context.Context, id int64, patch domain.TagPatch) (*domain.Tag, error)
	Delete(ctx context.Context, id int64) error
	Assign(ctx context.Context, tagID int64, et domain.EntityType, entityID int64) (*domain.TagAssignment, error)
	Unassign(ctx context.Context, tagID int64, et domain.EntityType, entityID int64) error
	Entities(ctx context.Context, tagID int64) ([]*domain.TagAssignment, error)
	ForEntity(ctx context.Context, et domain.EntityType, entityID int64) ([]*domain.Tag, error)
}

type ActivityService interface {
	List(ctx context.Context, f domain.ActivityFilter) ([]*domain.Activity, error)
}

type DashboardService interface {
	Counts(ctx context.Context, c domain.Context) (*domain.DashboardCounts, error)
}

type ExportService interface {
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
}

// AIService loads records for the advisor. It only returns errors for
// missing records or bad input; model failures come back as fallbacks.
type AIService interface {
	TaskSuggestions(ctx context.Context, projectID int64) (intelligence.Result[intelligence.TaskSuggestions], error)
	ApplyTaskSuggestion(ctx context.Context, req ApplySuggestionRequest) (*domain.Task, error)
	ClientInsights(ctx context.Context, clientID int64) (intelligence.Result[intelligence.ClientInsights], error)
	Prospects(ctx context.Context, criteria string, c domain.Context) (intelligence.Result[intelligence.Prospects], error)
	TaskAdvice(ctx context.Context, taskID int64) (intelligence.Result[intelligence.TaskAdvice], error)
	DashboardInsights(ctx context.Context) (intelligence.Result[intelligence.DashboardInsights], error)
	EmailTriage(ctx context.Context, emailID int64) (intelligence.Result[intelligence.EmailTriage], error)
	DraftReply(ctx context.Context, emailID int64, tone string) (intelligence.Result[intelligence.DraftReply], error)
	DealHealth(ctx context.Context, leadID int64) (intelligence.Result[intelligence.DealHealth], error)
	Nudge(ctx context.Context, leadID int64) (intelligence.Result[intelligence.Nudge], error)
	ContentIdeas(ctx context.Context, topic string) (intelligence.Result[intelligence.ContentIdeas], error)
	BlockerAnalysis(ctx context.Context, projectID int64) (intelligence.Result[intelligence.BlockerAnalysis], error)
}

// Compile-time checks that the SQLite repositories satisfy the ports the
// services depend on.
var (
	_ repository.LeadRepo      = (*repository.SQLiteLeadRepo)(nil)
	_ repository.ClientRepo    = (*repository.SQLiteClientRepo)(nil)
	_ repository.ProjectRepo   = (*repository.SQLiteProjectRepo)(nil)
	_ repository.TaskRepo      = (*repository.SQLiteTaskRepo)(nil)
	_ repository.DevPlanRepo   = (*repository.SQLiteDevPlanRepo)(nil)
	_ repository.EpisodeRepo   = (*repository.SQLiteEpisodeRepo)(nil)
	_ repository.EmailRepo     = (*repository.SQLiteEmailRepo)(nil)
	_ repository.RevenueRepo   = (*repository.SQLiteRevenueRepo)(nil)
	_ repository.ReportRepo    = (*repository.SQLiteReportRepo)(nil)
	_ repository.TagRepo       = (*repository.SQLiteTagRepo)(nil)
	_ repository.ActivityRepo  = (*repository.SQLiteActivityRepo)(nil)
	_ repository.DashboardRepo = (*repository.SQLiteDashboardRepo)(nil)
	_ repository.ExportRepo    = (*repository.SQLiteExportRepo)(nil)
)
