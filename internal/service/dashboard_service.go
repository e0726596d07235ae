package service

import (
	"context"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
)

type dashboardService struct {
	dashboard repository.DashboardRepo
	now       Clock
}

func NewDashboardService(dashboard repository.DashboardRepo) DashboardService {
	return &dashboardService{dashboard: dashboard, now: utcNow}
}

// Counts summarises open work. "Today" and "this month" are UTC.
func (s *dashboardService) Counts(ctx context.Context, c domain.Context) (*domain.DashboardCounts, error) {
	if err := checkContextFilter(c); err != nil {
		return nil, err
	}
	return s.dashboard.Counts(ctx, c, s.now())
}

type activityService struct {
	activities repository.ActivityRepo
}

func NewActivityService(activities repository.ActivityRepo) ActivityService {
	return &activityService{activities: activities}
}

func (s *activityService) List(ctx context.Context, f domain.ActivityFilter) ([]*domain.Activity, error) {
	if f.EntityType != "" {
		switch f.EntityType {
		case domain.EntityLead, domain.EntityClient, domain.EntityProject, domain.EntityTask,
			domain.EntityDevPlan, domain.EntityEpisode, domain.EntityEmail, domain.EntityRevenue,
			domain.EntityReport, domain.EntityTag:
		default:
			return nil, domain.Invalid("entityType", "unknown entity type %q", f.EntityType)
		}
	}
	return s.activities.List(ctx, f)
}
