package service

import (
	"context"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

type revenueService struct {
	revenue repository.RevenueRepo
	acts    activityLog
	now     Clock
}

func NewRevenueService(revenue repository.RevenueRepo, activities repository.ActivityRepo, log *zap.Logger) RevenueService {
	return &revenueService{
		revenue: revenue,
		acts:    activityLog{repo: activities, log: orNop(log)},
		now:     utcNow,
	}
}

func (s *revenueService) Create(ctx context.Context, r *domain.Revenue) error {
	now := s.now()
	r.Normalize(now)
	if err := r.Validate(); err != nil {
		return err
	}
	r.CreatedAt, r.UpdatedAt = now, now
	if err := s.revenue.Create(ctx, r); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityCreated, domain.EntityRevenue, r.ID, r.Context, now,
		"Revenue of %.2f recorded", r.Amount))
	return nil
}

func (s *revenueService) GetByID(ctx context.Context, id int64) (*domain.Revenue, error) {
	return s.revenue.GetByID(ctx, id)
}

func (s *revenueService) List(ctx context.Context, c domain.Context) ([]*domain.Revenue, error) {
	if err := checkContextFilter(c); err != nil {
		return nil, err
	}
	return s.revenue.List(ctx, c)
}

func (s *revenueService) Update(ctx context.Context, id int64, patch domain.RevenuePatch) (*domain.Revenue, error) {
	r, err := s.revenue.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(r)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	r.UpdatedAt = now
	if err := s.revenue.Update(ctx, r); err != nil {
		return nil, err
	}
	s.acts.record(ctx, newActivity(domain.ActivityUpdated, domain.EntityRevenue, r.ID, r.Context, now,
		"Revenue #%d updated", r.ID))
	return r, nil
}

func (s *revenueService) Delete(ctx context.Context, id int64) error {
	r, err := s.revenue.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.revenue.Delete(ctx, id); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityDeleted, domain.EntityRevenue, id, r.Context, s.now(),
		"Revenue of %.2f deleted", r.Amount))
	return nil
}

// Metrics aggregates revenue relative to the current UTC month.
func (s *revenueService) Metrics(ctx context.Context, c domain.Context) (*domain.RevenueMetrics, error) {
	if err := checkContextFilter(c); err != nil {
		return nil, err
	}
	return s.revenue.Metrics(ctx, c, s.now())
}
