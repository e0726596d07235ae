package service

import (
	"context"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

type reportService struct {
	reports repository.ReportRepo
	acts    activityLog
	now     Clock
}

func NewReportService(reports repository.ReportRepo, activities repository.ActivityRepo, log *zap.Logger) ReportService {
	return &reportService{
		reports: reports,
		acts:    activityLog{repo: activities, log: orNop(log)},
		now:     utcNow,
	}
}

func (s *reportService) Create(ctx context.Context, r *domain.Report) error {
	r.Normalize()
	if err := r.Validate(); err != nil {
		return err
	}
	now := s.now()
	r.CreatedAt, r.UpdatedAt = now, now
	if err := s.reports.Create(ctx, r); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityCreated, domain.EntityReport, r.ID, r.Context, now,
		"Report %s created", r.Title))
	return nil
}

func (s *reportService) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *reportService) List(ctx context.Context, f domain.ReportFilter) ([]*domain.Report, error) {
	if err := checkContextFilter(f.Context); err != nil {
		return nil, err
	}
	if f.Kind != "" && !f.Kind.Valid() {
		return nil, domain.Invalid("kind", "unknown report kind %q", f.Kind)
	}
	return s.reports.List(ctx, f)
}

func (s *reportService) Update(ctx context.Context, id int64, patch domain.ReportPatch) (*domain.Report, error) {
	r, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(r)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	r.UpdatedAt = now
	if err := s.reports.Update(ctx, r); err != nil {
		return nil, err
	}
	s.acts.record(ctx, newActivity(domain.ActivityUpdated, domain.EntityReport, r.ID, r.Context, now,
		"Report %s updated", r.Title))
	return r, nil
}

func (s *reportService) Delete(ctx context.Context, id int64) error {
	r, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityDeleted, domain.EntityReport, id, r.Context, s.now(),
		"Report %s deleted", r.Title))
	return nil
}
