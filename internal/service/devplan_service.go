package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

// AdvanceStageRequest moves a plan forward one stage. Stage, when set,
// must name the successor of the current stage. Nil dates take defaults.
type AdvanceStageRequest struct {
	Stage     domain.Stage `json:"stage"`
	StartDate *time.Time   `json:"startDate"`
	EndDate   *time.Time   `json:"endDate"`
}

type devPlanService struct {
	plans    repository.DevPlanRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	acts     activityLog
	observer UseCaseObserver
	now      Clock
}

func NewDevPlanService(
	plans repository.DevPlanRepo,
	projects repository.ProjectRepo,
	activities repository.ActivityRepo,
	uow db.UnitOfWork,
	log *zap.Logger,
	observers ...UseCaseObserver,
) DevPlanService {
	return &devPlanService{
		plans:    plans,
		projects: projects,
		uow:      uow,
		acts:     activityLog{repo: activities, log: orNop(log)},
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
	}
}

func (s *devPlanService) view(d *domain.DevPlan) *domain.DevPlanView {
	v := domain.NewDevPlanView(d, s.now())
	return &v
}

// Create stores a new plan. A project can have at most one plan; a second
// one is ErrConflict.
func (s *devPlanService) Create(ctx context.Context, d *domain.DevPlan) (*domain.DevPlanView, error) {
	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	p, err := s.projects.GetByID(ctx, d.ProjectID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("project %d: %w", d.ProjectID, domain.ErrInvalidReference)
	}
	if err != nil {
		return nil, err
	}
	now := s.now()
	d.CreatedAt, d.UpdatedAt = now, now
	if err := s.plans.Create(ctx, d); err != nil {
		return nil, err
	}
	s.acts.record(ctx, newActivity(domain.ActivityCreated, domain.EntityDevPlan, d.ID, p.Context, now,
		"Dev plan %s created for project %s", d.Name, p.Name))
	return s.view(d), nil
}

func (s *devPlanService) GetByID(ctx context.Context, id int64) (*domain.DevPlanView, error) {
	d, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(d), nil
}

func (s *devPlanService) List(ctx context.Context) ([]domain.DevPlanView, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]domain.DevPlanView, 0, len(plans))
	for _, d := range plans {
		views = append(views, domain.NewDevPlanView(d, now))
	}
	return views, nil
}

// Update edits names, notes and dates. The stage only moves through
// AdvanceStage.
func (s *devPlanService) Update(ctx context.Context, id int64, patch domain.DevPlanPatch) (*domain.DevPlanView, error) {
	d, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(d)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	d.UpdatedAt = now
	if err := s.plans.Update(ctx, d); err != nil {
		return nil, err
	}
	s.acts.record(ctx, newActivity(domain.ActivityUpdated, domain.EntityDevPlan, d.ID, s.projectContext(ctx, d.ProjectID), now,
		"Dev plan %s updated", d.Name))
	return s.view(d), nil
}

func (s *devPlanService) Delete(ctx context.Context, id int64) error {
	d, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c := s.projectContext(ctx, d.ProjectID)
	if err := s.plans.Delete(ctx, id); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityDeleted, domain.EntityDevPlan, id, c, s.now(),
		"Dev plan %s deleted", d.Name))
	return nil
}

// AdvanceStage moves the plan to its next stage and records the move in
// the same transaction.
func (s *devPlanService) AdvanceStage(ctx context.Context, id int64, req AdvanceStageRequest) (view *domain.DevPlanView, err error) {
	fields := map[string]any{"plan_id": id}
	defer observe(ctx, s.observer, "advance-stage", fields, &err)()

	if req.Stage != "" && !req.Stage.Valid() {
		return nil, domain.Invalid("stage", "must be one of planning, build, revise, live")
	}

	now := s.now()
	var plan *domain.DevPlan
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLiteDevPlanRepo(tx)
		d, err := plans.GetByID(ctx, id)
		if err != nil {
			return err
		}
		from := d.CurrentStage
		if err := d.AdvanceTo(req.Stage, now, req.StartDate, req.EndDate); err != nil {
			return err
		}
		d.UpdatedAt = now
		if err := plans.Update(ctx, d); err != nil {
			return err
		}

		c := domain.ContextGeneral
		if p, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, d.ProjectID); err == nil {
			c = p.Context
		}
		act := newActivity(domain.ActivityStageAdvanced, domain.EntityDevPlan, d.ID, c, now,
			"Dev plan %s advanced from %s to %s", d.Name, from, d.CurrentStage)
		if err := repository.NewSQLiteActivityRepo(tx).Create(ctx, act); err != nil {
			return err
		}
		fields["from"] = string(from)
		fields["to"] = string(d.CurrentStage)
		plan = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(plan), nil
}

func (s *devPlanService) projectContext(ctx context.Context, projectID int64) domain.Context {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return domain.ContextGeneral
	}
	return p.Context
}
