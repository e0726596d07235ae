package service

import (
	"context"
	"errors"

	"github.com/curtisos/curtisos/internal/analytics"
	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

type projectService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	plans    repository.DevPlanRepo
	acts     activityLog
	now      Clock
}

func NewProjectService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	plans repository.DevPlanRepo,
	activities repository.ActivityRepo,
	log *zap.Logger,
) ProjectService {
	return &projectService{
		projects: projects,
		tasks:    tasks,
		plans:    plans,
		acts:     activityLog{repo: activities, log: orNop(log)},
		now:      utcNow,
	}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := s.projects.Create(ctx, p); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityCreated, domain.EntityProject, p.ID, p.Context, now,
		"Project %s created", p.Name))
	return nil
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, error) {
	if err := checkContextFilter(f.Context); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Invalid("status", "unknown project status %q", f.Status)
	}
	return s.projects.List(ctx, f)
}

func (s *projectService) Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := p.Status
	patch.Apply(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	p.UpdatedAt = now
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	s.acts.record(ctx, newActivity(changeKind(before, p.Status), domain.EntityProject, p.ID, p.Context, now,
		"%s", changeDescription("Project "+p.Name, before, p.Status)))
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityDeleted, domain.EntityProject, id, p.Context, s.now(),
		"Project %s deleted", p.Name))
	return nil
}

func (s *projectService) Tasks(ctx context.Context, id int64) ([]*domain.Task, error) {
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.tasks.List(ctx, domain.TaskFilter{ProjectID: &id})
}

func (s *projectService) DevPlan(ctx context.Context, id int64) (*domain.DevPlanView, error) {
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return nil, err
	}
	plan, err := s.plans.GetByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	view := domain.NewDevPlanView(plan, s.now())
	return &view, nil
}

func (s *projectService) Blockers(ctx context.Context, id int64) ([]string, error) {
	p, tasks, plan, err := loadProjectContext(ctx, s.projects, s.tasks, s.plans, id)
	if err != nil {
		return nil, err
	}
	return analytics.InferBlockers(p, tasks, plan, s.now()), nil
}

// loadProjectContext fetches a project with its tasks and its dev plan,
// which may be nil.
func loadProjectContext(
	ctx context.Context,
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	plans repository.DevPlanRepo,
	id int64,
) (*domain.Project, []*domain.Task, *domain.DevPlan, error) {
	p, err := projects.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	ts, err := tasks.List(ctx, domain.TaskFilter{ProjectID: &id})
	if err != nil {
		return nil, nil, nil, err
	}
	plan, err := plans.GetByProject(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return p, ts, nil, nil
	}
	if err != nil {
		return nil, nil, nil, err
	}
	return p, ts, plan, nil
}
