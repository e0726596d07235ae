package service

import (
	"context"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

type taskService struct {
	tasks repository.TaskRepo
	acts  activityLog
	now   Clock
}

func NewTaskService(tasks repository.TaskRepo, activities repository.ActivityRepo, log *zap.Logger) TaskService {
	return &taskService{
		tasks: tasks,
		acts:  activityLog{repo: activities, log: orNop(log)},
		now:   utcNow,
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}
	now := s.now()
	t.CompletedAt = nil
	t.SyncCompletedAt(now)
	t.CreatedAt, t.UpdatedAt = now, now
	if err := s.tasks.Create(ctx, t); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityCreated, domain.EntityTask, t.ID, t.Context, now,
		"Task %s created", t.Title))
	return nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context, f domain.TaskFilter) ([]*domain.Task, error) {
	if err := checkContextFilter(f.Context); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Invalid("status", "unknown task status %q", f.Status)
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return nil, domain.Invalid("priority", "unknown priority %q", f.Priority)
	}
	return s.tasks.List(ctx, f)
}

// Update applies patch and keeps CompletedAt in step with Status.
func (s *taskService) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := t.Status
	patch.Apply(t)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	t.SyncCompletedAt(now)
	t.UpdatedAt = now
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	s.acts.record(ctx, newActivity(changeKind(before, t.Status), domain.EntityTask, t.ID, t.Context, now,
		"%s", changeDescription("Task "+t.Title, before, t.Status)))
	return t, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityDeleted, domain.EntityTask, id, t.Context, s.now(),
		"Task %s deleted", t.Title))
	return nil
}
