package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

// EntityChecker reports ErrNotFound when no record of its type has id.
type EntityChecker func(ctx context.Context, id int64) error

// EntityCheckers returns a checker per taggable entity type.
func EntityCheckers(
	leads repository.LeadRepo,
	clients repository.ClientRepo,
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	episodes repository.EpisodeRepo,
	emails repository.EmailRepo,
) map[domain.EntityType]EntityChecker {
	return map[domain.EntityType]EntityChecker{
		domain.EntityLead:    exists(leads.GetByID),
		domain.EntityClient:  exists(clients.GetByID),
		domain.EntityProject: exists(projects.GetByID),
		domain.EntityTask:    exists(tasks.GetByID),
		domain.EntityEpisode: exists(episodes.GetByID),
		domain.EntityEmail:   exists(emails.GetByID),
	}
}

func exists[T any](get func(context.Context, int64) (T, error)) EntityChecker {
	return func(ctx context.Context, id int64) error {
		_, err := get(ctx, id)
		return err
	}
}

type tagService struct {
	tags     repository.TagRepo
	checkers map[domain.EntityType]EntityChecker
	acts     activityLog
	now      Clock
}

// NewTagService creates a TagService. Assignments to entity types without
// a checker are accepted without an existence check.
func NewTagService(
	tags repository.TagRepo,
	checkers map[domain.EntityType]EntityChecker,
	activities repository.ActivityRepo,
	log *zap.Logger,
) TagService {
	return &tagService{
		tags:     tags,
		checkers: checkers,
		acts:     activityLog{repo: activities, log: orNop(log)},
		now:      utcNow,
	}
}

func (s *tagService) Create(ctx context.Context, t *domain.Tag) error {
	t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}
	now := s.now()
	t.CreatedAt = now
	if err := s.tags.Create(ctx, t); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityCreated, domain.EntityTag, t.ID, domain.ContextGeneral, now,
		"Tag %s created", t.Name))
	return nil
}

func (s *tagService) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

func (s *tagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.tags.List(ctx)
}

func (s *tagService) Update(ctx context.Context, id int64, patch domain.TagPatch) (*domain.Tag, error) {
	t, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(t)
	t.Normalize()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.tags.Update(ctx, t); err != nil {
		return nil, err
	}
	s.acts.record(ctx, newActivity(domain.ActivityUpdated, domain.EntityTag, t.ID, domain.ContextGeneral, s.now(),
		"Tag %s updated", t.Name))
	return t, nil
}

func (s *tagService) Delete(ctx context.Context, id int64) error {
	t, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tags.Delete(ctx, id); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityDeleted, domain.EntityTag, id, domain.ContextGeneral, s.now(),
		"Tag %s deleted", t.Name))
	return nil
}

// Assign links a tag to a record. Assigning twice is ErrConflict.
func (s *tagService) Assign(ctx context.Context, tagID int64, et domain.EntityType, entityID int64) (*domain.TagAssignment, error) {
	a := &domain.TagAssignment{TagID: tagID, EntityType: et, EntityID: entityID, CreatedAt: s.now()}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		return nil, err
	}
	if check, ok := s.checkers[et]; ok {
		if err := check(ctx, entityID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%s %d: %w", et, entityID, domain.ErrInvalidReference)
			}
			return nil, err
		}
	}
	if err := s.tags.Assign(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *tagService) Unassign(ctx context.Context, tagID int64, et domain.EntityType, entityID int64) error {
	if !et.Taggable() {
		return domain.Invalid("entityType", "must be one of lead, client, project, task, episode, email")
	}
	return s.tags.Unassign(ctx, tagID, et, entityID)
}

func (s *tagService) Entities(ctx context.Context, tagID int64) ([]*domain.TagAssignment, error) {
	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		return nil, err
	}
	return s.tags.ListAssignments(ctx, tagID)
}

func (s *tagService) ForEntity(ctx context.Context, et domain.EntityType, entityID int64) ([]*domain.Tag, error) {
	if !et.Taggable() {
		return nil, domain.Invalid("entityType", "must be one of lead, client, project, task, episode, email")
	}
	return s.tags.ListForEntity(ctx, et, entityID)
}
