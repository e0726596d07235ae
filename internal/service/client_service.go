package service

import (
	"context"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

type clientService struct {
	clients  repository.ClientRepo
	projects repository.ProjectRepo
	acts     activityLog
	now      Clock
}

func NewClientService(
	clients repository.ClientRepo,
	projects repository.ProjectRepo,
	activities repository.ActivityRepo,
	log *zap.Logger,
) ClientService {
	return &clientService{
		clients:  clients,
		projects: projects,
		acts:     activityLog{repo: activities, log: orNop(log)},
		now:      utcNow,
	}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	now := s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	if err := s.clients.Create(ctx, c); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityCreated, domain.EntityClient, c.ID, c.Context, now,
		"Client %s created", c.Name))
	return nil
}

func (s *clientService) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, f domain.ClientFilter) ([]*domain.Client, error) {
	if err := checkContextFilter(f.Context); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Invalid("status", "unknown client status %q", f.Status)
	}
	return s.clients.List(ctx, f)
}

func (s *clientService) Update(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := c.Status
	patch.Apply(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	c.UpdatedAt = now
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	s.acts.record(ctx, newActivity(changeKind(before, c.Status), domain.EntityClient, c.ID, c.Context, now,
		"%s", changeDescription("Client "+c.Name, before, c.Status)))
	return c, nil
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityDeleted, domain.EntityClient, id, c.Context, s.now(),
		"Client %s deleted", c.Name))
	return nil
}

// Projects lists a client's projects. A missing client is ErrNotFound
// rather than an empty list.
func (s *clientService) Projects(ctx context.Context, id int64) ([]*domain.Project, error) {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.projects.List(ctx, domain.ProjectFilter{ClientID: &id})
}
