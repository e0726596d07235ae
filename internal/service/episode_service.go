package service

import (
	"context"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

type episodeService struct {
	episodes repository.EpisodeRepo
	acts     activityLog
	now      Clock
}

func NewEpisodeService(episodes repository.EpisodeRepo, activities repository.ActivityRepo, log *zap.Logger) EpisodeService {
	return &episodeService{
		episodes: episodes,
		acts:     activityLog{repo: activities, log: orNop(log)},
		now:      utcNow,
	}
}

func (s *episodeService) Create(ctx context.Context, e *domain.Episode) error {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return err
	}
	now := s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	if err := s.episodes.Create(ctx, e); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityCreated, domain.EntityEpisode, e.ID, domain.ContextPodcast, now,
		"Episode %s created", e.Title))
	return nil
}

func (s *episodeService) GetByID(ctx context.Context, id int64) (*domain.Episode, error) {
	return s.episodes.GetByID(ctx, id)
}

func (s *episodeService) List(ctx context.Context, status domain.EpisodeStatus) ([]*domain.Episode, error) {
	if status != "" && !status.Valid() {
		return nil, domain.Invalid("status", "unknown episode status %q", status)
	}
	return s.episodes.List(ctx, status)
}

func (s *episodeService) Update(ctx context.Context, id int64, patch domain.EpisodePatch) (*domain.Episode, error) {
	e, err := s.episodes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := e.Status
	patch.Apply(e)
	if err := e.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	e.UpdatedAt = now
	if err := s.episodes.Update(ctx, e); err != nil {
		return nil, err
	}
	s.acts.record(ctx, newActivity(changeKind(before, e.Status), domain.EntityEpisode, e.ID, domain.ContextPodcast, now,
		"%s", changeDescription("Episode "+e.Title, before, e.Status)))
	return e, nil
}

func (s *episodeService) Delete(ctx context.Context, id int64) error {
	e, err := s.episodes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.episodes.Delete(ctx, id); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityDeleted, domain.EntityEpisode, id, domain.ContextPodcast, s.now(),
		"Episode %s deleted", e.Title))
	return nil
}
