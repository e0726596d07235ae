package service

import (
	"context"
	"fmt"
	"time"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

// Clock returns the current time. Services store UTC.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// activityLog appends audit rows for writes made outside a transaction.
// A failed append never fails the write that caused it.
type activityLog struct {
	repo repository.ActivityRepo
	log  *zap.Logger
}

func (a activityLog) record(ctx context.Context, act *domain.Activity) {
	if a.repo == nil {
		return
	}
	if err := a.repo.Create(ctx, act); err != nil {
		a.log.Warn("appending activity failed",
			zap.String("kind", string(act.Kind)),
			zap.String("entity_type", string(act.EntityType)),
			zap.Int64("entity_id", act.EntityID),
			zap.Error(err))
	}
}

func newActivity(kind domain.ActivityKind, et domain.EntityType, id int64, c domain.Context, now time.Time, format string, args ...any) *domain.Activity {
	if c == "" {
		c = domain.ContextGeneral
	}
	return &domain.Activity{
		Kind:        kind,
		EntityType:  et,
		EntityID:    id,
		Description: fmt.Sprintf(format, args...),
		Context:     c,
		CreatedAt:   now,
	}
}

// changeKind picks status_changed over updated when a status field moved.
func changeKind[S comparable](before, after S) domain.ActivityKind {
	if before != after {
		return domain.ActivityStatusChanged
	}
	return domain.ActivityUpdated
}

func changeDescription[S ~string](label string, before, after S) string {
	if before != after {
		return fmt.Sprintf("%s moved from %s to %s", label, before, after)
	}
	return label + " updated"
}

func checkContextFilter(c domain.Context) error {
	if c != "" && !c.Valid() {
		return domain.Invalid("context", "must be one of notrom, podcast, day_job, general")
	}
	return nil
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
