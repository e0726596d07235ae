package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/intelligence"
	mailbox "github.com/curtisos/curtisos/internal/mail"
	"github.com/curtisos/curtisos/internal/repository"
	"go.uber.org/zap"
)

// ReplyRequest is the body of a reply. An empty Subject becomes
// "Re: <original subject>".
type ReplyRequest struct {
	Body    string `json:"body"`
	Subject string `json:"subject"`
}

type emailService struct {
	emails   repository.EmailRepo
	provider mailbox.Provider
	uow      db.UnitOfWork
	acts     activityLog
	observer UseCaseObserver
	now      Clock
}

// NewEmailService creates an EmailService. provider may be nil, in which
// case Reply reports ErrNotConfigured.
func NewEmailService(
	emails repository.EmailRepo,
	activities repository.ActivityRepo,
	provider mailbox.Provider,
	uow db.UnitOfWork,
	log *zap.Logger,
	observers ...UseCaseObserver,
) EmailService {
	return &emailService{
		emails:   emails,
		provider: provider,
		uow:      uow,
		acts:     activityLog{repo: activities, log: orNop(log)},
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
	}
}

func (s *emailService) GetByID(ctx context.Context, id int64) (*domain.Email, error) {
	return s.emails.GetByID(ctx, id)
}

func (s *emailService) List(ctx context.Context, f domain.EmailFilter) ([]*domain.Email, error) {
	if err := checkContextFilter(f.Context); err != nil {
		return nil, err
	}
	return s.emails.List(ctx, f)
}

func (s *emailService) Delete(ctx context.Context, id int64) error {
	e, err := s.emails.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.emails.Delete(ctx, id); err != nil {
		return err
	}
	s.acts.record(ctx, newActivity(domain.ActivityDeleted, domain.EntityEmail, id, e.Context, s.now(),
		"Email %q deleted", e.Subject))
	return nil
}

func (s *emailService) Stats(ctx context.Context) (*domain.EmailStats, error) {
	return s.emails.Stats(ctx)
}

// MarkResponded stamps or clears RespondedAt. Stamping also completes the
// linked follow-up task.
func (s *emailService) MarkResponded(ctx context.Context, id int64, responded bool) (*domain.Email, error) {
	if responded {
		return s.markResponded(ctx, id, "Email %q marked as responded")
	}

	e, err := s.emails.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	e.RespondedAt = nil
	e.UpdatedAt = now
	if err := s.emails.Update(ctx, e); err != nil {
		return nil, err
	}
	s.acts.record(ctx, newActivity(domain.ActivityUpdated, domain.EntityEmail, e.ID, e.Context, now,
		"Email %q marked as awaiting response", e.Subject))
	return e, nil
}

func (s *emailService) markResponded(ctx context.Context, id int64, description string) (*domain.Email, error) {
	now := s.now()
	var email *domain.Email
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		emails := repository.NewSQLiteEmailRepo(tx)
		e, err := emails.GetByID(ctx, id)
		if err != nil {
			return err
		}
		e.RespondedAt = &now
		e.UpdatedAt = now
		if err := emails.Update(ctx, e); err != nil {
			return err
		}
		if e.TaskID != nil {
			if err := completeTask(ctx, repository.NewSQLiteTaskRepo(tx), *e.TaskID, now); err != nil {
				return err
			}
		}
		act := newActivity(domain.ActivityResponded, domain.EntityEmail, e.ID, e.Context, now, description, e.Subject)
		if err := repository.NewSQLiteActivityRepo(tx).Create(ctx, act); err != nil {
			return err
		}
		email = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return email, nil
}

// completeTask closes a follow-up task. A task deleted in the meantime is
// not an error.
func completeTask(ctx context.Context, tasks repository.TaskRepo, id int64, now time.Time) error {
	t, err := tasks.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if t.Done() {
		return nil
	}
	t.Status = domain.TaskCompleted
	t.SyncCompletedAt(now)
	t.UpdatedAt = now
	return tasks.Update(ctx, t)
}

// Reply sends body to the original sender in the original thread and then
// marks the email responded. The send is not undone if the local update
// fails afterwards.
func (s *emailService) Reply(ctx context.Context, id int64, req ReplyRequest) (email *domain.Email, err error) {
	fields := map[string]any{"email_id": id}
	defer observe(ctx, s.observer, "reply-email", fields, &err)()

	if s.provider == nil {
		return nil, fmt.Errorf("mail: %w", domain.ErrNotConfigured)
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, domain.Invalid("body", "is required")
	}

	e, err := s.emails.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.FromAddress == "" {
		return nil, domain.Invalid("fromAddress", "email %d has no sender address to reply to", id)
	}

	original, err := s.provider.GetMessage(ctx, e.ProviderMessageID)
	if err != nil {
		return nil, fmt.Errorf("loading original message: %w", err)
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = intelligence.ReplySubject(e.Subject)
	}
	to := (&mail.Address{Name: e.FromName, Address: e.FromAddress}).String()

	sentID, err := s.provider.Send(ctx, mailbox.Outgoing{
		To:        to,
		Subject:   subject,
		Body:      req.Body,
		ThreadID:  e.ThreadID,
		InReplyTo: original.MessageID,
	})
	if err != nil {
		return nil, fmt.Errorf("sending reply: %w", err)
	}
	fields["sent_id"] = sentID

	return s.markResponded(ctx, id, "Replied to %q")
}
