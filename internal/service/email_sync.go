package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/intelligence"
	mailbox "github.com/curtisos/curtisos/internal/mail"
	"github.com/curtisos/curtisos/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// fetchConcurrency bounds parallel message fetches and triage calls.
const fetchConcurrency = 4

// SyncResult summarises one ingestion run. Errors holds per-message
// failures; the run itself still succeeded.
type SyncResult struct {
	RunID        string   `json:"runId"`
	Fetched      int      `json:"fetched"`
	Imported     int      `json:"imported"`
	Skipped      int      `json:"skipped"`
	TasksCreated int      `json:"tasksCreated"`
	Errors       []string `json:"errors"`
}

type emailSyncService struct {
	emails   repository.EmailRepo
	provider mailbox.Provider
	advisor  intelligence.Advisor
	cfg      mailbox.Config
	uow      db.UnitOfWork
	acts     activityLog
	log      *zap.Logger
	observer UseCaseObserver
	now      Clock
}

// NewEmailSyncService creates an EmailSyncService. A nil provider makes
// Sync report ErrNotConfigured.
func NewEmailSyncService(
	emails repository.EmailRepo,
	activities repository.ActivityRepo,
	provider mailbox.Provider,
	advisor intelligence.Advisor,
	cfg mailbox.Config,
	uow db.UnitOfWork,
	log *zap.Logger,
	observers ...UseCaseObserver,
) EmailSyncService {
	log = orNop(log)
	return &emailSyncService{
		emails:   emails,
		provider: provider,
		advisor:  advisor,
		cfg:      cfg,
		uow:      uow,
		acts:     activityLog{repo: activities, log: log},
		log:      log.Named("email_sync"),
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
	}
}

type fetched struct {
	msg    *mailbox.Message
	triage intelligence.Result[intelligence.EmailTriage]
	err    error
}

func (s *emailSyncService) Sync(ctx context.Context) (result *SyncResult, err error) {
	runID := uuid.NewString()
	fields := map[string]any{"run_id": runID}
	defer observe(ctx, s.observer, "sync-email", fields, &err)()

	if s.provider == nil {
		return nil, fmt.Errorf("mail: %w", domain.ErrNotConfigured)
	}

	ids, err := s.provider.ListMessageIDs(ctx, s.cfg.Query, s.cfg.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	known, err := s.emails.KnownProviderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result = &SyncResult{RunID: runID, Fetched: len(ids), Errors: []string{}}
	fresh := make([]string, 0, len(ids))
	for _, id := range ids {
		if known[id] {
			result.Skipped++
			continue
		}
		fresh = append(fresh, id)
	}

	// Fetch and triage in parallel; failures stay with their message.
	results := make([]fetched, len(fresh))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, id := range fresh {
		g.Go(func() error {
			msg, err := s.provider.GetMessage(gctx, id)
			if err != nil {
				results[i].err = fmt.Errorf("fetching %s: %w", id, err)
				return nil
			}
			results[i].msg = msg
			results[i].triage = s.advisor.EmailTriage(gctx, emailFromMessage(msg))
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Writes are sequential; SQLite has a single writer.
	for _, r := range results {
		if r.err != nil {
			result.Errors = append(result.Errors, r.err.Error())
			continue
		}
		created, err := s.store(ctx, r.msg, r.triage.Data)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("storing %s: %v", r.msg.ID, err))
			continue
		}
		result.Imported++
		if created {
			result.TasksCreated++
		}
	}

	for _, e := range result.Errors {
		s.log.Warn("message not imported", zap.String("run_id", runID), zap.String("error", e))
	}
	fields["fetched"] = result.Fetched
	fields["imported"] = result.Imported
	fields["skipped"] = result.Skipped
	fields["tasks_created"] = result.TasksCreated
	fields["failed"] = len(result.Errors)

	s.acts.record(ctx, newActivity(domain.ActivitySynced, domain.EntityEmail, 0, domain.ContextGeneral, s.now(),
		"Email sync %s: %d imported, %d skipped, %d tasks created, %d failed",
		runID, result.Imported, result.Skipped, result.TasksCreated, len(result.Errors)))
	return result, nil
}

// store saves one message and, when it needs a reply, its follow-up task.
// It reports whether a task was created.
func (s *emailSyncService) store(ctx context.Context, msg *mailbox.Message, triage intelligence.EmailTriage) (bool, error) {
	now := s.now()
	e := emailFromMessage(msg)
	e.Context = triage.Context
	e.Priority = triage.Priority
	e.NeedsResponse = triage.NeedsResponse
	e.Summary = triage.Summary
	e.CreatedAt, e.UpdatedAt = now, now
	e.Normalize()
	if err := e.Validate(); err != nil {
		return false, err
	}

	created := false
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if e.NeedsResponse {
			task := followUpTask(e, now)
			if err := repository.NewSQLiteTaskRepo(tx).Create(ctx, task); err != nil {
				return fmt.Errorf("creating follow-up task: %w", err)
			}
			e.TaskID = &task.ID
			created = true
		}
		return repository.NewSQLiteEmailRepo(tx).Create(ctx, e)
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func emailFromMessage(m *mailbox.Message) *domain.Email {
	received := m.ReceivedAt.UTC()
	if received.IsZero() {
		received = time.Now().UTC()
	}
	return &domain.Email{
		ProviderMessageID: m.ID,
		ThreadID:          m.ThreadID,
		FromAddress:       m.FromAddr,
		FromName:          m.FromName,
		ToAddress:         m.To,
		Subject:           m.Subject,
		Snippet:           m.Snippet,
		Body:              m.Body,
		ReceivedAt:        received,
		Context:           domain.ContextGeneral,
		Priority:          domain.PriorityMedium,
	}
}

// followUpTask is due tomorrow for high priority mail, otherwise in three days.
func followUpTask(e *domain.Email, now time.Time) *domain.Task {
	days := 3
	if e.Priority == domain.PriorityHigh || e.Priority == domain.PriorityUrgent {
		days = 1
	}
	due := now.AddDate(0, 0, days)
	subject := strings.TrimSpace(e.Subject)
	if subject == "" {
		subject = "(no subject)"
	}
	return &domain.Task{
		Title:       fmt.Sprintf("Reply to %s: %s", e.Sender(), subject),
		Description: e.Summary,
		Status:      domain.TaskTodo,
		Priority:    e.Priority,
		Context:     e.Context,
		DueDate:     &due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
