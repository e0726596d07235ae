package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/llm"
	"github.com/curtisos/curtisos/internal/mail"
	"github.com/curtisos/curtisos/internal/mail/mailtest"
	"github.com/curtisos/curtisos/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triageByContent flags any message mentioning a quote as an urgent
// notrom request and everything else as informational.
func triageByContent() *stubLLM {
	return &stubLLM{reply: func(req llm.GenerateRequest) (string, error) {
		if req.Task != llm.TaskEmailTriage {
			return "{}", nil
		}
		if strings.Contains(req.UserPrompt, "quote") {
			return `{"context":"notrom","priority":"urgent","needsResponse":true,"summary":"Wants a quote"}`, nil
		}
		return `{"context":"general","priority":"low","needsResponse":false,"summary":"Newsletter"}`, nil
	}}
}

func inbox(now time.Time) *mailtest.Provider {
	return mailtest.NewProvider(
		&mail.Message{
			ID: "m-quote", ThreadID: "t-quote", MessageID: "<quote@example.com>",
			FromName: "Dana", FromAddr: "dana@acme.test", To: "me@example.com",
			Subject: "Website", Body: "Could you send a quote by Friday?", ReceivedAt: now.Add(-time.Hour),
		},
		&mail.Message{
			ID: "m-news", ThreadID: "t-news", FromAddr: "news@list.test",
			Subject: "Weekly digest", Body: "Top stories", ReceivedAt: now.Add(-2 * time.Hour),
		},
		&mail.Message{
			ID: "m-old", ThreadID: "t-old", FromAddr: "old@example.com",
			Subject: "Already here", Body: "hello", ReceivedAt: now.Add(-3 * time.Hour),
		},
	)
}

func TestEmailSync_ImportsTriagesAndCreatesFollowUps(t *testing.T) {
	now := time.Now().UTC()
	provider := inbox(now)
	provider.FailGet("m-broken", assert.AnError)
	model := triageByContent()
	database, svc := newTestServices(t, provider, model)
	ctx := context.Background()

	emails := repository.NewSQLiteEmailRepo(database)
	require.NoError(t, emails.Create(ctx, &domain.Email{
		ProviderMessageID: "m-old", Subject: "Already here", ReceivedAt: now,
		Context: domain.ContextGeneral, Priority: domain.PriorityMedium, CreatedAt: now, UpdatedAt: now,
	}))

	res, err := svc.EmailSync.Sync(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 4, res.Fetched)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.TasksCreated)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "m-broken")
	assert.Equal(t, 2, model.Calls(), "known and failed messages are not triaged")
	assert.Equal(t, []string{"in:inbox newer_than:7d"}, provider.Queries)

	needs := true
	pending, err := svc.Emails.List(ctx, domain.EmailFilter{NeedsResponse: &needs})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	quote := pending[0]
	assert.Equal(t, "m-quote", quote.ProviderMessageID)
	assert.Equal(t, domain.ContextNotrom, quote.Context)
	assert.Equal(t, domain.PriorityHigh, quote.Priority, "urgent folds into high")
	assert.Equal(t, "Wants a quote", quote.Summary)
	require.NotNil(t, quote.TaskID)

	task, err := svc.Tasks.GetByID(ctx, *quote.TaskID)
	require.NoError(t, err)
	assert.Equal(t, "Reply to Dana: Website", task.Title)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, domain.ContextNotrom, task.Context)
	require.NotNil(t, task.DueDate)
	assert.WithinDuration(t, now.AddDate(0, 0, 1), *task.DueDate, time.Minute)

	synced := listActivities(t, database, domain.EntityEmail, 0)
	assert.Contains(t, activityKinds(synced), domain.ActivitySynced)
}

func TestEmailSync_SecondRunSkipsEverything(t *testing.T) {
	provider := inbox(time.Now().UTC())
	_, svc := newTestServices(t, provider, triageByContent())
	ctx := context.Background()

	_, err := svc.EmailSync.Sync(ctx)
	require.NoError(t, err)

	res, err := svc.EmailSync.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 3, res.Skipped)
	assert.Equal(t, 0, res.TasksCreated)
	assert.Empty(t, res.Errors)
}

func TestEmailSync_ModelFailureCreatesNoTasks(t *testing.T) {
	provider := inbox(time.Now().UTC())
	_, svc := newTestServices(t, provider, &stubLLM{})

	res, err := svc.EmailSync.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 0, res.TasksCreated)

	tasks, err := svc.Tasks.List(context.Background(), domain.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestEmailSync_NotConfigured(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)

	_, err := svc.EmailSync.Sync(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestEmailSync_ListFailureIsFatal(t *testing.T) {
	provider := mailtest.NewProvider()
	provider.ListErr = assert.AnError
	_, svc := newTestServices(t, provider, nil)

	_, err := svc.EmailSync.Sync(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFollowUpTask_DueDates(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	high := followUpTask(&domain.Email{FromAddress: "a@b.test", Subject: "Hi", Priority: domain.PriorityHigh, Context: domain.ContextGeneral}, now)
	assert.Equal(t, now.AddDate(0, 0, 1), *high.DueDate)
	assert.Equal(t, "Reply to a@b.test: Hi", high.Title)

	low := followUpTask(&domain.Email{FromName: "Bo", Subject: " ", Priority: domain.PriorityLow, Context: domain.ContextGeneral}, now)
	assert.Equal(t, now.AddDate(0, 0, 3), *low.DueDate)
	assert.Equal(t, "Reply to Bo: (no subject)", low.Title)
}
