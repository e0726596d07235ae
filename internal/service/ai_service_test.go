package service

import (
	"context"
	"testing"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/intelligence"
	"github.com/curtisos/curtisos/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIService_BlockerAnalysisFallbackKeepsRuleBlockers(t *testing.T) {
	_, svc := newTestServices(t, nil, &stubLLM{reply: func(llm.GenerateRequest) (string, error) {
		return "I cannot answer in JSON today.", nil
	}})
	ctx := context.Background()

	p := &domain.Project{Name: "Site"}
	require.NoError(t, svc.Projects.Create(ctx, p))

	res, err := svc.AI.BlockerAnalysis(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.NotEmpty(t, res.Error)
	assert.Contains(t, res.Data.Blockers, "No deadline set")
}

func TestAIService_BlockerAnalysisMergesModelBlockers(t *testing.T) {
	_, svc := newTestServices(t, nil, &stubLLM{reply: func(llm.GenerateRequest) (string, error) {
		return `{"blockers":["No deadline set","Waiting on client copy"],"analysis":"Copy is late.","recommendations":["Chase copy"]}`, nil
	}})
	ctx := context.Background()

	p := &domain.Project{Name: "Site"}
	require.NoError(t, svc.Projects.Create(ctx, p))

	res, err := svc.AI.BlockerAnalysis(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, []string{"No deadline set", "Waiting on client copy"}, res.Data.Blockers)
	assert.Equal(t, []string{"Chase copy"}, res.Data.Recommendations)
}

func TestAIService_MissingRecordsAreErrors(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	ctx := context.Background()

	_, err := svc.AI.TaskSuggestions(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.AI.ClientInsights(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.AI.TaskAdvice(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.AI.EmailTriage(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.AI.DraftReply(ctx, 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.AI.DealHealth(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.AI.Nudge(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.AI.BlockerAnalysis(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAIService_ModelFailureStillSucceeds(t *testing.T) {
	_, svc := newTestServices(t, nil, &stubLLM{})
	ctx := context.Background()

	lead := &domain.Lead{Name: "Dana"}
	require.NoError(t, svc.Leads.Create(ctx, lead))

	health, err := svc.AI.DealHealth(ctx, lead.ID)
	require.NoError(t, err)
	assert.True(t, health.Fallback)
	assert.Equal(t, 50, health.Data.Score)
	assert.Equal(t, intelligence.HealthUnknown, health.Data.Health)

	insights, err := svc.AI.DashboardInsights(ctx)
	require.NoError(t, err)
	assert.True(t, insights.Fallback)

	ideas, err := svc.AI.ContentIdeas(ctx, "")
	require.NoError(t, err)
	assert.True(t, ideas.Fallback)
	assert.NotNil(t, ideas.Data.Ideas)
}

func TestAIService_ProspectsNeedsCriteria(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)

	_, err := svc.AI.Prospects(context.Background(), "  ", "")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.AI.Prospects(context.Background(), "bakeries", "mars")
	assert.ErrorAs(t, err, &verr)
}

func TestAIService_ApplyTaskSuggestion(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	ctx := context.Background()

	p := &domain.Project{Name: "Podcast site", Context: domain.ContextPodcast}
	require.NoError(t, svc.Projects.Create(ctx, p))

	task, err := svc.AI.ApplyTaskSuggestion(ctx, ApplySuggestionRequest{
		ProjectID: p.ID, Title: "  Record trailer ", Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, "Record trailer", task.Title)
	assert.Equal(t, domain.ContextPodcast, task.Context)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	require.NotNil(t, task.ProjectID)
	assert.Equal(t, p.ID, *task.ProjectID)

	_, err = svc.AI.ApplyTaskSuggestion(ctx, ApplySuggestionRequest{ProjectID: p.ID, Title: " "})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.AI.ApplyTaskSuggestion(ctx, ApplySuggestionRequest{ProjectID: 404, Title: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
