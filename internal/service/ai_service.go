package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/curtisos/curtisos/internal/analytics"
	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/intelligence"
	"github.com/curtisos/curtisos/internal/repository"
)

const (
	dealHealthActivityLimit = 20
	contentIdeaEpisodeLimit = 10
)

// ApplySuggestionRequest persists one suggested task on a project.
type ApplySuggestionRequest struct {
	ProjectID   int64           `json:"projectId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
}

// AIRepos are the read sources the advisory calls draw on.
type AIRepos struct {
	Leads      repository.LeadRepo
	Clients    repository.ClientRepo
	Projects   repository.ProjectRepo
	Tasks      repository.TaskRepo
	Plans      repository.DevPlanRepo
	Episodes   repository.EpisodeRepo
	Emails     repository.EmailRepo
	Revenue    repository.RevenueRepo
	Activities repository.ActivityRepo
	Dashboard  repository.DashboardRepo
}

type aiService struct {
	repos   AIRepos
	advisor intelligence.Advisor
	tasks   TaskService
	now     Clock
}

// NewAIService creates an AIService. Applied suggestions are created
// through tasks so they get the usual validation and activity row.
func NewAIService(repos AIRepos, advisor intelligence.Advisor, tasks TaskService) AIService {
	return &aiService{repos: repos, advisor: advisor, tasks: tasks, now: utcNow}
}

func (s *aiService) TaskSuggestions(ctx context.Context, projectID int64) (intelligence.Result[intelligence.TaskSuggestions], error) {
	p, err := s.repos.Projects.GetByID(ctx, projectID)
	if err != nil {
		return intelligence.Result[intelligence.TaskSuggestions]{}, err
	}
	tasks, err := s.repos.Tasks.List(ctx, domain.TaskFilter{ProjectID: &projectID})
	if err != nil {
		return intelligence.Result[intelligence.TaskSuggestions]{}, err
	}
	return s.advisor.TaskSuggestions(ctx, p, tasks), nil
}

func (s *aiService) ApplyTaskSuggestion(ctx context.Context, req ApplySuggestionRequest) (*domain.Task, error) {
	if req.ProjectID <= 0 {
		return nil, domain.Invalid("projectId", "is required")
	}
	p, err := s.repos.Projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if req.Priority != "" && !req.Priority.Valid() {
		req.Priority = domain.PriorityMedium
	}
	t := &domain.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Priority:    req.Priority,
		Context:     p.Context,
		ProjectID:   &p.ID,
		ClientID:    p.ClientID,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *aiService) ClientInsights(ctx context.Context, clientID int64) (intelligence.Result[intelligence.ClientInsights], error) {
	var zero intelligence.Result[intelligence.ClientInsights]
	c, err := s.repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return zero, err
	}
	projects, err := s.repos.Projects.List(ctx, domain.ProjectFilter{ClientID: &clientID})
	if err != nil {
		return zero, err
	}
	all, err := s.repos.Revenue.List(ctx, "")
	if err != nil {
		return zero, err
	}
	revenue := make([]*domain.Revenue, 0, len(all))
	for _, r := range all {
		if r.ClientID != nil && *r.ClientID == clientID {
			revenue = append(revenue, r)
		}
	}
	return s.advisor.ClientInsights(ctx, c, projects, revenue), nil
}

func (s *aiService) Prospects(ctx context.Context, criteria string, c domain.Context) (intelligence.Result[intelligence.Prospects], error) {
	criteria = strings.TrimSpace(criteria)
	if criteria == "" {
		return intelligence.Result[intelligence.Prospects]{}, domain.Invalid("criteria", "is required")
	}
	if c == "" {
		c = domain.ContextGeneral
	}
	if err := checkContextFilter(c); err != nil {
		return intelligence.Result[intelligence.Prospects]{}, err
	}
	return s.advisor.Prospects(ctx, criteria, c), nil
}

func (s *aiService) TaskAdvice(ctx context.Context, taskID int64) (intelligence.Result[intelligence.TaskAdvice], error) {
	t, err := s.repos.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return intelligence.Result[intelligence.TaskAdvice]{}, err
	}
	var p *domain.Project
	if t.ProjectID != nil {
		p, err = s.repos.Projects.GetByID(ctx, *t.ProjectID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return intelligence.Result[intelligence.TaskAdvice]{}, err
		}
	}
	return s.advisor.TaskAdvice(ctx, t, p), nil
}

func (s *aiService) DashboardInsights(ctx context.Context) (intelligence.Result[intelligence.DashboardInsights], error) {
	var zero intelligence.Result[intelligence.DashboardInsights]
	now := s.now()
	counts, err := s.repos.Dashboard.Counts(ctx, "", now)
	if err != nil {
		return zero, err
	}
	metrics, err := s.repos.Revenue.Metrics(ctx, "", now)
	if err != nil {
		return zero, err
	}
	return s.advisor.DashboardInsights(ctx, *counts, metrics), nil
}

func (s *aiService) EmailTriage(ctx context.Context, emailID int64) (intelligence.Result[intelligence.EmailTriage], error) {
	e, err := s.repos.Emails.GetByID(ctx, emailID)
	if err != nil {
		return intelligence.Result[intelligence.EmailTriage]{}, err
	}
	return s.advisor.EmailTriage(ctx, e), nil
}

func (s *aiService) DraftReply(ctx context.Context, emailID int64, tone string) (intelligence.Result[intelligence.DraftReply], error) {
	e, err := s.repos.Emails.GetByID(ctx, emailID)
	if err != nil {
		return intelligence.Result[intelligence.DraftReply]{}, err
	}
	return s.advisor.DraftReply(ctx, e, strings.TrimSpace(tone)), nil
}

func (s *aiService) DealHealth(ctx context.Context, leadID int64) (intelligence.Result[intelligence.DealHealth], error) {
	var zero intelligence.Result[intelligence.DealHealth]
	l, err := s.repos.Leads.GetByID(ctx, leadID)
	if err != nil {
		return zero, err
	}
	acts, err := s.repos.Activities.List(ctx, domain.ActivityFilter{
		EntityType: domain.EntityLead,
		EntityID:   leadID,
		Limit:      dealHealthActivityLimit,
	})
	if err != nil {
		return zero, err
	}
	return s.advisor.DealHealth(ctx, l, acts), nil
}

func (s *aiService) Nudge(ctx context.Context, leadID int64) (intelligence.Result[intelligence.Nudge], error) {
	l, err := s.repos.Leads.GetByID(ctx, leadID)
	if err != nil {
		return intelligence.Result[intelligence.Nudge]{}, err
	}
	return s.advisor.Nudge(ctx, l), nil
}

func (s *aiService) ContentIdeas(ctx context.Context, topic string) (intelligence.Result[intelligence.ContentIdeas], error) {
	recent, err := s.repos.Episodes.ListRecent(ctx, contentIdeaEpisodeLimit)
	if err != nil {
		return intelligence.Result[intelligence.ContentIdeas]{}, err
	}
	return s.advisor.ContentIdeas(ctx, strings.TrimSpace(topic), recent), nil
}

// BlockerAnalysis always includes the rule-based blockers, in the prompt
// and in the fallback.
func (s *aiService) BlockerAnalysis(ctx context.Context, projectID int64) (intelligence.Result[intelligence.BlockerAnalysis], error) {
	p, tasks, plan, err := loadProjectContext(ctx, s.repos.Projects, s.repos.Tasks, s.repos.Plans, projectID)
	if err != nil {
		return intelligence.Result[intelligence.BlockerAnalysis]{}, fmt.Errorf("loading project %d: %w", projectID, err)
	}
	blockers := analytics.InferBlockers(p, tasks, plan, s.now())
	return s.advisor.BlockerAnalysis(ctx, p, tasks, plan, blockers), nil
}
