package intelligence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/llm"
	"go.uber.org/zap"
)

// Advisor produces best-effort suggestions from a language model. No method
// returns an error: model failures become a Fallback result instead.
type Advisor interface {
	TaskSuggestions(ctx context.Context, project *domain.Project, tasks []*domain.Task) Result[TaskSuggestions]
	ClientInsights(ctx context.Context, client *domain.Client, projects []*domain.Project, revenue []*domain.Revenue) Result[ClientInsights]
	Prospects(ctx context.Context, criteria string, c domain.Context) Result[Prospects]
	TaskAdvice(ctx context.Context, task *domain.Task, project *domain.Project) Result[TaskAdvice]
	DashboardInsights(ctx context.Context, counts domain.DashboardCounts, revenue *domain.RevenueMetrics) Result[DashboardInsights]
	EmailTriage(ctx context.Context, email *domain.Email) Result[EmailTriage]
	DraftReply(ctx context.Context, email *domain.Email, tone string) Result[DraftReply]
	DealHealth(ctx context.Context, lead *domain.Lead, activities []*domain.Activity) Result[DealHealth]
	Nudge(ctx context.Context, lead *domain.Lead) Result[Nudge]
	ContentIdeas(ctx context.Context, topic string, recent []*domain.Episode) Result[ContentIdeas]
	BlockerAnalysis(ctx context.Context, project *domain.Project, tasks []*domain.Task, plan *domain.DevPlan, blockers []string) Result[BlockerAnalysis]
}

type advisor struct {
	client llm.Client
	log    *zap.Logger
	now    func() time.Time
}

// NewAdvisor creates an Advisor backed by client. A nil logger discards
// fallback events.
func NewAdvisor(client llm.Client, log *zap.Logger) Advisor {
	if log == nil {
		log = zap.NewNop()
	}
	return &advisor{client: client, log: log.Named("advisor"), now: time.Now}
}

// call describes one advisory round trip.
type call[T any] struct {
	task      llm.TaskType
	system    string
	payload   any
	validate  llm.SchemaValidator[T]
	normalize func(*T)
	fallback  T
}

func ask[T any](ctx context.Context, a *advisor, c call[T]) Result[T] {
	prompt, err := encodePrompt(c.payload)
	if err != nil {
		return fallback(a, c, fmt.Errorf("encoding prompt: %w", err))
	}

	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:         c.task,
		SystemPrompt: c.system,
		UserPrompt:   prompt,
	})
	if err != nil {
		return fallback(a, c, err)
	}

	out, err := llm.ExtractJSON(resp.Text, c.validate)
	if err != nil {
		return fallback(a, c, err)
	}
	if c.normalize != nil {
		c.normalize(&out)
	}
	return Ok(out)
}

// encodePrompt renders payload as indented JSON with <, > and & left as is.
func encodePrompt(payload any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func fallback[T any](a *advisor, c call[T], reason error) Result[T] {
	if !errors.Is(reason, llm.ErrDisabled) {
		a.log.Warn("advisory fallback", zap.String("task", string(c.task)), zap.Error(reason))
	}
	return Fallback(c.fallback, reason)
}

func (a *advisor) today() string {
	return a.now().UTC().Format(time.DateOnly)
}

func (a *advisor) TaskSuggestions(ctx context.Context, project *domain.Project, tasks []*domain.Task) Result[TaskSuggestions] {
	return ask(ctx, a, call[TaskSuggestions]{
		task:   llm.TaskTaskSuggestions,
		system: taskSuggestionsSystemPrompt,
		payload: struct {
			Today   string          `json:"today"`
			Project *domain.Project `json:"project"`
			Tasks   []*domain.Task  `json:"existingTasks"`
		}{a.today(), project, tasks},
		validate:  validateTaskSuggestions,
		normalize: normalizeTaskSuggestions,
		fallback:  emptyTaskSuggestions(),
	})
}

func (a *advisor) ClientInsights(ctx context.Context, client *domain.Client, projects []*domain.Project, revenue []*domain.Revenue) Result[ClientInsights] {
	var total float64
	for _, r := range revenue {
		total += r.Amount
	}
	return ask(ctx, a, call[ClientInsights]{
		task:   llm.TaskClientInsights,
		system: clientInsightsSystemPrompt,
		payload: struct {
			Today        string            `json:"today"`
			Client       *domain.Client    `json:"client"`
			Projects     []*domain.Project `json:"projects"`
			Revenue      []*domain.Revenue `json:"revenue"`
			TotalRevenue float64           `json:"totalRevenue"`
		}{a.today(), client, projects, revenue, total},
		normalize: normalizeClientInsights,
		fallback:  emptyClientInsights(),
	})
}

func (a *advisor) Prospects(ctx context.Context, criteria string, c domain.Context) Result[Prospects] {
	if strings.TrimSpace(criteria) == "" {
		return Fallback(emptyProspects(), errors.New("criteria is required"))
	}
	return ask(ctx, a, call[Prospects]{
		task:   llm.TaskProspects,
		system: prospectsSystemPrompt,
		payload: struct {
			Criteria string         `json:"criteria"`
			Context  domain.Context `json:"context,omitempty"`
		}{criteria, c},
		validate:  validateProspects,
		normalize: normalizeProspects,
		fallback:  emptyProspects(),
	})
}

func (a *advisor) TaskAdvice(ctx context.Context, task *domain.Task, project *domain.Project) Result[TaskAdvice] {
	return ask(ctx, a, call[TaskAdvice]{
		task:   llm.TaskTaskAdvice,
		system: taskAdviceSystemPrompt,
		payload: struct {
			Today   string          `json:"today"`
			Task    *domain.Task    `json:"task"`
			Project *domain.Project `json:"project,omitempty"`
		}{a.today(), task, project},
		validate:  validateTaskAdvice,
		normalize: normalizeTaskAdvice,
		fallback:  emptyTaskAdvice(),
	})
}

func (a *advisor) DashboardInsights(ctx context.Context, counts domain.DashboardCounts, revenue *domain.RevenueMetrics) Result[DashboardInsights] {
	return ask(ctx, a, call[DashboardInsights]{
		task:   llm.TaskDashboardInsights,
		system: dashboardInsightsSystemPrompt,
		payload: struct {
			Today   string                 `json:"today"`
			Counts  domain.DashboardCounts `json:"counts"`
			Revenue *domain.RevenueMetrics `json:"revenue,omitempty"`
		}{a.today(), counts, revenue},
		validate:  validateDashboardInsights,
		normalize: normalizeDashboardInsights,
		fallback:  DeterministicDashboardInsights(counts),
	})
}

func (a *advisor) EmailTriage(ctx context.Context, email *domain.Email) Result[EmailTriage] {
	return ask(ctx, a, call[EmailTriage]{
		task:   llm.TaskEmailTriage,
		system: emailTriageSystemPrompt,
		payload: struct {
			From    string `json:"from"`
			To      string `json:"to"`
			Subject string `json:"subject"`
			Body    string `json:"body"`
		}{formatSender(email), email.ToAddress, email.Subject, truncate(domain.CoalesceStr(email.Body, email.Snippet), maxPromptBody)},
		validate:  validateEmailTriage,
		normalize: normalizeEmailTriage,
		fallback:  DefaultEmailTriage(email),
	})
}

func (a *advisor) DraftReply(ctx context.Context, email *domain.Email, tone string) Result[DraftReply] {
	if tone == "" {
		tone = "friendly and professional"
	}
	return ask(ctx, a, call[DraftReply]{
		task:   llm.TaskDraftReply,
		system: draftReplySystemPrompt,
		payload: struct {
			Tone    string `json:"tone"`
			From    string `json:"from"`
			Subject string `json:"subject"`
			Body    string `json:"body"`
		}{tone, formatSender(email), email.Subject, truncate(domain.CoalesceStr(email.Body, email.Snippet), maxPromptBody)},
		validate: validateDraftReply,
		normalize: func(d *DraftReply) {
			if strings.TrimSpace(d.Subject) == "" {
				d.Subject = ReplySubject(email.Subject)
			}
		},
		fallback: emptyDraftReply(email),
	})
}

func (a *advisor) DealHealth(ctx context.Context, lead *domain.Lead, activities []*domain.Activity) Result[DealHealth] {
	return ask(ctx, a, call[DealHealth]{
		task:   llm.TaskDealHealth,
		system: dealHealthSystemPrompt,
		payload: struct {
			Today      string             `json:"today"`
			Lead       *domain.Lead       `json:"lead"`
			Activities []*domain.Activity `json:"recentActivity"`
		}{a.today(), lead, activities},
		validate:  validateDealHealth,
		normalize: normalizeDealHealth,
		fallback:  unknownDealHealth(),
	})
}

func (a *advisor) Nudge(ctx context.Context, lead *domain.Lead) Result[Nudge] {
	return ask(ctx, a, call[Nudge]{
		task:   llm.TaskNudge,
		system: nudgeSystemPrompt,
		payload: struct {
			Today string       `json:"today"`
			Lead  *domain.Lead `json:"lead"`
		}{a.today(), lead},
		validate:  validateNudge,
		normalize: normalizeNudge,
		fallback:  emptyNudge(),
	})
}

func (a *advisor) ContentIdeas(ctx context.Context, topic string, recent []*domain.Episode) Result[ContentIdeas] {
	titles := make([]string, 0, len(recent))
	for _, e := range recent {
		titles = append(titles, e.Title)
	}
	return ask(ctx, a, call[ContentIdeas]{
		task:   llm.TaskContentIdeas,
		system: contentIdeasSystemPrompt,
		payload: struct {
			Topic          string   `json:"topic,omitempty"`
			RecentEpisodes []string `json:"recentEpisodes"`
		}{topic, titles},
		validate:  validateContentIdeas,
		normalize: normalizeContentIdeas,
		fallback:  emptyContentIdeas(),
	})
}

func (a *advisor) BlockerAnalysis(ctx context.Context, project *domain.Project, tasks []*domain.Task, plan *domain.DevPlan, blockers []string) Result[BlockerAnalysis] {
	return ask(ctx, a, call[BlockerAnalysis]{
		task:   llm.TaskBlockerAnalysis,
		system: blockerAnalysisSystemPrompt,
		payload: struct {
			Today    string          `json:"today"`
			Project  *domain.Project `json:"project"`
			Tasks    []*domain.Task  `json:"tasks"`
			DevPlan  *domain.DevPlan `json:"devPlan,omitempty"`
			Blockers []string        `json:"blockers"`
		}{a.today(), project, tasks, plan, blockers},
		normalize: normalizeBlockerAnalysis(blockers),
		fallback:  RuleBlockerAnalysis(blockers),
	})
}

const maxPromptBody = 4000

func formatSender(e *domain.Email) string {
	if e.FromName != "" && e.FromAddress != "" {
		return fmt.Sprintf("%s <%s>", e.FromName, e.FromAddress)
	}
	return e.Sender()
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
