package intelligence

import "github.com/curtisos/curtisos/internal/domain"

// TaskSuggestion is a task the model proposes for a project. Suggestions
// are never persisted unless the caller applies one explicitly.
type TaskSuggestion struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
	Rationale   string          `json:"rationale"`
}

type TaskSuggestions struct {
	Suggestions []TaskSuggestion `json:"suggestions"`
}

type ClientInsights struct {
	Summary       string   `json:"summary"`
	Opportunities []string `json:"opportunities"`
	Risks         []string `json:"risks"`
	NextSteps     []string `json:"nextSteps"`
}

// Prospect is a potential client matching the caller's search criteria.
// Everything here is model-generated and unverified.
type Prospect struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Website  string `json:"website"`
	Reason   string `json:"reason"`
	Approach string `json:"approach"`
}

type Prospects struct {
	Prospects []Prospect `json:"prospects"`
}

type TaskAdvice struct {
	Steps    []string `json:"steps"`
	Estimate string   `json:"estimate"`
	Risks    []string `json:"risks"`
	Tips     []string `json:"tips"`
}

type DashboardInsights struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Priorities []string `json:"priorities"`
}

// EmailTriage classifies an ingested message.
type EmailTriage struct {
	Context       domain.Context  `json:"context"`
	Priority      domain.Priority `json:"priority"`
	NeedsResponse bool            `json:"needsResponse"`
	Summary       string          `json:"summary"`
}

type DraftReply struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Deal health bands derived from the 0..100 score.
const (
	HealthStrong  = "strong"
	HealthSteady  = "steady"
	HealthAtRisk  = "at_risk"
	HealthUnknown = "unknown"
)

type DealHealth struct {
	Score      int      `json:"score"`
	Health     string   `json:"health"`
	Reasons    []string `json:"reasons"`
	NextAction string   `json:"nextAction"`
}

type Nudge struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Channel string `json:"channel"`
}

type EpisodeIdea struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SuggestedGuest string   `json:"suggestedGuest"`
	TalkingPoints  []string `json:"talkingPoints"`
}

type ContentIdeas struct {
	Ideas []EpisodeIdea `json:"ideas"`
}

// BlockerAnalysis always carries the rule-based blockers, with the model's
// reading of them layered on top when available.
type BlockerAnalysis struct {
	Blockers        []string `json:"blockers"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}
