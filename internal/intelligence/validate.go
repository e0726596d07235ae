package intelligence

import (
	"fmt"
	"strings"

	"github.com/curtisos/curtisos/internal/domain"
)

const (
	maxSuggestions = 5
	maxProspects   = 5
	maxIdeas       = 5
)

func validateTaskSuggestions(s TaskSuggestions) error {
	for i, sg := range s.Suggestions {
		if strings.TrimSpace(sg.Title) == "" {
			return fmt.Errorf("suggestions[%d].title is empty", i)
		}
		if sg.Priority != "" && !sg.Priority.Valid() {
			return fmt.Errorf("suggestions[%d].priority %q is invalid", i, sg.Priority)
		}
	}
	return nil
}

func normalizeTaskSuggestions(s *TaskSuggestions) {
	if s.Suggestions == nil {
		s.Suggestions = []TaskSuggestion{}
	}
	if len(s.Suggestions) > maxSuggestions {
		s.Suggestions = s.Suggestions[:maxSuggestions]
	}
	for i := range s.Suggestions {
		s.Suggestions[i].Title = strings.TrimSpace(s.Suggestions[i].Title)
		if s.Suggestions[i].Priority == "" {
			s.Suggestions[i].Priority = domain.PriorityMedium
		}
	}
}

func normalizeClientInsights(c *ClientInsights) {
	c.Opportunities = nonNil(c.Opportunities)
	c.Risks = nonNil(c.Risks)
	c.NextSteps = nonNil(c.NextSteps)
}

func validateProspects(p Prospects) error {
	for i, pr := range p.Prospects {
		if strings.TrimSpace(pr.Name) == "" {
			return fmt.Errorf("prospects[%d].name is empty", i)
		}
	}
	return nil
}

func normalizeProspects(p *Prospects) {
	if p.Prospects == nil {
		p.Prospects = []Prospect{}
	}
	if len(p.Prospects) > maxProspects {
		p.Prospects = p.Prospects[:maxProspects]
	}
}

func validateTaskAdvice(a TaskAdvice) error {
	if len(a.Steps) == 0 {
		return fmt.Errorf("steps is empty")
	}
	return nil
}

func normalizeTaskAdvice(a *TaskAdvice) {
	a.Risks = nonNil(a.Risks)
	a.Tips = nonNil(a.Tips)
}

func validateDashboardInsights(d DashboardInsights) error {
	if strings.TrimSpace(d.Summary) == "" {
		return fmt.Errorf("summary is empty")
	}
	return nil
}

func normalizeDashboardInsights(d *DashboardInsights) {
	d.Highlights = nonNil(d.Highlights)
	d.Priorities = nonNil(d.Priorities)
}

// validateEmailTriage accepts an empty context or priority; normalize fills
// them. Urgent is folded into high since emails only carry three levels.
func validateEmailTriage(t EmailTriage) error {
	if t.Context != "" && !t.Context.Valid() {
		return fmt.Errorf("context %q is invalid", t.Context)
	}
	if t.Priority != "" && !t.Priority.Valid() {
		return fmt.Errorf("priority %q is invalid", t.Priority)
	}
	return nil
}

func normalizeEmailTriage(t *EmailTriage) {
	if t.Context == "" {
		t.Context = domain.ContextGeneral
	}
	switch t.Priority {
	case "":
		t.Priority = domain.PriorityMedium
	case domain.PriorityUrgent:
		t.Priority = domain.PriorityHigh
	}
	t.Summary = strings.TrimSpace(t.Summary)
}

func validateDraftReply(d DraftReply) error {
	if strings.TrimSpace(d.Body) == "" {
		return fmt.Errorf("body is empty")
	}
	return nil
}

func validateDealHealth(d DealHealth) error {
	if d.Score < 0 || d.Score > 100 {
		return fmt.Errorf("score must be in [0,100], got %d", d.Score)
	}
	return nil
}

// normalizeDealHealth derives the band from the score so the two never
// disagree.
func normalizeDealHealth(d *DealHealth) {
	d.Health = HealthBand(d.Score)
	d.Reasons = nonNil(d.Reasons)
}

// HealthBand maps a 0..100 deal score onto its band.
func HealthBand(score int) string {
	switch {
	case score >= 70:
		return HealthStrong
	case score >= 40:
		return HealthSteady
	default:
		return HealthAtRisk
	}
}

func validateNudge(n Nudge) error {
	if strings.TrimSpace(n.Message) == "" {
		return fmt.Errorf("message is empty")
	}
	return nil
}

func normalizeNudge(n *Nudge) {
	switch n.Channel {
	case "email", "phone", "text":
	default:
		n.Channel = "email"
	}
}

func validateContentIdeas(c ContentIdeas) error {
	for i, idea := range c.Ideas {
		if strings.TrimSpace(idea.Title) == "" {
			return fmt.Errorf("ideas[%d].title is empty", i)
		}
	}
	return nil
}

func normalizeContentIdeas(c *ContentIdeas) {
	if c.Ideas == nil {
		c.Ideas = []EpisodeIdea{}
	}
	if len(c.Ideas) > maxIdeas {
		c.Ideas = c.Ideas[:maxIdeas]
	}
	for i := range c.Ideas {
		c.Ideas[i].TalkingPoints = nonNil(c.Ideas[i].TalkingPoints)
	}
}

func normalizeBlockerAnalysis(ruleBlockers []string) func(*BlockerAnalysis) {
	return func(b *BlockerAnalysis) {
		b.Blockers = mergeBlockers(ruleBlockers, b.Blockers)
		b.Recommendations = nonNil(b.Recommendations)
	}
}

// mergeBlockers keeps every rule blocker first, then any distinct extras.
func mergeBlockers(rules, extra []string) []string {
	out := make([]string, 0, len(rules)+len(extra))
	seen := make(map[string]bool, len(rules)+len(extra))
	for _, list := range [][]string{rules, extra} {
		for _, b := range list {
			key := strings.ToLower(strings.TrimSpace(b))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, strings.TrimSpace(b))
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
