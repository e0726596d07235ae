package intelligence

import (
	"fmt"
	"strings"

	"github.com/curtisos/curtisos/internal/domain"
)

// The defaults below are what an advisory call returns when the model is
// disabled, unreachable or produces unusable output. They never claim more
// than the stored data supports.

func emptyTaskSuggestions() TaskSuggestions {
	return TaskSuggestions{Suggestions: []TaskSuggestion{}}
}

func emptyClientInsights() ClientInsights {
	return ClientInsights{Opportunities: []string{}, Risks: []string{}, NextSteps: []string{}}
}

func emptyProspects() Prospects {
	return Prospects{Prospects: []Prospect{}}
}

func emptyTaskAdvice() TaskAdvice {
	return TaskAdvice{Steps: []string{}, Risks: []string{}, Tips: []string{}}
}

// DeterministicDashboardInsights restates the counts without interpretation.
func DeterministicDashboardInsights(c domain.DashboardCounts) DashboardInsights {
	d := DashboardInsights{
		Summary: fmt.Sprintf("%d open task(s), %d overdue, %d due today; %d email(s) need a response.",
			c.OpenTasks, c.OverdueTasks, c.TasksDueToday, c.EmailsNeedingResponse),
		Highlights: []string{},
		Priorities: []string{},
	}
	if c.OverdueTasks > 0 {
		d.Priorities = append(d.Priorities, fmt.Sprintf("Clear %d overdue task(s)", c.OverdueTasks))
	}
	if c.EmailsNeedingResponse > 0 {
		d.Priorities = append(d.Priorities, fmt.Sprintf("Reply to %d email(s)", c.EmailsNeedingResponse))
	}
	return d
}

// DefaultEmailTriage keeps whatever the email already has and assumes no
// reply is needed, so a model failure never creates follow-up tasks.
func DefaultEmailTriage(e *domain.Email) EmailTriage {
	t := EmailTriage{Context: e.Context, Priority: e.Priority, Summary: strings.TrimSpace(e.Snippet)}
	normalizeEmailTriage(&t)
	return t
}

func emptyDraftReply(e *domain.Email) DraftReply {
	return DraftReply{Subject: ReplySubject(e.Subject)}
}

func unknownDealHealth() DealHealth {
	return DealHealth{Score: 50, Health: HealthUnknown, Reasons: []string{}}
}

func emptyNudge() Nudge {
	return Nudge{Channel: "email"}
}

func emptyContentIdeas() ContentIdeas {
	return ContentIdeas{Ideas: []EpisodeIdea{}}
}

// RuleBlockerAnalysis reports the rule blockers with no commentary.
func RuleBlockerAnalysis(blockers []string) BlockerAnalysis {
	return BlockerAnalysis{Blockers: mergeBlockers(blockers, nil), Recommendations: []string{}}
}

// ReplySubject prefixes "Re: " unless the subject already carries it.
func ReplySubject(subject string) string {
	s := strings.TrimSpace(subject)
	if strings.HasPrefix(strings.ToLower(s), "re:") {
		return s
	}
	return "Re: " + s
}
