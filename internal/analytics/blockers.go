// Package analytics derives read-only advisories from already-loaded records.
// Nothing here touches storage or the clock; callers pass now explicitly.
package analytics

import (
	"fmt"
	"time"

	"github.com/curtisos/curtisos/internal/domain"
)

// InferBlockers lists the reasons a project may be stuck. Only open tasks
// are considered. plan may be nil. The result is never nil.
func InferBlockers(p *domain.Project, tasks []*domain.Task, plan *domain.DevPlan, now time.Time) []string {
	blockers := []string{}

	if p != nil && p.Deadline == nil {
		blockers = append(blockers, "No deadline set")
	}

	var unassigned, undated, overdue int
	for _, t := range tasks {
		if t == nil || t.Done() {
			continue
		}
		if t.Assignee == "" {
			unassigned++
		}
		if t.DueDate == nil {
			undated++
		} else if t.DueDate.Before(now) {
			overdue++
		}
	}
	if unassigned > 0 {
		blockers = append(blockers, countPhrase(unassigned, "unassigned"))
	}
	if undated > 0 {
		blockers = append(blockers, countPhrase(undated, "without a due date"))
	}
	if overdue > 0 {
		blockers = append(blockers, countPhrase(overdue, "overdue"))
	}

	if plan != nil && plan.CurrentStage != domain.StageLive {
		if _, end := plan.StageDates(plan.CurrentStage); end == nil {
			blockers = append(blockers, fmt.Sprintf("Current stage (%s) has no end date", plan.CurrentStage))
		}
	}
	return blockers
}

func countPhrase(n int, what string) string {
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s %s", n, noun, what)
}
