package analytics

import (
	"testing"
	"time"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func TestInferBlockers(t *testing.T) {
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 7)

	tests := []struct {
		name    string
		project *domain.Project
		tasks   []*domain.Task
		plan    *domain.DevPlan
		want    []string
	}{
		{
			name:    "healthy project",
			project: &domain.Project{Deadline: &future},
			tasks:   []*domain.Task{{Assignee: "me", DueDate: &future, Status: domain.TaskTodo}},
			want:    []string{},
		},
		{
			name:    "missing deadline",
			project: &domain.Project{},
			want:    []string{"No deadline set"},
		},
		{
			name:    "task counts",
			project: &domain.Project{Deadline: &future},
			tasks: []*domain.Task{
				{Status: domain.TaskTodo, DueDate: &past},
				{Status: domain.TaskInProgress, Assignee: "me"},
				{Status: domain.TaskBlocked},
				{Status: domain.TaskCompleted},
			},
			want: []string{"2 tasks unassigned", "2 tasks without a due date", "1 task overdue"},
		},
		{
			name:    "stage missing end date",
			project: &domain.Project{Deadline: &future},
			plan:    &domain.DevPlan{CurrentStage: domain.StageBuild, BuildStartDate: &past},
			want:    []string{"Current stage (build) has no end date"},
		},
		{
			name:    "live stage never flags end date",
			project: &domain.Project{Deadline: &future},
			plan:    &domain.DevPlan{CurrentStage: domain.StageLive, LiveStartDate: ptr(past)},
			want:    []string{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := InferBlockers(tc.project, tc.tasks, tc.plan, now)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("InferBlockers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInferBlockers_Pure(t *testing.T) {
	project := &domain.Project{}
	tasks := []*domain.Task{{Status: domain.TaskTodo}, {Status: domain.TaskTodo, DueDate: ptr(now.AddDate(0, 0, -3))}}
	plan := &domain.DevPlan{CurrentStage: domain.StagePlanning}

	first := InferBlockers(project, tasks, plan, now)
	second := InferBlockers(project, tasks, plan, now)

	assert.Empty(t, cmp.Diff(first, second))
	assert.Equal(t, domain.StagePlanning, plan.CurrentStage)
	assert.Nil(t, project.Deadline)
}
