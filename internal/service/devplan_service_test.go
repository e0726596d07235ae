package service

import (
	"context"
	"testing"
	"time"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProjectWithPlan(t *testing.T, svc *Services) (*domain.Project, *domain.DevPlanView) {
	t.Helper()
	ctx := context.Background()
	p := &domain.Project{Name: "Bakery site"}
	require.NoError(t, svc.Projects.Create(ctx, p))
	view, err := svc.DevPlans.Create(ctx, &domain.DevPlan{ProjectID: p.ID, Name: "Bakery launch"})
	require.NoError(t, err)
	return p, view
}

func TestDevPlanService_CreateStartsInPlanning(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	_, view := createProjectWithPlan(t, svc)

	assert.Equal(t, domain.StagePlanning, view.CurrentStage)
	assert.Equal(t, 0.0, view.StageProgress)
	assert.Equal(t, 0.0, view.OverallProgress)
}

func TestDevPlanService_SecondPlanForProjectConflicts(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	p, _ := createProjectWithPlan(t, svc)

	_, err := svc.DevPlans.Create(context.Background(), &domain.DevPlan{ProjectID: p.ID, Name: "Again"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDevPlanService_CreateForMissingProject(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)

	_, err := svc.DevPlans.Create(context.Background(), &domain.DevPlan{ProjectID: 77, Name: "Orphan"})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestDevPlanService_AdvanceStageStampsDefaults(t *testing.T) {
	database, svc := newTestServices(t, nil, nil)
	_, view := createProjectWithPlan(t, svc)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	advanced, err := svc.DevPlans.AdvanceStage(ctx, view.ID, AdvanceStageRequest{})
	require.NoError(t, err)

	assert.Equal(t, domain.StageBuild, advanced.CurrentStage)
	require.NotNil(t, advanced.BuildStartDate)
	require.NotNil(t, advanced.BuildEndDate)
	assert.True(t, advanced.BuildStartDate.After(before))
	assert.Equal(t, 30*24*time.Hour, advanced.BuildEndDate.Sub(*advanced.BuildStartDate))
	assert.Nil(t, advanced.PlanningStartDate, "other stages are untouched")
	assert.InDelta(t, 25.0, advanced.OverallProgress, 0.5)

	kinds := activityKinds(listActivities(t, database, domain.EntityDevPlan, view.ID))
	assert.Contains(t, kinds, domain.ActivityStageAdvanced)
}

func TestDevPlanService_AdvanceStageExplicitDates(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	_, view := createProjectWithPlan(t, svc)
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)
	advanced, err := svc.DevPlans.AdvanceStage(ctx, view.ID, AdvanceStageRequest{
		Stage:     domain.StageBuild,
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	assert.True(t, start.Equal(*advanced.BuildStartDate))
	assert.True(t, end.Equal(*advanced.BuildEndDate))
	assert.Equal(t, 100.0, advanced.StageProgress, "build window is in the past")
}

func TestDevPlanService_AdvanceStageRejectsSkips(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	_, view := createProjectWithPlan(t, svc)
	ctx := context.Background()

	_, err := svc.DevPlans.AdvanceStage(ctx, view.ID, AdvanceStageRequest{Stage: domain.StageRevise})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.DevPlans.AdvanceStage(ctx, view.ID, AdvanceStageRequest{Stage: "shipping"})
	require.ErrorAs(t, err, &verr)

	got, err := svc.DevPlans.GetByID(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StagePlanning, got.CurrentStage)
}

func TestDevPlanService_AdvanceThroughLive(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	_, view := createProjectWithPlan(t, svc)
	ctx := context.Background()

	for _, want := range []domain.Stage{domain.StageBuild, domain.StageRevise, domain.StageLive} {
		got, err := svc.DevPlans.AdvanceStage(ctx, view.ID, AdvanceStageRequest{})
		require.NoError(t, err)
		assert.Equal(t, want, got.CurrentStage)
	}

	live, err := svc.DevPlans.GetByID(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, live.OverallProgress)
	require.NotNil(t, live.LiveStartDate)

	_, err = svc.DevPlans.AdvanceStage(ctx, view.ID, AdvanceStageRequest{})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDevPlanService_AdvanceMissing(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	_, err := svc.DevPlans.AdvanceStage(context.Background(), 5, AdvanceStageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_DevPlanAndBlockers(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	p, view := createProjectWithPlan(t, svc)
	ctx := context.Background()

	got, err := svc.Projects.DevPlan(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, got.ID)

	require.NoError(t, svc.Tasks.Create(ctx, &domain.Task{Title: "Copy", ProjectID: &p.ID}))
	blockers, err := svc.Projects.Blockers(ctx, p.ID)
	require.NoError(t, err)
	assert.Contains(t, blockers, "No deadline set")
	assert.Contains(t, blockers, "1 task unassigned")
	assert.Contains(t, blockers, "1 task without a due date")

	_, err = svc.Projects.Blockers(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
