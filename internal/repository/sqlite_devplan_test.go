package repository

import (
	"context"
	"testing"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevPlanRepo_RoundTripStageDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	repo := NewSQLiteDevPlanRepo(db)

	proj := testutil.NewTestProject("Acme")
	require.NoError(t, projects.Create(ctx, proj))

	start := testutil.Now().AddDate(0, 0, -3)
	end := start.AddDate(0, 0, 30)
	plan := testutil.NewTestDevPlan(proj.ID, "Acme plan",
		testutil.WithStage(domain.StageBuild), testutil.WithBuildDates(start, end))
	plan.BuildNotes = "static export"
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, fetched.ID)
	assert.Equal(t, domain.StageBuild, fetched.CurrentStage)
	require.NotNil(t, fetched.BuildStartDate)
	require.NotNil(t, fetched.BuildEndDate)
	assert.True(t, start.Equal(*fetched.BuildStartDate))
	assert.True(t, end.Equal(*fetched.BuildEndDate))
	assert.Nil(t, fetched.PlanningStartDate)
	assert.Equal(t, "static export", fetched.BuildNotes)
}

func TestDevPlanRepo_SecondPlanForProjectConflicts(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	repo := NewSQLiteDevPlanRepo(db)

	proj := testutil.NewTestProject("Acme")
	require.NoError(t, projects.Create(ctx, proj))
	require.NoError(t, repo.Create(ctx, testutil.NewTestDevPlan(proj.ID, "first")))

	err := repo.Create(ctx, testutil.NewTestDevPlan(proj.ID, "second"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDevPlanRepo_UnknownProjectIsInvalidReference(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDevPlanRepo(db)

	err := repo.Create(context.Background(), testutil.NewTestDevPlan(7, "orphan"))
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestDevPlanRepo_UpdatePersistsAdvance(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	repo := NewSQLiteDevPlanRepo(db)

	proj := testutil.NewTestProject("Acme")
	require.NoError(t, projects.Create(ctx, proj))
	plan := testutil.NewTestDevPlan(proj.ID, "Acme plan")
	require.NoError(t, repo.Create(ctx, plan))

	now := testutil.Now()
	require.NoError(t, plan.Advance(now, nil, nil))
	plan.UpdatedAt = now
	require.NoError(t, repo.Update(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageBuild, fetched.CurrentStage)
	require.NotNil(t, fetched.BuildEndDate)
	assert.True(t, now.AddDate(0, 0, 30).Equal(*fetched.BuildEndDate))
}
