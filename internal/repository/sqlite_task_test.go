package repository

import (
	"context"
	"testing"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepo_ListOrdersOpenByDueDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()
	now := testutil.Now()

	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("undated")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("later", testutil.WithDueDate(now.AddDate(0, 0, 5)))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("done",
		testutil.WithTaskStatus(domain.TaskCompleted), testutil.WithDueDate(now.AddDate(0, 0, -9)))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("soon", testutil.WithDueDate(now.AddDate(0, 0, 1)))))

	tasks, err := repo.List(ctx, domain.TaskFilter{})
	require.NoError(t, err)

	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"soon", "later", "undated", "done"}, titles)
}

func TestTaskRepo_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	repo := NewSQLiteTaskRepo(db)

	proj := testutil.NewTestProject("Acme")
	require.NoError(t, projects.Create(ctx, proj))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("a", testutil.WithTaskProject(proj.ID),
		testutil.WithTaskPriority(domain.PriorityHigh))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("b", testutil.WithTaskContext(domain.ContextDayJob))))

	byProject, err := repo.List(ctx, domain.TaskFilter{ProjectID: &proj.ID})
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	assert.Equal(t, "a", byProject[0].Title)

	high, err := repo.List(ctx, domain.TaskFilter{Priority: domain.PriorityHigh})
	require.NoError(t, err)
	assert.Len(t, high, 1)

	dayJob, err := repo.List(ctx, domain.TaskFilter{Context: domain.ContextDayJob})
	require.NoError(t, err)
	require.Len(t, dayJob, 1)
	assert.Equal(t, "b", dayJob[0].Title)
}

func TestTaskRepo_CompletedAtRoundTrips(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask("ship")
	require.NoError(t, repo.Create(ctx, task))

	now := testutil.Now()
	task.Status = domain.TaskCompleted
	task.SyncCompletedAt(now)
	require.NoError(t, repo.Update(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.CompletedAt)
	assert.True(t, now.Equal(*fetched.CompletedAt))
}
