package repository

import (
	"context"
	"testing"
	"time"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueRepo_Metrics(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRevenueRepo(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	for _, r := range []*domain.Revenue{
		testutil.NewTestRevenue(100, testutil.WithReceivedAt(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))),
		testutil.NewTestRevenue(50, testutil.WithReceivedAt(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
			testutil.WithRevenueContext(domain.ContextPodcast)),
		testutil.NewTestRevenue(200, testutil.WithReceivedAt(time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC))),
		testutil.NewTestRevenue(400, testutil.WithReceivedAt(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))),
		testutil.NewTestRevenue(999, testutil.WithReceivedAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))),
	} {
		require.NoError(t, repo.Create(ctx, r))
	}

	m, err := repo.Metrics(ctx, "", now)
	require.NoError(t, err)
	assert.Equal(t, 1749.0, m.Total)
	assert.Equal(t, 150.0, m.ThisMonth)
	assert.Equal(t, 200.0, m.LastMonth)
	assert.Equal(t, 350.0, m.ThisYear)
	assert.Equal(t, 50.0, m.ByContext[domain.ContextPodcast])
	assert.Equal(t, 1699.0, m.ByContext[domain.ContextNotrom])

	require.Len(t, m.ByMonth, 12)
	assert.Equal(t, "2025-04", m.ByMonth[0].Month)
	assert.Equal(t, domain.MonthTotal{Month: "2026-03", Total: 150}, m.ByMonth[11])
	assert.Equal(t, domain.MonthTotal{Month: "2025-12", Total: 400}, m.ByMonth[8])

	podcast, err := repo.Metrics(ctx, domain.ContextPodcast, now)
	require.NoError(t, err)
	assert.Equal(t, 50.0, podcast.Total)
	assert.Equal(t, 0.0, podcast.LastMonth)
}

func TestDashboardRepo_Counts(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	now := testutil.Now()

	leads := NewSQLiteLeadRepo(db)
	require.NoError(t, leads.Create(ctx, testutil.NewTestLead("open")))
	require.NoError(t, leads.Create(ctx, testutil.NewTestLead("won", testutil.WithLeadStatus(domain.LeadWon))))

	clients := NewSQLiteClientRepo(db)
	require.NoError(t, clients.Create(ctx, testutil.NewTestClient("Acme")))

	projects := NewSQLiteProjectRepo(db)
	require.NoError(t, projects.Create(ctx, testutil.NewTestProject("live")))
	require.NoError(t, projects.Create(ctx, testutil.NewTestProject("done", testutil.WithProjectStatus(domain.ProjectCompleted))))

	tasks := NewSQLiteTaskRepo(db)
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask("late", testutil.WithDueDate(now.AddDate(0, 0, -2)))))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask("someday")))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask("closed", testutil.WithTaskStatus(domain.TaskCompleted))))

	emails := NewSQLiteEmailRepo(db)
	require.NoError(t, emails.Create(ctx, testutil.NewTestEmail("reply", testutil.WithNeedsResponse())))

	revenue := NewSQLiteRevenueRepo(db)
	require.NoError(t, revenue.Create(ctx, testutil.NewTestRevenue(120)))

	counts, err := NewSQLiteDashboardRepo(db).Counts(ctx, "", now)
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardCounts{
		OpenLeads:             1,
		ActiveClients:         1,
		ActiveProjects:        1,
		OpenTasks:             2,
		OverdueTasks:          1,
		TasksDueToday:         0,
		EmailsNeedingResponse: 1,
		RevenueThisMonth:      120,
	}, *counts)

	podcast, err := NewSQLiteDashboardRepo(db).Counts(ctx, domain.ContextPodcast, now)
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardCounts{}, *podcast)
}

func TestTagRepo_AssignmentsAndCaseInsensitiveNames(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	tags := NewSQLiteTagRepo(db)

	vip := testutil.NewTestTag("VIP")
	require.NoError(t, tags.Create(ctx, vip))
	assert.ErrorIs(t, tags.Create(ctx, testutil.NewTestTag("vip")), domain.ErrConflict)

	a := &domain.TagAssignment{TagID: vip.ID, EntityType: domain.EntityLead, EntityID: 5, CreatedAt: testutil.Now()}
	require.NoError(t, tags.Assign(ctx, a))
	assert.ErrorIs(t, tags.Assign(ctx, a), domain.ErrConflict)

	forLead, err := tags.ListForEntity(ctx, domain.EntityLead, 5)
	require.NoError(t, err)
	require.Len(t, forLead, 1)
	assert.Equal(t, "VIP", forLead[0].Name)

	assignments, err := tags.ListAssignments(ctx, vip.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 1)

	require.NoError(t, tags.Unassign(ctx, vip.ID, domain.EntityLead, 5))
	assert.ErrorIs(t, tags.Unassign(ctx, vip.ID, domain.EntityLead, 5), domain.ErrNotFound)
}

func TestActivityRepo_ListNewestFirstWithLimit(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteActivityRepo(db)
	base := testutil.Now()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Activity{
			Kind: domain.ActivityCreated, EntityType: domain.EntityTask, EntityID: int64(i + 1),
			Context: domain.ContextGeneral, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Activity{
		Kind: domain.ActivityCreated, EntityType: domain.EntityLead, EntityID: 1,
		Context: domain.ContextNotrom, CreatedAt: base,
	}))

	latest, err := repo.List(ctx, domain.ActivityFilter{EntityType: domain.EntityTask, Limit: 2})
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, int64(3), latest[0].EntityID)
	assert.Equal(t, int64(2), latest[1].EntityID)

	one, err := repo.List(ctx, domain.ActivityFilter{EntityType: domain.EntityTask, EntityID: 1})
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestExportRepo_DumpWhitelistsTables(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewSQLiteLeadRepo(db).Create(ctx, testutil.NewTestLead("Ada", testutil.WithLeadCompany("Engines"))))

	dump, err := NewSQLiteExportRepo(db).Dump(ctx, "leads")
	require.NoError(t, err)
	assert.Contains(t, dump.Columns, "company")
	require.Len(t, dump.Rows, 1)
	rec := dump.Records()[0]
	assert.Equal(t, "Ada", rec["name"])
	assert.Equal(t, "Engines", rec["company"])
	assert.Nil(t, rec["last_contacted_at"])

	_, err = NewSQLiteExportRepo(db).Dump(ctx, "sqlite_master")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}
