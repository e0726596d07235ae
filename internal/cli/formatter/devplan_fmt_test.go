package formatter

import (
	"testing"
	"time"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestFormatDevPlans(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	start, end := now.AddDate(0, 0, -5), now.AddDate(0, 0, 5)
	plan := &domain.DevPlan{
		ID: 7, ProjectID: 3, Name: "Bakery launch", CurrentStage: domain.StageBuild,
		BuildStartDate: &start, BuildEndDate: &end,
	}

	out := FormatDevPlans([]domain.DevPlanView{domain.NewDevPlanView(plan, now)}, map[int64]string{3: "Acme site"}, now)
	assert.Contains(t, out, "DEV PLANS")
	assert.Contains(t, out, "Bakery launch")
	assert.Contains(t, out, "Acme site")
	assert.Contains(t, out, "● build")
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "In 5d")
}

func TestFormatDevPlans_UnknownProjectAndEmpty(t *testing.T) {
	now := time.Now()
	plan := &domain.DevPlan{ID: 1, ProjectID: 9, Name: "Live one", CurrentStage: domain.StageLive}

	out := FormatDevPlans([]domain.DevPlanView{domain.NewDevPlanView(plan, now)}, nil, now)
	assert.Contains(t, out, "#9")
	assert.Contains(t, out, "100%")

	assert.Contains(t, FormatDevPlans(nil, nil, now), "No dev plans yet.")
}

func TestFormatDevPlan_ShowsTrack(t *testing.T) {
	now := time.Now()
	plan := &domain.DevPlan{ID: 1, ProjectID: 2, Name: "Launch", CurrentStage: domain.StagePlanning}

	out := FormatDevPlan(domain.NewDevPlanView(plan, now), "Site", now)
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "● planning")
	assert.Contains(t, out, "○ live")
}

func TestFormatDashboard(t *testing.T) {
	counts := &domain.DashboardCounts{OpenLeads: 4, OverdueTasks: 2, RevenueThisMonth: 1500}
	metrics := &domain.RevenueMetrics{
		Total:     4200,
		ByContext: map[domain.Context]float64{domain.ContextNotrom: 4000, domain.ContextPodcast: 200},
		ByMonth:   []domain.MonthTotal{{Month: "2026-02", Total: 0}, {Month: "2026-03", Total: 1500}},
	}

	out := FormatDashboard(counts, metrics)
	assert.Contains(t, out, "Open leads")
	assert.Contains(t, out, "$1,500.00")
	assert.Contains(t, out, "$4,200.00")
	assert.Contains(t, out, "podcast")
	assert.Contains(t, out, "2026-03")
}

func TestFormatSyncResult(t *testing.T) {
	out := FormatSyncResult(&service.SyncResult{RunID: "r1", Fetched: 3, Imported: 2, Skipped: 1, Errors: []string{"m-9: boom"}})
	assert.Contains(t, out, "fetched 3, imported 2, skipped 1")
	assert.Contains(t, out, "m-9: boom")
	assert.Contains(t, out, "run r1")
}
