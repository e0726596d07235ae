package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/service"
)

// FormatDashboard renders the headline counts and, when present, the
// revenue summary.
func FormatDashboard(c *domain.DashboardCounts, m *domain.RevenueMetrics) string {
	var b strings.Builder
	b.WriteString(Header("Dashboard"))
	b.WriteString("\n\n")

	rows := [][]string{
		{"Open leads", fmt.Sprint(c.OpenLeads)},
		{"Active clients", fmt.Sprint(c.ActiveClients)},
		{"Active projects", fmt.Sprint(c.ActiveProjects)},
		{"Open tasks", fmt.Sprint(c.OpenTasks)},
		{"Overdue tasks", warnCount(c.OverdueTasks)},
		{"Due today", warnCount(c.TasksDueToday)},
		{"Emails to answer", warnCount(c.EmailsNeedingResponse)},
		{"Revenue this month", Money(c.RevenueThisMonth)},
	}
	b.WriteString(RenderTable([]string{"METRIC", "VALUE"}, rows))

	if m != nil {
		b.WriteString("\n")
		b.WriteString(FormatRevenue(m))
	}
	return b.String()
}

// FormatRevenue renders totals, per-context split and the monthly series.
func FormatRevenue(m *domain.RevenueMetrics) string {
	var b strings.Builder
	b.WriteString(Header("Revenue"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Total %s   This month %s   Last month %s   This year %s\n\n",
		Bold(Money(m.Total)), Money(m.ThisMonth), Money(m.LastMonth), Money(m.ThisYear))

	if len(m.ByContext) > 0 {
		keys := make([]domain.Context, 0, len(m.ByContext))
		for k := range m.ByContext {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		rows := make([][]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, []string{string(k), Money(m.ByContext[k])})
		}
		b.WriteString(RenderTable([]string{"CONTEXT", "TOTAL"}, rows))
		b.WriteString("\n")
	}

	peak := 0.0
	for _, mt := range m.ByMonth {
		peak = max(peak, mt.Total)
	}
	for _, mt := range m.ByMonth {
		pct := 0.0
		if peak > 0 {
			pct = mt.Total / peak * 100
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", Dim(mt.Month), RenderCompactBar(pct, 20, mt.Total == 0), Money(mt.Total))
	}
	return b.String()
}

// FormatSyncResult summarises an email sync run.
func FormatSyncResult(r *service.SyncResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s fetched %d, imported %d, skipped %d, follow-up tasks %d\n",
		StyleGreen.Render("✔"), r.Fetched, r.Imported, r.Skipped, r.TasksCreated)
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "  %s %s\n", StyleRed.Render("✖"), e)
	}
	fmt.Fprintf(&b, "%s\n", Dim("run "+r.RunID))
	return b.String()
}

func warnCount(n int) string {
	if n > 0 {
		return StyleRed.Render(fmt.Sprint(n))
	}
	return fmt.Sprint(n)
}
