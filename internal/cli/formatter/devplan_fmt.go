package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/curtisos/curtisos/internal/domain"
)

// FormatDevPlans renders the plan board: one row per plan with its
// stage, stage progress, overall progress and stage end date. names maps
// project ids to display names; missing ids fall back to "#id".
func FormatDevPlans(plans []domain.DevPlanView, names map[int64]string, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Dev plans"))
	b.WriteString("\n\n")

	if len(plans) == 0 {
		b.WriteString(Dim("No dev plans yet."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		project, ok := names[p.ProjectID]
		if !ok {
			project = fmt.Sprintf("#%d", p.ProjectID)
		}
		_, end := p.StageDates(p.CurrentStage)
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", p.ID)),
			Truncate(p.Name, 28),
			Truncate(project, 24),
			StagePill(p.CurrentStage),
			RenderProgress(p.StageProgress, 10),
			RenderProgress(p.OverallProgress, 10),
			stageEnd(p.CurrentStage, end, now),
		})
	}
	b.WriteString(RenderTable([]string{"ID", "PLAN", "PROJECT", "STAGE", "STAGE %", "OVERALL", "ENDS"}, rows))
	return b.String()
}

// FormatDevPlan renders a single plan with its pipeline track.
func FormatDevPlan(p domain.DevPlanView, project string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Name), Dim(project))
	b.WriteString(StageTrack(p.CurrentStage))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Stage    %s\n", RenderProgress(p.StageProgress, 20))
	fmt.Fprintf(&b, "Overall  %s\n", RenderProgress(p.OverallProgress, 20))
	_, end := p.StageDates(p.CurrentStage)
	fmt.Fprintf(&b, "Ends     %s\n", stageEnd(p.CurrentStage, end, now))
	return RenderBox("dev plan", strings.TrimRight(b.String(), "\n"))
}

func stageEnd(s domain.Stage, end *time.Time, now time.Time) string {
	if s == domain.StageLive {
		return StyleGreen.Render("live")
	}
	return DueLabel(end, now)
}
