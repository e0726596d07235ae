package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/curtisos/curtisos/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly date relative to now.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueLabel renders an optional end date with urgency coloring: red when
// past or within two days, yellow within a week.
func DueLabel(t *time.Time, now time.Time) string {
	if t == nil {
		return Dim("--")
	}
	text := RelativeDateFrom(*t, now)
	days := t.Sub(now).Hours() / 24
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// StagePill returns a colored stage label such as "● build".
func StagePill(s domain.Stage) string {
	return StageStyle(s).Render("● " + string(s))
}

// StageTrack renders the pipeline with completed stages filled, the
// current stage highlighted and later stages dimmed.
func StageTrack(current domain.Stage) string {
	stages := []domain.Stage{domain.StagePlanning, domain.StageBuild, domain.StageRevise, domain.StageLive}
	parts := make([]string, len(stages))
	for i, s := range stages {
		switch {
		case s.Index() < current.Index():
			parts[i] = StyleGreen.Render("✔ " + string(s))
		case s == current:
			parts[i] = StageStyle(s).Bold(true).Render("● " + string(s))
		default:
			parts[i] = Dim("○ " + string(s))
		}
	}
	return strings.Join(parts, Dim(" → "))
}

// Money formats an amount with thousands separators and two decimals.
func Money(v float64) string {
	neg := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))
	whole := fmt.Sprintf("%d", cents/100)

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := fmt.Sprintf("$%s.%02d", b.String(), cents%100)
	if neg {
		return "-" + out
	}
	return out
}

// Truncate shortens s to n visible runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 1 {
		return s
	}
	return string(r[:n-1]) + "…"
}
