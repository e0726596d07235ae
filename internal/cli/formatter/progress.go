package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a percentage (0..100) as [████░░░░]  45%.
// Green from 66, yellow from 33, red below.
func RenderProgress(pct float64, width int) string {
	pct = clampPct(pct)
	return fmt.Sprintf("[%s] %3.0f%%", progressStyle(pct).Render(bar(pct, width)), pct)
}

// RenderCompactBar renders the bar alone, without brackets or label.
// dim draws it in the muted color regardless of value.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct = clampPct(pct)
	style := progressStyle(pct)
	if dim {
		style = StyleDim
	}
	return style.Render(bar(pct, width))
}

func clampPct(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

func bar(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := min(int(pct/100*float64(width)), width)
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func progressStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 33:
		return StyleRed
	case pct < 66:
		return StyleYellow
	default:
		return StyleGreen
	}
}
