package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress_LabelAndClamp(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want string
	}{
		{"zero", 0, "  0%"},
		{"half", 50, " 50%"},
		{"full", 100, "100%"},
		{"over clamps", 150, "100%"},
		{"negative clamps", -20, "  0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, 10)
			assert.True(t, strings.HasSuffix(got, tt.want), got)
			assert.True(t, strings.HasPrefix(got, "["), got)
		})
	}
}

func TestRenderCompactBar(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		width int
	}{
		{"0%", 0, 10},
		{"50%", 50, 10},
		{"100%", 100, 10},
		{"tiny width clamps to 2", 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCompactBar(tt.pct, tt.width, false)
			assert.NotEmpty(t, got)
			assert.NotContains(t, got, "[")
			assert.NotContains(t, got, "%")
		})
	}
}

func TestBar_BlockCounts(t *testing.T) {
	assert.Equal(t, strings.Repeat(emptyBlock, 4), bar(0, 4))
	assert.Equal(t, strings.Repeat(filledBlock, 4), bar(100, 4))
	assert.Equal(t, filledBlock+filledBlock+emptyBlock+emptyBlock, bar(50, 4))
	assert.Equal(t, 2, strings.Count(bar(50, 1), "")-1, "width clamps to 2")
}
