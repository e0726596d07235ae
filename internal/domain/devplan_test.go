package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestStage_NextFollowsPipeline(t *testing.T) {
	tests := []struct {
		from Stage
		want Stage
		ok   bool
	}{
		{StagePlanning, StageBuild, true},
		{StageBuild, StageRevise, true},
		{StageRevise, StageLive, true},
		{StageLive, "", false},
		{Stage("bogus"), "", false},
	}
	for _, tc := range tests {
		t.Run(string(tc.from), func(t *testing.T) {
			got, ok := tc.from.Next()
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDevPlan_AdvanceFromPlanning_DefaultsBuildDates(t *testing.T) {
	d := &DevPlan{ProjectID: 1, Name: "Acme Site", CurrentStage: StagePlanning}

	require.NoError(t, d.Advance(refNow, nil, nil))

	assert.Equal(t, StageBuild, d.CurrentStage)
	require.NotNil(t, d.BuildStartDate)
	require.NotNil(t, d.BuildEndDate)
	assert.True(t, d.BuildStartDate.Equal(refNow))
	assert.Equal(t, 30*24*time.Hour, d.BuildEndDate.Sub(*d.BuildStartDate))
	assert.Nil(t, d.PlanningStartDate, "planning dates untouched")
}

func TestDevPlan_AdvanceFromBuild_DefaultsReviseToFourteenDays(t *testing.T) {
	d := &DevPlan{CurrentStage: StageBuild}

	require.NoError(t, d.Advance(refNow, nil, nil))

	assert.Equal(t, StageRevise, d.CurrentStage)
	require.NotNil(t, d.ReviseEndDate)
	assert.Equal(t, 14*24*time.Hour, d.ReviseEndDate.Sub(*d.ReviseStartDate))
}

func TestDevPlan_AdvanceFromRevise_LiveHasNoEnd(t *testing.T) {
	end := refNow.AddDate(0, 1, 0)
	d := &DevPlan{CurrentStage: StageRevise}

	require.NoError(t, d.Advance(refNow, nil, &end))

	assert.Equal(t, StageLive, d.CurrentStage)
	require.NotNil(t, d.LiveStartDate)
	_, liveEnd := d.StageDates(StageLive)
	assert.Nil(t, liveEnd)
}

func TestDevPlan_Advance_ExplicitDatesWin(t *testing.T) {
	start := refNow.AddDate(0, 0, 3)
	end := refNow.AddDate(0, 0, 10)
	buildStart := refNow.AddDate(0, -1, 0)
	d := &DevPlan{CurrentStage: StageBuild, BuildStartDate: &buildStart}

	require.NoError(t, d.Advance(refNow, &start, &end))

	assert.True(t, d.ReviseStartDate.Equal(start))
	assert.True(t, d.ReviseEndDate.Equal(end))
	assert.True(t, d.BuildStartDate.Equal(buildStart), "previous stage dates untouched")
}

func TestDevPlan_AdvanceFromLive_Rejected(t *testing.T) {
	d := &DevPlan{CurrentStage: StageLive}
	err := d.Advance(refNow, nil, nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StageLive, d.CurrentStage)
}

func TestDevPlan_AdvanceTo_RejectsSkippingStages(t *testing.T) {
	d := &DevPlan{CurrentStage: StagePlanning}

	err := d.AdvanceTo(StageRevise, refNow, nil, nil)
	assert.Error(t, err)
	assert.Equal(t, StagePlanning, d.CurrentStage)

	require.NoError(t, d.AdvanceTo(StageBuild, refNow, nil, nil))
	assert.Equal(t, StageBuild, d.CurrentStage)
}

func TestSpanProgress_Bounds(t *testing.T) {
	start := refNow
	end := refNow.AddDate(0, 0, 10)

	assert.Equal(t, 0.0, SpanProgress(&start, &end, start.Add(-time.Hour)))
	assert.Equal(t, 100.0, SpanProgress(&start, &end, end.Add(time.Hour)))
	assert.InDelta(t, 50.0, SpanProgress(&start, &end, refNow.AddDate(0, 0, 5)), 0.001)
	assert.Equal(t, 0.0, SpanProgress(nil, &end, refNow))
	assert.Equal(t, 0.0, SpanProgress(&start, nil, refNow))
}

func TestSpanProgress_MonotonicWithinStage(t *testing.T) {
	start := refNow
	end := refNow.AddDate(0, 0, 30)

	prev := -1.0
	for h := -24; h <= 31*24; h += 7 {
		got := SpanProgress(&start, &end, refNow.Add(time.Duration(h)*time.Hour))
		assert.GreaterOrEqual(t, got, prev)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
		prev = got
	}
}

func TestSpanProgress_ZeroLengthStageDoesNotDivide(t *testing.T) {
	at := refNow

	assert.Equal(t, 0.0, SpanProgress(&at, &at, at.Add(-time.Second)))
	assert.Equal(t, 100.0, SpanProgress(&at, &at, at))
}

func TestDevPlan_OverallProgress(t *testing.T) {
	start := refNow.AddDate(0, 0, -5)
	end := refNow.AddDate(0, 0, 5)

	d := &DevPlan{CurrentStage: StageBuild, BuildStartDate: &start, BuildEndDate: &end}
	assert.InDelta(t, 50.0, d.StageProgress(refNow), 0.001)
	assert.InDelta(t, 37.5, d.OverallProgress(refNow), 0.001)

	live := &DevPlan{CurrentStage: StageLive}
	assert.Equal(t, 100.0, live.StageProgress(refNow))
	assert.Equal(t, 100.0, live.OverallProgress(refNow))

	fresh := &DevPlan{CurrentStage: StagePlanning}
	assert.Equal(t, 0.0, fresh.OverallProgress(refNow))
}

func TestDevPlan_Validate(t *testing.T) {
	d := &DevPlan{}
	d.Normalize()
	err := d.Validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, StagePlanning, d.CurrentStage)
}
