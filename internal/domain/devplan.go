package domain

import "time"

// Stage is a step of the delivery pipeline. Plans only move forward:
// planning → build → revise → live.
type Stage string

const (
	StagePlanning Stage = "planning"
	StageBuild    Stage = "build"
	StageRevise   Stage = "revise"
	StageLive     Stage = "live"
)

var stageOrder = []Stage{StagePlanning, StageBuild, StageRevise, StageLive}

// defaultStageLength is the end-date offset stamped when a plan advances
// into a stage without an explicit end. Live has no end date.
var defaultStageLength = map[Stage]time.Duration{
	StageBuild:  30 * 24 * time.Hour,
	StageRevise: 14 * 24 * time.Hour,
}

func (s Stage) Valid() bool { return s.Index() > 0 }

// Index returns the 1-based position of s in the pipeline, or 0 if unknown.
func (s Stage) Index() int {
	for i, st := range stageOrder {
		if st == s {
			return i + 1
		}
	}
	return 0
}

// Next returns the successor stage. ok is false for live and unknown stages.
func (s Stage) Next() (next Stage, ok bool) {
	i := s.Index()
	if i == 0 || i == len(stageOrder) {
		return "", false
	}
	return stageOrder[i], true
}

type DevPlan struct {
	ID                int64      `json:"id"`
	ProjectID         int64      `json:"projectId"`
	Name              string     `json:"name"`
	CurrentStage      Stage      `json:"currentStage"`
	PlanningStartDate *time.Time `json:"planningStartDate"`
	PlanningEndDate   *time.Time `json:"planningEndDate"`
	BuildStartDate    *time.Time `json:"buildStartDate"`
	BuildEndDate      *time.Time `json:"buildEndDate"`
	ReviseStartDate   *time.Time `json:"reviseStartDate"`
	ReviseEndDate     *time.Time `json:"reviseEndDate"`
	LiveStartDate     *time.Time `json:"liveStartDate"`
	PlanningNotes     string     `json:"planningNotes"`
	BuildNotes        string     `json:"buildNotes"`
	ReviseNotes       string     `json:"reviseNotes"`
	LiveNotes         string     `json:"liveNotes"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (d *DevPlan) Normalize() {
	if d.CurrentStage == "" {
		d.CurrentStage = StagePlanning
	}
}

func (d *DevPlan) Validate() error {
	v := &ValidationError{}
	if d.ProjectID <= 0 {
		v.Add("projectId", "is required")
	}
	requireText(v, "name", d.Name)
	if !d.CurrentStage.Valid() {
		v.Add("currentStage", "must be one of planning, build, revise, live")
	}
	return v.Err()
}

// StageDates returns the start and end dates recorded for s.
func (d *DevPlan) StageDates(s Stage) (start, end *time.Time) {
	switch s {
	case StagePlanning:
		return d.PlanningStartDate, d.PlanningEndDate
	case StageBuild:
		return d.BuildStartDate, d.BuildEndDate
	case StageRevise:
		return d.ReviseStartDate, d.ReviseEndDate
	case StageLive:
		return d.LiveStartDate, nil
	}
	return nil, nil
}

func (d *DevPlan) setStageDates(s Stage, start, end *time.Time) {
	switch s {
	case StagePlanning:
		d.PlanningStartDate, d.PlanningEndDate = start, end
	case StageBuild:
		d.BuildStartDate, d.BuildEndDate = start, end
	case StageRevise:
		d.ReviseStartDate, d.ReviseEndDate = start, end
	case StageLive:
		d.LiveStartDate = start
	}
}

// Advance moves the plan to the successor of its current stage and stamps
// that stage's dates. start defaults to now; end defaults to the stage's
// standard length and is ignored for live. Other stages' dates are untouched.
func (d *DevPlan) Advance(now time.Time, start, end *time.Time) error {
	next, ok := d.CurrentStage.Next()
	if !ok {
		return Invalid("stage", "plan in stage %q cannot advance", d.CurrentStage)
	}

	s := now
	if start != nil {
		s = *start
	}
	var e *time.Time
	if next != StageLive {
		if end != nil {
			v := *end
			e = &v
		} else if length, ok := defaultStageLength[next]; ok {
			v := s.Add(length)
			e = &v
		}
	}

	d.CurrentStage = next
	d.setStageDates(next, &s, e)
	return nil
}

// AdvanceTo is Advance guarded by the caller's expected target stage.
func (d *DevPlan) AdvanceTo(target Stage, now time.Time, start, end *time.Time) error {
	next, ok := d.CurrentStage.Next()
	if !ok {
		return Invalid("stage", "plan in stage %q cannot advance", d.CurrentStage)
	}
	if target != "" && target != next {
		return Invalid("stage", "can only advance from %s to %s", d.CurrentStage, next)
	}
	return d.Advance(now, start, end)
}

// StageProgress returns how far through the active stage the plan is, 0..100.
func (d *DevPlan) StageProgress(now time.Time) float64 {
	if d.CurrentStage == StageLive {
		return 100
	}
	start, end := d.StageDates(d.CurrentStage)
	return SpanProgress(start, end, now)
}

// OverallProgress spreads the four stages evenly across 0..100.
func (d *DevPlan) OverallProgress(now time.Time) float64 {
	idx := d.CurrentStage.Index()
	if idx == 0 {
		return 0
	}
	return (100*float64(idx-1) + d.StageProgress(now)) / float64(len(stageOrder))
}

// SpanProgress interpolates now between start and end as a percentage.
// Missing dates yield 0. A zero-length span is 0 before its instant and
// 100 from it onwards.
func SpanProgress(start, end *time.Time, now time.Time) float64 {
	if start == nil || end == nil {
		return 0
	}
	if now.Before(*start) {
		return 0
	}
	if !now.Before(*end) {
		return 100
	}
	total := end.Sub(*start)
	if total <= 0 {
		return 100
	}
	pct := 100 * float64(now.Sub(*start)) / float64(total)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// DevPlanView is a plan with its derived progress, computed at read time.
type DevPlanView struct {
	DevPlan
	StageProgress   float64 `json:"stageProgress"`
	OverallProgress float64 `json:"overallProgress"`
}

func NewDevPlanView(d *DevPlan, now time.Time) DevPlanView {
	return DevPlanView{
		DevPlan:         *d,
		StageProgress:   d.StageProgress(now),
		OverallProgress: d.OverallProgress(now),
	}
}

// DevPlanPatch edits plan fields in place. CurrentStage is not patchable;
// stage changes go through Advance.
type DevPlanPatch struct {
	Name              *string             `json:"name"`
	PlanningStartDate Nullable[time.Time] `json:"planningStartDate"`
	PlanningEndDate   Nullable[time.Time] `json:"planningEndDate"`
	BuildStartDate    Nullable[time.Time] `json:"buildStartDate"`
	BuildEndDate      Nullable[time.Time] `json:"buildEndDate"`
	ReviseStartDate   Nullable[time.Time] `json:"reviseStartDate"`
	ReviseEndDate     Nullable[time.Time] `json:"reviseEndDate"`
	LiveStartDate     Nullable[time.Time] `json:"liveStartDate"`
	PlanningNotes     *string             `json:"planningNotes"`
	BuildNotes        *string             `json:"buildNotes"`
	ReviseNotes       *string             `json:"reviseNotes"`
	LiveNotes         *string             `json:"liveNotes"`
}

func (p DevPlanPatch) Apply(d *DevPlan) {
	applyVal(&d.Name, p.Name)
	applyPtr(&d.PlanningStartDate, p.PlanningStartDate)
	applyPtr(&d.PlanningEndDate, p.PlanningEndDate)
	applyPtr(&d.BuildStartDate, p.BuildStartDate)
	applyPtr(&d.BuildEndDate, p.BuildEndDate)
	applyPtr(&d.ReviseStartDate, p.ReviseStartDate)
	applyPtr(&d.ReviseEndDate, p.ReviseEndDate)
	applyPtr(&d.LiveStartDate, p.LiveStartDate)
	applyVal(&d.PlanningNotes, p.PlanningNotes)
	applyVal(&d.BuildNotes, p.BuildNotes)
	applyVal(&d.ReviseNotes, p.ReviseNotes)
	applyVal(&d.LiveNotes, p.LiveNotes)
}
