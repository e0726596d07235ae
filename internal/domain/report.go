package domain

import "time"

type Report struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Kind        ReportKind `json:"kind"`
	Context     Context    `json:"context"`
	Content     string     `json:"content"`
	PeriodStart *time.Time `json:"periodStart"`
	PeriodEnd   *time.Time `json:"periodEnd"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (r *Report) Normalize() {
	if r.Kind == "" {
		r.Kind = ReportCustom
	}
	if r.Context == "" {
		r.Context = ContextGeneral
	}
}

func (r *Report) Validate() error {
	v := &ValidationError{}
	requireText(v, "title", r.Title)
	if !r.Kind.Valid() {
		v.Add("kind", "must be one of weekly, monthly, quarterly, custom")
	}
	if r.PeriodStart != nil && r.PeriodEnd != nil && r.PeriodEnd.Before(*r.PeriodStart) {
		v.Add("periodEnd", "must not be before periodStart")
	}
	checkContext(v, r.Context)
	return v.Err()
}

type ReportPatch struct {
	Title       *string             `json:"title"`
	Kind        *ReportKind         `json:"kind"`
	Context     *Context            `json:"context"`
	Content     *string             `json:"content"`
	PeriodStart Nullable[time.Time] `json:"periodStart"`
	PeriodEnd   Nullable[time.Time] `json:"periodEnd"`
}

func (p ReportPatch) Apply(r *Report) {
	applyVal(&r.Title, p.Title)
	applyVal(&r.Kind, p.Kind)
	applyVal(&r.Context, p.Context)
	applyVal(&r.Content, p.Content)
	applyPtr(&r.PeriodStart, p.PeriodStart)
	applyPtr(&r.PeriodEnd, p.PeriodEnd)
}

type ReportFilter struct {
	Kind    ReportKind
	Context Context
}
