package domain

import "time"

type Revenue struct {
	ID          int64     `json:"id"`
	Amount      float64   `json:"amount"`
	Source      string    `json:"source"`
	Description string    `json:"description"`
	Context     Context   `json:"context"`
	ClientID    *int64    `json:"clientId"`
	ProjectID   *int64    `json:"projectId"`
	ReceivedAt  time.Time `json:"receivedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r *Revenue) Normalize(now time.Time) {
	if r.Context == "" {
		r.Context = ContextGeneral
	}
	if r.ReceivedAt.IsZero() {
		r.ReceivedAt = now
	}
}

func (r *Revenue) Validate() error {
	v := &ValidationError{}
	if r.Amount <= 0 {
		v.Add("amount", "must be positive")
	}
	checkContext(v, r.Context)
	return v.Err()
}

type RevenuePatch struct {
	Amount      *float64        `json:"amount"`
	Source      *string         `json:"source"`
	Description *string         `json:"description"`
	Context     *Context        `json:"context"`
	ClientID    Nullable[int64] `json:"clientId"`
	ProjectID   Nullable[int64] `json:"projectId"`
	ReceivedAt  *time.Time      `json:"receivedAt"`
}

func (p RevenuePatch) Apply(r *Revenue) {
	applyVal(&r.Amount, p.Amount)
	applyVal(&r.Source, p.Source)
	applyVal(&r.Description, p.Description)
	applyVal(&r.Context, p.Context)
	applyPtr(&r.ClientID, p.ClientID)
	applyPtr(&r.ProjectID, p.ProjectID)
	applyVal(&r.ReceivedAt, p.ReceivedAt)
}

type MonthTotal struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
}

type RevenueMetrics struct {
	Total     float64             `json:"total"`
	ThisMonth float64             `json:"thisMonth"`
	LastMonth float64             `json:"lastMonth"`
	ThisYear  float64             `json:"thisYear"`
	ByContext map[Context]float64 `json:"byContext"`
	ByMonth   []MonthTotal        `json:"byMonth"`
}
