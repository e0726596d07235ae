package domain

import "time"

type Project struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ClientID    *int64        `json:"clientId"`
	Status      ProjectStatus `json:"status"`
	Context     Context       `json:"context"`
	Budget      float64       `json:"budget"`
	StartDate   *time.Time    `json:"startDate"`
	Deadline    *time.Time    `json:"deadline"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (p *Project) Normalize() {
	if p.Status == "" {
		p.Status = ProjectPlanning
	}
	if p.Context == "" {
		p.Context = ContextGeneral
	}
}

func (p *Project) Validate() error {
	v := &ValidationError{}
	requireText(v, "name", p.Name)
	if !p.Status.Valid() {
		v.Add("status", "must be one of planning, in_progress, review, completed, on_hold, cancelled")
	}
	if p.Budget < 0 {
		v.Add("budget", "must not be negative")
	}
	if p.StartDate != nil && p.Deadline != nil && p.Deadline.Before(*p.StartDate) {
		v.Add("deadline", "must not be before startDate")
	}
	checkContext(v, p.Context)
	return v.Err()
}

// Active reports whether work on the project is still expected.
func (p *Project) Active() bool {
	return p.Status == ProjectPlanning || p.Status == ProjectInProgress || p.Status == ProjectReview
}

type ProjectPatch struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	ClientID    Nullable[int64]     `json:"clientId"`
	Status      *ProjectStatus      `json:"status"`
	Context     *Context            `json:"context"`
	Budget      *float64            `json:"budget"`
	StartDate   Nullable[time.Time] `json:"startDate"`
	Deadline    Nullable[time.Time] `json:"deadline"`
}

func (p ProjectPatch) Apply(pr *Project) {
	applyVal(&pr.Name, p.Name)
	applyVal(&pr.Description, p.Description)
	applyPtr(&pr.ClientID, p.ClientID)
	applyVal(&pr.Status, p.Status)
	applyVal(&pr.Context, p.Context)
	applyVal(&pr.Budget, p.Budget)
	applyPtr(&pr.StartDate, p.StartDate)
	applyPtr(&pr.Deadline, p.Deadline)
}

type ProjectFilter struct {
	Context  Context
	Status   ProjectStatus
	ClientID *int64
}
