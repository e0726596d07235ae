package domain

import "time"

type Lead struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Company         string     `json:"company"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Website         string     `json:"website"`
	Source          string     `json:"source"`
	Status          LeadStatus `json:"status"`
	Value           float64    `json:"value"`
	Context         Context    `json:"context"`
	Notes           string     `json:"notes"`
	LastContactedAt *time.Time `json:"lastContactedAt"`
	NextFollowUpAt  *time.Time `json:"nextFollowUpAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Normalize fills defaults for fields the caller left empty.
func (l *Lead) Normalize() {
	if l.Status == "" {
		l.Status = LeadNew
	}
	if l.Context == "" {
		l.Context = ContextGeneral
	}
}

func (l *Lead) Validate() error {
	v := &ValidationError{}
	requireText(v, "name", l.Name)
	if !l.Status.Valid() {
		v.Add("status", "must be one of new, contacted, qualified, proposal, negotiation, won, lost")
	}
	if l.Value < 0 {
		v.Add("value", "must not be negative")
	}
	checkContext(v, l.Context)
	return v.Err()
}

// DisplayName prefers the company name, falling back to the contact name.
func (l *Lead) DisplayName() string {
	return CoalesceStr(l.Company, l.Name)
}

type LeadPatch struct {
	Name            *string             `json:"name"`
	Company         *string             `json:"company"`
	Email           *string             `json:"email"`
	Phone           *string             `json:"phone"`
	Website         *string             `json:"website"`
	Source          *string             `json:"source"`
	Status          *LeadStatus         `json:"status"`
	Value           *float64            `json:"value"`
	Context         *Context            `json:"context"`
	Notes           *string             `json:"notes"`
	LastContactedAt Nullable[time.Time] `json:"lastContactedAt"`
	NextFollowUpAt  Nullable[time.Time] `json:"nextFollowUpAt"`
}

func (p LeadPatch) Apply(l *Lead) {
	applyVal(&l.Name, p.Name)
	applyVal(&l.Company, p.Company)
	applyVal(&l.Email, p.Email)
	applyVal(&l.Phone, p.Phone)
	applyVal(&l.Website, p.Website)
	applyVal(&l.Source, p.Source)
	applyVal(&l.Status, p.Status)
	applyVal(&l.Value, p.Value)
	applyVal(&l.Context, p.Context)
	applyVal(&l.Notes, p.Notes)
	applyPtr(&l.LastContactedAt, p.LastContactedAt)
	applyPtr(&l.NextFollowUpAt, p.NextFollowUpAt)
}

// LeadFilter narrows lead listings; zero values match everything.
type LeadFilter struct {
	Context Context
	Status  LeadStatus
}
