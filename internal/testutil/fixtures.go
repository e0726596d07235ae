package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/curtisos/curtisos/internal/domain"
)

var messageCounter atomic.Int64

// Now is the current UTC time at the one-second precision the store keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Lead options
type LeadOption func(*domain.Lead)

func WithLeadCompany(company string) LeadOption {
	return func(l *domain.Lead) { l.Company = company }
}

func WithLeadStatus(s domain.LeadStatus) LeadOption {
	return func(l *domain.Lead) { l.Status = s }
}

func WithLeadValue(v float64) LeadOption {
	return func(l *domain.Lead) { l.Value = v }
}

func WithLeadContext(c domain.Context) LeadOption {
	return func(l *domain.Lead) { l.Context = c }
}

func NewTestLead(name string, opts ...LeadOption) *domain.Lead {
	now := Now()
	l := &domain.Lead{
		Name:      name,
		Email:     "contact@example.com",
		Status:    domain.LeadNew,
		Context:   domain.ContextNotrom,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func NewTestClient(name string) *domain.Client {
	now := Now()
	return &domain.Client{
		Name:      name,
		Status:    domain.ClientActive,
		Context:   domain.ContextNotrom,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Project options
type ProjectOption func(*domain.Project)

func WithDeadline(d time.Time) ProjectOption {
	return func(p *domain.Project) { p.Deadline = &d }
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) { p.Status = s }
}

func WithProjectClient(id int64) ProjectOption {
	return func(p *domain.Project) { p.ClientID = &id }
}

func WithProjectContext(c domain.Context) ProjectOption {
	return func(p *domain.Project) { p.Context = c }
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := Now()
	p := &domain.Project{
		Name:      name,
		Status:    domain.ProjectPlanning,
		Context:   domain.ContextNotrom,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskProject(id int64) TaskOption {
	return func(t *domain.Task) { t.ProjectID = &id }
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) { t.Status = s }
}

func WithTaskPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) { t.Priority = p }
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) { t.DueDate = &d }
}

func WithAssignee(name string) TaskOption {
	return func(t *domain.Task) { t.Assignee = name }
}

func WithTaskContext(c domain.Context) TaskOption {
	return func(t *domain.Task) { t.Context = c }
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := Now()
	t := &domain.Task{
		Title:     title,
		Status:    domain.TaskTodo,
		Priority:  domain.PriorityMedium,
		Context:   domain.ContextGeneral,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DevPlan options
type DevPlanOption func(*domain.DevPlan)

func WithStage(s domain.Stage) DevPlanOption {
	return func(d *domain.DevPlan) { d.CurrentStage = s }
}

func WithBuildDates(start, end time.Time) DevPlanOption {
	return func(d *domain.DevPlan) {
		d.BuildStartDate = &start
		d.BuildEndDate = &end
	}
}

func NewTestDevPlan(projectID int64, name string, opts ...DevPlanOption) *domain.DevPlan {
	now := Now()
	d := &domain.DevPlan{
		ProjectID:    projectID,
		Name:         name,
		CurrentStage: domain.StagePlanning,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func NewTestEpisode(title string, number int) *domain.Episode {
	now := Now()
	return &domain.Episode{
		Title:         title,
		EpisodeNumber: &number,
		Status:        domain.EpisodeIdea,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Email options
type EmailOption func(*domain.Email)

func WithNeedsResponse() EmailOption {
	return func(e *domain.Email) { e.NeedsResponse = true }
}

func WithEmailContext(c domain.Context) EmailOption {
	return func(e *domain.Email) { e.Context = c }
}

func WithEmailPriority(p domain.Priority) EmailOption {
	return func(e *domain.Email) { e.Priority = p }
}

func WithProviderID(id string) EmailOption {
	return func(e *domain.Email) { e.ProviderMessageID = id }
}

func NewTestEmail(subject string, opts ...EmailOption) *domain.Email {
	now := Now()
	n := messageCounter.Add(1)
	e := &domain.Email{
		ProviderMessageID: fmt.Sprintf("msg-%04d", n),
		ThreadID:          fmt.Sprintf("thread-%04d", n),
		FromAddress:       "sender@example.com",
		FromName:          "Sam Sender",
		ToAddress:         "me@example.com",
		Subject:           subject,
		ReceivedAt:        now,
		Context:           domain.ContextGeneral,
		Priority:          domain.PriorityMedium,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Revenue options
type RevenueOption func(*domain.Revenue)

func WithReceivedAt(t time.Time) RevenueOption {
	return func(r *domain.Revenue) { r.ReceivedAt = t }
}

func WithRevenueContext(c domain.Context) RevenueOption {
	return func(r *domain.Revenue) { r.Context = c }
}

func NewTestRevenue(amount float64, opts ...RevenueOption) *domain.Revenue {
	now := Now()
	r := &domain.Revenue{
		Amount:     amount,
		Source:     "invoice",
		Context:    domain.ContextNotrom,
		ReceivedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestTag(name string) *domain.Tag {
	return &domain.Tag{Name: name, Color: domain.DefaultTagColor, CreatedAt: Now()}
}
