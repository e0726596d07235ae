package domain

import "time"

// Activity is one append-only audit-log row.
type Activity struct {
	ID          int64        `json:"id"`
	Kind        ActivityKind `json:"kind"`
	EntityType  EntityType   `json:"entityType"`
	EntityID    int64        `json:"entityId"`
	Description string       `json:"description"`
	Context     Context      `json:"context"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type ActivityFilter struct {
	EntityType EntityType
	EntityID   int64
	Limit      int
}

// DashboardCounts is the headline summary shown on the dashboard.
type DashboardCounts struct {
	OpenLeads             int     `json:"openLeads"`
	ActiveClients         int     `json:"activeClients"`
	ActiveProjects        int     `json:"activeProjects"`
	OpenTasks             int     `json:"openTasks"`
	OverdueTasks          int     `json:"overdueTasks"`
	TasksDueToday         int     `json:"tasksDueToday"`
	EmailsNeedingResponse int     `json:"emailsNeedingResponse"`
	RevenueThisMonth      float64 `json:"revenueThisMonth"`
}
