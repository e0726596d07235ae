package domain

// Context is the life/business category a record belongs to. It is a
// filter tag only and carries no behavior.
type Context string

const (
	ContextNotrom  Context = "notrom"
	ContextPodcast Context = "podcast"
	ContextDayJob  Context = "day_job"
	ContextGeneral Context = "general"
)

var validContexts = map[Context]bool{
	ContextNotrom: true, ContextPodcast: true, ContextDayJob: true, ContextGeneral: true,
}

func (c Context) Valid() bool { return validContexts[c] }

type LeadStatus string

const (
	LeadNew         LeadStatus = "new"
	LeadContacted   LeadStatus = "contacted"
	LeadQualified   LeadStatus = "qualified"
	LeadProposal    LeadStatus = "proposal"
	LeadNegotiation LeadStatus = "negotiation"
	LeadWon         LeadStatus = "won"
	LeadLost        LeadStatus = "lost"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadProposal, LeadNegotiation, LeadWon, LeadLost:
		return true
	}
	return false
}

// Open reports whether the lead is still in the pipeline.
func (s LeadStatus) Open() bool { return s != LeadWon && s != LeadLost }

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientPast     ClientStatus = "past"
)

func (s ClientStatus) Valid() bool {
	return s == ClientActive || s == ClientInactive || s == ClientPast
}

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectReview     ProjectStatus = "review"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCancelled  ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectReview, ProjectCompleted, ProjectOnHold, ProjectCancelled:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskBlocked, TaskCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type EpisodeStatus string

const (
	EpisodeIdea      EpisodeStatus = "idea"
	EpisodeScheduled EpisodeStatus = "scheduled"
	EpisodeRecorded  EpisodeStatus = "recorded"
	EpisodeEdited    EpisodeStatus = "edited"
	EpisodePublished EpisodeStatus = "published"
)

func (s EpisodeStatus) Valid() bool {
	switch s {
	case EpisodeIdea, EpisodeScheduled, EpisodeRecorded, EpisodeEdited, EpisodePublished:
		return true
	}
	return false
}

type ReportKind string

const (
	ReportWeekly    ReportKind = "weekly"
	ReportMonthly   ReportKind = "monthly"
	ReportQuarterly ReportKind = "quarterly"
	ReportCustom    ReportKind = "custom"
)

func (k ReportKind) Valid() bool {
	switch k {
	case ReportWeekly, ReportMonthly, ReportQuarterly, ReportCustom:
		return true
	}
	return false
}

type ActivityKind string

const (
	ActivityCreated       ActivityKind = "created"
	ActivityUpdated       ActivityKind = "updated"
	ActivityDeleted       ActivityKind = "deleted"
	ActivityStageAdvanced ActivityKind = "stage_advanced"
	ActivityConverted     ActivityKind = "converted"
	ActivityResponded     ActivityKind = "responded"
	ActivitySynced        ActivityKind = "synced"
	ActivityStatusChanged ActivityKind = "status_changed"
)

// EntityType names a table that activities and tags can point at.
type EntityType string

const (
	EntityLead    EntityType = "lead"
	EntityClient  EntityType = "client"
	EntityProject EntityType = "project"
	EntityTask    EntityType = "task"
	EntityDevPlan EntityType = "dev_plan"
	EntityEpisode EntityType = "episode"
	EntityEmail   EntityType = "email"
	EntityRevenue EntityType = "revenue"
	EntityReport  EntityType = "report"
	EntityTag     EntityType = "tag"
)

// Taggable reports whether tags can be assigned to the entity type.
func (e EntityType) Taggable() bool {
	switch e {
	case EntityLead, EntityClient, EntityProject, EntityTask, EntityEpisode, EntityEmail:
		return true
	}
	return false
}
