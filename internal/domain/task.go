package domain

import "time"

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Context     Context    `json:"context"`
	ProjectID   *int64     `json:"projectId"`
	ClientID    *int64     `json:"clientId"`
	Assignee    string     `json:"assignee"`
	DueDate     *time.Time `json:"dueDate"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t *Task) Normalize() {
	if t.Status == "" {
		t.Status = TaskTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Context == "" {
		t.Context = ContextGeneral
	}
}

func (t *Task) Validate() error {
	v := &ValidationError{}
	requireText(v, "title", t.Title)
	if !t.Status.Valid() {
		v.Add("status", "must be one of todo, in_progress, blocked, completed")
	}
	if !t.Priority.Valid() {
		v.Add("priority", "must be one of low, medium, high, urgent")
	}
	checkContext(v, t.Context)
	return v.Err()
}

// Done reports whether the task is completed.
func (t *Task) Done() bool { return t.Status == TaskCompleted }

// Overdue reports whether an open task's due date has passed.
func (t *Task) Overdue(now time.Time) bool {
	return !t.Done() && t.DueDate != nil && t.DueDate.Before(now)
}

// SyncCompletedAt keeps CompletedAt consistent with Status: it is stamped
// when the task enters completed and cleared when it leaves.
func (t *Task) SyncCompletedAt(now time.Time) {
	if t.Status != TaskCompleted {
		t.CompletedAt = nil
		return
	}
	if t.CompletedAt == nil {
		stamp := now
		t.CompletedAt = &stamp
	}
}

// TaskPatch carries the mutable fields of a task. CompletedAt is not
// patchable; it is derived from Status.
type TaskPatch struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Status      *TaskStatus         `json:"status"`
	Priority    *Priority           `json:"priority"`
	Context     *Context            `json:"context"`
	ProjectID   Nullable[int64]     `json:"projectId"`
	ClientID    Nullable[int64]     `json:"clientId"`
	Assignee    *string             `json:"assignee"`
	DueDate     Nullable[time.Time] `json:"dueDate"`
}

func (p TaskPatch) Apply(t *Task) {
	applyVal(&t.Title, p.Title)
	applyVal(&t.Description, p.Description)
	applyVal(&t.Status, p.Status)
	applyVal(&t.Priority, p.Priority)
	applyVal(&t.Context, p.Context)
	applyPtr(&t.ProjectID, p.ProjectID)
	applyPtr(&t.ClientID, p.ClientID)
	applyVal(&t.Assignee, p.Assignee)
	applyPtr(&t.DueDate, p.DueDate)
}

type TaskFilter struct {
	Context   Context
	Status    TaskStatus
	Priority  Priority
	ProjectID *int64
}
