package domain

import "time"

// Email is a message ingested from the mail provider. ProviderMessageID and
// ThreadID are stored verbatim as the provider reports them.
type Email struct {
	ID                int64      `json:"id"`
	ProviderMessageID string     `json:"providerMessageId"`
	ThreadID          string     `json:"threadId"`
	FromAddress       string     `json:"fromAddress"`
	FromName          string     `json:"fromName"`
	ToAddress         string     `json:"toAddress"`
	Subject           string     `json:"subject"`
	Snippet           string     `json:"snippet"`
	Body              string     `json:"body"`
	ReceivedAt        time.Time  `json:"receivedAt"`
	Context           Context    `json:"context"`
	Priority          Priority   `json:"priority"`
	NeedsResponse     bool       `json:"needsResponse"`
	Summary           string     `json:"summary"`
	RespondedAt       *time.Time `json:"respondedAt"`
	TaskID            *int64     `json:"taskId"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (e *Email) Normalize() {
	if e.Context == "" {
		e.Context = ContextGeneral
	}
	if e.Priority == "" {
		e.Priority = PriorityMedium
	}
}

func (e *Email) Validate() error {
	v := &ValidationError{}
	requireText(v, "providerMessageId", e.ProviderMessageID)
	checkContext(v, e.Context)
	if !e.Priority.Valid() {
		v.Add("priority", "must be one of low, medium, high, urgent")
	}
	return v.Err()
}

// Sender returns the display name if known, otherwise the address.
func (e *Email) Sender() string {
	return CoalesceStr(e.FromName, e.FromAddress)
}

type EmailFilter struct {
	Context       Context
	NeedsResponse *bool
}

type EmailStats struct {
	Total         int              `json:"total"`
	NeedsResponse int              `json:"needsResponse"`
	Responded     int              `json:"responded"`
	ByContext     map[Context]int  `json:"byContext"`
	ByPriority    map[Priority]int `json:"byPriority"`
}
