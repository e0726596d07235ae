package domain

import "time"

type Client struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Company   string       `json:"company"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Website   string       `json:"website"`
	Status    ClientStatus `json:"status"`
	Context   Context      `json:"context"`
	Notes     string       `json:"notes"`
	LeadID    *int64       `json:"leadId"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (c *Client) Normalize() {
	if c.Status == "" {
		c.Status = ClientActive
	}
	if c.Context == "" {
		c.Context = ContextGeneral
	}
}

func (c *Client) Validate() error {
	v := &ValidationError{}
	requireText(v, "name", c.Name)
	if !c.Status.Valid() {
		v.Add("status", "must be one of active, inactive, past")
	}
	checkContext(v, c.Context)
	return v.Err()
}

// ClientFromLead copies the contact details of a converted lead.
func ClientFromLead(l *Lead) *Client {
	id := l.ID
	c := &Client{
		Name:    l.Name,
		Company: l.Company,
		Email:   l.Email,
		Phone:   l.Phone,
		Website: l.Website,
		Status:  ClientActive,
		Context: l.Context,
		Notes:   l.Notes,
		LeadID:  &id,
	}
	return c
}

type ClientPatch struct {
	Name    *string         `json:"name"`
	Company *string         `json:"company"`
	Email   *string         `json:"email"`
	Phone   *string         `json:"phone"`
	Website *string         `json:"website"`
	Status  *ClientStatus   `json:"status"`
	Context *Context        `json:"context"`
	Notes   *string         `json:"notes"`
	LeadID  Nullable[int64] `json:"leadId"`
}

func (p ClientPatch) Apply(c *Client) {
	applyVal(&c.Name, p.Name)
	applyVal(&c.Company, p.Company)
	applyVal(&c.Email, p.Email)
	applyVal(&c.Phone, p.Phone)
	applyVal(&c.Website, p.Website)
	applyVal(&c.Status, p.Status)
	applyVal(&c.Context, p.Context)
	applyVal(&c.Notes, p.Notes)
	applyPtr(&c.LeadID, p.LeadID)
}

type ClientFilter struct {
	Context Context
	Status  ClientStatus
}
