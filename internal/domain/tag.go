package domain

import (
	"regexp"
	"strings"
	"time"
)

const DefaultTagColor = "#6b7280"

var tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *Tag) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	if t.Color == "" {
		t.Color = DefaultTagColor
	}
}

func (t *Tag) Validate() error {
	v := &ValidationError{}
	requireText(v, "name", t.Name)
	if !tagColorPattern.MatchString(t.Color) {
		v.Add("color", "must be a hex color like #1f2937")
	}
	return v.Err()
}

type TagPatch struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (p TagPatch) Apply(t *Tag) {
	applyVal(&t.Name, p.Name)
	applyVal(&t.Color, p.Color)
}

// TagAssignment links a tag to any taggable record.
type TagAssignment struct {
	TagID      int64      `json:"tagId"`
	EntityType EntityType `json:"entityType"`
	EntityID   int64      `json:"entityId"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (a *TagAssignment) Validate() error {
	v := &ValidationError{}
	if !a.EntityType.Taggable() {
		v.Add("entityType", "must be one of lead, client, project, task, episode, email")
	}
	if a.EntityID <= 0 {
		v.Add("entityId", "is required")
	}
	return v.Err()
}
