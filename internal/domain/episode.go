package domain

import "time"

// Episode is a podcast episode. Episodes always belong to the podcast context.
type Episode struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	EpisodeNumber *int          `json:"episodeNumber"`
	Status        EpisodeStatus `json:"status"`
	Guest         string        `json:"guest"`
	RecordDate    *time.Time    `json:"recordDate"`
	PublishDate   *time.Time    `json:"publishDate"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (e *Episode) Normalize() {
	if e.Status == "" {
		e.Status = EpisodeIdea
	}
}

func (e *Episode) Validate() error {
	v := &ValidationError{}
	requireText(v, "title", e.Title)
	if !e.Status.Valid() {
		v.Add("status", "must be one of idea, scheduled, recorded, edited, published")
	}
	if e.EpisodeNumber != nil && *e.EpisodeNumber <= 0 {
		v.Add("episodeNumber", "must be positive")
	}
	return v.Err()
}

type EpisodePatch struct {
	Title         *string             `json:"title"`
	EpisodeNumber Nullable[int]       `json:"episodeNumber"`
	Status        *EpisodeStatus      `json:"status"`
	Guest         *string             `json:"guest"`
	RecordDate    Nullable[time.Time] `json:"recordDate"`
	PublishDate   Nullable[time.Time] `json:"publishDate"`
	Notes         *string             `json:"notes"`
}

func (p EpisodePatch) Apply(e *Episode) {
	applyVal(&e.Title, p.Title)
	applyPtr(&e.EpisodeNumber, p.EpisodeNumber)
	applyVal(&e.Status, p.Status)
	applyVal(&e.Guest, p.Guest)
	applyPtr(&e.RecordDate, p.RecordDate)
	applyPtr(&e.PublishDate, p.PublishDate)
	applyVal(&e.Notes, p.Notes)
}
