package domain

import "time"

type Note struct {
	ID          string    `json:"id"`
	CharacterID string    `json:"characterId,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

func (n Note) EntityID() string { return n.ID }

func (n Note) Validate() error {
	return requireField("title", n.Title)
}
