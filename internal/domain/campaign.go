package domain

import "slices"

type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

func (u User) EntityID() string { return u.ID }

type Campaign struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	OwnerID      string   `json:"ownerId,omitempty"`
	CharacterIDs []string `json:"characterIds,omitempty"`
}

func (c Campaign) EntityID() string { return c.ID }

func (c Campaign) Validate() error {
	return requireField("name", c.Name)
}

func (c Campaign) HasCharacter(characterID string) bool {
	return slices.Contains(c.CharacterIDs, characterID)
}
