package domain

import "errors"

type Cost struct {
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

type Equipment struct {
	ID          string   `json:"id"`
	Index       string   `json:"index"`
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	Cost        Cost     `json:"cost"`
	Weight      float64  `json:"weight,omitempty"`
	Description []string `json:"description,omitempty"`
}

func (e Equipment) EntityID() string { return e.ID }

func (e Equipment) Validate() error {
	return errors.Join(requireField("name", e.Name), requireField("index", e.Index))
}

type Monster struct {
	ID              string  `json:"id"`
	Index           string  `json:"index"`
	Name            string  `json:"name"`
	Size            string  `json:"size,omitempty"`
	Type            string  `json:"type,omitempty"`
	Alignment       string  `json:"alignment,omitempty"`
	ArmorClass      int     `json:"armorClass"`
	HitPoints       int     `json:"hitPoints"`
	ChallengeRating float64 `json:"challengeRating"`
}

func (m Monster) EntityID() string { return m.ID }

func (m Monster) Validate() error {
	return errors.Join(requireField("name", m.Name), requireField("index", m.Index))
}

type Spell struct {
	ID          string   `json:"id"`
	Index       string   `json:"index"`
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	School      string   `json:"school,omitempty"`
	Description []string `json:"description,omitempty"`
}

func (s Spell) EntityID() string { return s.ID }

// CacheInfo describes the server-side response cache as reported by the admin endpoint.
type CacheInfo struct {
	Count     int      `json:"count"`
	Keys      []string `json:"keys,omitempty"`
	SizeBytes int64    `json:"sizeBytes,omitempty"`
}
