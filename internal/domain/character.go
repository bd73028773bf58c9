package domain

type HitPoints struct {
	Current   int `json:"current"`
	Max       int `json:"max"`
	Temporary int `json:"temporary"`
}

type Character struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId,omitempty"`
	CampaignID    string         `json:"campaignId,omitempty"`
	Name          string         `json:"name"`
	Race          string         `json:"race,omitempty"`
	Class         string         `json:"class,omitempty"`
	Level         int            `json:"level"`
	HitPoints     HitPoints      `json:"hitPoints"`
	AbilityScores map[string]int `json:"abilityScores,omitempty"`
	Currency      Currency       `json:"currency"`
	SpellIDs      []string       `json:"spellIds,omitempty"`
}

func (c Character) EntityID() string { return c.ID }

func (c Character) Validate() error {
	return requireField("name", c.Name)
}

// Heal applies damage (negative) or healing (positive), spending temporary points first on damage.
func (hp HitPoints) Heal(delta int) HitPoints {
	if delta < 0 && hp.Temporary > 0 {
		absorbed := min(hp.Temporary, -delta)
		hp.Temporary -= absorbed
		delta += absorbed
	}
	hp.Current += delta
	if hp.Current < 0 {
		hp.Current = 0
	}
	if hp.Max > 0 && hp.Current > hp.Max {
		hp.Current = hp.Max
	}
	return hp
}
