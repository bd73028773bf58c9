package domain

import (
	"fmt"
	"strings"
)

// Entity is anything the API stores under a unique string id.
type Entity interface {
	EntityID() string
}

type Resource string

const (
	ResourceCharacter Resource = "character"
	ResourceInventory Resource = "inventory"
	ResourceNote      Resource = "note"
	ResourceSpell     Resource = "spell"
	ResourceEquipment Resource = "equipment"
	ResourceMonster   Resource = "monster"
	ResourceUser      Resource = "user"
	ResourceCampaign  Resource = "campaign"
)

func (r Resource) Label() string {
	switch r {
	case ResourceInventory:
		return "inventory"
	case ResourceEquipment:
		return "equipment"
	default:
		return string(r)
	}
}

// Scope narrows a collection load to the children of one parent, e.g. the notes of a character.
type Scope struct {
	Field string
	ID    string
}

func (s Scope) IsZero() bool {
	return strings.TrimSpace(s.Field) == "" || strings.TrimSpace(s.ID) == ""
}

func (s Scope) String() string {
	if s.IsZero() {
		return "all"
	}
	return fmt.Sprintf("%s=%s", s.Field, s.ID)
}

func CharacterScope(characterID string) Scope {
	return Scope{Field: "character", ID: characterID}
}

func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, name)
	}
	return nil
}
