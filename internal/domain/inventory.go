package domain

import "fmt"

type InventoryItem struct {
	EquipmentID string  `json:"equipmentId"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Weight      float64 `json:"weight,omitempty"`
	Equipped    bool    `json:"equipped,omitempty"`
}

type Inventory struct {
	ID          string          `json:"id"`
	CharacterID string          `json:"characterId,omitempty"`
	Name        string          `json:"name"`
	Items       []InventoryItem `json:"items"`
	Currency    Currency        `json:"currency"`
}

func (i Inventory) EntityID() string { return i.ID }

func (i Inventory) Validate() error {
	return requireField("name", i.Name)
}

func (i Inventory) FindItem(equipmentID string) (InventoryItem, int, bool) {
	for idx, item := range i.Items {
		if item.EquipmentID == equipmentID {
			return item, idx, true
		}
	}
	return InventoryItem{}, -1, false
}

// AdjustItem changes the quantity of an existing item, clamped at zero.
func (i *Inventory) AdjustItem(equipmentID string, delta int) error {
	_, idx, ok := i.FindItem(equipmentID)
	if !ok {
		return fmt.Errorf("%w: %s in inventory %s", ErrItemNotFound, equipmentID, i.ID)
	}
	i.Items[idx].Quantity = AdjustQuantity(i.Items[idx].Quantity, delta)
	return nil
}

// Credit adds quantity of an item, appending a new entry when the inventory does not hold it yet.
func (i *Inventory) Credit(item InventoryItem, quantity int) {
	if _, idx, ok := i.FindItem(item.EquipmentID); ok {
		i.Items[idx].Quantity = AdjustQuantity(i.Items[idx].Quantity, quantity)
		return
	}
	item.Quantity = AdjustQuantity(0, quantity)
	item.Equipped = false
	i.Items = append(i.Items, item)
}

func (i *Inventory) RemoveItem(equipmentID string) bool {
	_, idx, ok := i.FindItem(equipmentID)
	if !ok {
		return false
	}
	i.Items = append(i.Items[:idx:idx], i.Items[idx+1:]...)
	return true
}

func (i Inventory) TotalWeight() float64 {
	var total float64
	for _, item := range i.Items {
		total += item.Weight * float64(item.Quantity)
	}
	return total
}

// AdjustQuantity returns current+delta, never below zero.
func AdjustQuantity(current, delta int) int {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}
