package items

import "fmt"

// Patient is anything whose health can be restored by a consumable.
type Patient interface {
	// Heal restores up to amount health and returns how much was applied.
	Heal(amount int) int
}

// UseResult is the outcome of using an item: Healed or PlaceFire.
type UseResult interface {
	useResult()
}

// Healed reports a consumable that was eaten and the health it restored.
type Healed struct {
	Amount int
}

// PlaceFire reports that the item needs a target position to become a fire.
type PlaceFire struct{}

func (Healed) useResult()    {}
func (PlaceFire) useResult() {}

// Use applies the item in slot. Consumables heal the patient and are consumed
// one unit at a time. Logs ask for a fire placement and are not consumed.
func Use(cat Catalog, p Patient, inv *Inventory, itemID string, slot int) (UseResult, error) {
	def, ok := cat.Lookup(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}

	st, ok := inv.At(slot)
	if !ok || st.ItemID != itemID {
		return nil, ErrItemNotInSlot
	}

	switch d := def.(type) {
	case Consumable:
		applied := p.Heal(d.HealAmount)
		if err := inv.Remove(slot, 1); err != nil {
			return nil, fmt.Errorf("consuming %s: %w", itemID, err)
		}
		return Healed{Amount: applied}, nil
	case Resource:
		if d.Key == Logs {
			return PlaceFire{}, nil
		}
		return nil, ErrNotUsable
	case Currency, Equipment, Jewelry, Rare:
		return nil, ErrNotUsable
	default:
		return nil, fmt.Errorf("unhandled item category %T", def)
	}
}
