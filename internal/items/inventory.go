package items

import (
	"fmt"
	"slices"
)

// MaxSlots is the number of inventory slots a player has.
const MaxSlots = 28

// Stack is a quantity of one item occupying a single slot.
type Stack struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Slot     int    `json:"slot"`
}

// Inventory is a fixed-capacity, slot-addressed item container.
// The zero value is an empty inventory.
type Inventory struct {
	stacks []Stack
}

// NewInventory builds an inventory from persisted stacks. Stacks with
// duplicate or out-of-range slots are rejected.
func NewInventory(stacks []Stack) (*Inventory, error) {
	inv := &Inventory{}
	seen := make(map[int]bool, len(stacks))
	for _, s := range stacks {
		if s.Slot < 0 || s.Slot >= MaxSlots {
			return nil, fmt.Errorf("slot %d out of range", s.Slot)
		}
		if seen[s.Slot] {
			return nil, fmt.Errorf("duplicate slot %d", s.Slot)
		}
		if s.Quantity <= 0 {
			return nil, fmt.Errorf("slot %d: %w", s.Slot, ErrInvalidQuantity)
		}
		seen[s.Slot] = true
		inv.stacks = append(inv.stacks, s)
	}
	return inv, nil
}

// Add places qty of itemID into the inventory. Stackable items merge into an
// existing stack without a capacity check; otherwise a new stack is placed in
// the lowest free slot.
func (inv *Inventory) Add(cat Catalog, itemID string, qty int) error {
	def, ok := cat.Lookup(itemID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	if def.Stackable() {
		if i := inv.index(itemID); i >= 0 {
			inv.stacks[i].Quantity += qty
			return nil
		}
	}

	if !inv.HasSpace() {
		return ErrInventoryFull
	}

	inv.stacks = append(inv.stacks, Stack{ItemID: itemID, Quantity: qty, Slot: inv.freeSlot()})
	return nil
}

// Remove takes qty from the stack in slot, deleting the stack when it runs out.
func (inv *Inventory) Remove(slot, qty int) error {
	i := inv.slotIndex(slot)
	if i < 0 {
		return ErrEmptySlot
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	inv.stacks[i].Quantity -= qty
	if inv.stacks[i].Quantity <= 0 {
		inv.stacks = slices.Delete(inv.stacks, i, i+1)
	}
	return nil
}

// Drop removes the whole stack in slot and returns it.
func (inv *Inventory) Drop(slot int) (Stack, error) {
	i := inv.slotIndex(slot)
	if i < 0 {
		return Stack{}, ErrEmptySlot
	}
	s := inv.stacks[i]
	inv.stacks = slices.Delete(inv.stacks, i, i+1)
	return s, nil
}

// HasSpace reports whether a new stack could be placed.
func (inv *Inventory) HasSpace() bool {
	return len(inv.stacks) < MaxSlots
}

// Len returns the number of occupied slots.
func (inv *Inventory) Len() int {
	return len(inv.stacks)
}

// At returns the stack in slot.
func (inv *Inventory) At(slot int) (Stack, bool) {
	i := inv.slotIndex(slot)
	if i < 0 {
		return Stack{}, false
	}
	return inv.stacks[i], true
}

// Find returns the first stack of itemID.
func (inv *Inventory) Find(itemID string) (Stack, bool) {
	i := inv.index(itemID)
	if i < 0 {
		return Stack{}, false
	}
	return inv.stacks[i], true
}

// Count returns the total quantity of itemID across all stacks.
func (inv *Inventory) Count(itemID string) int {
	n := 0
	for _, s := range inv.stacks {
		if s.ItemID == itemID {
			n += s.Quantity
		}
	}
	return n
}

// Stacks returns a copy of the contents ordered by slot.
func (inv *Inventory) Stacks() []Stack {
	out := slices.Clone(inv.stacks)
	slices.SortFunc(out, func(a, b Stack) int { return a.Slot - b.Slot })
	if out == nil {
		out = []Stack{}
	}
	return out
}

func (inv *Inventory) index(itemID string) int {
	return slices.IndexFunc(inv.stacks, func(s Stack) bool { return s.ItemID == itemID })
}

func (inv *Inventory) slotIndex(slot int) int {
	return slices.IndexFunc(inv.stacks, func(s Stack) bool { return s.Slot == slot })
}

func (inv *Inventory) freeSlot() int {
	used := make([]bool, MaxSlots)
	for _, s := range inv.stacks {
		if s.Slot >= 0 && s.Slot < MaxSlots {
			used[s.Slot] = true
		}
	}
	for i, u := range used {
		if !u {
			return i
		}
	}
	return len(inv.stacks)
}
