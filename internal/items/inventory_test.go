package items

import (
	"reflect"
	"testing"

	"github.com/pixil98/go-testutil"
)

func fullInventory(t *testing.T, cat Catalog) *Inventory {
	t.Helper()
	inv := &Inventory{}
	for range MaxSlots {
		if err := inv.Add(cat, BronzeSword, 1); err != nil {
			t.Fatalf("filling inventory: %v", err)
		}
	}
	return inv
}

func TestInventory_Add(t *testing.T) {
	cat := DefaultCatalog()

	tests := map[string]struct {
		setup     func(t *testing.T) *Inventory
		itemID    string
		qty       int
		expErr    string
		expStacks []Stack
	}{
		"new stack goes in slot 0": {
			setup:     func(t *testing.T) *Inventory { return &Inventory{} },
			itemID:    Logs,
			qty:       1,
			expStacks: []Stack{{ItemID: Logs, Quantity: 1, Slot: 0}},
		},
		"stackable merges": {
			setup: func(t *testing.T) *Inventory {
				inv := &Inventory{}
				_ = inv.Add(cat, Coins, 5)
				return inv
			},
			itemID:    Coins,
			qty:       10,
			expStacks: []Stack{{ItemID: Coins, Quantity: 15, Slot: 0}},
		},
		"non-stackable takes a new slot": {
			setup: func(t *testing.T) *Inventory {
				inv := &Inventory{}
				_ = inv.Add(cat, Ruby, 1)
				return inv
			},
			itemID: Ruby,
			qty:    1,
			expStacks: []Stack{
				{ItemID: Ruby, Quantity: 1, Slot: 0},
				{ItemID: Ruby, Quantity: 1, Slot: 1},
			},
		},
		"fills lowest free slot": {
			setup: func(t *testing.T) *Inventory {
				inv, _ := NewInventory([]Stack{
					{ItemID: Ruby, Quantity: 1, Slot: 0},
					{ItemID: Diamond, Quantity: 1, Slot: 2},
				})
				return inv
			},
			itemID: Fish,
			qty:    1,
			expStacks: []Stack{
				{ItemID: Ruby, Quantity: 1, Slot: 0},
				{ItemID: Fish, Quantity: 1, Slot: 1},
				{ItemID: Diamond, Quantity: 1, Slot: 2},
			},
		},
		"unknown item": {
			setup:     func(t *testing.T) *Inventory { return &Inventory{} },
			itemID:    "rubber_chicken",
			qty:       1,
			expErr:    "unknown item",
			expStacks: []Stack{},
		},
		"zero quantity": {
			setup:     func(t *testing.T) *Inventory { return &Inventory{} },
			itemID:    Logs,
			qty:       0,
			expErr:    "quantity must be positive",
			expStacks: []Stack{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv := tt.setup(t)
			err := inv.Add(cat, tt.itemID, tt.qty)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := inv.Stacks(); !reflect.DeepEqual(got, tt.expStacks) {
				t.Errorf("stacks: got %v, expected %v", got, tt.expStacks)
			}
		})
	}
}

func TestInventory_AddWhenFull(t *testing.T) {
	cat := DefaultCatalog()

	t.Run("new stack rejected", func(t *testing.T) {
		inv := fullInventory(t, cat)
		err := inv.Add(cat, Ruby, 1)
		testutil.AssertErrorContains(t, err, "inventory full")
		testutil.AssertEqual(t, "len", inv.Len(), MaxSlots)
	})

	t.Run("merge skips capacity check", func(t *testing.T) {
		inv := &Inventory{}
		_ = inv.Add(cat, Coins, 1)
		for range MaxSlots - 1 {
			_ = inv.Add(cat, Ruby, 1)
		}
		testutil.AssertEqual(t, "has space", inv.HasSpace(), false)

		if err := inv.Add(cat, Coins, 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "coins", inv.Count(Coins), 8)
	})
}

func TestInventory_Invariants(t *testing.T) {
	cat := DefaultCatalog()
	inv := &Inventory{}
	ids := []string{Logs, Ruby, Coins, Fish, Diamond, Logs, BronzeSword, Coins, PartyhatRed}
	for i := range 100 {
		_ = inv.Add(cat, ids[i%len(ids)], 1)
		if i%7 == 0 {
			_, _ = inv.Drop(i % MaxSlots)
		}

		slots := map[int]bool{}
		perItem := map[string]int{}
		for _, s := range inv.Stacks() {
			if slots[s.Slot] {
				t.Fatalf("duplicate slot %d", s.Slot)
			}
			slots[s.Slot] = true
			perItem[s.ItemID]++
			if s.Quantity <= 0 {
				t.Fatalf("non-positive quantity in slot %d", s.Slot)
			}
		}
		if inv.Len() > MaxSlots {
			t.Fatalf("inventory over capacity: %d", inv.Len())
		}
		for id, n := range perItem {
			if def, _ := cat.Lookup(id); def.Stackable() && n > 1 {
				t.Fatalf("stackable %s spread over %d stacks", id, n)
			}
		}
	}
}

func TestInventory_Remove(t *testing.T) {
	tests := map[string]struct {
		start     []Stack
		slot      int
		qty       int
		expErr    string
		expStacks []Stack
	}{
		"partial": {
			start:     []Stack{{ItemID: Coins, Quantity: 10, Slot: 3}},
			slot:      3,
			qty:       4,
			expStacks: []Stack{{ItemID: Coins, Quantity: 6, Slot: 3}},
		},
		"exhausts stack": {
			start:     []Stack{{ItemID: Fish, Quantity: 1, Slot: 0}},
			slot:      0,
			qty:       1,
			expStacks: []Stack{},
		},
		"over-remove deletes stack": {
			start:     []Stack{{ItemID: Fish, Quantity: 2, Slot: 0}},
			slot:      0,
			qty:       5,
			expStacks: []Stack{},
		},
		"empty slot": {
			start:     []Stack{{ItemID: Fish, Quantity: 2, Slot: 0}},
			slot:      9,
			qty:       1,
			expErr:    "slot is empty",
			expStacks: []Stack{{ItemID: Fish, Quantity: 2, Slot: 0}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv, err := NewInventory(tt.start)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			err = inv.Remove(tt.slot, tt.qty)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := inv.Stacks(); !reflect.DeepEqual(got, tt.expStacks) {
				t.Errorf("stacks: got %v, expected %v", got, tt.expStacks)
			}
		})
	}
}

func TestInventory_DropThenAddRestoresContents(t *testing.T) {
	cat := DefaultCatalog()
	inv, err := NewInventory([]Stack{
		{ItemID: Coins, Quantity: 42, Slot: 0},
		{ItemID: Ruby, Quantity: 1, Slot: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := inv.Stacks()

	dropped, err := inv.Drop(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "dropped", dropped, Stack{ItemID: Coins, Quantity: 42, Slot: 0})

	if err := inv.Add(cat, dropped.ItemID, dropped.Quantity); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := inv.Stacks(); !reflect.DeepEqual(got, before) {
		t.Errorf("restored: got %v, expected %v", got, before)
	}

	_, err = inv.Drop(5)
	testutil.AssertErrorContains(t, err, "slot is empty")
}

func TestNewInventory_Rejects(t *testing.T) {
	tests := map[string]struct {
		stacks []Stack
		expErr string
	}{
		"duplicate slot": {
			stacks: []Stack{{ItemID: Fish, Quantity: 1, Slot: 0}, {ItemID: Logs, Quantity: 1, Slot: 0}},
			expErr: "duplicate slot",
		},
		"out of range": {
			stacks: []Stack{{ItemID: Fish, Quantity: 1, Slot: MaxSlots}},
			expErr: "out of range",
		},
		"zero quantity": {
			stacks: []Stack{{ItemID: Fish, Quantity: 0, Slot: 1}},
			expErr: "quantity must be positive",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewInventory(tt.stacks)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
