package items

import (
	"reflect"
	"testing"

	"github.com/pixil98/go-testutil"
)

type testPatient struct {
	health, max int
}

func (p *testPatient) Heal(amount int) int {
	before := p.health
	p.health = min(p.max, p.health+amount)
	return p.health - before
}

func TestUse(t *testing.T) {
	cat := DefaultCatalog()

	tests := map[string]struct {
		stacks    []Stack
		itemID    string
		slot      int
		health    int
		expResult UseResult
		expErr    string
		expHealth int
		expStacks []Stack
	}{
		"fish heals and is consumed": {
			stacks:    []Stack{{ItemID: Fish, Quantity: 2, Slot: 0}},
			itemID:    Fish,
			slot:      0,
			health:    50,
			expResult: Healed{Amount: 20},
			expHealth: 70,
			expStacks: []Stack{{ItemID: Fish, Quantity: 1, Slot: 0}},
		},
		"heal clamps at max": {
			stacks:    []Stack{{ItemID: HealingPotion, Quantity: 1, Slot: 4}},
			itemID:    HealingPotion,
			slot:      4,
			health:    90,
			expResult: Healed{Amount: 10},
			expHealth: 100,
			expStacks: []Stack{},
		},
		"full health still consumes but heals nothing": {
			stacks:    []Stack{{ItemID: Fish, Quantity: 1, Slot: 0}},
			itemID:    Fish,
			slot:      0,
			health:    100,
			expResult: Healed{Amount: 0},
			expHealth: 100,
			expStacks: []Stack{},
		},
		"logs request fire placement": {
			stacks:    []Stack{{ItemID: Logs, Quantity: 3, Slot: 1}},
			itemID:    Logs,
			slot:      1,
			health:    40,
			expResult: PlaceFire{},
			expHealth: 40,
			expStacks: []Stack{{ItemID: Logs, Quantity: 3, Slot: 1}},
		},
		"equipment cannot be used": {
			stacks:    []Stack{{ItemID: BronzeSword, Quantity: 1, Slot: 0}},
			itemID:    BronzeSword,
			slot:      0,
			health:    40,
			expErr:    "cannot be used",
			expHealth: 40,
			expStacks: []Stack{{ItemID: BronzeSword, Quantity: 1, Slot: 0}},
		},
		"other resources cannot be used": {
			stacks:    []Stack{{ItemID: Bones, Quantity: 1, Slot: 0}},
			itemID:    Bones,
			slot:      0,
			health:    40,
			expErr:    "cannot be used",
			expHealth: 40,
			expStacks: []Stack{{ItemID: Bones, Quantity: 1, Slot: 0}},
		},
		"unknown item": {
			stacks:    []Stack{},
			itemID:    "mystery",
			slot:      0,
			health:    40,
			expErr:    "unknown item",
			expHealth: 40,
			expStacks: []Stack{},
		},
		"slot holds a different item": {
			stacks:    []Stack{{ItemID: Ruby, Quantity: 1, Slot: 0}},
			itemID:    Fish,
			slot:      0,
			health:    40,
			expErr:    "item not in slot",
			expHealth: 40,
			expStacks: []Stack{{ItemID: Ruby, Quantity: 1, Slot: 0}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv, err := NewInventory(tt.stacks)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			p := &testPatient{health: tt.health, max: 100}

			res, err := Use(cat, p, inv, tt.itemID, tt.slot)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "result", res, tt.expResult)
			testutil.AssertEqual(t, "health", p.health, tt.expHealth)
			if got := inv.Stacks(); !reflect.DeepEqual(got, tt.expStacks) {
				t.Errorf("stacks: got %v, expected %v", got, tt.expStacks)
			}
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	tests := map[string]struct {
		id           string
		expCategory  string
		expStackable bool
	}{
		"fish":      {id: Fish, expCategory: "consumable", expStackable: true},
		"logs":      {id: Logs, expCategory: "resource", expStackable: true},
		"coins":     {id: Coins, expCategory: "currency", expStackable: true},
		"sword":     {id: BronzeSword, expCategory: "equipment", expStackable: false},
		"ruby":      {id: Ruby, expCategory: "jewelry", expStackable: false},
		"partyhat":  {id: PartyhatBlue, expCategory: "rare", expStackable: false},
		"magic log": {id: MagicLogs, expCategory: "resource", expStackable: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			def, ok := cat.Lookup(tt.id)
			if !ok {
				t.Fatalf("%s missing from catalog", tt.id)
			}
			testutil.AssertEqual(t, "category", Category(def), tt.expCategory)
			testutil.AssertEqual(t, "stackable", def.Stackable(), tt.expStackable)
		})
	}
	testutil.AssertEqual(t, "size", len(cat), 17)
}
