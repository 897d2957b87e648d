package combat

import "github.com/pixil98/go-pixelmmo/internal/items"

// Tier is the rarity band of a drop.
type Tier string

const (
	TierUltraRare Tier = "ultra_rare"
	TierVeryRare  Tier = "very_rare"
	TierRare      Tier = "rare"
	TierUncommon  Tier = "uncommon"
	TierCommon    Tier = "common"
)

// Loot is an item dropped by a killed monster.
type Loot struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Rarity   Tier   `json:"rarity"`
}

type lootEntry struct {
	itemID string
	minQty int
	maxQty int
}

type lootBand struct {
	tier    Tier
	below   float64 // exclusive upper bound of the roll, in percent
	entries []lootEntry
}

func single(id string) lootEntry { return lootEntry{itemID: id, minQty: 1, maxQty: 1} }

// lootTable is ordered by ascending bound; the last band catches the rest.
var lootTable = []lootBand{
	{tier: TierUltraRare, below: 0.1, entries: []lootEntry{
		single(items.PartyhatRed), single(items.PartyhatBlue), single(items.PartyhatGreen),
	}},
	{tier: TierVeryRare, below: 1.0, entries: []lootEntry{
		single(items.Diamond), single(items.DragonScale), single(items.EnchantedAmulet),
	}},
	{tier: TierRare, below: 10.0, entries: []lootEntry{
		single(items.SilverOre), single(items.Ruby), single(items.MagicLogs),
		{itemID: items.Coins, minQty: 50, maxQty: 100},
	}},
	{tier: TierUncommon, below: 40.0, entries: []lootEntry{
		single(items.HealingPotion), single(items.BronzeSword), single(items.LeatherArmor),
	}},
	{tier: TierCommon, below: 100.0, entries: []lootEntry{
		single(items.Bones), single(items.RawMeat),
		{itemID: items.Coins, minQty: 5, maxQty: 15},
	}},
}

// TierForRoll maps a roll in [0, 100) to its rarity band.
func TierForRoll(roll float64) Tier {
	return bandForRoll(roll).tier
}

func bandForRoll(roll float64) lootBand {
	for _, b := range lootTable {
		if roll < b.below {
			return b
		}
	}
	return lootTable[len(lootTable)-1]
}

// RollLoot draws a drop from the loot table. Every kill produces exactly one item.
func RollLoot(r Roller) Loot {
	band := bandForRoll(r.Float64() * 100)
	e := band.entries[r.IntN(len(band.entries))]
	return Loot{
		ItemID:   e.itemID,
		Quantity: RollRange(r, e.minQty, e.maxQty),
		Rarity:   band.tier,
	}
}
