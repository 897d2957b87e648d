package items

// Item identifiers.
const (
	Fish            = "fish"
	Logs            = "logs"
	Coins           = "coins"
	Bones           = "bones"
	RawMeat         = "raw_meat"
	HealingPotion   = "healing_potion"
	BronzeSword     = "bronze_sword"
	LeatherArmor    = "leather_armor"
	SilverOre       = "silver_ore"
	Ruby            = "ruby"
	MagicLogs       = "magic_logs"
	Diamond         = "diamond"
	DragonScale     = "dragon_scale"
	EnchantedAmulet = "enchanted_amulet"
	PartyhatRed     = "partyhat_red"
	PartyhatBlue    = "partyhat_blue"
	PartyhatGreen   = "partyhat_green"
)

// Definition is an entry of the item catalog. The set of implementations is
// closed: Consumable, Resource, Currency, Equipment, Jewelry and Rare.
type Definition interface {
	ID() string
	Name() string
	Stackable() bool
	category() string
}

// Consumable restores health when used.
type Consumable struct {
	Key        string
	Label      string
	HealAmount int
}

// Resource is a stackable gathered material.
type Resource struct {
	Key   string
	Label string
}

// Currency is stackable money.
type Currency struct {
	Key   string
	Label string
}

// Equipment is a wearable, non-stackable item.
type Equipment struct {
	Key   string
	Label string
	Slot  string
}

// Jewelry is a non-stackable valuable.
type Jewelry struct {
	Key   string
	Label string
}

// Rare is a non-stackable collectible.
type Rare struct {
	Key   string
	Label string
}

func (d Consumable) ID() string       { return d.Key }
func (d Consumable) Name() string     { return d.Label }
func (d Consumable) Stackable() bool  { return true }
func (d Consumable) category() string { return "consumable" }

func (d Resource) ID() string       { return d.Key }
func (d Resource) Name() string     { return d.Label }
func (d Resource) Stackable() bool  { return true }
func (d Resource) category() string { return "resource" }

func (d Currency) ID() string       { return d.Key }
func (d Currency) Name() string     { return d.Label }
func (d Currency) Stackable() bool  { return true }
func (d Currency) category() string { return "currency" }

func (d Equipment) ID() string       { return d.Key }
func (d Equipment) Name() string     { return d.Label }
func (d Equipment) Stackable() bool  { return false }
func (d Equipment) category() string { return "equipment" }

func (d Jewelry) ID() string       { return d.Key }
func (d Jewelry) Name() string     { return d.Label }
func (d Jewelry) Stackable() bool  { return false }
func (d Jewelry) category() string { return "jewelry" }

func (d Rare) ID() string       { return d.Key }
func (d Rare) Name() string     { return d.Label }
func (d Rare) Stackable() bool  { return false }
func (d Rare) category() string { return "rare" }

// Category returns the lowercase category name of a definition.
func Category(d Definition) string {
	return d.category()
}

// Catalog maps item ids to their definitions.
type Catalog map[string]Definition

// Lookup returns the definition for id.
func (c Catalog) Lookup(id string) (Definition, bool) {
	d, ok := c[id]
	return d, ok
}

// NewCatalog builds a catalog from definitions keyed by their ids.
func NewCatalog(defs ...Definition) Catalog {
	c := make(Catalog, len(defs))
	for _, d := range defs {
		c[d.ID()] = d
	}
	return c
}

// DefaultCatalog returns every item the world can produce.
func DefaultCatalog() Catalog {
	return NewCatalog(
		Consumable{Key: Fish, Label: "Fish", HealAmount: 20},
		Consumable{Key: RawMeat, Label: "Raw Meat", HealAmount: 10},
		Consumable{Key: HealingPotion, Label: "Healing Potion", HealAmount: 50},
		Resource{Key: Logs, Label: "Logs"},
		Resource{Key: Bones, Label: "Bones"},
		Resource{Key: SilverOre, Label: "Silver Ore"},
		Resource{Key: MagicLogs, Label: "Magic Logs"},
		Currency{Key: Coins, Label: "Coins"},
		Equipment{Key: BronzeSword, Label: "Bronze Sword", Slot: "weapon"},
		Equipment{Key: LeatherArmor, Label: "Leather Armor", Slot: "armor"},
		Jewelry{Key: Ruby, Label: "Ruby"},
		Jewelry{Key: Diamond, Label: "Diamond"},
		Jewelry{Key: DragonScale, Label: "Dragon Scale"},
		Jewelry{Key: EnchantedAmulet, Label: "Enchanted Amulet"},
		Rare{Key: PartyhatRed, Label: "Red Partyhat"},
		Rare{Key: PartyhatBlue, Label: "Blue Partyhat"},
		Rare{Key: PartyhatGreen, Label: "Green Partyhat"},
	)
}
