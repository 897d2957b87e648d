package events

import "github.com/pixil98/go-pixelmmo/internal/skills"

// ErrorReply is sent to a single connection when a command fails validation.
type ErrorReply struct {
	Error string `json:"error"`
}

type PlayerJoinedData struct {
	SocketID  string  `json:"socketId"`
	Username  string  `json:"username"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
}

type PlayerLeftData struct {
	SocketID string `json:"socketId"`
}

type PlayerMovedData struct {
	SocketID string  `json:"socketId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type MoveRejectedData struct {
	Message string  `json:"message"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// LevelUpData is present in results only when a level was gained.
type LevelUpData struct {
	LeveledUp bool   `json:"leveledUp"`
	Skill     string `json:"skill"`
	OldLevel  int    `json:"oldLevel"`
	NewLevel  int    `json:"newLevel"`
}

// NewLevelUpData returns nil unless the grant crossed a level threshold.
func NewLevelUpData(lu skills.LevelUp) *LevelUpData {
	if !lu.Leveled() {
		return nil
	}
	return &LevelUpData{LeveledUp: true, Skill: lu.Skill, OldLevel: lu.OldLevel, NewLevel: lu.NewLevel}
}

type AttackResultData struct {
	Damage  int          `json:"damage"`
	XP      int          `json:"xp"`
	Killed  bool         `json:"killed"`
	Loot    any          `json:"loot"`
	LevelUp *LevelUpData `json:"levelUp"`
}

type MonsterDamagedData struct {
	MonsterID    string `json:"monsterId"`
	Health       int    `json:"health"`
	MaxHealth    int    `json:"maxHealth"`
	Damage       int    `json:"damage"`
	AttackerID   string `json:"attackerId"`
	AttackerName string `json:"attackerName"`
}

type MonsterKilledData struct {
	MonsterID string `json:"monsterId"`
}

type MonsterSpawnedData struct {
	MonsterID string  `json:"monsterId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
}

type MonsterPosition struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type MonsterPositionsData struct {
	Monsters []MonsterPosition `json:"monsters"`
}

type LootDroppedData struct {
	Item   any    `json:"item"`
	Rarity string `json:"rarity"`
}

type SkillUpdateData struct {
	Skill string `json:"skill"`
	Level int    `json:"level"`
	XP    int    `json:"xp"`
}

type InventoryUpdateData struct {
	Inventory any `json:"inventory"`
}

// ItemData names an item and how many of it changed hands.
type ItemData struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// GatherResultData answers fish and chop commands.
type GatherResultData struct {
	Success bool         `json:"success"`
	Item    *ItemData    `json:"item,omitempty"`
	XP      int          `json:"xp,omitempty"`
	LevelUp *LevelUpData `json:"levelUp,omitempty"`
	Message string       `json:"message,omitempty"`
}

type TreeData struct {
	TreeID string `json:"treeId"`
}

type FishingSpotData struct {
	SpotID string `json:"spotId"`
}

type UseItemResultData struct {
	Success          bool   `json:"success"`
	Action           string `json:"action"`
	Amount           int    `json:"amount,omitempty"`
	RequiresPosition bool   `json:"requiresPosition,omitempty"`
}

type SuccessData struct {
	Success bool `json:"success"`
}

type FirePlacedData struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	PlacedBy string  `json:"placedBy"`
}

type FireDespawnedData struct {
	FireID string `json:"fireId"`
}

type HealthUpdateData struct {
	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth"`
}

type GroundItemPickedUpData struct {
	GroundItemID string `json:"groundItemId"`
}

type PickupResultData struct {
	Success bool     `json:"success"`
	Item    ItemData `json:"item"`
}

type PlayerDamagedData struct {
	Damage    int    `json:"damage"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"maxHealth"`
	MonsterID string `json:"monsterId"`
}

type PlayerHitData struct {
	SocketID  string `json:"socketId"`
	Damage    int    `json:"damage"`
	MonsterID string `json:"monsterId"`
}

type PlayerDiedData struct {
	Message string  `json:"message"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Health  int     `json:"health"`
}

type PlayerRespawnedData struct {
	SocketID string  `json:"socketId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}
