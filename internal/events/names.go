package events

// Server to client event names.
const (
	Init                 = "init"
	PlayerJoined         = "playerJoined"
	PlayerLeft           = "playerLeft"
	PlayerMoved          = "playerMoved"
	MoveRejected         = "moveRejected"
	AttackResult         = "attackResult"
	MonsterDamaged       = "monsterDamaged"
	MonsterKilled        = "monsterKilled"
	MonsterSpawned       = "monsterSpawned"
	MonsterPositions     = "monsterPositions"
	GroundItemSpawned    = "groundItemSpawned"
	GroundItemPickedUp   = "groundItemPickedUp"
	LootDropped          = "lootDropped"
	SkillUpdate          = "skillUpdate"
	InventoryUpdate      = "inventoryUpdate"
	FishingResult        = "fishingResult"
	FishingSpotRespawned = "fishingSpotRespawned"
	ChoppingResult       = "choppingResult"
	TreeChopped          = "treeChopped"
	TreeRespawned        = "treeRespawned"
	UseItemResult        = "useItemResult"
	PlaceFirepitResult   = "placeFirepitResult"
	FirePlaced           = "firePlaced"
	FireDespawned        = "fireDespawned"
	HealthUpdate         = "healthUpdate"
	PickupResult         = "pickupResult"
	PlayerDamaged        = "playerDamaged"
	PlayerHit            = "playerHit"
	PlayerDied           = "playerDied"
	PlayerRespawned      = "playerRespawned"
)
