package commands

// Command names accepted from clients.
const (
	CmdMove             = "move"
	CmdAttack           = "attack"
	CmdFish             = "fish"
	CmdChop             = "chop"
	CmdUseItem          = "useItem"
	CmdPlaceFirepit     = "placeFirepit"
	CmdPickupGroundItem = "pickupGroundItem"
)

const positionSchema = `{
	"type": "object",
	"properties": {
		"x": {"type": "number"},
		"y": {"type": "number"}
	},
	"required": ["x", "y"]
}`

func idSchema(field string) string {
	return `{
	"type": "object",
	"properties": {
		"` + field + `": {"type": "string", "minLength": 1, "maxLength": 128}
	},
	"required": ["` + field + `"]
}`
}

const useItemSchema = `{
	"type": "object",
	"properties": {
		"itemId": {"type": "string", "minLength": 1, "maxLength": 64},
		"slot": {"type": "integer", "minimum": 0}
	},
	"required": ["itemId", "slot"]
}`
