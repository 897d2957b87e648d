package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-pixelmmo/internal/events"
	"github.com/pixil98/go-pixelmmo/internal/game"
	"github.com/pixil98/go-pixelmmo/internal/items"
	"github.com/pixil98/go-pixelmmo/internal/messages"
)

// placeFirepit burns one log at the requested position. A prior useItem on
// logs is not required.
func (h *Handler) placeFirepit(cmdCtx *CommandContext, payload json.RawMessage) error {
	var req movePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}

	p := cmdCtx.Player
	logs, ok := p.Inventory.Find(items.Logs)
	if !ok {
		return h.userError(events.PlaceFirepitResult, messages.NoLogs)
	}
	if err := p.Inventory.Remove(logs.Slot, 1); err != nil {
		return fmt.Errorf("burning logs: %w", err)
	}
	p.Pending = game.PendingNone

	fire := &game.Fire{
		ID:           "fire_" + h.newID(),
		Position:     game.Position{X: req.X, Y: req.Y},
		PlacedBy:     cmdCtx.ConnID,
		PlacedByName: p.Username,
		PlacedAt:     cmdCtx.Now,
	}
	cmdCtx.Store.AddFire(fire)

	cmdCtx.Out.Broadcast(events.FirePlaced, events.FirePlacedData{
		ID:       fire.ID,
		X:        fire.X,
		Y:        fire.Y,
		PlacedBy: fire.PlacedByName,
	})
	sendInventory(cmdCtx)
	cmdCtx.Out.Send(cmdCtx.ConnID, events.PlaceFirepitResult, events.SuccessData{Success: true})
	return nil
}
