package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-pixelmmo/internal/events"
	"github.com/pixil98/go-pixelmmo/internal/messages"
)

type pickupPayload struct {
	GroundItemID string `json:"groundItemId"`
}

func (h *Handler) pickupGroundItem(cmdCtx *CommandContext, payload json.RawMessage) error {
	var req pickupPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}

	gi := cmdCtx.Store.GroundItem(req.GroundItemID)
	if gi == nil {
		return nil
	}
	if !cmdCtx.Player.Position.Within(gi.Position, h.rules.InteractionRange) {
		return h.userError(events.PickupResult, messages.TooFar)
	}

	if err := h.addToInventory(cmdCtx, events.PickupResult, gi.ItemID, gi.Quantity); err != nil {
		return err
	}
	cmdCtx.Store.RemoveGroundItem(gi.ID)

	cmdCtx.Out.Broadcast(events.GroundItemPickedUp, events.GroundItemPickedUpData{GroundItemID: gi.ID})
	sendInventory(cmdCtx)
	cmdCtx.Out.Send(cmdCtx.ConnID, events.PickupResult, events.PickupResultData{
		Success: true,
		Item:    events.ItemData{ItemID: gi.ItemID, Quantity: gi.Quantity},
	})
	return nil
}
