package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pixil98/go-pixelmmo/internal/events"
	"github.com/pixil98/go-pixelmmo/internal/game"
	"github.com/pixil98/go-pixelmmo/internal/items"
	"github.com/pixil98/go-pixelmmo/internal/messages"
)

type useItemPayload struct {
	ItemID string `json:"itemId"`
	Slot   int    `json:"slot"`
}

func (h *Handler) useItem(cmdCtx *CommandContext, payload json.RawMessage) error {
	var req useItemPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}

	p := cmdCtx.Player
	res, err := items.Use(h.catalog, p, p.Inventory, req.ItemID, req.Slot)
	switch {
	case errors.Is(err, items.ErrUnknownItem):
		return h.userError(events.UseItemResult, messages.InvalidItem)
	case errors.Is(err, items.ErrItemNotInSlot):
		return h.userError(events.UseItemResult, messages.NotInSlot)
	case errors.Is(err, items.ErrNotUsable):
		return h.userError(events.UseItemResult, messages.NotUsable)
	case err != nil:
		return fmt.Errorf("using %s: %w", req.ItemID, err)
	}

	switch r := res.(type) {
	case items.Healed:
		cmdCtx.Out.Send(cmdCtx.ConnID, events.UseItemResult, events.UseItemResultData{
			Success: true,
			Action:  "heal",
			Amount:  r.Amount,
		})
		cmdCtx.Out.Send(cmdCtx.ConnID, events.HealthUpdate, events.HealthUpdateData{
			Health:    p.Health,
			MaxHealth: p.MaxHealth,
		})
		sendInventory(cmdCtx)
	case items.PlaceFire:
		p.Pending = game.PendingFirePlacement
		cmdCtx.Out.Send(cmdCtx.ConnID, events.UseItemResult, events.UseItemResultData{
			Success:          true,
			Action:           "place_fire",
			RequiresPosition: true,
		})
	default:
		return fmt.Errorf("unhandled use result %T", res)
	}
	return nil
}
