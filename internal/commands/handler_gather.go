package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pixil98/go-pixelmmo/internal/events"
	"github.com/pixil98/go-pixelmmo/internal/items"
	"github.com/pixil98/go-pixelmmo/internal/messages"
	"github.com/pixil98/go-pixelmmo/internal/skills"
)

type fishPayload struct {
	SpotID string `json:"spotId"`
}

type chopPayload struct {
	TreeID string `json:"treeId"`
}

func (h *Handler) fish(cmdCtx *CommandContext, payload json.RawMessage) error {
	var req fishPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}

	spot := cmdCtx.Store.FishingSpot(req.SpotID)
	if spot == nil {
		return nil
	}

	p := cmdCtx.Player
	if !spot.Available {
		return h.userError(events.FishingResult, messages.SpotDepleted)
	}
	if !p.Position.Within(spot.Position, h.rules.InteractionRange) {
		return h.userError(events.FishingResult, messages.TooFar)
	}

	if h.engine.Roller().Float64() >= h.rules.Skilling.FishingSuccessChance {
		cmdCtx.Out.Send(cmdCtx.ConnID, events.FishingResult, events.GatherResultData{
			Success: false,
			Message: h.msgs.Text(messages.FishingFailed, nil),
		})
		return nil
	}

	if err := h.addToInventory(cmdCtx, events.FishingResult, items.Fish, 1); err != nil {
		return err
	}

	lu, err := grantXP(p, skills.Fishing, h.rules.Skilling.FishingXP)
	if err != nil {
		return err
	}
	spot.Available = false
	spot.LastUsed = cmdCtx.Now

	cmdCtx.Out.Send(cmdCtx.ConnID, events.FishingResult, events.GatherResultData{
		Success: true,
		Item:    &events.ItemData{ItemID: items.Fish, Quantity: 1},
		XP:      h.rules.Skilling.FishingXP,
		LevelUp: lu,
	})
	sendInventory(cmdCtx)
	sendSkill(cmdCtx, skills.Fishing)
	return nil
}

func (h *Handler) chop(cmdCtx *CommandContext, payload json.RawMessage) error {
	var req chopPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}

	tree := cmdCtx.Store.Tree(req.TreeID)
	if tree == nil {
		return nil
	}

	p := cmdCtx.Player
	if !tree.Available {
		return h.userError(events.ChoppingResult, messages.TreeChopped)
	}
	if !p.Position.Within(tree.Position, h.rules.InteractionRange) {
		return h.userError(events.ChoppingResult, messages.TooFar)
	}

	if err := h.addToInventory(cmdCtx, events.ChoppingResult, items.Logs, 1); err != nil {
		return err
	}

	lu, err := grantXP(p, skills.Woodcutting, h.rules.Skilling.WoodcuttingXP)
	if err != nil {
		return err
	}
	tree.Available = false
	tree.LastChopped = cmdCtx.Now

	cmdCtx.Out.Broadcast(events.TreeChopped, events.TreeData{TreeID: tree.ID})
	cmdCtx.Out.Send(cmdCtx.ConnID, events.ChoppingResult, events.GatherResultData{
		Success: true,
		Item:    &events.ItemData{ItemID: items.Logs, Quantity: 1},
		XP:      h.rules.Skilling.WoodcuttingXP,
		LevelUp: lu,
	})
	sendInventory(cmdCtx)
	sendSkill(cmdCtx, skills.Woodcutting)
	return nil
}

// addToInventory maps a full inventory to a reply on event.
func (h *Handler) addToInventory(cmdCtx *CommandContext, event, itemID string, qty int) error {
	err := cmdCtx.Player.Inventory.Add(h.catalog, itemID, qty)
	if errors.Is(err, items.ErrInventoryFull) {
		return h.userError(event, messages.InventoryFull)
	}
	if err != nil {
		return fmt.Errorf("adding %s: %w", itemID, err)
	}
	return nil
}
