package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-pixelmmo/internal/events"
	"github.com/pixil98/go-pixelmmo/internal/messages"
	"github.com/pixil98/go-pixelmmo/internal/skills"
)

type attackPayload struct {
	MonsterID string `json:"monsterId"`
}

func (h *Handler) attack(cmdCtx *CommandContext, payload json.RawMessage) error {
	var req attackPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}

	m := cmdCtx.Store.Monster(req.MonsterID)
	if m == nil {
		return nil
	}

	p := cmdCtx.Player
	if !m.Alive() {
		return h.userError(events.AttackResult, messages.MonsterDead)
	}
	if !p.Position.Within(m.Position, h.rules.InteractionRange) {
		return h.userError(events.AttackResult, messages.TooFar)
	}

	res, err := h.engine.Attack(p, m, cmdCtx.Now)
	if err != nil {
		return err
	}

	var loot any
	if res.Loot != nil {
		loot = res.Loot
	}
	cmdCtx.Out.Send(cmdCtx.ConnID, events.AttackResult, events.AttackResultData{
		Damage:  res.Damage,
		XP:      res.XP,
		Killed:  res.Killed,
		Loot:    loot,
		LevelUp: events.NewLevelUpData(res.LevelUp),
	})

	cmdCtx.Out.Broadcast(events.MonsterDamaged, events.MonsterDamagedData{
		MonsterID:    m.ID,
		Health:       m.Health,
		MaxHealth:    m.MaxHealth,
		Damage:       res.Damage,
		AttackerID:   cmdCtx.ConnID,
		AttackerName: p.Username,
	})

	if res.Killed {
		cmdCtx.Out.Broadcast(events.MonsterKilled, events.MonsterKilledData{MonsterID: m.ID})

		if res.Loot != nil {
			gi := cmdCtx.Store.AddGroundItem(res.Loot.ItemID, res.Loot.Quantity, m.Position, cmdCtx.Now)
			cmdCtx.Out.Broadcast(events.GroundItemSpawned, gi.View())
			cmdCtx.Out.Send(cmdCtx.ConnID, events.LootDropped, events.LootDroppedData{
				Item:   res.Loot,
				Rarity: string(res.Loot.Rarity),
			})
		}
	}

	sendSkill(cmdCtx, skills.Combat)
	return nil
}
