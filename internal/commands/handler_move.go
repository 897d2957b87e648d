package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-pixelmmo/internal/events"
	"github.com/pixil98/go-pixelmmo/internal/game"
	"github.com/pixil98/go-pixelmmo/internal/messages"
)

type movePayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// move trusts the client's reported position unless a step limit is set.
func (h *Handler) move(cmdCtx *CommandContext, payload json.RawMessage) error {
	var req movePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}

	p := cmdCtx.Player
	to := game.Position{X: req.X, Y: req.Y}
	if h.rules.MaxMoveStep > 0 && !p.Position.Within(to, h.rules.MaxMoveStep) {
		cmdCtx.Out.Send(cmdCtx.ConnID, events.MoveRejected, events.MoveRejectedData{
			Message: h.msgs.Text(messages.MoveTooFar, nil),
			X:       p.X,
			Y:       p.Y,
		})
		return nil
	}

	if err := cmdCtx.Store.MovePlayer(cmdCtx.ConnID, to, cmdCtx.Now); err != nil {
		return err
	}

	cmdCtx.Out.BroadcastExcept(cmdCtx.ConnID, events.PlayerMoved, events.PlayerMovedData{
		SocketID: cmdCtx.ConnID,
		X:        to.X,
		Y:        to.Y,
	})
	return nil
}
