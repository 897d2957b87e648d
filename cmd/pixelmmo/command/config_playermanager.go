package command

import (
	"fmt"

	"github.com/pixil98/go-pixelmmo/internal/commands"
	"github.com/pixil98/go-pixelmmo/internal/game"
	"github.com/pixil98/go-pixelmmo/internal/player"
	"github.com/pixil98/go-pixelmmo/internal/storage"
)

type PlayerManagerConfig struct {
	OutboundBuffer int `json:"outbound_buffer"`
}

func (c *PlayerManagerConfig) validate() error {
	if c.OutboundBuffer < 0 {
		return fmt.Errorf("player_manager: outbound_buffer must not be negative")
	}
	return nil
}

func (c *PlayerManagerConfig) BuildPlayerManager(
	world *game.World,
	cmdHandler *commands.Handler,
	verifier player.Verifier,
	repo storage.Repository,
	subs player.Subscriber,
) *player.PlayerManager {
	var opts []player.PlayerManagerOpt
	if c.OutboundBuffer > 0 {
		opts = append(opts, player.WithOutboundBuffer(c.OutboundBuffer))
	}
	return player.NewPlayerManager(world, cmdHandler, verifier, repo, subs, opts...)
}
