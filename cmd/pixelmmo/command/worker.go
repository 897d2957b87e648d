package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-pixelmmo/internal/combat"
	"github.com/pixil98/go-pixelmmo/internal/commands"
	"github.com/pixil98/go-pixelmmo/internal/driver"
	"github.com/pixil98/go-pixelmmo/internal/game"
	"github.com/pixil98/go-pixelmmo/internal/items"
	"github.com/pixil98/go-pixelmmo/internal/listener"
	"github.com/pixil98/go-pixelmmo/internal/messages"
	"github.com/pixil98/go-pixelmmo/internal/player"
	"github.com/pixil98/go-pixelmmo/internal/simulation"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	rules, err := cfg.Tuning.BuildRules()
	if err != nil {
		return nil, fmt.Errorf("loading tuning: %w", err)
	}

	msgs, err := messages.New(rules.Messages)
	if err != nil {
		return nil, fmt.Errorf("building message catalog: %w", err)
	}

	repo, closeRepo, err := cfg.Storage.BuildRepository()
	if err != nil {
		return nil, fmt.Errorf("opening player storage: %w", err)
	}

	bus, err := cfg.Bus.buildBus()
	if err != nil {
		return nil, fmt.Errorf("creating event bus: %w", err)
	}

	workers := service.WorkerList{
		"bus": bus,
	}

	// Seed the world
	store := game.NewStore()
	store.Populate(rules.WorldSpawns(), time.Now())

	var worldOpts []game.WorldOpt
	if cfg.Journal.Enabled {
		journal := cfg.Journal.BuildWriter()
		worldOpts = append(worldOpts, game.WithRecorder(journal))
		workers["journal"] = journal
	}
	world := game.NewWorld(store, bus, worldOpts...)

	engine := combat.NewEngine(
		combat.WithXPPerDamage(rules.Skilling.CombatXPPerDamage),
		combat.WithMonsterDamage(rules.Monsters.DamageMin, rules.Monsters.DamageMax),
	)

	cmdHandler, err := commands.NewHandler(world, engine, items.DefaultCatalog(), rules, msgs)
	if err != nil {
		return nil, fmt.Errorf("creating command handler: %w", err)
	}

	loop := simulation.NewLoop(world, engine, rules, msgs)
	tickDriver := driver.NewDriver([]driver.Ticker{loop}, driver.WithTickLength(rules.TickLength()))

	pm := cfg.PlayerManager.BuildPlayerManager(world, cmdHandler, cfg.Auth.BuildVerifier(), repo, bus)
	ws := cfg.Listener.BuildListener(listener.NewConnectionManager(pm), world)

	workers["driver"] = &afterBus{bus: bus, next: tickDriver}
	workers["players"] = &playerWorker{pm: pm, closeRepo: closeRepo}
	workers["listener"] = &afterBus{bus: bus, next: ws}

	return workers, nil
}

type starter interface {
	Start(ctx context.Context) error
}

// afterBus holds a worker back until the event bus accepts subscriptions.
type afterBus struct {
	bus  eventBus
	next starter
}

func (a *afterBus) Start(ctx context.Context) error {
	if err := a.bus.WaitReady(ctx); err != nil {
		return nil
	}
	return a.next.Start(ctx)
}

// playerWorker saves everyone at shutdown and then releases the store.
type playerWorker struct {
	pm        *player.PlayerManager
	closeRepo func() error
}

func (w *playerWorker) Start(ctx context.Context) error {
	err := w.pm.Start(ctx)
	if cerr := w.closeRepo(); cerr != nil {
		slog.WarnContext(ctx, "closing player storage", "error", cerr)
	}
	return err
}
