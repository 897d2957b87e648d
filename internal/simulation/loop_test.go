package simulation

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/pixil98/go-pixelmmo/internal/combat"
	"github.com/pixil98/go-pixelmmo/internal/events"
	"github.com/pixil98/go-pixelmmo/internal/game"
	"github.com/pixil98/go-pixelmmo/internal/items"
	"github.com/pixil98/go-pixelmmo/internal/messages"
	"github.com/pixil98/go-pixelmmo/internal/skills"
	"github.com/pixil98/go-pixelmmo/internal/tuning"
	"github.com/pixil98/go-testutil"
)

// fixedRoller always draws the same values.
type fixedRoller struct {
	i int
	f float64
}

func (r fixedRoller) IntN(n int) int   { return r.i % n }
func (r fixedRoller) Float64() float64 { return r.f }

var t0 = time.Unix(1_700_000_000, 0)

func newTestLoop(r combat.Roller) (*Loop, *game.Store) {
	store := game.NewStore()
	world := game.NewWorld(store, &recordingPublisher{})
	engine := combat.NewEngine(combat.WithRoller(r))
	return NewLoop(world, engine, tuning.Default(), messages.Default()), store
}

func addPlayer(t *testing.T, s *game.Store, connID string, pos game.Position, health int) *game.Player {
	t.Helper()
	p := &game.Player{
		ConnID:    connID,
		Username:  "name-" + connID,
		Position:  pos,
		Health:    health,
		MaxHealth: 100,
		Skills:    skills.NewSet(),
		Inventory: &items.Inventory{},
	}
	if err := s.AddPlayer(p); err != nil {
		t.Fatalf("adding player: %v", err)
	}
	return p
}

func addMonster(s *game.Store, pos, spawn game.Position) *game.Monster {
	m := &game.Monster{
		ID:             "monster_0",
		Kind:           "goblin",
		Position:       pos,
		Spawn:          spawn,
		Health:         50,
		MaxHealth:      50,
		AttackCooldown: 3 * time.Second,
		LastRespawn:    t0,
	}
	s.AddMonster(m)
	return m
}

const aiTick = 40

func TestLoop_MonsterAI(t *testing.T) {
	spawn := game.Position{X: 600, Y: 400}

	tests := map[string]struct {
		monsterPos  game.Position
		playerPos   *game.Position
		lastAttack  time.Time
		expPos      game.Position
		expTarget   string
		expAttacked bool
	}{
		"leash pulls home even with player adjacent": {
			monsterPos: game.Position{X: 950, Y: 400},
			playerPos:  &game.Position{X: 960, Y: 400},
			expPos:     game.Position{X: 920, Y: 400},
			expTarget:  "",
		},
		"chases player in aggro range": {
			monsterPos: game.Position{X: 600, Y: 400},
			playerPos:  &game.Position{X: 720, Y: 400},
			expPos:     game.Position{X: 615, Y: 400},
			expTarget:  "a",
		},
		"attacks player in attack range": {
			monsterPos:  game.Position{X: 600, Y: 400},
			playerPos:   &game.Position{X: 650, Y: 400},
			expPos:      game.Position{X: 600, Y: 400},
			expTarget:   "a",
			expAttacked: true,
		},
		"waits for cooldown": {
			monsterPos: game.Position{X: 600, Y: 400},
			playerPos:  &game.Position{X: 650, Y: 400},
			lastAttack: t0.Add(-time.Second),
			expPos:     game.Position{X: 600, Y: 400},
			expTarget:  "a",
		},
		"wanders when nobody is near": {
			monsterPos: game.Position{X: 600, Y: 400},
			playerPos:  &game.Position{X: 100, Y: 100},
			expPos:     game.Position{X: 620, Y: 400},
			expTarget:  "",
		},
		"wander is clamped to bounds": {
			monsterPos: game.Position{X: 795, Y: 400},
			expPos:     game.Position{X: 800, Y: 400},
			expTarget:  "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// Float64 of 0 gives a wander angle of 0, i.e. straight along +x.
			loop, s := newTestLoop(fixedRoller{i: 0, f: 0})
			m := addMonster(s, tt.monsterPos, spawn)
			m.LastAttack = tt.lastAttack
			var p *game.Player
			if tt.playerPos != nil {
				p = addPlayer(t, s, "a", *tt.playerPos, 100)
			}

			out := &events.Outbox{}
			loop.Step(s, out, aiTick, t0)

			testutil.AssertEqual(t, "position", m.Position, tt.expPos)
			testutil.AssertEqual(t, "target", m.Target, tt.expTarget)

			damaged := out.Named(events.PlayerDamaged)
			hits := out.Named(events.PlayerHit)
			if tt.expAttacked {
				testutil.AssertEqual(t, "damaged events", len(damaged), 1)
				testutil.AssertEqual(t, "damaged target", damaged[0].Target, "a")
				testutil.AssertEqual(t, "hit broadcast", len(hits), 1)
				testutil.AssertEqual(t, "hit is broadcast", hits[0].Broadcast(), true)
				testutil.AssertEqual(t, "health", p.Health, 97)
				testutil.AssertEqual(t, "last attack", m.LastAttack, t0)
			} else {
				testutil.AssertEqual(t, "damaged events", len(damaged), 0)
				testutil.AssertEqual(t, "hit events", len(hits), 0)
			}
		})
	}
}

func TestLoop_AIOnlyOnSchedule(t *testing.T) {
	loop, s := newTestLoop(fixedRoller{})
	m := addMonster(s, game.Position{X: 600, Y: 400}, game.Position{X: 600, Y: 400})
	addPlayer(t, s, "a", game.Position{X: 650, Y: 400}, 100)

	for tick := uint64(1); tick < aiTick; tick++ {
		out := &events.Outbox{}
		loop.Step(s, out, tick, t0)
		testutil.AssertEqual(t, "no attack before schedule", len(out.Named(events.PlayerDamaged)), 0)
	}
	testutil.AssertEqual(t, "no target yet", m.Target, "")
}

func TestLoop_PlayerDeath(t *testing.T) {
	// IntN 5 with range [3, 8] rolls the maximum 8.
	loop, s := newTestLoop(fixedRoller{i: 5})
	m := addMonster(s, game.Position{X: 600, Y: 400}, game.Position{X: 600, Y: 400})
	p := addPlayer(t, s, "a", game.Position{X: 640, Y: 400}, 1)
	addPlayer(t, s, "b", game.Position{X: 200, Y: 200}, 100)

	out := &events.Outbox{}
	loop.Step(s, out, aiTick, t0)

	died := out.Named(events.PlayerDied)
	testutil.AssertEqual(t, "died once", len(died), 1)
	testutil.AssertEqual(t, "died target", died[0].Target, "a")
	testutil.AssertEqual(t, "died payload", died[0].Data, any(events.PlayerDiedData{
		Message: "You have died! Respawning...",
		X:       100,
		Y:       100,
		Health:  100,
	}))
	testutil.AssertEqual(t, "respawned broadcast", len(out.Named(events.PlayerRespawned)), 1)
	testutil.AssertEqual(t, "health restored", p.Health, 100)
	testutil.AssertEqual(t, "position reset", p.Position, game.Position{X: 100, Y: 100})
	testutil.AssertEqual(t, "monster target cleared", m.Target, "")

	damaged := out.Named(events.PlayerDamaged)
	testutil.AssertEqual(t, "damage reported", damaged[0].Data.(events.PlayerDamagedData).Health, 0)

	// The next attack window does not re-trigger death for a healthy player.
	out = &events.Outbox{}
	loop.Step(s, out, aiTick*2, t0.Add(4*time.Second))
	testutil.AssertEqual(t, "no second death", len(out.Named(events.PlayerDied)), 0)
}

func TestLoop_FireHealing(t *testing.T) {
	loop, s := newTestLoop(fixedRoller{})
	s.AddFire(&game.Fire{ID: "fire-1", Position: game.Position{X: 0, Y: 0}, PlacedAt: t0})
	edge := addPlayer(t, s, "edge", game.Position{X: 100, Y: 0}, 50)
	outside := addPlayer(t, s, "out", game.Position{X: 100.01, Y: 0}, 50)
	full := addPlayer(t, s, "full", game.Position{X: 10, Y: 0}, 100)
	almost := addPlayer(t, s, "almost", game.Position{X: 0, Y: 10}, 99)

	out := &events.Outbox{}
	loop.Step(s, out, 1, t0)

	testutil.AssertEqual(t, "edge healed", edge.Health, 52)
	testutil.AssertEqual(t, "outside untouched", outside.Health, 50)
	testutil.AssertEqual(t, "full untouched", full.Health, 100)
	testutil.AssertEqual(t, "almost clamped", almost.Health, 100)

	updates := out.Named(events.HealthUpdate)
	testutil.AssertEqual(t, "health updates", len(updates), 2)
}

func TestLoop_ResourceRespawn(t *testing.T) {
	loop, s := newTestLoop(fixedRoller{})
	s.AddTree(&game.Tree{ID: "tree_0", LastChopped: t0})
	s.AddFishingSpot(&game.FishingSpot{ID: "spot_0", LastUsed: t0})

	out := &events.Outbox{}
	loop.Step(s, out, 1, t0.Add(29999*time.Millisecond))
	testutil.AssertEqual(t, "tree still chopped", s.Tree("tree_0").Available, false)
	testutil.AssertEqual(t, "spot still used", s.FishingSpot("spot_0").Available, false)
	testutil.AssertEqual(t, "no events", out.Len(), 0)

	out = &events.Outbox{}
	loop.Step(s, out, 2, t0.Add(30*time.Second))
	testutil.AssertEqual(t, "tree back", s.Tree("tree_0").Available, true)
	testutil.AssertEqual(t, "spot back", s.FishingSpot("spot_0").Available, true)
	testutil.AssertEqual(t, "tree event", out.Named(events.TreeRespawned)[0].Data, any(events.TreeData{TreeID: "tree_0"}))
	testutil.AssertEqual(t, "spot event", out.Named(events.FishingSpotRespawned)[0].Data, any(events.FishingSpotData{SpotID: "spot_0"}))
}

func TestLoop_MonsterRespawn(t *testing.T) {
	loop, s := newTestLoop(fixedRoller{})
	m := addMonster(s, game.Position{X: 700, Y: 500}, game.Position{X: 600, Y: 400})
	died := t0.Add(time.Minute)
	m.ApplyDamage(100, died)

	out := &events.Outbox{}
	loop.Step(s, out, 1, died.Add(29*time.Second))
	testutil.AssertEqual(t, "still dead", m.Alive(), false)

	out = &events.Outbox{}
	later := died.Add(30 * time.Second)
	loop.Step(s, out, 2, later)
	testutil.AssertEqual(t, "alive", m.Alive(), true)
	testutil.AssertEqual(t, "at spawn", m.Position, m.Spawn)
	testutil.AssertEqual(t, "last respawn", m.LastRespawn, later)
	testutil.AssertEqual(t, "spawn event", out.Named(events.MonsterSpawned)[0].Data, any(events.MonsterSpawnedData{
		MonsterID: "monster_0",
		X:         600,
		Y:         400,
		Health:    50,
		MaxHealth: 50,
	}))
}

func TestLoop_FireExpiry(t *testing.T) {
	loop, s := newTestLoop(fixedRoller{})
	s.AddFire(&game.Fire{ID: "fire-1", PlacedAt: t0})

	out := &events.Outbox{}
	loop.Step(s, out, 1, t0.Add(299999*time.Millisecond))
	testutil.AssertEqual(t, "fire kept", s.Fire("fire-1") != nil, true)

	out = &events.Outbox{}
	loop.Step(s, out, 2, t0.Add(5*time.Minute))
	testutil.AssertEqual(t, "fire removed", s.Fire("fire-1") == nil, true)
	testutil.AssertEqual(t, "despawn event", out.Named(events.FireDespawned)[0].Data, any(events.FireDespawnedData{FireID: "fire-1"}))
}

func TestLoop_PositionBroadcast(t *testing.T) {
	loop, s := newTestLoop(fixedRoller{})
	m := addMonster(s, game.Position{X: 610, Y: 420}, game.Position{X: 600, Y: 400})

	out := &events.Outbox{}
	loop.Step(s, out, 19, t0)
	testutil.AssertEqual(t, "off schedule", len(out.Named(events.MonsterPositions)), 0)

	out = &events.Outbox{}
	loop.Step(s, out, 20, t0)
	positions := out.Named(events.MonsterPositions)
	testutil.AssertEqual(t, "broadcast", len(positions), 1)
	expPositions := events.MonsterPositionsData{
		Monsters: []events.MonsterPosition{{ID: "monster_0", X: 610, Y: 420}},
	}
	if !reflect.DeepEqual(positions[0].Data, expPositions) {
		t.Errorf("payload: got %+v", positions[0].Data)
	}

	m.ApplyDamage(100, t0)
	out = &events.Outbox{}
	loop.Step(s, out, 20, t0)
	testutil.AssertEqual(t, "no live monsters", len(out.Named(events.MonsterPositions)), 0)
}

func TestLoop_Tick(t *testing.T) {
	pub := &recordingPublisher{}
	store := game.NewStore()
	world := game.NewWorld(store, pub)
	now := t0
	loop := NewLoop(world, combat.NewEngine(combat.WithRoller(fixedRoller{})), tuning.Default(), messages.Default(),
		WithClock(func() time.Time { return now }))
	addMonster(store, game.Position{X: 600, Y: 400}, game.Position{X: 600, Y: 400})
	addPlayer(t, store, "a", game.Position{X: 100, Y: 100}, 100)

	for range 20 {
		if err := loop.Tick(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	testutil.AssertEqual(t, "one positions broadcast", len(pub.messages), 1)
	testutil.AssertEqual(t, "to player", pub.messages[0].connID, "a")
}
