package simulation

import (
	"context"
	"math"
	"time"

	"github.com/pixil98/go-pixelmmo/internal/combat"
	"github.com/pixil98/go-pixelmmo/internal/events"
	"github.com/pixil98/go-pixelmmo/internal/game"
	"github.com/pixil98/go-pixelmmo/internal/messages"
	"github.com/pixil98/go-pixelmmo/internal/tuning"
)

// Loop advances the world by one step per tick: monster AI, fire healing,
// respawns, fire expiry and position broadcasts.
type Loop struct {
	world  *game.World
	engine *combat.Engine
	rules  tuning.Rules
	msgs   *messages.Catalog
	clock  func() time.Time

	ticks uint64
}

type LoopOpt func(*Loop)

func WithClock(clock func() time.Time) LoopOpt {
	return func(l *Loop) {
		l.clock = clock
	}
}

func NewLoop(world *game.World, engine *combat.Engine, rules tuning.Rules, msgs *messages.Catalog, opts ...LoopOpt) *Loop {
	l := &Loop{
		world:  world,
		engine: engine,
		rules:  rules,
		msgs:   msgs,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tick runs one simulation step as a single unit of work.
func (l *Loop) Tick(ctx context.Context) error {
	l.ticks++
	tick := l.ticks
	now := l.clock()

	return l.world.Exec(ctx, func(s *game.Store, out *events.Outbox) error {
		l.Step(s, out, tick, now)
		return nil
	})
}

// Step applies the simulation rules for the given tick number.
func (l *Loop) Step(s *game.Store, out *events.Outbox, tick uint64, now time.Time) {
	if tick%uint64(l.rules.AIEveryTicks) == 0 {
		l.updateMonsters(s, out, now)
	}

	l.healNearFires(s, out)
	l.respawn(s, out, now)
	l.expireFires(s, out, now)

	if tick%uint64(l.rules.BroadcastEveryTicks) == 0 {
		l.broadcastPositions(s, out)
	}
}

func (l *Loop) updateMonsters(s *game.Store, out *events.Outbox, now time.Time) {
	mr := l.rules.Monsters

	for _, m := range s.Monsters() {
		if !m.Alive() {
			continue
		}

		if m.DistanceTo(m.Spawn) > mr.LeashRange {
			m.Target = ""
			m.Position = m.Toward(m.Spawn, mr.LeashStep)
			continue
		}

		target, dist := nearestPlayer(s, m.Position)
		if target != nil && dist <= mr.AggroRange {
			m.Target = target.ConnID
			if dist > mr.AttackRange {
				m.Position = m.Toward(target.Position, mr.ChaseStep)
			} else if m.AttackReady(now) {
				l.monsterAttack(out, m, target)
				m.LastAttack = now
			}
			continue
		}

		m.Target = ""
		angle := l.engine.Roller().Float64() * 2 * math.Pi
		m.Position = mr.WanderBounds.Clamp(m.Heading(angle, mr.WanderStep))
	}
}

// nearestPlayer returns the closest player to pos. Ties go to the lowest
// connection id.
func nearestPlayer(s *game.Store, pos game.Position) (*game.Player, float64) {
	var best *game.Player
	bestDist := math.Inf(1)
	for _, p := range s.Players() {
		if d := pos.DistanceTo(p.Position); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, bestDist
}

func (l *Loop) monsterAttack(out *events.Outbox, m *game.Monster, p *game.Player) {
	dmg := l.engine.MonsterDamage()
	p.Damage(dmg)

	out.Send(p.ConnID, events.PlayerDamaged, events.PlayerDamagedData{
		Damage:    dmg,
		Health:    p.Health,
		MaxHealth: p.MaxHealth,
		MonsterID: m.ID,
	})
	out.Broadcast(events.PlayerHit, events.PlayerHitData{
		SocketID:  p.ConnID,
		Damage:    dmg,
		MonsterID: m.ID,
	})

	if p.Dead() {
		l.killPlayer(out, m, p)
	}
}

func (l *Loop) killPlayer(out *events.Outbox, m *game.Monster, p *game.Player) {
	p.Respawn(l.rules.PlayerRespawnPoint())
	m.Target = ""

	out.Send(p.ConnID, events.PlayerDied, events.PlayerDiedData{
		Message: l.msgs.Text(messages.PlayerDied, p.View()),
		X:       p.X,
		Y:       p.Y,
		Health:  p.Health,
	})
	out.Broadcast(events.PlayerRespawned, events.PlayerRespawnedData{
		SocketID: p.ConnID,
		X:        p.X,
		Y:        p.Y,
	})
}

func (l *Loop) healNearFires(s *game.Store, out *events.Outbox) {
	fr := l.rules.Fires
	for _, f := range s.Fires() {
		for _, p := range s.PlayersInRange(f.Position, fr.HealRange) {
			if p.Health >= p.MaxHealth {
				continue
			}
			p.Heal(fr.HealAmount)
			out.Send(p.ConnID, events.HealthUpdate, events.HealthUpdateData{
				Health:    p.Health,
				MaxHealth: p.MaxHealth,
			})
		}
	}
}

func (l *Loop) respawn(s *game.Store, out *events.Outbox, now time.Time) {
	resourceDelay := l.rules.ResourceRespawn()

	for _, t := range s.Trees() {
		if !t.Available && now.Sub(t.LastChopped) >= resourceDelay {
			t.Available = true
			out.Broadcast(events.TreeRespawned, events.TreeData{TreeID: t.ID})
		}
	}

	for _, fs := range s.FishingSpots() {
		if !fs.Available && now.Sub(fs.LastUsed) >= resourceDelay {
			fs.Available = true
			out.Broadcast(events.FishingSpotRespawned, events.FishingSpotData{SpotID: fs.ID})
		}
	}

	monsterDelay := l.rules.MonsterRespawn()
	for _, m := range s.Monsters() {
		if m.Alive() || now.Sub(m.DiedAt) < monsterDelay {
			continue
		}
		l.engine.Respawn(m, now)
		out.Broadcast(events.MonsterSpawned, events.MonsterSpawnedData{
			MonsterID: m.ID,
			X:         m.X,
			Y:         m.Y,
			Health:    m.Health,
			MaxHealth: m.MaxHealth,
		})
	}
}

func (l *Loop) expireFires(s *game.Store, out *events.Outbox, now time.Time) {
	lifetime := l.rules.FireLifetime()
	for _, f := range s.Fires() {
		if now.Sub(f.PlacedAt) >= lifetime {
			s.RemoveFire(f.ID)
			out.Broadcast(events.FireDespawned, events.FireDespawnedData{FireID: f.ID})
		}
	}
}

func (l *Loop) broadcastPositions(s *game.Store, out *events.Outbox) {
	var positions []events.MonsterPosition
	for _, m := range s.Monsters() {
		if m.Alive() {
			positions = append(positions, events.MonsterPosition{ID: m.ID, X: m.X, Y: m.Y})
		}
	}
	if len(positions) == 0 {
		return
	}
	out.Broadcast(events.MonsterPositions, events.MonsterPositionsData{Monsters: positions})
}
