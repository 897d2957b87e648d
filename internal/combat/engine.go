package combat

import (
	"fmt"
	"time"

	"github.com/pixil98/go-pixelmmo/internal/game"
	"github.com/pixil98/go-pixelmmo/internal/skills"
)

const (
	DefaultXPPerDamage      = 5
	DefaultMonsterDamageMin = 3
	DefaultMonsterDamageMax = 8
)

// Engine resolves attacks and drops.
type Engine struct {
	rng         Roller
	xpPerDamage int
	monsterMin  int
	monsterMax  int
}

type EngineOpt func(*Engine)

func WithRoller(r Roller) EngineOpt {
	return func(e *Engine) {
		e.rng = r
	}
}

func WithXPPerDamage(xp int) EngineOpt {
	return func(e *Engine) {
		e.xpPerDamage = xp
	}
}

// WithMonsterDamage sets the inclusive range of a monster hit.
func WithMonsterDamage(lo, hi int) EngineOpt {
	return func(e *Engine) {
		e.monsterMin = lo
		e.monsterMax = hi
	}
}

func NewEngine(opts ...EngineOpt) *Engine {
	e := &Engine{
		rng:         globalRoller{},
		xpPerDamage: DefaultXPPerDamage,
		monsterMin:  DefaultMonsterDamageMin,
		monsterMax:  DefaultMonsterDamageMax,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Roller exposes the engine's randomness to callers sharing it.
func (e *Engine) Roller() Roller {
	return e.rng
}

// AttackResult is the outcome of one player swing.
type AttackResult struct {
	Damage        int
	XP            int
	Killed        bool
	MonsterHealth int
	Loot          *Loot
	LevelUp       skills.LevelUp
}

// PlayerDamage rolls a hit in [1, combatLevel*2].
func (e *Engine) PlayerDamage(combatLevel int) int {
	return e.rng.IntN(max(1, combatLevel)*2) + 1
}

// MonsterDamage rolls a monster hit.
func (e *Engine) MonsterDamage() int {
	return RollRange(e.rng, e.monsterMin, e.monsterMax)
}

// RollLoot draws a drop using the engine's randomness.
func (e *Engine) RollLoot() Loot {
	return RollLoot(e.rng)
}

// Attack applies a player's hit to a monster, grants combat xp and rolls
// loot on a kill. Range and target checks belong to the caller.
func (e *Engine) Attack(p *game.Player, m *game.Monster, now time.Time) (AttackResult, error) {
	if !m.Alive() {
		return AttackResult{}, ErrMonsterDead
	}

	dmg := e.PlayerDamage(p.Skills.Level(skills.Combat))
	killed := m.ApplyDamage(dmg, now)

	res := AttackResult{
		Damage:        dmg,
		XP:            dmg * e.xpPerDamage,
		Killed:        killed,
		MonsterHealth: m.Health,
	}

	lu, err := p.Skills.AddXP(skills.Combat, res.XP)
	if err != nil {
		return res, fmt.Errorf("granting combat xp: %w", err)
	}
	res.LevelUp = lu

	if killed {
		loot := e.RollLoot()
		res.Loot = &loot
	}

	return res, nil
}

// Respawn restores a monster; health and position reset together.
func (e *Engine) Respawn(m *game.Monster, now time.Time) {
	m.Respawn(now)
}
