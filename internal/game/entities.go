package game

import (
	"time"

	"github.com/pixil98/go-pixelmmo/internal/items"
	"github.com/pixil98/go-pixelmmo/internal/skills"
)

// PendingAction is a multi-step interaction a player has started.
type PendingAction int

const (
	PendingNone PendingAction = iota
	PendingFirePlacement
)

// Player is a connected player's live state.
type Player struct {
	ConnID   string
	Subject  string
	Username string
	Position
	Health     int
	MaxHealth  int
	Skills     skills.Set
	Inventory  *items.Inventory
	Pending    PendingAction
	LastUpdate time.Time
}

// Heal restores up to amount health without exceeding MaxHealth and returns
// the amount applied.
func (p *Player) Heal(amount int) int {
	before := p.Health
	p.Health = min(p.MaxHealth, p.Health+max(0, amount))
	return p.Health - before
}

// Damage removes health, never below zero, and returns the remaining health.
func (p *Player) Damage(amount int) int {
	p.Health = max(0, p.Health-max(0, amount))
	return p.Health
}

// Dead reports whether the player has no health left.
func (p *Player) Dead() bool {
	return p.Health <= 0
}

// Respawn restores full health at the given position.
func (p *Player) Respawn(at Position) {
	p.Health = p.MaxHealth
	p.Position = at
	p.Pending = PendingNone
}

// Monster is a hostile NPC.
type Monster struct {
	ID   string
	Kind string
	Position
	Spawn          Position
	Health         int
	MaxHealth      int
	Target         string
	LastAttack     time.Time
	AttackCooldown time.Duration
	LastRespawn    time.Time
	DiedAt         time.Time
}

// Alive reports whether the monster has health left.
func (m *Monster) Alive() bool {
	return m.Health > 0
}

// ApplyDamage lowers health, clamped at zero, and reports whether this hit
// killed the monster.
func (m *Monster) ApplyDamage(amount int, now time.Time) bool {
	if !m.Alive() {
		return false
	}
	m.Health = max(0, m.Health-max(0, amount))
	if m.Health == 0 {
		m.DiedAt = now
		m.Target = ""
		return true
	}
	return false
}

// Respawn resets the monster to full health at its spawn point.
func (m *Monster) Respawn(now time.Time) {
	m.Health = m.MaxHealth
	m.Position = m.Spawn
	m.Target = ""
	m.LastAttack = time.Time{}
	m.LastRespawn = now
	m.DiedAt = time.Time{}
}

// AttackReady reports whether the cooldown since the last attack has elapsed.
func (m *Monster) AttackReady(now time.Time) bool {
	return m.LastAttack.IsZero() || now.Sub(m.LastAttack) >= m.AttackCooldown
}

// Tree is a choppable resource node.
type Tree struct {
	ID string
	Position
	Available   bool
	LastChopped time.Time
}

// FishingSpot is a fishable resource node.
type FishingSpot struct {
	ID string
	Position
	Available bool
	LastUsed  time.Time
}

// Fire is a player-placed campfire that heals players nearby.
type Fire struct {
	ID string
	Position
	PlacedBy     string
	PlacedByName string
	PlacedAt     time.Time
}

// GroundItem is an item lying in the world waiting to be picked up.
type GroundItem struct {
	ID       string
	ItemID   string
	Quantity int
	Position
	DroppedAt time.Time
}
