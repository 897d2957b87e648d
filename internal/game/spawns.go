package game

import (
	"fmt"
	"time"
)

// MonsterSpawn describes a monster placed at world start.
type MonsterSpawn struct {
	Kind      string  `yaml:"kind"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	MaxHealth int     `yaml:"max_health"`
}

// NodeSpawn places a tree or fishing spot.
type NodeSpawn struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Spawns is the fixed layout the world is populated from.
type Spawns struct {
	Monsters       []MonsterSpawn `yaml:"monsters"`
	Trees          []NodeSpawn    `yaml:"trees"`
	FishingSpots   []NodeSpawn    `yaml:"fishing_spots"`
	AttackCooldown time.Duration  `yaml:"-"`
}

// DefaultSpawns is the layout of the starter world.
func DefaultSpawns() Spawns {
	return Spawns{
		Monsters: []MonsterSpawn{
			{Kind: "goblin", X: 600, Y: 400, MaxHealth: 50},
			{Kind: "goblin", X: 700, Y: 450, MaxHealth: 50},
			{Kind: "goblin", X: 650, Y: 500, MaxHealth: 50},
			{Kind: "goblin", X: 550, Y: 480, MaxHealth: 50},
			{Kind: "goblin", X: 720, Y: 380, MaxHealth: 50},
		},
		Trees: []NodeSpawn{
			{X: 200, Y: 400}, {X: 250, Y: 420}, {X: 200, Y: 480},
			{X: 500, Y: 300}, {X: 550, Y: 280}, {X: 600, Y: 320},
			{X: 300, Y: 500}, {X: 350, Y: 520},
		},
		FishingSpots: []NodeSpawn{
			{X: 300, Y: 200}, {X: 350, Y: 220}, {X: 400, Y: 200},
		},
		AttackCooldown: 3 * time.Second,
	}
}

// Populate places every spawn of the layout into the store.
func (s *Store) Populate(sp Spawns, now time.Time) {
	for i, ms := range sp.Monsters {
		pos := Position{X: ms.X, Y: ms.Y}
		s.AddMonster(&Monster{
			ID:             fmt.Sprintf("monster_%d", i),
			Kind:           ms.Kind,
			Position:       pos,
			Spawn:          pos,
			Health:         ms.MaxHealth,
			MaxHealth:      ms.MaxHealth,
			AttackCooldown: sp.AttackCooldown,
			LastRespawn:    now,
		})
	}
	for i, ts := range sp.Trees {
		s.AddTree(&Tree{
			ID:        fmt.Sprintf("tree_%d", i),
			Position:  Position{X: ts.X, Y: ts.Y},
			Available: true,
		})
	}
	for i, fs := range sp.FishingSpots {
		s.AddFishingSpot(&FishingSpot{
			ID:        fmt.Sprintf("spot_%d", i),
			Position:  Position{X: fs.X, Y: fs.Y},
			Available: true,
		})
	}
}
