package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-pixelmmo/internal/items"
	"github.com/pixil98/go-pixelmmo/internal/skills"
)

const DefaultMaxHealth = 100

// SpawnPoint is where new and dead players appear.
var SpawnPoint = Position{X: 100, Y: 100}

// PlayerRecord is the persisted form of a player.
type PlayerRecord struct {
	Subject   string        `json:"subject"`
	Username  string        `json:"username"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	Health    int           `json:"health"`
	MaxHealth int           `json:"max_health"`
	Skills    skills.Set    `json:"skills"`
	Inventory []items.Stack `json:"inventory"`
}

// NewPlayerRecord returns the record of a brand new character.
func NewPlayerRecord(subject, username string) *PlayerRecord {
	return &PlayerRecord{
		Subject:   subject,
		Username:  username,
		X:         SpawnPoint.X,
		Y:         SpawnPoint.Y,
		Health:    DefaultMaxHealth,
		MaxHealth: DefaultMaxHealth,
		Skills:    skills.NewSet(),
		Inventory: []items.Stack{},
	}
}

func (r *PlayerRecord) Validate() error {
	el := errors.NewErrorList()

	if r.Subject == "" {
		el.Add(fmt.Errorf("subject is required"))
	}
	if r.Username == "" {
		el.Add(fmt.Errorf("username is required"))
	}
	if r.MaxHealth <= 0 {
		el.Add(fmt.Errorf("max_health must be positive"))
	}
	if r.Health < 0 || r.Health > r.MaxHealth {
		el.Add(fmt.Errorf("health %d outside [0, %d]", r.Health, r.MaxHealth))
	}
	if _, err := items.NewInventory(r.Inventory); err != nil {
		el.Add(fmt.Errorf("inventory: %w", err))
	}

	return el.Err()
}

// NewPlayer builds the live state of a player from its record. Skills the
// record does not know about start at level 1.
func NewPlayer(connID string, rec *PlayerRecord) (*Player, error) {
	inv, err := items.NewInventory(rec.Inventory)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}

	set := skills.NewSet()
	for name, sk := range rec.Skills {
		if sk == nil {
			continue
		}
		cp := *sk
		set[name] = &cp
	}

	maxHealth := rec.MaxHealth
	if maxHealth <= 0 {
		maxHealth = DefaultMaxHealth
	}

	return &Player{
		ConnID:    connID,
		Subject:   rec.Subject,
		Username:  rec.Username,
		Position:  Position{X: rec.X, Y: rec.Y},
		Health:    min(max(rec.Health, 0), maxHealth),
		MaxHealth: maxHealth,
		Skills:    set,
		Inventory: inv,
	}, nil
}

// Record captures the persistent part of the player.
func (p *Player) Record() *PlayerRecord {
	return &PlayerRecord{
		Subject:   p.Subject,
		Username:  p.Username,
		X:         p.X,
		Y:         p.Y,
		Health:    p.Health,
		MaxHealth: p.MaxHealth,
		Skills:    p.Skills.Clone(),
		Inventory: p.Inventory.Stacks(),
	}
}
