package game

import (
	"time"

	"github.com/pixil98/go-pixelmmo/internal/items"
	"github.com/pixil98/go-pixelmmo/internal/skills"
)

// PlayerView is what other players see of a player.
type PlayerView struct {
	SocketID  string  `json:"socketId"`
	UserID    string  `json:"userId"`
	Username  string  `json:"username"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
}

// SelfView is what a player sees of themselves.
type SelfView struct {
	ID string `json:"id"`
	PlayerView
	Skills    skills.Set    `json:"skills"`
	Inventory []items.Stack `json:"inventory"`
}

type MonsterView struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	SpawnX         float64 `json:"spawnX"`
	SpawnY         float64 `json:"spawnY"`
	Health         int     `json:"health"`
	MaxHealth      int     `json:"maxHealth"`
	Target         string  `json:"target,omitempty"`
	LastAttack     int64   `json:"lastAttack"`
	AttackCooldown int64   `json:"attackCooldown"`
	LastRespawn    int64   `json:"lastRespawn"`
}

type TreeView struct {
	ID          string  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Available   bool    `json:"available"`
	LastChopped int64   `json:"lastChopped"`
}

type FishingSpotView struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Available bool    `json:"available"`
	LastUsed  int64   `json:"lastUsed"`
}

type FireView struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	PlacedBy string  `json:"placedBy"`
	PlacedAt int64   `json:"placedAt"`
}

type GroundItemView struct {
	ID        string  `json:"id"`
	ItemID    string  `json:"itemId"`
	Quantity  int     `json:"quantity"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	DroppedAt int64   `json:"droppedAt"`
}

// Snapshot is the full world state sent to a newly connected player.
type Snapshot struct {
	Player       SelfView          `json:"player"`
	OtherPlayers []PlayerView      `json:"otherPlayers"`
	Monsters     []MonsterView     `json:"monsters"`
	Trees        []TreeView        `json:"trees"`
	FishingSpots []FishingSpotView `json:"fishingSpots"`
	Fires        []FireView        `json:"fires"`
	GroundItems  []GroundItemView  `json:"groundItems"`
}

// unixMilli renders a timestamp for the wire, zero times as 0.
func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func (p *Player) View() PlayerView {
	return PlayerView{
		SocketID:  p.ConnID,
		UserID:    p.Subject,
		Username:  p.Username,
		X:         p.X,
		Y:         p.Y,
		Health:    p.Health,
		MaxHealth: p.MaxHealth,
	}
}

func (p *Player) SelfView() SelfView {
	return SelfView{
		ID:         p.ConnID,
		PlayerView: p.View(),
		Skills:     p.Skills.Clone(),
		Inventory:  p.Inventory.Stacks(),
	}
}

func (m *Monster) View() MonsterView {
	return MonsterView{
		ID:             m.ID,
		Type:           m.Kind,
		X:              m.X,
		Y:              m.Y,
		SpawnX:         m.Spawn.X,
		SpawnY:         m.Spawn.Y,
		Health:         m.Health,
		MaxHealth:      m.MaxHealth,
		Target:         m.Target,
		LastAttack:     unixMilli(m.LastAttack),
		AttackCooldown: m.AttackCooldown.Milliseconds(),
		LastRespawn:    unixMilli(m.LastRespawn),
	}
}

func (t *Tree) View() TreeView {
	return TreeView{ID: t.ID, X: t.X, Y: t.Y, Available: t.Available, LastChopped: unixMilli(t.LastChopped)}
}

func (s *FishingSpot) View() FishingSpotView {
	return FishingSpotView{ID: s.ID, X: s.X, Y: s.Y, Available: s.Available, LastUsed: unixMilli(s.LastUsed)}
}

func (f *Fire) View() FireView {
	return FireView{ID: f.ID, X: f.X, Y: f.Y, PlacedBy: f.PlacedByName, PlacedAt: unixMilli(f.PlacedAt)}
}

func (g *GroundItem) View() GroundItemView {
	return GroundItemView{
		ID:        g.ID,
		ItemID:    g.ItemID,
		Quantity:  g.Quantity,
		X:         g.X,
		Y:         g.Y,
		DroppedAt: unixMilli(g.DroppedAt),
	}
}
