package game

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"
)

// Store holds every live entity of the world. It is not safe for concurrent
// use; all access goes through World.Exec.
type Store struct {
	players     map[string]*Player
	monsters    map[string]*Monster
	trees       map[string]*Tree
	spots       map[string]*FishingSpot
	fires       map[string]*Fire
	groundItems map[string]*GroundItem

	groundSeq uint64
}

func NewStore() *Store {
	return &Store{
		players:     map[string]*Player{},
		monsters:    map[string]*Monster{},
		trees:       map[string]*Tree{},
		spots:       map[string]*FishingSpot{},
		fires:       map[string]*Fire{},
		groundItems: map[string]*GroundItem{},
	}
}

// sortedValues returns the map's values ordered by key.
func sortedValues[V any](m map[string]V) []V {
	out := make([]V, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out = append(out, m[k])
	}
	return out
}

// AddPlayer registers a connected player.
func (s *Store) AddPlayer(p *Player) error {
	if _, ok := s.players[p.ConnID]; ok {
		return fmt.Errorf("%w: %s", ErrPlayerExists, p.ConnID)
	}
	s.players[p.ConnID] = p
	return nil
}

// RemovePlayer unregisters a player and returns its final state.
func (s *Store) RemovePlayer(connID string) (*Player, error) {
	p, ok := s.players[connID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, connID)
	}
	delete(s.players, connID)
	return p, nil
}

// Player returns the player on a connection, or nil.
func (s *Store) Player(connID string) *Player {
	return s.players[connID]
}

// Players returns all players ordered by connection id.
func (s *Store) Players() []*Player {
	return sortedValues(s.players)
}

// ConnIDs returns the ids of every registered connection.
func (s *Store) ConnIDs() []string {
	return slices.Sorted(maps.Keys(s.players))
}

// PlayerCount returns the number of registered players.
func (s *Store) PlayerCount() int {
	return len(s.players)
}

// OtherPlayers returns the public view of every player except connID.
func (s *Store) OtherPlayers(connID string) []PlayerView {
	out := []PlayerView{}
	for _, p := range s.Players() {
		if p.ConnID != connID {
			out = append(out, p.View())
		}
	}
	return out
}

// PlayersInRange returns players within radius of pos, inclusive.
func (s *Store) PlayersInRange(pos Position, radius float64) []*Player {
	var out []*Player
	for _, p := range s.Players() {
		if pos.Within(p.Position, radius) {
			out = append(out, p)
		}
	}
	return out
}

// MovePlayer sets a player's position.
func (s *Store) MovePlayer(connID string, pos Position, now time.Time) error {
	p, ok := s.players[connID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, connID)
	}
	p.Position = pos
	p.LastUpdate = now
	return nil
}

func (s *Store) AddMonster(m *Monster) {
	s.monsters[m.ID] = m
}

func (s *Store) Monster(id string) *Monster {
	return s.monsters[id]
}

func (s *Store) Monsters() []*Monster {
	return sortedValues(s.monsters)
}

// RespawnMonster restores a monster to full health at its spawn point.
func (s *Store) RespawnMonster(id string, now time.Time) error {
	m, ok := s.monsters[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMonsterNotFound, id)
	}
	m.Respawn(now)
	return nil
}

func (s *Store) AddTree(t *Tree) {
	s.trees[t.ID] = t
}

func (s *Store) Tree(id string) *Tree {
	return s.trees[id]
}

func (s *Store) Trees() []*Tree {
	return sortedValues(s.trees)
}

func (s *Store) AddFishingSpot(fs *FishingSpot) {
	s.spots[fs.ID] = fs
}

func (s *Store) FishingSpot(id string) *FishingSpot {
	return s.spots[id]
}

func (s *Store) FishingSpots() []*FishingSpot {
	return sortedValues(s.spots)
}

func (s *Store) AddFire(f *Fire) {
	s.fires[f.ID] = f
}

func (s *Store) Fire(id string) *Fire {
	return s.fires[id]
}

func (s *Store) Fires() []*Fire {
	return sortedValues(s.fires)
}

func (s *Store) RemoveFire(id string) bool {
	if _, ok := s.fires[id]; !ok {
		return false
	}
	delete(s.fires, id)
	return true
}

// AddGroundItem drops an item into the world. Ids are never reused for the
// lifetime of the store.
func (s *Store) AddGroundItem(itemID string, qty int, pos Position, now time.Time) *GroundItem {
	g := &GroundItem{
		ID:        "ground_" + strconv.FormatUint(s.groundSeq, 10),
		ItemID:    itemID,
		Quantity:  qty,
		Position:  pos,
		DroppedAt: now,
	}
	s.groundItems[g.ID] = g
	s.groundSeq++
	return g
}

func (s *Store) GroundItem(id string) *GroundItem {
	return s.groundItems[id]
}

func (s *Store) GroundItems() []*GroundItem {
	return sortedValues(s.groundItems)
}

func (s *Store) RemoveGroundItem(id string) bool {
	if _, ok := s.groundItems[id]; !ok {
		return false
	}
	delete(s.groundItems, id)
	return true
}

// Snapshot builds the init payload for the player on connID.
func (s *Store) Snapshot(connID string) (Snapshot, error) {
	p, ok := s.players[connID]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, connID)
	}

	snap := Snapshot{
		Player:       p.SelfView(),
		OtherPlayers: s.OtherPlayers(connID),
		Monsters:     []MonsterView{},
		Trees:        []TreeView{},
		FishingSpots: []FishingSpotView{},
		Fires:        []FireView{},
		GroundItems:  []GroundItemView{},
	}
	for _, m := range s.Monsters() {
		snap.Monsters = append(snap.Monsters, m.View())
	}
	for _, t := range s.Trees() {
		snap.Trees = append(snap.Trees, t.View())
	}
	for _, fs := range s.FishingSpots() {
		snap.FishingSpots = append(snap.FishingSpots, fs.View())
	}
	for _, f := range s.Fires() {
		snap.Fires = append(snap.Fires, f.View())
	}
	for _, g := range s.GroundItems() {
		snap.GroundItems = append(snap.GroundItems, g.View())
	}
	return snap, nil
}
