package skills

import (
	"fmt"
	"slices"
)

// Skill names known to the server.
const (
	Combat      = "combat"
	Fishing     = "fishing"
	Woodcutting = "woodcutting"
)

// Names lists every skill a player starts with.
var Names = []string{Combat, Fishing, Woodcutting}

// xpPerLevelUnit scales the square-root level curve.
const xpPerLevelUnit = 100

// LevelForXP returns the level earned by a total amount of xp:
// floor(sqrt(xp/100)) + 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return isqrt(xp/xpPerLevelUnit) + 1
}

// XPForLevel returns the total xp at which the given level is reached.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * (level - 1) * xpPerLevelUnit
}

// XPForNextLevel returns the total xp required to advance past level.
func XPForNextLevel(level int) int {
	return XPForLevel(level + 1)
}

// isqrt is floor(sqrt(n)) for n >= 0, without float rounding.
func isqrt(n int) int {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// Skill is the progression state of a single skill.
type Skill struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
}

// LevelUp describes the outcome of an xp grant.
type LevelUp struct {
	Skill    string `json:"skill"`
	OldLevel int    `json:"oldLevel"`
	NewLevel int    `json:"newLevel"`
}

// Leveled reports whether the grant crossed at least one level threshold.
func (l LevelUp) Leveled() bool {
	return l.NewLevel > l.OldLevel
}

// Set holds a player's skills keyed by name.
type Set map[string]*Skill

// NewSet returns a Set with every known skill at level 1 and no xp.
func NewSet() Set {
	s := make(Set, len(Names))
	for _, n := range Names {
		s[n] = &Skill{Level: 1}
	}
	return s
}

// Get returns the named skill or nil.
func (s Set) Get(name string) *Skill {
	return s[name]
}

// Level returns the level of the named skill, or 1 when the skill is missing.
func (s Set) Level(name string) int {
	sk, ok := s[name]
	if !ok || sk.Level < 1 {
		return 1
	}
	return sk.Level
}

// AddXP grants xp to a skill and recomputes its level. Levels never go down,
// even if the stored level was ahead of the curve.
func (s Set) AddXP(name string, amount int) (LevelUp, error) {
	sk, ok := s[name]
	if !ok {
		return LevelUp{}, fmt.Errorf("%w: %q", ErrUnknownSkill, name)
	}
	if amount < 0 {
		return LevelUp{}, ErrNegativeXP
	}

	lu := LevelUp{Skill: name, OldLevel: sk.Level, NewLevel: sk.Level}
	sk.XP += amount
	if lvl := LevelForXP(sk.XP); lvl > sk.Level {
		sk.Level = lvl
		lu.NewLevel = lvl
	}
	return lu, nil
}

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for n, sk := range s {
		if sk == nil {
			continue
		}
		cp := *sk
		c[n] = &cp
	}
	return c
}

// Sorted returns skill names in a stable order.
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
