package combat

import "math/rand/v2"

// Roller is a source of randomness. *rand.Rand satisfies it.
type Roller interface {
	IntN(n int) int
	Float64() float64
}

// globalRoller draws from the math/rand/v2 top-level source.
type globalRoller struct{}

func (globalRoller) IntN(n int) int   { return rand.IntN(n) }
func (globalRoller) Float64() float64 { return rand.Float64() }

// NewSeededRoller returns a deterministic roller for replays and tests.
func NewSeededRoller(seed uint64) Roller {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RollRange returns a uniform integer in [lo, hi].
func RollRange(r Roller, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
