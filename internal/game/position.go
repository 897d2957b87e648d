package game

import "math"

// Position is a point in world coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the euclidean distance between two positions.
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Within reports whether o is at most r away. The boundary is inclusive.
func (p Position) Within(o Position, r float64) bool {
	return p.DistanceTo(o) <= r
}

// Toward moves step units in the direction of target. A zero-length
// direction leaves the position unchanged.
func (p Position) Toward(target Position, step float64) Position {
	if target == p {
		return p
	}
	return p.Heading(math.Atan2(target.Y-p.Y, target.X-p.X), step)
}

// Heading moves step units along angle (radians).
func (p Position) Heading(angle, step float64) Position {
	return Position{
		X: p.X + math.Cos(angle)*step,
		Y: p.Y + math.Sin(angle)*step,
	}
}

// Bounds is an axis-aligned rectangle.
type Bounds struct {
	MinX float64 `json:"min_x" yaml:"min_x"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MinY float64 `json:"min_y" yaml:"min_y"`
	MaxY float64 `json:"max_y" yaml:"max_y"`
}

// Clamp returns p constrained to the rectangle.
func (b Bounds) Clamp(p Position) Position {
	return Position{
		X: min(max(p.X, b.MinX), b.MaxX),
		Y: min(max(p.Y, b.MinY), b.MaxY),
	}
}
