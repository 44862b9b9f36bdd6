package valueobjects

import (
	"encoding/json"
	"math"
)

// Position is a point in either world or screen space. The domain is
// unbounded; callers decide which space a value lives in.
type Position struct {
	x float64
	y float64
}

// NewPosition creates a position
func NewPosition(x, y float64) Position {
	return Position{x: x, y: y}
}

// Origin returns (0,0)
func Origin() Position {
	return Position{}
}

// X returns the X coordinate
func (p Position) X() float64 {
	return p.x
}

// Y returns the Y coordinate
func (p Position) Y() float64 {
	return p.y
}

// Add returns p + other
func (p Position) Add(other Position) Position {
	return Position{x: p.x + other.x, y: p.y + other.y}
}

// Sub returns p - other
func (p Position) Sub(other Position) Position {
	return Position{x: p.x - other.x, y: p.y - other.y}
}

// Scale multiplies both coordinates by f
func (p Position) Scale(f float64) Position {
	return Position{x: p.x * f, y: p.y * f}
}

// DistanceTo calculates the Euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(p.x-other.x, p.y-other.y)
}

// Equals checks if two positions are equal within a small tolerance
func (p Position) Equals(other Position) bool {
	const epsilon = 1e-9
	return math.Abs(p.x-other.x) < epsilon && math.Abs(p.y-other.y) < epsilon
}

// IsFinite reports whether both coordinates are finite numbers
func (p Position) IsFinite() bool {
	return isFinite(p.x) && isFinite(p.y)
}

type positionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MarshalJSON implements json.Marshaler
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(positionJSON{X: p.x, Y: p.y})
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Position) UnmarshalJSON(data []byte) error {
	var raw positionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.x, p.y = raw.X, raw.Y
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
