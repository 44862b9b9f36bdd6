package valueobjects

import "math"

// ZoomDirection is the sign of a single wheel tick.
type ZoomDirection int

const (
	ZoomOut ZoomDirection = iota - 1
	ZoomNone
	ZoomIn
)

// ZoomDirectionFromWheel maps a wheel deltaY onto a tick direction. Scrolling
// down (positive delta) zooms out.
func ZoomDirectionFromWheel(deltaY float64) ZoomDirection {
	switch {
	case deltaY > 0:
		return ZoomOut
	case deltaY < 0:
		return ZoomIn
	default:
		return ZoomNone
	}
}

// ZoomPolicy bounds the zoom factor and sets the per-tick multipliers.
type ZoomPolicy struct {
	Min       float64
	Max       float64
	InFactor  float64
	OutFactor float64
}

// DefaultZoomPolicy returns [0.1, 3.0] with 1.1 / 0.9 per tick
func DefaultZoomPolicy() ZoomPolicy {
	return ZoomPolicy{Min: 0.1, Max: 3.0, InFactor: 1.1, OutFactor: 0.9}
}

func (z ZoomPolicy) clamp(zoom float64) float64 {
	return math.Max(z.Min, math.Min(z.Max, zoom))
}

// Viewport converts between world and screen space. It is an immutable value:
// every operation returns a new Viewport. Viewports are never persisted.
type Viewport struct {
	pan    Position
	zoom   float64
	policy ZoomPolicy
}

// IdentityViewport returns pan (0,0) and zoom 1
func IdentityViewport(policy ZoomPolicy) Viewport {
	return Viewport{pan: Origin(), zoom: 1, policy: policy}
}

// NewViewport builds a viewport with the zoom clamped into the policy bounds
func NewViewport(pan Position, zoom float64, policy ZoomPolicy) Viewport {
	return Viewport{pan: pan, zoom: policy.clamp(zoom), policy: policy}
}

// Pan returns the screen-space offset
func (v Viewport) Pan() Position {
	return v.pan
}

// Zoom returns the magnification factor
func (v Viewport) Zoom() float64 {
	return v.zoom
}

// Policy returns the zoom policy
func (v Viewport) Policy() ZoomPolicy {
	return v.policy
}

// WorldToScreen returns p*zoom + pan
func (v Viewport) WorldToScreen(p Position) Position {
	return p.Scale(v.zoom).Add(v.pan)
}

// ScreenToWorld returns (p - pan) / zoom
func (v Viewport) ScreenToWorld(p Position) Position {
	return p.Sub(v.pan).Scale(1 / v.zoom)
}

// ApplyZoom multiplies zoom by one tick and clamps it. The pan is left alone,
// so zooming is anchored at the screen origin rather than the pointer.
func (v Viewport) ApplyZoom(direction ZoomDirection) Viewport {
	switch direction {
	case ZoomIn:
		v.zoom = v.policy.clamp(v.zoom * v.policy.InFactor)
	case ZoomOut:
		v.zoom = v.policy.clamp(v.zoom * v.policy.OutFactor)
	}
	return v
}

// ApplyPan adds a raw screen-space delta, independent of zoom
func (v Viewport) ApplyPan(delta Position) Viewport {
	v.pan = v.pan.Add(delta)
	return v
}

// Reset returns the identity viewport with the same policy
func (v Viewport) Reset() Viewport {
	return IdentityViewport(v.policy)
}

// IsIdentity reports whether pan is (0,0) and zoom is 1
func (v Viewport) IsIdentity() bool {
	return v.pan.Equals(Origin()) && v.zoom == 1
}
