package valueobjects

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestViewport_Transforms(t *testing.T) {
	policy := DefaultZoomPolicy()

	tests := []struct {
		name   string
		pan    Position
		zoom   float64
		world  Position
		screen Position
	}{
		{name: "identity", pan: Origin(), zoom: 1, world: NewPosition(100, 100), screen: NewPosition(100, 100)},
		{name: "pan only", pan: NewPosition(50, -20), zoom: 1, world: NewPosition(10, 10), screen: NewPosition(60, -10)},
		{name: "zoom only", pan: Origin(), zoom: 2, world: NewPosition(10, 15), screen: NewPosition(20, 30)},
		{name: "pan and zoom", pan: NewPosition(5, 5), zoom: 0.5, world: NewPosition(100, -40), screen: NewPosition(55, -15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(tt.pan, tt.zoom, policy)
			assert.True(t, v.WorldToScreen(tt.world).Equals(tt.screen), "world->screen")
			assert.True(t, v.ScreenToWorld(tt.screen).Equals(tt.world), "screen->world")
		})
	}
}

func TestViewport_ApplyZoom(t *testing.T) {
	v := IdentityViewport(DefaultZoomPolicy())

	in := v.ApplyZoom(ZoomIn)
	assert.InDelta(t, 1.1, in.Zoom(), 1e-12)
	assert.Equal(t, 1.0, v.Zoom(), "viewport is immutable")

	out := v.ApplyZoom(ZoomOut)
	assert.InDelta(t, 0.9, out.Zoom(), 1e-12)

	t.Run("pan untouched by zoom", func(t *testing.T) {
		panned := v.ApplyPan(NewPosition(30, 40)).ApplyZoom(ZoomIn)
		assert.True(t, panned.Pan().Equals(NewPosition(30, 40)))
	})

	t.Run("clamped at max", func(t *testing.T) {
		z := v
		for i := 0; i < 100; i++ {
			z = z.ApplyZoom(ZoomIn)
		}
		assert.Equal(t, 3.0, z.Zoom())
	})

	t.Run("clamped at min", func(t *testing.T) {
		z := v
		for i := 0; i < 100; i++ {
			z = z.ApplyZoom(ZoomOut)
		}
		assert.Equal(t, 0.1, z.Zoom())
	})

	t.Run("no tick leaves zoom alone", func(t *testing.T) {
		assert.Equal(t, 1.0, v.ApplyZoom(ZoomNone).Zoom())
	})
}

func TestViewport_ApplyPanIndependentOfZoom(t *testing.T) {
	policy := DefaultZoomPolicy()
	delta := NewPosition(12, -7)

	for _, zoom := range []float64{0.1, 1, 2.5} {
		v := NewViewport(Origin(), zoom, policy).ApplyPan(delta)
		assert.True(t, v.Pan().Equals(delta), "zoom %v", zoom)
	}
}

func TestViewport_Reset(t *testing.T) {
	v := NewViewport(NewPosition(10, 10), 2, DefaultZoomPolicy()).Reset()
	assert.True(t, v.IsIdentity())
}

func TestZoomDirectionFromWheel(t *testing.T) {
	assert.Equal(t, ZoomOut, ZoomDirectionFromWheel(120))
	assert.Equal(t, ZoomIn, ZoomDirectionFromWheel(-3))
	assert.Equal(t, ZoomNone, ZoomDirectionFromWheel(0))
}

func TestViewport_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	policy := DefaultZoomPolicy()

	properties.Property("screenToWorld inverts worldToScreen", prop.ForAll(
		func(px, py, panX, panY, zoom float64) bool {
			v := NewViewport(NewPosition(panX, panY), zoom, policy)
			p := NewPosition(px, py)
			back := v.ScreenToWorld(v.WorldToScreen(p))
			return approxEqual(back.X(), p.X()) && approxEqual(back.Y(), p.Y())
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e4, 1e4),
		gen.Float64Range(-1e4, 1e4),
		gen.Float64Range(0.1, 3.0),
	))

	properties.Property("zoom stays within bounds after any wheel sequence", prop.ForAll(
		func(ticks []bool) bool {
			v := IdentityViewport(policy)
			for _, in := range ticks {
				if in {
					v = v.ApplyZoom(ZoomIn)
				} else {
					v = v.ApplyZoom(ZoomOut)
				}
				if v.Zoom() < policy.Min || v.Zoom() > policy.Max {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
