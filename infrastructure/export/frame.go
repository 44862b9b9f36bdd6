// Package export turns a rendered scene into a downloadable snapshot image.
package export

import (
	"fmt"
	"image/color"
	"math"

	"github.com/zaheyak/Content-Studio-sub000/domain/services"
)

const (
	margin      = 40.0
	emptyWidth  = 240.0
	emptyHeight = 160.0
)

var (
	background = color.RGBA{0xf8, 0xfa, 0xfc, 0xff}
	edgeColor  = color.RGBA{0x64, 0x74, 0x8b, 0xff}
	labelColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
	selectRing = color.RGBA{0x0f, 0x17, 0x2a, 0xff}
)

// frame is the canvas a scene is drawn on. Scene coordinates are shifted by
// (-minX, -minY) so every primitive lands inside the margin.
type frame struct {
	minX, minY    float64
	width, height int
}

func frameOf(scene services.Scene) frame {
	if len(scene.Nodes) == 0 {
		return frame{width: int(emptyWidth), height: int(emptyHeight)}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range scene.Nodes {
		minX = math.Min(minX, n.Center.X()-n.Width/2)
		minY = math.Min(minY, n.Center.Y()-n.Height/2)
		maxX = math.Max(maxX, n.Center.X()+n.Width/2)
		maxY = math.Max(maxY, n.Center.Y()+n.Height/2)
	}

	return frame{
		minX:   minX - margin,
		minY:   minY - margin,
		width:  int(math.Ceil(maxX-minX+2*margin)),
		height: int(math.Ceil(maxY-minY+2*margin)),
	}
}

func (f frame) x(v float64) float64 { return v - f.minX }
func (f frame) y(v float64) float64 { return v - f.minY }

// parseHex reads #rrggbb; anything else falls back to the edge color
func parseHex(s string) color.RGBA {
	var r, g, b uint8
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{r, g, b, 0xff}
		}
	}
	return edgeColor
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
