package export

import (
	"io"

	"git.sr.ht/~sbinet/gg"

	"github.com/zaheyak/Content-Studio-sub000/domain/services"
)

// PNGRenderer rasterizes scenes
type PNGRenderer struct{}

func NewPNGRenderer() *PNGRenderer { return &PNGRenderer{} }

func (PNGRenderer) Format() string      { return "png" }
func (PNGRenderer) ContentType() string { return "image/png" }

func (PNGRenderer) Render(w io.Writer, scene services.Scene) error {
	f := frameOf(scene)

	dc := gg.NewContext(f.width, f.height)
	dc.SetColor(background)
	dc.Clear()

	dc.SetLineWidth(2)
	for _, e := range scene.Edges {
		dc.SetColor(edgeColor)
		dc.DrawLine(f.x(e.From.X()), f.y(e.From.Y()), f.x(e.To.X()), f.y(e.To.Y()))
		dc.Stroke()

		dc.MoveTo(f.x(e.Arrow.Tip.X()), f.y(e.Arrow.Tip.Y()))
		dc.LineTo(f.x(e.Arrow.Left.X()), f.y(e.Arrow.Left.Y()))
		dc.LineTo(f.x(e.Arrow.Right.X()), f.y(e.Arrow.Right.Y()))
		dc.ClosePath()
		dc.Fill()
	}

	for _, n := range scene.Nodes {
		x, y := f.x(n.Center.X()-n.Width/2), f.y(n.Center.Y()-n.Height/2)
		dc.SetColor(parseHex(n.Fill))
		dc.DrawRoundedRectangle(x, y, n.Width, n.Height, 8)
		dc.Fill()
		if n.Selected {
			dc.SetColor(selectRing)
			dc.SetLineWidth(3)
			dc.DrawRoundedRectangle(x, y, n.Width, n.Height, 8)
			dc.Stroke()
			dc.SetLineWidth(2)
		}
		dc.SetColor(labelColor)
		dc.DrawStringAnchored(n.Label, f.x(n.Center.X()), f.y(n.Center.Y()), 0.5, 0.5)
	}

	return dc.EncodePNG(w)
}
