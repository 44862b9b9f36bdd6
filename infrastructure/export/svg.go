package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/zaheyak/Content-Studio-sub000/domain/services"
)

// SVGRenderer writes scenes as SVG documents
type SVGRenderer struct{}

func NewSVGRenderer() *SVGRenderer { return &SVGRenderer{} }

func (SVGRenderer) Format() string      { return "svg" }
func (SVGRenderer) ContentType() string { return "image/svg+xml" }

// Render draws edges, then arrow heads, then node boxes with their labels
func (SVGRenderer) Render(w io.Writer, scene services.Scene) error {
	f := frameOf(scene)
	ew := &errWriter{w: w}

	canvas := svg.New(ew)
	canvas.Start(f.width, f.height)
	canvas.Rect(0, 0, f.width, f.height, "fill:"+css(background))

	stroke := fmt.Sprintf("stroke:%s;stroke-width:2", css(edgeColor))
	for _, e := range scene.Edges {
		canvas.Line(px(f.x(e.From.X())), px(f.y(e.From.Y())), px(f.x(e.To.X())), px(f.y(e.To.Y())), stroke)
		canvas.Polygon(
			[]int{px(f.x(e.Arrow.Tip.X())), px(f.x(e.Arrow.Left.X())), px(f.x(e.Arrow.Right.X()))},
			[]int{px(f.y(e.Arrow.Tip.Y())), px(f.y(e.Arrow.Left.Y())), px(f.y(e.Arrow.Right.Y()))},
			"fill:"+css(edgeColor),
		)
	}

	for _, n := range scene.Nodes {
		style := "fill:" + css(parseHex(n.Fill))
		if n.Selected {
			style += fmt.Sprintf(";stroke:%s;stroke-width:3", css(selectRing))
		}
		x, y := f.x(n.Center.X()-n.Width/2), f.y(n.Center.Y()-n.Height/2)
		canvas.Roundrect(px(x), px(y), px(n.Width), px(n.Height), 8, 8, style)
		canvas.Text(px(f.x(n.Center.X())), px(f.y(n.Center.Y())), n.Label,
			fmt.Sprintf("fill:%s;font-size:%dpx;font-family:system-ui,sans-serif;text-anchor:middle;dominant-baseline:middle",
				css(labelColor), fontSize(scene.Zoom)))
	}

	canvas.End()
	return ew.err
}

func px(v float64) int {
	return int(math.Round(v))
}

func fontSize(zoom float64) int {
	size := int(math.Round(14 * zoom))
	if size < 6 {
		return 6
	}
	return size
}

// errWriter keeps the first write error; svgo does not report them
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
