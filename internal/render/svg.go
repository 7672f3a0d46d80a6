package render

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"flowdraw/internal/diagram"
	"flowdraw/internal/geom"
	"flowdraw/internal/logging"
	"flowdraw/internal/shape"
)

// SVG writes the page of s as an SVG document. svgo works in whole units, so
// coordinates are rounded.
func SVG(w io.Writer, s *diagram.Store) {
	page := s.Page()
	canvas := svg.New(w)
	pw, ph := round(page.Width), round(page.Height)
	canvas.Start(pw, ph)
	canvas.Title("flowdraw " + s.ID())
	canvas.Rect(0, 0, pw, ph, fillStyle(page.Background))

	if page.ShowGrid {
		gridStyle := fmt.Sprintf("stroke:%s;stroke-width:0.5", hexRGB(gridColor(page.Background)))
		canvas.Gstyle(gridStyle)
		for x := page.GridStep; x < page.Width; x += page.GridStep {
			canvas.Line(round(x), 0, round(x), ph)
		}
		for y := page.GridStep; y < page.Height; y += page.GridStep {
			canvas.Line(0, round(y), pw, round(y))
		}
		canvas.Gend()
	}

	for _, c := range connectors(s) {
		style := fmt.Sprintf("stroke:%s;stroke-opacity:%.3g;stroke-width:%.3g",
			hexRGB(c.style.Color), opacity(c.style.Color), c.style.Width)
		canvas.Line(round(c.geom.P1.X), round(c.geom.P1.Y), round(c.geom.P2.X), round(c.geom.P2.Y), style)
		for _, head := range c.geom.Heads {
			xs, ys := intCoords(head[:])
			canvas.Polygon(xs, ys, fillStyle(c.style.Color))
		}
	}
	for _, sh := range s.Shapes() {
		drawShapeSVG(canvas, &sh)
	}
	canvas.End()
}

// WriteSVG exports s to an SVG file.
func WriteSVG(path string, s *diagram.Store) error {
	var buf bytes.Buffer
	SVG(&buf, s)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("export svg %s: %w", path, err)
	}
	logging.Logger().Info("exported svg", "path", path, "bytes", buf.Len())
	return nil
}

func drawShapeSVG(canvas *svg.SVG, sh *shape.Shape) {
	xs, ys := intCoords(sh.Outline(curveSteps))
	if len(xs) < 3 {
		return
	}
	style := fillStyle(sh.FillColor)
	if sh.StrokeWidth > 0 {
		style += fmt.Sprintf(";stroke:%s;stroke-opacity:%.3g;stroke-width:%.3g",
			hexRGB(sh.StrokeColor), opacity(sh.StrokeColor), sh.StrokeWidth)
	}
	canvas.Polygon(xs, ys, style)

	lines := labelLines(sh)
	if len(lines) == 0 {
		return
	}
	textStyle := fmt.Sprintf("text-anchor:middle;dominant-baseline:middle;font-family:monospace;font-size:%dpx;fill:%s",
		sh.TextSize, hexRGB(sh.TextColor))
	lh := float64(sh.TextSize) * 1.2
	c := sh.InteriorPoint()
	top := c.Y - lh*float64(len(lines)-1)/2
	for i, line := range lines {
		canvas.Text(round(c.X), round(top+lh*float64(i)), line, textStyle)
	}
}

func fillStyle(c color.NRGBA) string {
	if c.A == 0 {
		return "fill:none"
	}
	return fmt.Sprintf("fill:%s;fill-opacity:%.3g", hexRGB(c), opacity(c))
}

func round(v float64) int { return int(math.Round(v)) }

func intCoords(pts []geom.Point) (xs, ys []int) {
	xs = make([]int, len(pts))
	ys = make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = round(p.X), round(p.Y)
	}
	return xs, ys
}
