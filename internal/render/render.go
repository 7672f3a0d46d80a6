// Package render draws a diagram: to PNG through gg, to SVG through svgo and
// to a grid of terminal cells.
package render

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"flowdraw/internal/connector"
	"flowdraw/internal/diagram"
	"flowdraw/internal/shape"
)

// curveSteps is the outline resolution per quarter turn.
const curveSteps = 16

// Highlight marks the selection in the terminal view.
var Highlight = color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}

// hexRGB drops alpha; terminals and SVG fills take opacity separately.
func hexRGB(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

func opacity(c color.NRGBA) float64 {
	return float64(c.A) / 255
}

// gridColor is a faint tint of the page background.
func gridColor(bg color.NRGBA) color.NRGBA {
	return shape.Blend(bg, shape.Black, 0.12)
}

func labelLines(sh *shape.Shape) []string {
	if strings.TrimSpace(sh.Text) == "" {
		return nil
	}
	return strings.Split(sh.Text, "\n")
}

type resolved struct {
	index int
	geom  connector.Geometry
	style connector.Style
}

// connectors resolves every link of s in index order.
func connectors(s *diagram.Store) []resolved {
	out := make([]resolved, 0, s.ConnectorCount())
	for i := 0; i < s.ConnectorCount(); i++ {
		g, ok := s.ResolveConnector(i)
		if !ok {
			continue
		}
		c, _ := s.ConnectorAt(i)
		out = append(out, resolved{index: i, geom: g, style: c.Style})
	}
	return out
}
