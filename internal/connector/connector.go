// Package connector computes where a straight link between two shapes
// attaches and how its arrowheads sit.
package connector

import (
	"image/color"
	"math"

	"flowdraw/internal/geom"
	"flowdraw/internal/shape"
)

const (
	// ArrowSize is the length of an arrowhead side, independent of the link
	// length.
	ArrowSize = 8.0
	// arrowHalfAngle is the angle between the shaft and each wing.
	arrowHalfAngle = math.Pi / 6

	DefaultWidth = 1.5
)

// Style holds the visual attributes of a connector.
type Style struct {
	Color         color.NRGBA
	Width         float64
	Bidirectional bool
}

// DefaultStyle is a black 1.5 wide one-way link.
func DefaultStyle() Style {
	return Style{Color: shape.Black, Width: DefaultWidth}
}

// Geometry is a resolved connector: the segment from P1 to P2 and the
// arrowheads drawn on it. Heads[0] sits at P2; Heads[1], when present, at P1.
type Geometry struct {
	P1, P2 geom.Point
	Heads  [][3]geom.Point
}

// Resolve anchors a link leaving src. With a nil dst the link ends at the
// free point pending, as while the user is still dragging it. Resolve
// reports false when there is no source.
//
// The anchors are relaxed in a fixed number of passes: src toward the far
// end, dst toward that point, then src once more toward the final p2.
func Resolve(src, dst *shape.Shape, pending geom.Point, bidirectional bool) (Geometry, bool) {
	if src == nil {
		return Geometry{}, false
	}
	target := pending
	if dst != nil {
		target = dst.Center()
	}
	p1 := src.BoundaryPoint(target)
	p2 := pending
	if dst != nil {
		p2 = dst.BoundaryPoint(p1)
	}
	p1 = src.BoundaryPoint(p2)

	g := Geometry{P1: p1, P2: p2}
	g.Heads = append(g.Heads, Arrowhead(p1, p2))
	if bidirectional {
		g.Heads = append(g.Heads, Arrowhead(p2, p1))
	}
	return g, true
}

// Arrowhead returns the triangle with its tip at to, pointing along from→to.
// A zero-length segment yields a head pointing along +X.
func Arrowhead(from, to geom.Point) [3]geom.Point {
	dir := to.Sub(from).Normalize()
	if dir.IsZero() {
		dir = geom.Pt(1, 0)
	}
	back := dir.Mul(-ArrowSize)
	return [3]geom.Point{
		to,
		to.Add(back.Rotate(arrowHalfAngle)),
		to.Add(back.Rotate(-arrowHalfAngle)),
	}
}

// Distance returns the distance from p to the connector segment.
func (g Geometry) Distance(p geom.Point) float64 {
	return geom.DistanceToSegment(p, g.P1, g.P2)
}

// Hit reports whether p is within tol of the connector and returns the
// distance used for ranking. Within one arrow length of a tip the tolerance
// widens by the arrow size so the head stays easy to grab.
func (g Geometry) Hit(p geom.Point, tol float64) (float64, bool) {
	d := g.Distance(p)
	limit := tol
	tips := []geom.Point{g.P2}
	if len(g.Heads) > 1 {
		tips = append(tips, g.P1)
	}
	for _, tip := range tips {
		if p.Distance(tip) <= ArrowSize+tol {
			limit = tol + ArrowSize
		}
	}
	return d, d <= limit
}

// Length returns the length of the resolved segment.
func (g Geometry) Length() float64 {
	return g.P1.Distance(g.P2)
}
