package shape

import (
	"math"

	"flowdraw/internal/geom"
)

func polygonKind(vertices func(s *Shape) []geom.Point) geometry {
	return geometry{
		contains: func(s *Shape, p geom.Point) bool {
			return s.Bounds.Contains(p) && geom.PolygonContains(vertices(s), p)
		},
		boundary: func(s *Shape, origin, dir geom.Point) (geom.Point, bool) {
			return geom.RayPolygon(origin, dir, vertices(s))
		},
		outline:  func(s *Shape, _ int) []geom.Point { return vertices(s) },
		vertices: vertices,
	}
}

// diamondVertices: top, right, bottom, left.
func diamondVertices(s *Shape) []geom.Point {
	return s.Bounds.EdgeMidpoints()
}

// triangleVertices: apex at the top center, base along the bottom edge.
func triangleVertices(s *Shape) []geom.Point {
	b := s.Bounds
	return []geom.Point{
		{X: b.Center().X, Y: b.Top()},
		{X: b.Right(), Y: b.Bottom()},
		{X: b.Left(), Y: b.Bottom()},
	}
}

// rightTriangleVertices: right angle at the bottom-left corner.
func rightTriangleVertices(s *Shape) []geom.Point {
	b := s.Bounds
	return []geom.Point{
		{X: b.Left(), Y: b.Bottom()},
		{X: b.Right(), Y: b.Bottom()},
		{X: b.Left(), Y: b.Top()},
	}
}

// pentagonVertices is a regular pentagon inscribed in the largest circle that
// fits the bounds, pointing up.
func pentagonVertices(s *Shape) []geom.Point {
	c := s.Center()
	r := math.Min(s.Bounds.W, s.Bounds.H) / 2
	pts := make([]geom.Point, 5)
	for i := range pts {
		pts[i] = polar(c, r, -90+float64(i)*72)
	}
	return pts
}

// hexagonVertices has flat top and bottom edges and points at the left and
// right edge midpoints; it stretches with the bounds.
func hexagonVertices(s *Shape) []geom.Point {
	b := s.Bounds
	q := b.W / 4
	cy := b.Center().Y
	return []geom.Point{
		{X: b.Left() + q, Y: b.Top()},
		{X: b.Right() - q, Y: b.Top()},
		{X: b.Right(), Y: cy},
		{X: b.Right() - q, Y: b.Bottom()},
		{X: b.Left() + q, Y: b.Bottom()},
		{X: b.Left(), Y: cy},
	}
}

// octagonVertices cuts a quarter of the width and height off every corner.
func octagonVertices(s *Shape) []geom.Point {
	b := s.Bounds
	ws, hs := b.W/4, b.H/4
	return []geom.Point{
		{X: b.Left(), Y: b.Top() + hs},
		{X: b.Left() + ws, Y: b.Top()},
		{X: b.Right() - ws, Y: b.Top()},
		{X: b.Right(), Y: b.Top() + hs},
		{X: b.Right(), Y: b.Bottom() - hs},
		{X: b.Right() - ws, Y: b.Bottom()},
		{X: b.Left() + ws, Y: b.Bottom()},
		{X: b.Left(), Y: b.Bottom() - hs},
	}
}
