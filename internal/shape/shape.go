// Package shape implements the closed set of diagram shape kinds and their
// geometry: exact hit tests, boundary connection points and outlines.
//
// A Shape is a plain value. Copying it yields an independent snapshot, which
// is what the history engine relies on.
package shape

import (
	"image/color"
	"math"

	"flowdraw/internal/geom"
)

const (
	// MinDrawSize is the smallest width/height a drawn shape may have.
	MinDrawSize = 5.0
	// MinResizeSize is the size a resize handle clamps to.
	MinResizeSize = 10.0

	DefaultStrokeWidth  = 1.5
	DefaultTextSize     = 10
	DefaultCornerRadius = 10.0
	DefaultStartAngle   = 0.0
	DefaultSpanAngle    = 90.0
	DefaultThickness    = 20.0

	// minInnerRadius keeps a visible hole in arcs.
	minInnerRadius = 5.0
)

var (
	White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black = color.NRGBA{A: 0xff}
)

// Shape is one placed element of a diagram.
type Shape struct {
	Kind   Kind
	Bounds geom.Rect

	FillColor   color.NRGBA
	StrokeColor color.NRGBA
	StrokeWidth float64

	Text      string
	TextColor color.NRGBA
	TextSize  int

	// Kind parameters. Only the fields of the shape's kind are meaningful.
	CornerRadius float64 // roundedrect
	StartAngle   float64 // arc, sector; degrees clockwise from +X
	SpanAngle    float64 // arc, sector
	Thickness    float64 // arc
}

// New returns a shape of kind k with default style and parameters.
func New(k Kind, bounds geom.Rect) Shape {
	return Shape{
		Kind:         k,
		Bounds:       bounds,
		FillColor:    White,
		StrokeColor:  Black,
		StrokeWidth:  DefaultStrokeWidth,
		TextColor:    Black,
		TextSize:     DefaultTextSize,
		CornerRadius: DefaultCornerRadius,
		StartAngle:   DefaultStartAngle,
		SpanAngle:    DefaultSpanAngle,
		Thickness:    DefaultThickness,
	}
}

// Center returns the center of the shape's bounds.
func (s *Shape) Center() geom.Point {
	return s.Bounds.Center()
}

// Contains reports whether p lies inside the shape.
func (s *Shape) Contains(p geom.Point) bool {
	if s.Bounds.Empty() || !s.Kind.Valid() {
		return false
	}
	return kindTable[s.Kind].contains(s, p)
}

// BoundaryPoint returns the point on the outline where a connector arriving
// from ref terminates. A reference at the center, or a shape without area,
// yields the center.
func (s *Shape) BoundaryPoint(ref geom.Point) geom.Point {
	c := s.Center()
	if s.Bounds.Empty() || !s.Kind.Valid() || ref.Near(c, geom.Epsilon) {
		return c
	}
	g := kindTable[s.Kind]
	origin := c
	if g.origin != nil {
		origin = g.origin(s)
	}
	dir := ref.Sub(origin)
	if dir.Length() < geom.Epsilon {
		return c
	}
	if p, ok := g.boundary(s, origin, dir); ok {
		return p
	}
	return geom.NearestPoint(s.anchors(), ref)
}

// Outline returns a closed polygon approximating the outline. steps is the
// number of segments used per quarter turn of a curve.
func (s *Shape) Outline(steps int) []geom.Point {
	if s.Bounds.Empty() || !s.Kind.Valid() {
		return nil
	}
	if steps < 1 {
		steps = 1
	}
	return kindTable[s.Kind].outline(s, steps)
}

// InteriorPoint returns a point that is inside the shape. It is the bounds
// center for every kind but the arc, whose center lies in its hole.
func (s *Shape) InteriorPoint() geom.Point {
	if s.Kind != Arc || s.Bounds.Empty() {
		return s.Center()
	}
	ro, ri := s.arcRadii()
	start, span := s.angles()
	return polar(s.Center(), (ro+ri)/2, start+span/2)
}

// Translate moves the shape by d.
func (s *Shape) Translate(d geom.Point) {
	s.Bounds = s.Bounds.Translate(d)
}

// anchors are the defining points used when no ray intersection exists.
func (s *Shape) anchors() []geom.Point {
	if g := kindTable[s.Kind]; g.vertices != nil {
		return g.vertices(s)
	}
	return s.Bounds.EdgeMidpoints()
}

// angles returns the start angle in [0, 360) and the span in (0, 360].
func (s *Shape) angles() (start, span float64) {
	start, span = s.StartAngle, s.SpanAngle
	if span < 0 {
		start += span
		span = -span
	}
	if span == 0 || span > 360 {
		span = 360
	}
	return normDeg(start), span
}

type geometry struct {
	contains func(s *Shape, p geom.Point) bool
	// boundary intersects the ray origin+t*dir with the outline.
	boundary func(s *Shape, origin, dir geom.Point) (geom.Point, bool)
	outline  func(s *Shape, steps int) []geom.Point
	// vertices is set for polygonal kinds.
	vertices func(s *Shape) []geom.Point
	// origin overrides the ray origin when the bounds center is not interior.
	origin func(s *Shape) geom.Point
}

var kindTable [numKinds]geometry

func init() {
	kindTable = [numKinds]geometry{
		Rect: {
			contains: func(s *Shape, p geom.Point) bool { return s.Bounds.Contains(p) },
			boundary: rectBoundary,
			outline:  func(s *Shape, _ int) []geom.Point { return s.Bounds.Corners() },
			vertices: func(s *Shape) []geom.Point { return s.Bounds.Corners() },
		},
		Ellipse: {
			contains: ellipseContains,
			boundary: ellipseBoundary,
			outline:  ellipseOutline,
		},
		Diamond:       polygonKind(diamondVertices),
		Triangle:      polygonKind(triangleVertices),
		RightTriangle: polygonKind(rightTriangleVertices),
		Pentagon:      polygonKind(pentagonVertices),
		Hexagon:       polygonKind(hexagonVertices),
		Octagon:       polygonKind(octagonVertices),
		RoundedRect: {
			contains: roundedRectContains,
			boundary: roundedRectBoundary,
			outline:  roundedRectOutline,
		},
		Capsule: {
			contains: capsuleContains,
			boundary: capsuleBoundary,
			outline:  capsuleOutline,
		},
		Arc: {
			contains: arcContains,
			boundary: arcBoundary,
			outline:  arcOutline,
		},
		Sector: {
			contains: sectorContains,
			boundary: sectorBoundary,
			outline:  sectorOutline,
		},
	}
	// The bounds center sits on the hypotenuse; cast rays from the centroid.
	kindTable[RightTriangle].origin = func(s *Shape) geom.Point {
		v := rightTriangleVertices(s)
		return geom.Pt((v[0].X+v[1].X+v[2].X)/3, (v[0].Y+v[1].Y+v[2].Y)/3)
	}
}

func rectBoundary(s *Shape, origin, dir geom.Point) (geom.Point, bool) {
	t, ok := geom.RayRectExit(origin, dir, s.Bounds)
	if !ok {
		return geom.Point{}, false
	}
	return origin.Add(dir.Mul(t)), true
}

func normDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// angleOf returns the direction of v in degrees clockwise from +X.
func angleOf(v geom.Point) float64 {
	return normDeg(math.Atan2(v.Y, v.X) * 180 / math.Pi)
}

func polar(c geom.Point, r, deg float64) geom.Point {
	rad := deg * math.Pi / 180
	return geom.Pt(c.X+r*math.Cos(rad), c.Y+r*math.Sin(rad))
}

// inSpan reports whether angle a lies within [start, start+span].
func inSpan(a, start, span float64) bool {
	if span >= 360 {
		return true
	}
	off := normDeg(a - start)
	return off <= span+1e-7 || off >= 360-1e-7
}

// angDist is the unsigned angular distance between two directions.
func angDist(a, b float64) float64 {
	d := normDeg(a - b)
	return math.Min(d, 360-d)
}
