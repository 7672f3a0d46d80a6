package shape

import (
	"math"

	"flowdraw/internal/geom"
)

func ellipseContains(s *Shape, p geom.Point) bool {
	c := s.Center()
	rx, ry := s.Bounds.W/2, s.Bounds.H/2
	dx := (p.X - c.X) / rx
	dy := (p.Y - c.Y) / ry
	return dx*dx+dy*dy <= 1+1e-9
}

// ellipseBoundary solves the ray/ellipse intersection in closed form.
func ellipseBoundary(s *Shape, origin, dir geom.Point) (geom.Point, bool) {
	rx, ry := s.Bounds.W/2, s.Bounds.H/2
	k := (dir.X/rx)*(dir.X/rx) + (dir.Y/ry)*(dir.Y/ry)
	if k == 0 {
		return geom.Point{}, false
	}
	return origin.Add(dir.Mul(1 / math.Sqrt(k))), true
}

func ellipseOutline(s *Shape, steps int) []geom.Point {
	c := s.Center()
	rx, ry := s.Bounds.W/2, s.Bounds.H/2
	n := 4 * steps
	pts := make([]geom.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Pt(c.X+rx*math.Cos(a), c.Y+ry*math.Sin(a))
	}
	return pts
}

// cornerRadius is the effective radius, never more than half a side.
func (s *Shape) cornerRadius() float64 {
	r := math.Max(0, s.CornerRadius)
	return math.Min(r, math.Min(s.Bounds.W, s.Bounds.H)/2)
}

// cornerCenters returns the centers of the four corner arcs clockwise from
// the top-left.
func cornerCenters(b geom.Rect, r float64) []geom.Point {
	return []geom.Point{
		{X: b.Left() + r, Y: b.Top() + r},
		{X: b.Right() - r, Y: b.Top() + r},
		{X: b.Right() - r, Y: b.Bottom() - r},
		{X: b.Left() + r, Y: b.Bottom() - r},
	}
}

func roundedRectContains(s *Shape, p geom.Point) bool {
	b := s.Bounds
	if !b.Contains(p) {
		return false
	}
	r := s.cornerRadius()
	for _, c := range cornerCenters(b, r) {
		inCornerX := (c.X < b.Center().X && p.X < c.X) || (c.X >= b.Center().X && p.X > c.X)
		inCornerY := (c.Y < b.Center().Y && p.Y < c.Y) || (c.Y >= b.Center().Y && p.Y > c.Y)
		if inCornerX && inCornerY && p.Distance(c) > r+1e-9 {
			return false
		}
	}
	return true
}

// roundedRectBoundary treats the shape as the union of two crossing bands and
// four corner discs. The union is convex, so the ray leaves it at the largest
// exit parameter of any part.
func roundedRectBoundary(s *Shape, origin, dir geom.Point) (geom.Point, bool) {
	b := s.Bounds
	r := s.cornerRadius()
	bands := []geom.Rect{
		{X: b.X, Y: b.Y + r, W: b.W, H: b.H - 2*r},
		{X: b.X + r, Y: b.Y, W: b.W - 2*r, H: b.H},
	}
	return unionExit(origin, dir, bands, cornerCenters(b, r), r)
}

func unionExit(origin, dir geom.Point, bands []geom.Rect, discs []geom.Point, r float64) (geom.Point, bool) {
	best, found := 0.0, false
	for _, band := range bands {
		if t, ok := geom.RayRectExit(origin, dir, band); ok && (!found || t > best) {
			best, found = t, true
		}
	}
	if r > 0 {
		for _, c := range discs {
			if t, ok := geom.RayCircleExit(origin, dir, c, r); ok && (!found || t > best) {
				best, found = t, true
			}
		}
	}
	if !found {
		return geom.Point{}, false
	}
	return origin.Add(dir.Mul(best)), true
}

func roundedRectOutline(s *Shape, steps int) []geom.Point {
	r := s.cornerRadius()
	centers := cornerCenters(s.Bounds, r)
	// Each corner arc runs through a quarter turn, starting at the left.
	starts := []float64{180, 270, 0, 90}
	var pts []geom.Point
	for i, c := range centers {
		pts = append(pts, arcPoints(c, r, starts[i], 90, steps)...)
	}
	return pts
}

// capsuleAxis returns the two cap centers and the cap radius.
func (s *Shape) capsuleAxis() (a, b geom.Point, r float64) {
	bb := s.Bounds
	c := bb.Center()
	if bb.W >= bb.H {
		r = bb.H / 2
		return geom.Pt(bb.Left()+r, c.Y), geom.Pt(bb.Right()-r, c.Y), r
	}
	r = bb.W / 2
	return geom.Pt(c.X, bb.Top()+r), geom.Pt(c.X, bb.Bottom()-r), r
}

func capsuleContains(s *Shape, p geom.Point) bool {
	a, b, r := s.capsuleAxis()
	return geom.DistanceToSegment(p, a, b) <= r+1e-9
}

// capsuleBoundary distinguishes the straight mid-section from the two caps by
// taking the exit of the mid rectangle and of each cap disc.
func capsuleBoundary(s *Shape, origin, dir geom.Point) (geom.Point, bool) {
	a, b, r := s.capsuleAxis()
	var mid geom.Rect
	if a.Y == b.Y {
		mid = geom.Rect{X: a.X, Y: a.Y - r, W: b.X - a.X, H: 2 * r}
	} else {
		mid = geom.Rect{X: a.X - r, Y: a.Y, W: 2 * r, H: b.Y - a.Y}
	}
	return unionExit(origin, dir, []geom.Rect{mid}, []geom.Point{a, b}, r)
}

func capsuleOutline(s *Shape, steps int) []geom.Point {
	a, b, r := s.capsuleAxis()
	if a.Y == b.Y {
		pts := arcPoints(b, r, 270, 180, 2*steps)
		return append(pts, arcPoints(a, r, 90, 180, 2*steps)...)
	}
	pts := arcPoints(a, r, 180, 180, 2*steps)
	return append(pts, arcPoints(b, r, 0, 180, 2*steps)...)
}

// arcRadii returns the outer and inner radius of the ring.
func (s *Shape) arcRadii() (outer, inner float64) {
	outer = math.Min(s.Bounds.W, s.Bounds.H) / 2
	inner = math.Max(outer-s.Thickness, minInnerRadius)
	if inner >= outer {
		inner = outer / 2
	}
	return outer, inner
}

func arcContains(s *Shape, p geom.Point) bool {
	c := s.Center()
	ro, ri := s.arcRadii()
	d := p.Distance(c)
	if d < ri-1e-9 || d > ro+1e-9 {
		return false
	}
	start, span := s.angles()
	return inSpan(angleOf(p.Sub(c)), start, span)
}

// arcBoundary returns the outer arc point when the direction falls within the
// span, and otherwise the middle of the nearest end edge.
func arcBoundary(s *Shape, origin, dir geom.Point) (geom.Point, bool) {
	ro, ri := s.arcRadii()
	start, span := s.angles()
	a := angleOf(dir)
	if inSpan(a, start, span) {
		return polar(origin, ro, a), true
	}
	return polar(origin, (ro+ri)/2, nearestSpanEdge(a, start, span)), true
}

func arcOutline(s *Shape, steps int) []geom.Point {
	c := s.Center()
	ro, ri := s.arcRadii()
	start, span := s.angles()
	n := spanSteps(span, steps)
	pts := arcPoints(c, ro, start, span, n)
	inner := arcPoints(c, ri, start, span, n)
	for i := len(inner) - 1; i >= 0; i-- {
		pts = append(pts, inner[i])
	}
	return pts
}

func sectorContains(s *Shape, p geom.Point) bool {
	c := s.Center()
	r := math.Min(s.Bounds.W, s.Bounds.H) / 2
	d := p.Distance(c)
	if d > r+1e-9 {
		return false
	}
	if d < 1e-9 {
		return true
	}
	start, span := s.angles()
	return inSpan(angleOf(p.Sub(c)), start, span)
}

// sectorBoundary returns the arc point when the direction falls within the
// span, and otherwise the arc end nearest to it.
func sectorBoundary(s *Shape, origin, dir geom.Point) (geom.Point, bool) {
	r := math.Min(s.Bounds.W, s.Bounds.H) / 2
	start, span := s.angles()
	a := angleOf(dir)
	if inSpan(a, start, span) {
		return polar(origin, r, a), true
	}
	return polar(origin, r, nearestSpanEdge(a, start, span)), true
}

func sectorOutline(s *Shape, steps int) []geom.Point {
	c := s.Center()
	r := math.Min(s.Bounds.W, s.Bounds.H) / 2
	start, span := s.angles()
	pts := arcPoints(c, r, start, span, spanSteps(span, steps))
	if span >= 360 {
		return pts
	}
	return append([]geom.Point{c}, pts...)
}

func nearestSpanEdge(a, start, span float64) float64 {
	end := start + span
	if angDist(a, start) <= angDist(a, end) {
		return start
	}
	return end
}

func spanSteps(span float64, perQuarter int) int {
	return max(1, int(math.Ceil(span/90*float64(perQuarter))))
}

// arcPoints samples n segments of the circular arc from start through span
// degrees, both ends included.
func arcPoints(c geom.Point, r, start, span float64, n int) []geom.Point {
	pts := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, polar(c, r, start+span*float64(i)/float64(n)))
	}
	return pts
}
