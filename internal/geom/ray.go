package geom

import "math"

// RaySegment intersects the ray origin+t*dir (t >= 0) with segment a-b.
// It returns the ray parameter of the hit.
func RaySegment(origin, dir, a, b Point) (float64, bool) {
	e := b.Sub(a)
	denom := dir.Cross(e)
	if math.Abs(denom) < Epsilon {
		return 0, false
	}
	w := a.Sub(origin)
	t := w.Cross(e) / denom
	u := w.Cross(dir) / denom
	if t < -Epsilon || u < -Epsilon || u > 1+Epsilon {
		return 0, false
	}
	return math.Max(t, 0), true
}

// RayPolygon returns the hit of the ray with the closed polygon poly that is
// nearest to origin.
func RayPolygon(origin, dir Point, poly []Point) (Point, bool) {
	best := math.Inf(1)
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		if t, ok := RaySegment(origin, dir, a, b); ok && t > Epsilon && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		return Point{}, false
	}
	return origin.Add(dir.Mul(best)), true
}

// RayCircleExit returns the largest ray parameter at which the ray leaves the
// circle, if the ray meets it at all.
func RayCircleExit(origin, dir, center Point, r float64) (float64, bool) {
	f := origin.Sub(center)
	a := dir.Dot(dir)
	if a == 0 {
		return 0, false
	}
	b := 2 * f.Dot(dir)
	c := f.Dot(f) - r*r
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	t := (-b + math.Sqrt(disc)) / (2 * a)
	if t < 0 {
		return 0, false
	}
	return t, true
}

// RayRectExit returns the ray parameter at which a ray starting inside r
// leaves it, using the parametrised four-edge slab test.
func RayRectExit(origin, dir Point, r Rect) (float64, bool) {
	t := math.Inf(1)
	if dir.X > 0 {
		t = math.Min(t, (r.Right()-origin.X)/dir.X)
	} else if dir.X < 0 {
		t = math.Min(t, (r.Left()-origin.X)/dir.X)
	}
	if dir.Y > 0 {
		t = math.Min(t, (r.Bottom()-origin.Y)/dir.Y)
	} else if dir.Y < 0 {
		t = math.Min(t, (r.Top()-origin.Y)/dir.Y)
	}
	if math.IsInf(t, 1) || t < -Epsilon {
		return 0, false
	}
	return math.Max(t, 0), true
}

// PolygonContains reports whether p lies inside poly. Points on an edge count
// as inside.
func PolygonContains(poly []Point, p Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[j], poly[i]
		if DistanceToSegment(p, a, b) <= Epsilon*1e3 {
			return true
		}
		if (b.Y > p.Y) != (a.Y > p.Y) {
			x := (a.X-b.X)*(p.Y-b.Y)/(a.Y-b.Y) + b.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ClosestOnSegment returns the point of segment a-b closest to p.
func ClosestOnSegment(p, a, b Point) Point {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Mul(t))
}

// DistanceToSegment returns the distance from p to segment a-b.
func DistanceToSegment(p, a, b Point) float64 {
	return p.Distance(ClosestOnSegment(p, a, b))
}
