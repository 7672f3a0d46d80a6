package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Pt(50, 40), Pt(10, 0))
	assert.Equal(t, Rect{X: 10, Y: 0, W: 40, H: 40}, r)
	assert.Equal(t, Pt(30, 20), r.Center())
}

func TestRectContainsEdgesInclusive(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 50}
	assert.True(t, r.Contains(Pt(0, 0)))
	assert.True(t, r.Contains(Pt(100, 50)))
	assert.True(t, r.Contains(Pt(50, 25)))
	assert.False(t, r.Contains(Pt(100.1, 25)))
	assert.False(t, r.Contains(Pt(50, -0.1)))
}

func TestRectUnionIgnoresEmpty(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.Equal(t, a, a.Union(Rect{}))
	assert.Equal(t, a, Rect{}.Union(a))
	assert.Equal(t, Rect{X: 0, Y: 0, W: 30, H: 20}, a.Union(Rect{X: 20, Y: 10, W: 10, H: 10}))
}

func TestRayRectExit(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 50}
	tt, ok := RayRectExit(Pt(50, 25), Pt(1, 0), r)
	assert.True(t, ok)
	assert.InDelta(t, 50, tt, 1e-9)

	tt, ok = RayRectExit(Pt(50, 25), Pt(1, 1), r)
	assert.True(t, ok)
	assert.InDelta(t, 25, tt, 1e-9)

	_, ok = RayRectExit(Pt(50, 25), Pt(0, 0), r)
	assert.False(t, ok)
}

func TestRayCircleExit(t *testing.T) {
	tt, ok := RayCircleExit(Pt(0, 0), Pt(1, 0), Pt(0, 0), 10)
	assert.True(t, ok)
	assert.InDelta(t, 10, tt, 1e-9)

	// Circle behind the origin.
	_, ok = RayCircleExit(Pt(0, 0), Pt(1, 0), Pt(-50, 0), 10)
	assert.False(t, ok)

	// Missed entirely.
	_, ok = RayCircleExit(Pt(0, 0), Pt(1, 0), Pt(0, 50), 10)
	assert.False(t, ok)
}

func TestRayPolygonNearestHit(t *testing.T) {
	square := Rect{X: -10, Y: -10, W: 20, H: 20}.Corners()
	p, ok := RayPolygon(Pt(0, 0), Pt(0, 3), square)
	assert.True(t, ok)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 10, p.Y, 1e-9)
}

func TestPolygonContains(t *testing.T) {
	tri := []Point{Pt(0, 0), Pt(10, 0), Pt(0, 10)}
	assert.True(t, PolygonContains(tri, Pt(2, 2)))
	assert.True(t, PolygonContains(tri, Pt(5, 5)), "edge point")
	assert.False(t, PolygonContains(tri, Pt(6, 6)))
	assert.False(t, PolygonContains(tri[:2], Pt(1, 0)))
}

func TestDistanceToSegment(t *testing.T) {
	assert.InDelta(t, 5, DistanceToSegment(Pt(5, 5), Pt(0, 0), Pt(10, 0)), 1e-9)
	assert.InDelta(t, 5, DistanceToSegment(Pt(15, 0), Pt(0, 0), Pt(10, 0)), 1e-9)
	assert.InDelta(t, math.Sqrt2, DistanceToSegment(Pt(1, 1), Pt(0, 0), Pt(0, 0)), 1e-9)
}

func TestNearestPoint(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}
	assert.Equal(t, Pt(10, 10), NearestPoint(pts, Pt(9, 12)))
}
