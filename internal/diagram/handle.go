package diagram

import (
	"math"

	"flowdraw/internal/geom"
	"flowdraw/internal/shape"
)

// Handle names the edge or corner a resize drags.
type Handle int

const (
	NoHandle Handle = iota
	HandleTop
	HandleRight
	HandleBottom
	HandleLeft
	HandleTopLeft
	HandleTopRight
	HandleBottomRight
	HandleBottomLeft
)

func (h Handle) String() string {
	switch h {
	case HandleTop:
		return "top"
	case HandleRight:
		return "right"
	case HandleBottom:
		return "bottom"
	case HandleLeft:
		return "left"
	case HandleTopLeft:
		return "top-left"
	case HandleTopRight:
		return "top-right"
	case HandleBottomRight:
		return "bottom-right"
	case HandleBottomLeft:
		return "bottom-left"
	}
	return "none"
}

func (h Handle) movesLeft() bool {
	return h == HandleLeft || h == HandleTopLeft || h == HandleBottomLeft
}

func (h Handle) movesRight() bool {
	return h == HandleRight || h == HandleTopRight || h == HandleBottomRight
}

func (h Handle) movesTop() bool {
	return h == HandleTop || h == HandleTopLeft || h == HandleTopRight
}

func (h Handle) movesBottom() bool {
	return h == HandleBottom || h == HandleBottomLeft || h == HandleBottomRight
}

// ResizeRect drags the edges named by h by delta. An edge dragged past the
// minimum size stops there; the opposite edge never moves.
func ResizeRect(b geom.Rect, h Handle, delta geom.Point) geom.Rect {
	l, t, r, bt := b.Left(), b.Top(), b.Right(), b.Bottom()
	const minSize = shape.MinResizeSize
	if h.movesLeft() {
		l = math.Min(l+delta.X, r-minSize)
	}
	if h.movesRight() {
		r = math.Max(r+delta.X, l+minSize)
	}
	if h.movesTop() {
		t = math.Min(t+delta.Y, bt-minSize)
	}
	if h.movesBottom() {
		bt = math.Max(bt+delta.Y, t+minSize)
	}
	return geom.Rect{X: l, Y: t, W: r - l, H: bt - t}
}

// handlePoints returns the grab point of every handle of b.
func handlePoints(b geom.Rect) map[Handle]geom.Point {
	c := b.Center()
	return map[Handle]geom.Point{
		HandleTop:         {X: c.X, Y: b.Top()},
		HandleRight:       {X: b.Right(), Y: c.Y},
		HandleBottom:      {X: c.X, Y: b.Bottom()},
		HandleLeft:        {X: b.Left(), Y: c.Y},
		HandleTopLeft:     {X: b.Left(), Y: b.Top()},
		HandleTopRight:    {X: b.Right(), Y: b.Top()},
		HandleBottomRight: {X: b.Right(), Y: b.Bottom()},
		HandleBottomLeft:  {X: b.Left(), Y: b.Bottom()},
	}
}

// Handles lists every handle in a fixed order, corners first.
func Handles() []Handle {
	return []Handle{
		HandleTopLeft, HandleTopRight, HandleBottomRight, HandleBottomLeft,
		HandleTop, HandleRight, HandleBottom, HandleLeft,
	}
}

// HandlePoint returns where handle h of b is grabbed.
func HandlePoint(b geom.Rect, h Handle) geom.Point {
	return handlePoints(b)[h]
}
