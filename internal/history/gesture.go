package history

import (
	"flowdraw/internal/diagram"
	"flowdraw/internal/geom"
	"flowdraw/internal/shape"
)

// Gesture is a move or resize in progress. Intermediate updates change the
// store but are not recorded; only the end of the gesture is.
type Gesture struct {
	Kind   Kind
	ID     diagram.ShapeID
	Handle diagram.Handle
	Before shape.Shape
}

// Gesture returns the gesture in progress, if any.
func (e *Engine) Gesture() (Gesture, bool) {
	if e.gesture == nil {
		return Gesture{}, false
	}
	return *e.gesture, true
}

// BeginMove starts dragging shape i. Any gesture already in progress is
// cancelled.
func (e *Engine) BeginMove(i int) bool {
	return e.begin(Move, i, diagram.NoHandle)
}

// BeginResize starts dragging handle h of shape i.
func (e *Engine) BeginResize(i int, h diagram.Handle) bool {
	if h == diagram.NoHandle {
		return false
	}
	return e.begin(Resize, i, h)
}

func (e *Engine) begin(kind Kind, i int, h diagram.Handle) bool {
	e.CancelGesture()
	sh, ok := e.store.ShapeAt(i)
	if !ok {
		return false
	}
	id, _ := e.store.ShapeID(i)
	e.gesture = &Gesture{Kind: kind, ID: id, Handle: h, Before: sh}
	return true
}

// UpdateGesture applies the total pointer offset since the gesture began.
func (e *Engine) UpdateGesture(total geom.Point) bool {
	g := e.gesture
	if g == nil {
		return false
	}
	i := e.store.IndexOf(g.ID)
	if i < 0 {
		e.gesture = nil
		return false
	}
	sh := g.Before
	if g.Kind == Move {
		sh.Translate(total)
	} else {
		sh.Bounds = diagram.ResizeRect(sh.Bounds, g.Handle, total)
	}
	return e.store.ReplaceShape(i, sh)
}

// EndGesture commits the gesture as a single record. A gesture that left
// the shape unchanged records nothing and reports false.
func (e *Engine) EndGesture() bool {
	g := e.gesture
	e.gesture = nil
	if g == nil {
		return false
	}
	i := e.store.IndexOf(g.ID)
	after, ok := e.store.ShapeAt(i)
	if !ok || after == g.Before {
		return false
	}
	e.recordAction(Record{Kind: g.Kind, Index: i, ID: g.ID, Before: g.Before, After: after})
	return true
}

// CancelGesture puts the shape back the way it was when the gesture began.
func (e *Engine) CancelGesture() {
	g := e.gesture
	e.gesture = nil
	if g == nil {
		return
	}
	if i := e.store.IndexOf(g.ID); i >= 0 {
		e.store.ReplaceShape(i, g.Before)
	}
}
