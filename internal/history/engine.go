package history

import (
	"flowdraw/internal/connector"
	"flowdraw/internal/diagram"
	"flowdraw/internal/geom"
	"flowdraw/internal/logging"
	"flowdraw/internal/shape"
)

// DefaultLimit is the undo depth used when none is configured.
const DefaultLimit = 200

// Engine wraps a Store: every mutation made through it is recorded on the
// undo stack. Mutating the Store directly bypasses history.
type Engine struct {
	store     *diagram.Store
	undoStack []Record
	redoStack []Record
	limit     int
	replaying bool
	gesture   *Gesture
	changes   uint64
}

// New returns an engine over store keeping at most limit records. A limit
// of zero or less means unlimited.
func New(store *diagram.Store, limit int) *Engine {
	return &Engine{store: store, limit: limit}
}

// Store returns the wrapped store.
func (e *Engine) Store() *diagram.Store { return e.store }

func (e *Engine) CanUndo() bool { return len(e.undoStack) > 0 }
func (e *Engine) CanRedo() bool { return len(e.redoStack) > 0 }

// Len returns the depth of the undo and redo stacks.
func (e *Engine) Len() (undo, redo int) { return len(e.undoStack), len(e.redoStack) }

// Changes counts recorded edits, undos and redos since the last Reset.
// Comparing two readings tells whether the diagram was edited in between.
func (e *Engine) Changes() uint64 { return e.changes }

// Reset drops every record and any gesture in progress, as for a new
// document.
func (e *Engine) Reset() {
	e.undoStack = nil
	e.redoStack = nil
	e.gesture = nil
	e.replaying = false
	e.changes = 0
}

func (e *Engine) recordAction(r Record) {
	if e.replaying {
		return
	}
	e.undoStack = append(e.undoStack, r)
	if e.limit > 0 && len(e.undoStack) > e.limit {
		e.undoStack = append(e.undoStack[:0:0], e.undoStack[len(e.undoStack)-e.limit:]...)
	}
	e.redoStack = e.redoStack[:0]
	e.changes++
	logging.Logger().Debug("record", "kind", r.Kind, "index", r.Index)
}

// AddShape adds sh on top and records it.
func (e *Engine) AddShape(sh shape.Shape) int {
	i := e.store.AddShape(sh)
	if i < 0 {
		return -1
	}
	id, _ := e.store.ShapeID(i)
	e.recordAction(Record{Kind: Add, Index: i, ID: id, After: sh})
	return i
}

// DeleteShape deletes shape i together with its connectors.
func (e *Engine) DeleteShape(i int) bool {
	sh, ok := e.store.ShapeAt(i)
	if !ok {
		return false
	}
	id, _ := e.store.ShapeID(i)
	removed, _ := e.store.DeleteShape(i)
	e.recordAction(Record{Kind: Delete, Index: i, ID: id, Before: sh, Removed: removed})
	return true
}

// MoveShape moves shape i by delta as one step.
func (e *Engine) MoveShape(i int, delta geom.Point) bool {
	return e.change(Move, i, func() bool { return e.store.MoveShape(i, delta) })
}

// ResizeShape drags handle h of shape i by delta as one step.
func (e *Engine) ResizeShape(i int, h diagram.Handle, delta geom.Point) bool {
	return e.change(Resize, i, func() bool { return e.store.ResizeShape(i, h, delta) })
}

// SetShapeProperty sets one attribute of shape i.
func (e *Engine) SetShapeProperty(i int, p diagram.Prop, v any) bool {
	return e.change(PropertyChange, i, func() bool { return e.store.SetShapeProperty(i, p, v) })
}

// ReplaceShape overwrites shape i, recorded as a property change.
func (e *Engine) ReplaceShape(i int, sh shape.Shape) bool {
	return e.change(PropertyChange, i, func() bool { return e.store.ReplaceShape(i, sh) })
}

// change runs apply against shape i and records the before and after
// states. Nothing is recorded when the shape did not change.
func (e *Engine) change(kind Kind, i int, apply func() bool) bool {
	before, ok := e.store.ShapeAt(i)
	if !ok || !apply() {
		return false
	}
	after, _ := e.store.ShapeAt(i)
	if after == before {
		return true
	}
	id, _ := e.store.ShapeID(i)
	e.recordAction(Record{Kind: kind, Index: i, ID: id, Before: before, After: after})
	return true
}

// Reorder moves shape i to index j.
func (e *Engine) Reorder(i, j int) bool {
	if !e.store.Reorder(i, j) {
		return false
	}
	id, _ := e.store.ShapeID(j)
	e.recordAction(Record{Kind: ZOrderChange, Index: i, ToIndex: j, ID: id})
	return true
}

func (e *Engine) BringToFront(i int) bool { return e.Reorder(i, e.store.ShapeCount()-1) }
func (e *Engine) SendToBack(i int) bool   { return e.Reorder(i, 0) }
func (e *Engine) MoveUp(i int) bool       { return e.Reorder(i, i+1) }
func (e *Engine) MoveDown(i int) bool     { return e.Reorder(i, i-1) }

// AddConnector links shapes src and dst.
func (e *Engine) AddConnector(src, dst int, style connector.Style) int {
	ci := e.store.AddConnector(src, dst, style)
	if ci < 0 {
		return -1
	}
	c, _ := e.store.ConnectorAt(ci)
	e.recordAction(Record{Kind: AddConnector, Index: ci, ConnAfter: c, Ends: [2]int{src, dst}})
	return ci
}

// DeleteConnector removes connector i.
func (e *Engine) DeleteConnector(i int) bool {
	src, dst, ok := e.store.ConnectorEnds(i)
	if !ok {
		return false
	}
	c, _ := e.store.DeleteConnector(i)
	e.recordAction(Record{Kind: DeleteConnector, Index: i, ConnBefore: c, Ends: [2]int{src, dst}})
	return true
}

// SetConnectorProperty sets one attribute of connector i.
func (e *Engine) SetConnectorProperty(i int, p diagram.ConnProp, v any) bool {
	before, ok := e.store.ConnectorAt(i)
	if !ok || !e.store.SetConnectorProperty(i, p, v) {
		return false
	}
	after, _ := e.store.ConnectorAt(i)
	if after == before {
		return true
	}
	src, dst, _ := e.store.ConnectorEnds(i)
	e.recordAction(Record{Kind: ConnectorChange, Index: i, ConnBefore: before, ConnAfter: after, Ends: [2]int{src, dst}})
	return true
}

// Undo reverts the most recent record. It reports false on an empty stack.
func (e *Engine) Undo() bool {
	e.CancelGesture()
	if len(e.undoStack) == 0 {
		return false
	}
	last := len(e.undoStack) - 1
	r := e.undoStack[last]
	e.undoStack = e.undoStack[:last]

	e.replaying = true
	e.applyInverse(r)
	e.replaying = false

	e.redoStack = append(e.redoStack, r)
	e.changes++
	logging.Logger().Debug("undo", "kind", r.Kind, "index", r.Index)
	return true
}

// Redo reapplies the most recently undone record.
func (e *Engine) Redo() bool {
	e.CancelGesture()
	if len(e.redoStack) == 0 {
		return false
	}
	last := len(e.redoStack) - 1
	r := e.redoStack[last]
	e.redoStack = e.redoStack[:last]

	e.replaying = true
	e.apply(r)
	e.replaying = false

	e.undoStack = append(e.undoStack, r)
	e.changes++
	logging.Logger().Debug("redo", "kind", r.Kind, "index", r.Index)
	return true
}

func (e *Engine) applyInverse(r Record) {
	s := e.store
	switch r.Kind {
	case Add:
		s.DeleteShape(s.IndexOf(r.ID))
	case Delete:
		s.InsertShape(r.Index, r.ID, r.Before)
		for _, rc := range r.Removed {
			s.InsertConnector(rc.Index, rc.Connector)
		}
	case Move, Resize, PropertyChange:
		s.ReplaceShape(s.IndexOf(r.ID), r.Before)
	case ZOrderChange:
		s.Reorder(s.IndexOf(r.ID), r.Index)
	case AddConnector:
		s.DeleteConnector(r.Index)
	case DeleteConnector:
		s.InsertConnector(r.Index, r.ConnBefore)
	case ConnectorChange:
		s.ReplaceConnector(r.Index, r.ConnBefore)
	}
}

func (e *Engine) apply(r Record) {
	s := e.store
	switch r.Kind {
	case Add:
		s.InsertShape(r.Index, r.ID, r.After)
	case Delete:
		s.DeleteShape(s.IndexOf(r.ID))
	case Move, Resize, PropertyChange:
		s.ReplaceShape(s.IndexOf(r.ID), r.After)
	case ZOrderChange:
		s.Reorder(s.IndexOf(r.ID), r.ToIndex)
	case AddConnector:
		s.InsertConnector(r.Index, r.ConnAfter)
	case DeleteConnector:
		s.DeleteConnector(r.Index)
	case ConnectorChange:
		s.ReplaceConnector(r.Index, r.ConnAfter)
	}
}
