package diagram

import (
	"flowdraw/internal/geom"
	"flowdraw/internal/logging"
	"flowdraw/internal/shape"
)

// AddShape appends sh on top of the z-order and returns its index. A shape
// of unknown kind or without area is rejected with -1.
func (s *Store) AddShape(sh shape.Shape) int {
	if !sh.Kind.Valid() || sh.Bounds.Empty() {
		return -1
	}
	id := s.nextID
	s.nextID++
	s.shapes = append(s.shapes, entry{id: id, shape: sh})
	logging.Logger().Debug("add shape", "index", len(s.shapes)-1, "id", id, "kind", sh.Kind)
	return len(s.shapes) - 1
}

// InsertShape puts sh back at index i under a previously issued ID. It is
// how a deleted shape is restored.
func (s *Store) InsertShape(i int, id ShapeID, sh shape.Shape) bool {
	if i < 0 || i > len(s.shapes) || id == 0 || s.IndexOf(id) >= 0 {
		return false
	}
	if !sh.Kind.Valid() || sh.Bounds.Empty() {
		return false
	}
	s.shapes = append(s.shapes, entry{})
	copy(s.shapes[i+1:], s.shapes[i:])
	s.shapes[i] = entry{id: id, shape: sh}
	if id >= s.nextID {
		s.nextID = id + 1
	}
	logging.Logger().Debug("insert shape", "index", i, "id", id)
	return true
}

// DeleteShape removes shape i and every connector attached to it. The
// removed connectors are returned in ascending index order.
func (s *Store) DeleteShape(i int) ([]RemovedConnector, bool) {
	if !s.validShape(i) {
		return nil, false
	}
	id := s.shapes[i].id

	var removed []RemovedConnector
	kept := make([]Connector, 0, len(s.connectors))
	for ci, c := range s.connectors {
		if c.Src == id || c.Dst == id {
			removed = append(removed, RemovedConnector{Index: ci, Connector: c})
			continue
		}
		kept = append(kept, c)
	}
	for k := len(removed) - 1; k >= 0; k-- {
		s.connectorRemoved(removed[k].Index)
	}
	s.connectors = kept

	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	logging.Logger().Debug("delete shape", "index", i, "id", id, "connectors", len(removed))
	if s.sel.kind == SelectedShape && s.sel.shape == id {
		s.sel = selection{}
		s.notifySelection()
	}
	return removed, true
}

// MoveShape translates shape i by delta.
func (s *Store) MoveShape(i int, delta geom.Point) bool {
	if !s.validShape(i) {
		return false
	}
	s.shapes[i].shape.Translate(delta)
	s.shapeChanged(i)
	return true
}

// ResizeShape drags handle h of shape i by delta. See ResizeRect for the
// minimum size rule.
func (s *Store) ResizeShape(i int, h Handle, delta geom.Point) bool {
	if !s.validShape(i) || h == NoHandle {
		return false
	}
	sh := &s.shapes[i].shape
	sh.Bounds = ResizeRect(sh.Bounds, h, delta)
	s.shapeChanged(i)
	return true
}

// SetShapeProperty sets one attribute of shape i. A value of the wrong type
// or out of range leaves the shape untouched and reports false.
func (s *Store) SetShapeProperty(i int, p Prop, v any) bool {
	if !s.validShape(i) {
		return false
	}
	sh := s.shapes[i].shape
	if !applyShapeProp(&sh, p, v) {
		return false
	}
	s.shapes[i].shape = sh
	s.shapeChanged(i)
	return true
}

// ReplaceShape overwrites shape i with sh, keeping its ID so connectors stay
// attached.
func (s *Store) ReplaceShape(i int, sh shape.Shape) bool {
	if !s.validShape(i) || !sh.Kind.Valid() || sh.Bounds.Empty() {
		return false
	}
	s.shapes[i].shape = sh
	s.shapeChanged(i)
	return true
}

// Reorder moves shape i to index j, shifting the shapes in between.
func (s *Store) Reorder(i, j int) bool {
	if !s.validShape(i) || !s.validShape(j) || i == j {
		return false
	}
	e := s.shapes[i]
	if i < j {
		copy(s.shapes[i:j], s.shapes[i+1:j+1])
	} else {
		copy(s.shapes[j+1:i+1], s.shapes[j:i])
	}
	s.shapes[j] = e
	logging.Logger().Debug("reorder shape", "from", i, "to", j)
	return true
}

// BringToFront moves shape i to the top of the z-order.
func (s *Store) BringToFront(i int) bool { return s.Reorder(i, len(s.shapes)-1) }

// SendToBack moves shape i to the bottom of the z-order.
func (s *Store) SendToBack(i int) bool { return s.Reorder(i, 0) }

// MoveUp swaps shape i with the one above it.
func (s *Store) MoveUp(i int) bool { return s.Reorder(i, i+1) }

// MoveDown swaps shape i with the one below it.
func (s *Store) MoveDown(i int) bool { return s.Reorder(i, i-1) }

func (s *Store) shapeChanged(i int) {
	if s.sel.kind == SelectedShape && s.sel.shape == s.shapes[i].id {
		s.notifySelection()
	}
}
