// Package diagram owns the shapes and connectors of one document.
//
// Shapes are kept in z-order: later shapes paint on top and win hit tests.
// Every shape carries a ShapeID that survives reordering and replacement;
// connectors refer to shapes only through these IDs. Operations take
// indices, and an index out of range makes the operation a no-op that
// reports false.
package diagram

import (
	"github.com/google/uuid"

	"flowdraw/internal/connector"
	"flowdraw/internal/geom"
	"flowdraw/internal/logging"
	"flowdraw/internal/shape"
)

// ShapeID identifies a shape for as long as it lives in a store. IDs start
// at 1.
type ShapeID uint64

// Connector is a committed link between two live shapes.
type Connector struct {
	Src, Dst ShapeID
	Style    connector.Style
}

// RemovedConnector is a connector taken out of the store together with the
// index it had at the time.
type RemovedConnector struct {
	Index     int
	Connector Connector
}

type entry struct {
	id    ShapeID
	shape shape.Shape
}

// Store is the diagram model. It is not safe for concurrent use.
type Store struct {
	id         string
	page       Page
	shapes     []entry
	connectors []Connector
	nextID     ShapeID
	sel        selection
	listeners  []Listener
}

// NewStore returns an empty diagram on a default page.
func NewStore() *Store {
	s := &Store{}
	s.clear()
	return s
}

func (s *Store) clear() {
	s.id = uuid.New().String()
	s.page = DefaultPage()
	s.shapes = nil
	s.connectors = nil
	s.nextID = 1
	s.sel = selection{}
}

// Reset empties the diagram, restores the default page and assigns a fresh
// document ID.
func (s *Store) Reset() {
	s.clear()
	logging.Logger().Info("new document", "id", s.id)
	s.notifySelection()
}

// ID returns the document ID.
func (s *Store) ID() string { return s.id }

// SetID replaces the document ID, as when a saved document is loaded.
func (s *Store) SetID(id string) {
	if id != "" {
		s.id = id
	}
}

// Page returns the page attributes.
func (s *Store) Page() Page { return s.page }

// SetPage replaces the page attributes. A page without area is rejected.
func (s *Store) SetPage(p Page) bool {
	if !p.Valid() {
		return false
	}
	s.page = p
	return true
}

func (s *Store) ShapeCount() int     { return len(s.shapes) }
func (s *Store) ConnectorCount() int { return len(s.connectors) }

func (s *Store) validShape(i int) bool     { return i >= 0 && i < len(s.shapes) }
func (s *Store) validConnector(i int) bool { return i >= 0 && i < len(s.connectors) }

// ShapeAt returns a copy of the shape at index i.
func (s *Store) ShapeAt(i int) (shape.Shape, bool) {
	if !s.validShape(i) {
		return shape.Shape{}, false
	}
	return s.shapes[i].shape, true
}

// ShapeID returns the ID of the shape at index i.
func (s *Store) ShapeID(i int) (ShapeID, bool) {
	if !s.validShape(i) {
		return 0, false
	}
	return s.shapes[i].id, true
}

// IndexOf returns the current index of the shape with the given ID, or -1.
func (s *Store) IndexOf(id ShapeID) int {
	for i, e := range s.shapes {
		if e.id == id {
			return i
		}
	}
	return -1
}

// Shapes returns a copy of every shape in z-order.
func (s *Store) Shapes() []shape.Shape {
	out := make([]shape.Shape, len(s.shapes))
	for i, e := range s.shapes {
		out[i] = e.shape
	}
	return out
}

// Connectors returns a copy of every connector.
func (s *Store) Connectors() []Connector {
	return append([]Connector(nil), s.connectors...)
}

// HitTestTopmost returns the index of the topmost shape containing p.
func (s *Store) HitTestTopmost(p geom.Point) (int, bool) {
	for i := len(s.shapes) - 1; i >= 0; i-- {
		if s.shapes[i].shape.Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// HitTestConnector returns the index of the connector closest to p among
// those within tol of it.
func (s *Store) HitTestConnector(p geom.Point, tol float64) (int, bool) {
	best, bestDist := -1, 0.0
	for i := range s.connectors {
		g, ok := s.ResolveConnector(i)
		if !ok {
			continue
		}
		if d, hit := g.Hit(p, tol); hit && (best < 0 || d < bestDist) {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// HandleAt returns the resize handle of shape i within tol of p.
func (s *Store) HandleAt(i int, p geom.Point, tol float64) Handle {
	if !s.validShape(i) {
		return NoHandle
	}
	b := s.shapes[i].shape.Bounds
	for _, h := range Handles() {
		if HandlePoint(b, h).Near(p, tol) {
			return h
		}
	}
	return NoHandle
}

// Bounds returns the area covered by every shape and arrowhead.
func (s *Store) Bounds() geom.Rect {
	var r geom.Rect
	for _, e := range s.shapes {
		r = r.Union(e.shape.Bounds)
	}
	for i := range s.connectors {
		g, ok := s.ResolveConnector(i)
		if !ok {
			continue
		}
		for _, h := range g.Heads {
			for _, p := range h {
				r = r.Union(geom.Rect{X: p.X, Y: p.Y, W: geom.Epsilon, H: geom.Epsilon})
			}
		}
	}
	return r
}
