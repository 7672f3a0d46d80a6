package diagram

import "image/color"

// SelectionKind tells what, if anything, is selected.
type SelectionKind int

const (
	SelectedNone SelectionKind = iota
	SelectedShape
	SelectedConnector
)

// Selection is the current selection. Index is -1 when nothing is selected.
type Selection struct {
	Kind  SelectionKind
	Index int
}

// selection tracks a shape by ID so reordering does not lose it.
type selection struct {
	kind      SelectionKind
	shape     ShapeID
	connector int
}

// SelectionInfo carries the style shown for the selection. For a connector,
// Stroke and StrokeWidth are its colour and width.
type SelectionInfo struct {
	Kind        SelectionKind
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
}

// Listener receives change notifications from a Store. Calls are made
// synchronously after the mutation that caused them.
type Listener interface {
	SelectionChanged(info SelectionInfo)
	SizeChanged(w, h float64)
	TextStyleChanged(c color.NRGBA, size int)
}

// Subscribe registers l for notifications.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Selection returns the current selection.
func (s *Store) Selection() Selection {
	switch s.sel.kind {
	case SelectedShape:
		if i := s.IndexOf(s.sel.shape); i >= 0 {
			return Selection{Kind: SelectedShape, Index: i}
		}
	case SelectedConnector:
		if s.validConnector(s.sel.connector) {
			return Selection{Kind: SelectedConnector, Index: s.sel.connector}
		}
	}
	return Selection{Kind: SelectedNone, Index: -1}
}

// SelectedShape returns the index of the selected shape.
func (s *Store) SelectedShape() (int, bool) {
	sel := s.Selection()
	return sel.Index, sel.Kind == SelectedShape
}

// SelectedConnector returns the index of the selected connector.
func (s *Store) SelectedConnector() (int, bool) {
	sel := s.Selection()
	return sel.Index, sel.Kind == SelectedConnector
}

// SelectShape selects shape i, dropping any connector selection.
func (s *Store) SelectShape(i int) bool {
	if !s.validShape(i) {
		return false
	}
	s.sel = selection{kind: SelectedShape, shape: s.shapes[i].id}
	s.notifySelection()
	return true
}

// SelectConnector selects connector i, dropping any shape selection.
func (s *Store) SelectConnector(i int) bool {
	if !s.validConnector(i) {
		return false
	}
	s.sel = selection{kind: SelectedConnector, connector: i}
	s.notifySelection()
	return true
}

// ClearSelection deselects everything.
func (s *Store) ClearSelection() {
	if s.sel.kind == SelectedNone {
		return
	}
	s.sel = selection{}
	s.notifySelection()
}

func (s *Store) notifySelection() {
	if len(s.listeners) == 0 {
		return
	}
	info := SelectionInfo{Kind: SelectedNone}
	sel := s.Selection()
	switch sel.Kind {
	case SelectedShape:
		sh := s.shapes[sel.Index].shape
		info = SelectionInfo{
			Kind:        SelectedShape,
			Fill:        sh.FillColor,
			Stroke:      sh.StrokeColor,
			StrokeWidth: sh.StrokeWidth,
		}
		for _, l := range s.listeners {
			l.SelectionChanged(info)
			l.SizeChanged(sh.Bounds.W, sh.Bounds.H)
			l.TextStyleChanged(sh.TextColor, sh.TextSize)
		}
		return
	case SelectedConnector:
		c := s.connectors[sel.Index]
		info = SelectionInfo{
			Kind:        SelectedConnector,
			Stroke:      c.Style.Color,
			StrokeWidth: c.Style.Width,
		}
	}
	for _, l := range s.listeners {
		l.SelectionChanged(info)
	}
}
