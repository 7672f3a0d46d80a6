package diagram

import (
	"flowdraw/internal/connector"
	"flowdraw/internal/geom"
	"flowdraw/internal/logging"
)

// AddConnector links shape src to shape dst and returns the new connector's
// index, or -1 when either index is out of range or both name the same shape.
func (s *Store) AddConnector(src, dst int, style connector.Style) int {
	if !s.validShape(src) || !s.validShape(dst) || src == dst {
		return -1
	}
	s.connectors = append(s.connectors, Connector{
		Src:   s.shapes[src].id,
		Dst:   s.shapes[dst].id,
		Style: style,
	})
	logging.Logger().Debug("add connector", "index", len(s.connectors)-1, "src", src, "dst", dst)
	return len(s.connectors) - 1
}

func (s *Store) validLink(c Connector) bool {
	return c.Src != c.Dst && s.IndexOf(c.Src) >= 0 && s.IndexOf(c.Dst) >= 0
}

// InsertConnector puts c at index i. Both of its shapes must be live.
func (s *Store) InsertConnector(i int, c Connector) bool {
	if i < 0 || i > len(s.connectors) || !s.validLink(c) {
		return false
	}
	s.connectors = append(s.connectors, Connector{})
	copy(s.connectors[i+1:], s.connectors[i:])
	s.connectors[i] = c
	if s.sel.kind == SelectedConnector && s.sel.connector >= i {
		s.sel.connector++
	}
	return true
}

// DeleteConnector removes connector i and returns it.
func (s *Store) DeleteConnector(i int) (Connector, bool) {
	if !s.validConnector(i) {
		return Connector{}, false
	}
	c := s.connectors[i]
	s.connectors = append(s.connectors[:i], s.connectors[i+1:]...)
	s.connectorRemoved(i)
	logging.Logger().Debug("delete connector", "index", i)
	return c, true
}

// ConnectorAt returns a copy of connector i.
func (s *Store) ConnectorAt(i int) (Connector, bool) {
	if !s.validConnector(i) {
		return Connector{}, false
	}
	return s.connectors[i], true
}

// ConnectorEnds returns the current shape indices connector i links.
func (s *Store) ConnectorEnds(i int) (src, dst int, ok bool) {
	if !s.validConnector(i) {
		return -1, -1, false
	}
	c := s.connectors[i]
	return s.IndexOf(c.Src), s.IndexOf(c.Dst), true
}

// SetConnectorProperty sets one attribute of connector i.
func (s *Store) SetConnectorProperty(i int, p ConnProp, v any) bool {
	if !s.validConnector(i) {
		return false
	}
	c := s.connectors[i]
	if !applyConnProp(&c, p, v) {
		return false
	}
	s.connectors[i] = c
	s.connectorChanged(i)
	return true
}

// ReplaceConnector overwrites connector i with c.
func (s *Store) ReplaceConnector(i int, c Connector) bool {
	if !s.validConnector(i) || !s.validLink(c) {
		return false
	}
	s.connectors[i] = c
	s.connectorChanged(i)
	return true
}

// ResolveConnector computes where connector i attaches to its shapes right
// now. Nothing is cached; moving a shape moves its links on the next call.
func (s *Store) ResolveConnector(i int) (connector.Geometry, bool) {
	if !s.validConnector(i) {
		return connector.Geometry{}, false
	}
	c := s.connectors[i]
	si, di := s.IndexOf(c.Src), s.IndexOf(c.Dst)
	if si < 0 || di < 0 {
		return connector.Geometry{}, false
	}
	src, dst := s.shapes[si].shape, s.shapes[di].shape
	return connector.Resolve(&src, &dst, geom.Point{}, c.Style.Bidirectional)
}

// connectorRemoved fixes the selection after connector i is gone.
func (s *Store) connectorRemoved(i int) {
	if s.sel.kind != SelectedConnector {
		return
	}
	switch {
	case s.sel.connector == i:
		s.sel = selection{}
		s.notifySelection()
	case s.sel.connector > i:
		s.sel.connector--
	}
}

func (s *Store) connectorChanged(i int) {
	if s.sel.kind == SelectedConnector && s.sel.connector == i {
		s.notifySelection()
	}
}
