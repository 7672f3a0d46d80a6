package main

import (
	"math"

	"flowdraw/internal/geom"
	"flowdraw/internal/render"
)

func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
		return
	}
	m.handleCursorMove(key, speed)
}

func (m *model) handlePan(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.panX -= speed
	case "l", "right", "L", "shift+right":
		m.panX += speed
	case "k", "up", "K", "shift+up":
		m.panY -= speed
	case "j", "down", "J", "shift+down":
		m.panY += speed
	}
}

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// stepFor turns a navigation key into a page-space delta of whole cells.
func (m *model) stepFor(key string) geom.Point {
	speed := float64(m.getMoveSpeed(key))
	v := m.viewport()
	cw, ch := v.CellW*speed, v.CellH*speed
	switch key {
	case "h", "left", "H", "shift+left":
		return geom.Pt(-cw, 0)
	case "l", "right", "L", "shift+right":
		return geom.Pt(cw, 0)
	case "k", "up", "K", "shift+up":
		return geom.Pt(0, -ch)
	case "j", "down", "J", "shift+down":
		return geom.Pt(0, ch)
	}
	return geom.Point{}
}

func isNavigationKey(key string) bool {
	switch key {
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		return true
	}
	return false
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	// Leave room for status line
	maxY := m.height - statusLines - 1
	if maxY < 0 {
		maxY = 0
	}
	if m.cursorY > maxY {
		m.cursorY = maxY
	}
}

// viewport maps the drawing area of the terminal onto the page at the
// current zoom.
func (m *model) viewport() render.Viewport {
	rows := m.height - statusLines
	if rows < 0 {
		rows = 0
	}
	v := render.Viewport{
		CellW: m.config.CellWidth,
		CellH: m.config.CellHeight,
		Cols:  m.width,
		Rows:  rows,
	}.Zoomed(m.zoom)
	v.Origin = geom.Pt(float64(m.panX)*v.CellW, float64(m.panY)*v.CellH)
	return v
}

// setZoom changes the zoom, keeping the page point at the middle of the
// view where it was.
func (m *model) setZoom(z float64) {
	before := m.viewport()
	mid := before.CellCenter(before.Cols/2, before.Rows/2)
	m.zoom = render.ClampZoom(z)
	after := m.viewport()
	m.panX = int(math.Round(mid.X/after.CellW - 0.5 - float64(after.Cols/2)))
	m.panY = int(math.Round(mid.Y/after.CellH - 0.5 - float64(after.Rows/2)))
	m.syncTolerance()
}

// zoomToFit zooms so the whole drawing is in view, its top-left corner in
// the top-left cell. An empty drawing resets the view.
func (m *model) zoomToFit() {
	b := m.store().Bounds()
	if b.W <= 0 && b.H <= 0 {
		m.resetView()
		return
	}
	v := m.viewport()
	// One cell of slack for the rounding of the pan below.
	m.zoom = render.FitZoom(b, m.config.CellWidth, m.config.CellHeight, max(v.Cols-1, 1), max(v.Rows-1, 1))
	v = m.viewport()
	m.panX = int(math.Floor(b.X / v.CellW))
	m.panY = int(math.Floor(b.Y / v.CellH))
	m.syncTolerance()
}

func (m *model) resetView() {
	m.zoom = 1
	m.panX, m.panY = 0, 0
	m.syncTolerance()
}

// syncTolerance keeps pointer tolerances at one visible cell.
func (m *model) syncTolerance() {
	v := m.viewport()
	m.ed.HitTolerance = v.CellW / 2
	m.ed.HandleTolerance = math.Max(v.CellW, v.CellH) / 2
}

// cursorPoint is the page point under the cursor cell.
func (m *model) cursorPoint() geom.Point {
	return m.viewport().CellCenter(m.cursorX, m.cursorY)
}

func (m *model) onPage(p geom.Point) bool {
	return m.store().Page().Rect().Contains(p)
}
