package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"flowdraw/internal/diagram"
	"flowdraw/internal/editor"
	"flowdraw/internal/geom"
	"flowdraw/internal/render"
	"flowdraw/internal/shape"
)

func (m *model) handleHelpKey(key string) {
	switch key {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
}

func (m *model) handleStartupKey(key string) tea.Cmd {
	switch key {
	case "n":
		m.mode = ModeNormal
	case "o":
		m.mode = ModeNormal
		m.beginFileInput(FileOpOpen)
	case "q":
		return tea.Quit
	}
	return nil
}

func (m *model) handleNormalKey(key string) tea.Cmd {
	if isNavigationKey(key) {
		m.handleNavigation(key, m.getMoveSpeed(key))
		return nil
	}

	ed := m.ed
	switch key {
	case "?":
		m.help = true
		m.helpScroll = 0
	case "q":
		if m.config.Confirmations && m.dirty() {
			m.confirm(ConfirmQuit)
			return nil
		}
		return tea.Quit
	case "esc":
		ed.SetTool(editor.ToolSelect)
		m.store().ClearSelection()
		m.zPanMode = false
	case "z":
		m.zPanMode = !m.zPanMode
	case "i":
		m.setZoom(m.zoom * render.ZoomStep)
	case "I":
		m.setZoom(m.zoom / render.ZoomStep)
	case "0":
		m.resetView()
	case "w":
		m.zoomToFit()

	case " ":
		m.selectAtCursor()
	case "tab":
		m.cycleDrawKind(1)
	case "shift+tab":
		m.cycleDrawKind(-1)
	case "D":
		ed.SetDrawKind(ed.DrawKind())
		m.successMessage = fmt.Sprintf("Drag with the mouse to draw a %s", ed.DrawKind())
	case "b":
		p := m.cursorPoint()
		if !m.onPage(p) {
			m.errorMessage = "Cursor is off the page"
			return nil
		}
		m.report(ed.Drop(ed.DrawKind(), p) >= 0, fmt.Sprintf("Added %s", ed.DrawKind()), "Could not add shape")

	case "e":
		m.beginTextEdit()
	case "m":
		m.beginGesture(ModeMove)
	case "r":
		m.beginGesture(ModeResize)
	case "a":
		m.beginConnect()
	case "A":
		m.selectConnectorAtCursor()
		m.report(ed.ToggleBidirectional(), "Toggled arrowheads", "No connector selected")
	case "d":
		if !m.ensureSelection() {
			m.errorMessage = "Nothing to delete"
			return nil
		}
		if m.config.Confirmations {
			m.confirm(ConfirmDelete)
			return nil
		}
		m.deleteSelection()

	case "c":
		m.ensureSelection()
		if err := ed.Copy(); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Copied"
		}
	case "x":
		m.ensureSelection()
		if err := ed.Cut(); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Cut"
		}
	case "p":
		if _, err := ed.Paste(); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Pasted"
		}
	case "u", "ctrl+z":
		m.undo()
	case "U", "ctrl+y":
		m.redo()

	case "f":
		m.ensureSelection()
		m.report(ed.CycleFill(), "Fill changed", "No shape selected")
	case "F":
		m.ensureSelection()
		m.report(ed.CycleStroke(), "Stroke changed", "Nothing selected")
	case "]":
		m.report(ed.MoveUp(), "Moved up", "Cannot move up")
	case "[":
		m.report(ed.MoveDown(), "Moved down", "Cannot move down")
	case "}":
		m.report(ed.BringToFront(), "Brought to front", "Cannot bring to front")
	case "{":
		m.report(ed.SendToBack(), "Sent to back", "Cannot send to back")
	case "+", "=":
		m.adjustStrokeWidth(strokeStep)
	case "-":
		m.adjustStrokeWidth(-strokeStep)
	case ">":
		m.adjustTextSize(1)
	case "<":
		m.adjustTextSize(-1)
	case "(":
		m.adjustStartAngle(-angleStep)
	case ")":
		m.adjustStartAngle(angleStep)
	case ",":
		m.adjustSpan(-1)
	case ".":
		m.adjustSpan(1)
	case ";":
		m.adjustThickness(-thicknessStep)
	case "'":
		m.adjustThickness(thicknessStep)
	case "g":
		page := m.store().Page()
		page.ShowGrid = !page.ShowGrid
		m.store().SetPage(page)
		m.pageEdited = true

	case "s":
		if m.filename == "" {
			m.beginFileInput(FileOpSave)
			return nil
		}
		m.fileOp = FileOpSave
		m.writeFile(m.filename)
	case "S":
		m.confirm(ConfirmChooseExportType)
	case "o":
		m.beginFileInput(FileOpOpen)
	case "n":
		if m.config.Confirmations && m.dirty() {
			m.confirm(ConfirmNewChart)
			return nil
		}
		m.newChart()
	}
	return nil
}

func (m *model) report(ok bool, success, failure string) {
	if ok {
		m.successMessage = success
	} else {
		m.errorMessage = failure
	}
}

func (m *model) confirm(a ConfirmAction) {
	m.confirmAction = a
	m.mode = ModeConfirm
}

// selectAtCursor selects the topmost shape under the cursor, else the
// connector under it, else nothing.
func (m *model) selectAtCursor() {
	s := m.store()
	p := m.cursorPoint()
	if i, ok := s.HitTestTopmost(p); ok {
		s.SelectShape(i)
		return
	}
	if ci, ok := s.HitTestConnector(p, m.ed.HitTolerance); ok {
		s.SelectConnector(ci)
		return
	}
	s.ClearSelection()
}

// ensureSelection falls back to whatever is under the cursor when nothing
// is selected.
func (m *model) ensureSelection() bool {
	if m.store().Selection().Kind == diagram.SelectedNone {
		m.selectAtCursor()
	}
	return m.store().Selection().Kind != diagram.SelectedNone
}

func (m *model) selectConnectorAtCursor() {
	s := m.store()
	if _, ok := s.SelectedConnector(); ok {
		return
	}
	if ci, ok := s.HitTestConnector(m.cursorPoint(), m.ed.HitTolerance); ok {
		s.SelectConnector(ci)
	}
}

func (m *model) deleteSelection() {
	m.report(m.ed.DeleteSelection(), "Deleted", "Nothing to delete")
}

func (m *model) cycleDrawKind(step int) {
	kinds := shape.Kinds()
	k := (int(m.ed.DrawKind()) + step + len(kinds)) % len(kinds)
	m.ed.SetDrawKind(kinds[k])
	m.successMessage = fmt.Sprintf("Shape: %s", kinds[k])
}

// targetShape is the shape under the cursor, or the selected shape when the
// cursor is over empty page. The result is selected.
func (m *model) targetShape() (int, bool) {
	s := m.store()
	if i, ok := s.HitTestTopmost(m.cursorPoint()); ok {
		s.SelectShape(i)
		return i, true
	}
	return s.SelectedShape()
}

func (m *model) selectedShape() (shape.Shape, bool) {
	i, ok := m.store().SelectedShape()
	if !ok {
		return shape.Shape{}, false
	}
	return m.store().ShapeAt(i)
}

func (m *model) adjustStrokeWidth(d float64) {
	if !m.ensureSelection() {
		m.errorMessage = "Nothing selected"
		return
	}
	w := m.selInfo.info.StrokeWidth + d
	m.report(m.ed.SetStrokeWidth(w), fmt.Sprintf("Stroke width %g", w), "Stroke width out of range")
}

func (m *model) adjustTextSize(d int) {
	if _, ok := m.selectedShape(); !ok {
		m.errorMessage = "No shape selected"
		return
	}
	n := m.selInfo.textSize + d
	m.report(m.ed.SetTextSize(n), fmt.Sprintf("Text size %d", n), "Text size out of range")
}

func (m *model) adjustStartAngle(d float64) {
	sh, ok := m.selectedShape()
	if !ok || (sh.Kind != shape.Arc && sh.Kind != shape.Sector) {
		m.errorMessage = "Select an arc or sector"
		return
	}
	a := sh.StartAngle + d
	m.report(m.ed.SetStartAngle(a), fmt.Sprintf("Start angle %g°", a), "Start angle out of range")
}

// adjustSpan widens or narrows the selection: the sweep of an arc or
// sector, or the corners of a rounded rectangle.
func (m *model) adjustSpan(dir float64) {
	sh, ok := m.selectedShape()
	switch {
	case ok && (sh.Kind == shape.Arc || sh.Kind == shape.Sector):
		a := sh.SpanAngle + dir*angleStep
		m.report(m.ed.SetSpanAngle(a), fmt.Sprintf("Span %g°", a), "Span out of range")
	case ok && sh.Kind == shape.RoundedRect:
		r := sh.CornerRadius + dir*cornerStep
		m.report(m.ed.SetCornerRadius(r), fmt.Sprintf("Corner radius %g", r), "Corner radius out of range")
	default:
		m.errorMessage = "Select an arc, sector or rounded rectangle"
	}
}

func (m *model) adjustThickness(d float64) {
	sh, ok := m.selectedShape()
	if !ok || sh.Kind != shape.Arc {
		m.errorMessage = "Select an arc"
		return
	}
	t := sh.Thickness + d
	m.report(m.ed.SetThickness(t), fmt.Sprintf("Thickness %g", t), "Thickness out of range")
}

// beginGesture starts a keyboard move or resize of the target shape. A
// resize drags the bottom-right handle.
func (m *model) beginGesture(mode Mode) {
	i, ok := m.targetShape()
	if !ok {
		m.errorMessage = "No shape under cursor"
		return
	}
	m.ed.Cancel()
	hist := m.ed.History()
	var started bool
	if mode == ModeMove {
		started = hist.BeginMove(i)
	} else {
		started = hist.BeginResize(i, diagram.HandleBottomRight)
	}
	if !started {
		m.errorMessage = "Cannot start gesture"
		return
	}
	m.dragTotal = geom.Point{}
	m.mode = mode
}

func (m *model) handleGestureKey(key string) {
	hist := m.ed.History()
	switch {
	case isNavigationKey(key):
		m.dragTotal = m.dragTotal.Add(m.stepFor(key))
		hist.UpdateGesture(m.dragTotal)
		m.handleCursorMove(key, m.getMoveSpeed(key))
	case key == "enter":
		if hist.EndGesture() {
			if m.mode == ModeMove {
				m.successMessage = "Moved"
			} else {
				m.successMessage = "Resized"
			}
		}
		m.mode = ModeNormal
	case key == "esc":
		hist.CancelGesture()
		m.mode = ModeNormal
	}
}

func (m *model) beginConnect() {
	p := m.cursorPoint()
	if _, ok := m.store().HitTestTopmost(p); !ok {
		m.errorMessage = "Start a connector on a shape"
		return
	}
	m.ed.SetTool(editor.ToolConnector)
	m.ed.Press(p)
	m.mode = ModeConnect
}

func (m *model) handleConnectKey(key string) {
	switch {
	case isNavigationKey(key):
		m.handleCursorMove(key, m.getMoveSpeed(key))
		m.ed.Move(m.cursorPoint())
	case key == "a" || key == "enter":
		before := m.store().ConnectorCount()
		p := m.cursorPoint()
		m.ed.Release(p, m.onPage(p))
		m.ed.SetTool(editor.ToolSelect)
		m.report(m.store().ConnectorCount() > before, "Connected", "No shape to connect to")
		m.mode = ModeNormal
	case key == "esc":
		m.ed.SetTool(editor.ToolSelect)
		m.mode = ModeNormal
	}
}

func (m *model) handleConfirmKey(key string) tea.Cmd {
	if m.confirmAction == ConfirmChooseExportType {
		switch key {
		case "p":
			m.beginFileInput(FileOpSavePNG)
		case "s":
			m.beginFileInput(FileOpSaveSVG)
		case "t":
			m.beginFileInput(FileOpSaveVisualTXT)
		case "esc", "n":
			m.mode = ModeNormal
		}
		return nil
	}

	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmDelete:
			m.deleteSelection()
		case ConfirmQuit:
			return tea.Quit
		case ConfirmNewChart:
			m.newChart()
		case ConfirmOverwriteFile:
			m.writeFile(m.pendingPath)
		}
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
		} else {
			m.mode = ModeNormal
		}
	}
	return nil
}
