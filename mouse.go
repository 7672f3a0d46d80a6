package main

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse drives the editor's pointer tools. Cells map to the page
// point at their centre; the wheel pans.
func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.mode != ModeNormal || m.help {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.panY--
		return
	case tea.MouseButtonWheelDown:
		m.panY++
		return
	case tea.MouseButtonWheelLeft:
		m.panX--
		return
	case tea.MouseButtonWheelRight:
		m.panX++
		return
	}

	v := m.viewport()
	x := min(max(msg.X, 0), max(v.Cols-1, 0))
	y := min(max(msg.Y, 0), max(v.Rows-1, 0))
	p := v.CellCenter(x, y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.errorMessage = ""
		m.successMessage = ""
		m.cursorX, m.cursorY = x, y
		m.ed.Press(p)
	case tea.MouseActionMotion:
		m.ed.Move(p)
	case tea.MouseActionRelease:
		m.cursorX, m.cursorY = x, y
		m.ed.Release(p, m.onPage(p) && msg.Y < v.Rows)
	}
}
