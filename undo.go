package main

func (m *model) undo() {
	if !m.ed.Undo() {
		m.errorMessage = "Nothing to undo"
		return
	}
	undo, redo := m.ed.History().Len()
	m.successMessage = statusCount("Undone", undo, redo)
}

func (m *model) redo() {
	if !m.ed.Redo() {
		m.errorMessage = "Nothing to redo"
		return
	}
	undo, redo := m.ed.History().Len()
	m.successMessage = statusCount("Redone", undo, redo)
}
