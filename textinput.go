package main

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// beginTextEdit opens the label of the target shape for editing.
func (m *model) beginTextEdit() {
	i, ok := m.targetShape()
	if !ok {
		m.errorMessage = "No shape to label"
		return
	}
	sh, _ := m.store().ShapeAt(i)
	m.editText = sh.Text
	m.startEditText = sh.Text
	m.editCursorPos = utf8.RuneCountInString(sh.Text)
	m.mode = ModeTextInput
}

func (m *model) handleTextInputKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		m.editText = ""
		m.mode = ModeNormal
	case "ctrl+s":
		if m.editText != m.startEditText {
			m.report(m.ed.SetText(m.editText), "Label updated", "No shape selected")
		}
		m.editText = ""
		m.mode = ModeNormal
	case "enter":
		m.insertText("\n")
	case "backspace":
		if m.editCursorPos > 0 {
			runes := []rune(m.editText)
			m.editText = string(append(runes[:m.editCursorPos-1], runes[m.editCursorPos:]...))
			m.editCursorPos--
		}
	case "delete":
		runes := []rune(m.editText)
		if m.editCursorPos < len(runes) {
			m.editText = string(append(runes[:m.editCursorPos], runes[m.editCursorPos+1:]...))
		}
	case "left":
		if m.editCursorPos > 0 {
			m.editCursorPos--
		}
	case "right":
		if m.editCursorPos < utf8.RuneCountInString(m.editText) {
			m.editCursorPos++
		}
	case "home":
		m.editCursorPos = 0
	case "end":
		m.editCursorPos = utf8.RuneCountInString(m.editText)
	case "ctrl+v":
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = "Clipboard: " + err.Error()
			return
		}
		m.insertText(cleanClipboardText(text))
	default:
		switch msg.Type {
		case tea.KeySpace:
			m.insertText(" ")
		case tea.KeyRunes:
			m.insertText(string(msg.Runes))
		}
	}
}

func (m *model) insertText(s string) {
	runes := []rune(m.editText)
	pos := min(max(m.editCursorPos, 0), len(runes))
	ins := []rune(s)
	out := make([]rune, 0, len(runes)+len(ins))
	out = append(out, runes[:pos]...)
	out = append(out, ins...)
	out = append(out, runes[pos:]...)
	m.editText = string(out)
	m.editCursorPos = pos + len(ins)
}
