package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowdraw/internal/config"
	"flowdraw/internal/diagram"
	"flowdraw/internal/editor"
	"flowdraw/internal/geom"
	"flowdraw/internal/render"
	"flowdraw/internal/shape"
)

func newTestModel(t *testing.T, confirmations bool) model {
	t.Helper()
	cfg := config.Default()
	cfg.SaveDirectory = t.TempDir()
	cfg.Confirmations = confirmations
	m := initialModel(cfg)
	m.ed.SetClipboard(&editor.MemoryClipboard{})
	m.mode = ModeNormal
	m.width, m.height = 80, 25
	// Cell (5,2) is the page point (55,50).
	m.cursorX, m.cursorY = 5, 2
	return m
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(m model, msgs ...tea.Msg) (model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func keys(m model, ks ...string) model {
	for _, k := range ks {
		m, _ = send(m, key(k))
	}
	return m
}

func bounds(t *testing.T, m model, i int) geom.Rect {
	t.Helper()
	sh, ok := m.store().ShapeAt(i)
	require.True(t, ok)
	return sh.Bounds
}

func TestDropUndoRedo(t *testing.T) {
	m := newTestModel(t, false)
	assert.False(t, m.dirty())

	m = keys(m, "b")
	require.Equal(t, 1, m.store().ShapeCount())
	assert.Equal(t, geom.Rect{X: 5, Y: 20, W: 100, H: 60}, bounds(t, m, 0))
	assert.True(t, m.dirty())
	assert.Equal(t, "Added rect", m.successMessage)

	m = keys(m, "u")
	assert.Equal(t, 0, m.store().ShapeCount())
	m = keys(m, "U")
	assert.Equal(t, 1, m.store().ShapeCount())

	m = keys(m, "u", "u")
	assert.Equal(t, "Nothing to undo", m.errorMessage)
}

func TestCycleDrawKind(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "tab", "b")
	sh, ok := m.store().ShapeAt(0)
	require.True(t, ok)
	assert.Equal(t, "ellipse", sh.Kind.String())
	assert.Equal(t, editor.ToolDraw, m.ed.Tool())

	m = keys(m, "esc")
	assert.Equal(t, editor.ToolSelect, m.ed.Tool())
	assert.Equal(t, diagram.SelectedNone, m.store().Selection().Kind)
}

func TestKeyboardMoveRecordsOnce(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "b", "m")
	require.Equal(t, ModeMove, m.mode)

	m = keys(m, "l", "l", "j")
	assert.Equal(t, geom.Rect{X: 25, Y: 40, W: 100, H: 60}, bounds(t, m, 0))
	undo, _ := m.ed.History().Len()
	assert.Equal(t, 1, undo, "nothing recorded mid-gesture")

	m = keys(m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	undo, _ = m.ed.History().Len()
	assert.Equal(t, 2, undo)
	assert.Equal(t, 7, m.cursorX)
	assert.Equal(t, 3, m.cursorY)
}

func TestKeyboardMoveCancel(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "b", "m", "L", "esc")
	assert.Equal(t, geom.Rect{X: 5, Y: 20, W: 100, H: 60}, bounds(t, m, 0))
	undo, _ := m.ed.History().Len()
	assert.Equal(t, 1, undo)
}

func TestKeyboardResize(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "b", "r", "l", "j", "enter")
	assert.Equal(t, geom.Rect{X: 5, Y: 20, W: 110, H: 80}, bounds(t, m, 0))
	assert.Equal(t, "Resized", m.successMessage)
}

func TestGestureNeedsShape(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "m")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "No shape under cursor", m.errorMessage)
}

func TestConnectAndToggleArrows(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "b")
	m.cursorX = 30
	m = keys(m, "b")
	m.cursorX = 5

	m = keys(m, "a")
	require.Equal(t, ModeConnect, m.mode)
	m.cursorX = 30
	m = keys(m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	require.Equal(t, 1, m.store().ConnectorCount())
	src, dst, _ := m.store().ConnectorEnds(0)
	assert.Equal(t, 0, src)
	assert.Equal(t, 1, dst)

	m = keys(m, "A")
	c, _ := m.store().ConnectorAt(0)
	assert.True(t, c.Style.Bidirectional)
}

func TestConnectOnEmptyPage(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "a")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, editor.ToolSelect, m.ed.Tool())
}

func TestEditLabel(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "b", "e")
	require.Equal(t, ModeTextInput, m.mode)
	m = keys(m, "h", "i", " ", "x", "backspace", "backspace", "ctrl+s")
	sh, _ := m.store().ShapeAt(0)
	assert.Equal(t, "hi", sh.Text)

	m = keys(m, "e", "backspace", "esc")
	sh, _ = m.store().ShapeAt(0)
	assert.Equal(t, "hi", sh.Text)
	assert.Equal(t, ModeNormal, m.mode)
}

func TestDeleteConfirmation(t *testing.T) {
	m := newTestModel(t, true)
	m = keys(m, "b", "d")
	require.Equal(t, ModeConfirm, m.mode)
	m = keys(m, "n")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 1, m.store().ShapeCount())

	m = keys(m, "d", "y")
	assert.Equal(t, 0, m.store().ShapeCount())
}

func TestCopyPaste(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "b", "c", "p")
	require.Equal(t, 2, m.store().ShapeCount())
	assert.Equal(t, geom.Rect{X: 15, Y: 30, W: 100, H: 60}, bounds(t, m, 1))
}

func TestStyleKeys(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "b", "+", "+", ">")
	sh, _ := m.store().ShapeAt(0)
	assert.Equal(t, 2.5, sh.StrokeWidth)
	assert.Equal(t, 11, sh.TextSize)

	m = keys(m, "(")
	assert.Equal(t, "Select an arc or sector", m.errorMessage)

	m = keys(m, "g")
	assert.False(t, m.store().Page().ShowGrid)
	assert.True(t, m.pageEdited)
}

func TestSaveNewOpen(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "b", "s")
	require.Equal(t, ModeFileInput, m.mode)
	m = keys(m, "chart", "enter")
	require.Equal(t, ModeNormal, m.mode, m.errorMessage)

	path := filepath.Join(m.config.SaveDirectory, "chart.flow")
	assert.Equal(t, path, m.filename)
	assert.FileExists(t, path)
	assert.False(t, m.dirty())

	m = keys(m, "n")
	assert.Equal(t, 0, m.store().ShapeCount())
	assert.Empty(t, m.filename)

	m = keys(m, "o")
	require.Equal(t, []string{"chart.flow"}, m.fileList)
	m = keys(m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 1, m.store().ShapeCount())
	assert.Equal(t, path, m.filename)
	assert.False(t, m.ed.History().CanUndo())
}

func TestOpenMissingFile(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "o", "nope.flow", "enter")
	assert.Equal(t, ModeFileInput, m.mode)
	assert.Contains(t, m.errorMessage, "nope.flow")
}

func TestOverwriteConfirmation(t *testing.T) {
	m := newTestModel(t, true)
	path := filepath.Join(m.config.SaveDirectory, "taken.svg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	m = keys(m, "b", "S", "s", "taken", "enter")
	require.Equal(t, ModeConfirm, m.mode)
	m = keys(m, "n")
	assert.Equal(t, ModeFileInput, m.mode)
	m = keys(m, "enter", "y")
	assert.Equal(t, ModeNormal, m.mode)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestExportVisualTXT(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "b", "S", "t", "out", "enter")
	require.Equal(t, ModeNormal, m.mode, m.errorMessage)

	data, err := os.ReadFile(filepath.Join(m.config.SaveDirectory, "out.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 40)
	assert.Contains(t, lines[1], "█")
	assert.NotContains(t, string(data), "■", "selection handles are not exported")
}

func TestMouseDraw(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "D")
	m, _ = send(m,
		tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 12, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
	)
	_, drafting := m.ed.Draft()
	assert.True(t, drafting)
	assert.Contains(t, m.View(), "+")

	m, _ = send(m, tea.MouseMsg{X: 12, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	require.Equal(t, 1, m.store().ShapeCount())
	assert.Equal(t, geom.Rect{X: 25, Y: 30, W: 100, H: 60}, bounds(t, m, 0))
	assert.Equal(t, editor.ToolSelect, m.ed.Tool())
}

func TestMouseWheelPans(t *testing.T) {
	m := newTestModel(t, false)
	m, _ = send(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 1, m.panY)
	assert.Equal(t, geom.Pt(55, 70), m.cursorPoint())
}

func TestZoomKeys(t *testing.T) {
	m := newTestModel(t, false)
	mid := m.viewport().CellCenter(40, 12)

	m = keys(m, "i")
	v := m.viewport()
	assert.Equal(t, render.ZoomStep, m.zoom)
	assert.Equal(t, 8.0, v.CellW)
	assert.Equal(t, 16.0, v.CellH)
	after := v.CellCenter(40, 12)
	assert.InDelta(t, mid.X, after.X, v.CellW, "view stays centred")
	assert.InDelta(t, mid.Y, after.Y, v.CellH)
	assert.Equal(t, 4.0, m.ed.HitTolerance)
	assert.Contains(t, m.statusLine(), "125%")

	m = keys(m, "I", "I")
	assert.InDelta(t, 1/render.ZoomStep, m.zoom, 1e-9)
	assert.InDelta(t, 12.5, m.viewport().CellW, 1e-9)

	for i := 0; i < 20; i++ {
		m = keys(m, "i")
	}
	assert.Equal(t, render.MaxZoom, m.zoom)

	m = keys(m, "0")
	assert.Equal(t, 1.0, m.zoom)
	assert.Equal(t, 0, m.panX)
	assert.Equal(t, 0, m.panY)
	assert.Equal(t, geom.Pt(55, 50), m.cursorPoint())
	assert.NotContains(t, m.statusLine(), "%")
}

func TestZoomToFit(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "w")
	assert.Equal(t, 1.0, m.zoom, "nothing to fit")

	m = keys(m, "b")
	require.GreaterOrEqual(t, m.ed.History().AddShape(shape.New(shape.Rect, geom.Rect{X: 1000, Y: 700, W: 150, H: 80})), 0)
	b := m.store().Bounds()
	require.Equal(t, geom.Rect{X: 5, Y: 20, W: 1145, H: 760}, b)

	m = keys(m, "w")
	v := m.viewport()
	require.Less(t, m.zoom, 1.0)
	assert.InDelta(t, m.config.CellWidth/m.zoom, v.CellW, 1e-9)
	assert.InDelta(t, m.config.CellHeight/m.zoom, v.CellH, 1e-9)

	col, row := v.CellOf(geom.Pt(b.Left(), b.Top()))
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)
	col, row = v.CellOf(geom.Pt(b.Right()-geom.Epsilon, b.Bottom()-geom.Epsilon))
	assert.Less(t, col, v.Cols)
	assert.Less(t, row, v.Rows)
	assert.Contains(t, m.View(), "█")

	// A small drawing is magnified up to the limit.
	m = keys(m, "u", "w")
	assert.Equal(t, render.MaxZoom, m.zoom)
	col, row = m.viewport().CellOf(geom.Pt(5, 20))
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)
}

func TestQuitAsksWhenDirty(t *testing.T) {
	m := newTestModel(t, true)
	_, cmd := send(m, key("q"))
	assert.NotNil(t, cmd)

	m = keys(m, "b")
	m, cmd = send(m, key("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeConfirm, m.mode)
	_, cmd = send(m, key("y"))
	assert.NotNil(t, cmd)
}

func TestHelpScroll(t *testing.T) {
	m := newTestModel(t, false)
	m = keys(m, "?", "j", "j")
	assert.True(t, m.help)
	assert.Equal(t, 2, m.helpScroll)
	assert.Contains(t, m.View(), "Help (3-")
	m = keys(m, "esc")
	assert.False(t, m.help)
}

func TestStartupMenu(t *testing.T) {
	m := initialModel(config.Default())
	require.Equal(t, ModeStartup, m.mode)
	assert.Contains(t, m.View(), "Welcome to flowdraw!")
	m = keys(m, "n")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestCleanClipboardText(t *testing.T) {
	assert.Equal(t, "a\nb", cleanClipboardText("a\r\nb\r\n"))
	assert.Equal(t, "bold {x}", cleanClipboardText(`{\rtf1\ansi {\b bold} \{x\}}`))
	assert.Equal(t, "x < y", cleanClipboardText("<div>x &lt; y</div>"))
	assert.Equal(t, "tab\tok", cleanClipboardText("tab\tok\x07"))
}

func TestInsertTextAtCursor(t *testing.T) {
	m := newTestModel(t, false)
	m.editText = "héllo"
	m.editCursorPos = 1
	m.insertText("→")
	assert.Equal(t, "h→éllo", m.editText)
	assert.Equal(t, 2, m.editCursorPos)
}
