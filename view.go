package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flowdraw/internal/diagram"
	"flowdraw/internal/editor"
	"flowdraw/internal/render"
	"flowdraw/internal/shape"
)

var helpLines = []string{
	"flowdraw Help",
	"=============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor around the screen",
	"  Shift+h/j/k/l    Move cursor 2x faster (hold Shift with direction keys)",
	"  z                Toggle pan mode (direction keys scroll the page)",
	"  Mouse wheel      Scroll the page",
	"  i / I            Zoom in / out",
	"  0                Reset zoom and scroll",
	"  w                Zoom to fit the whole drawing",
	"",
	"Shapes:",
	"-------",
	"  Tab/Shift+Tab    Choose the shape kind (rect, ellipse, ... sector)",
	"  b                Drop a shape of the chosen kind at the cursor",
	"  D                Draw the chosen kind by dragging with the mouse",
	"  Space            Select the shape or connector under the cursor",
	"  e                Edit the label of the shape under the cursor",
	"  m                Move the shape under the cursor",
	"  r                Resize the shape under the cursor",
	"  d                Delete the selection",
	"  c / x / p        Copy, cut, paste (through the system clipboard)",
	"",
	"Style:",
	"------",
	"  f / F            Cycle fill / stroke colour",
	"  + / -            Thicker / thinner stroke",
	"  > / <            Larger / smaller text",
	"  ( / )            Rotate an arc or sector",
	"  , / .            Narrow / widen an arc or sector, or its corners",
	"  ; / '            Thinner / thicker arc band",
	"  [ / ]            Move down / up one layer",
	"  { / }            Send to back / bring to front",
	"  g                Toggle the page grid",
	"",
	"Move and Resize Mode:",
	"---------------------",
	"  h/←/j/↓/k/↑/l/→  Move or resize by one cell",
	"  Shift+h/j/k/l    Move or resize 2x faster",
	"  Enter            Finish and return to normal mode",
	"  Esc              Cancel and put the shape back",
	"",
	"Connectors:",
	"-----------",
	"  a                Start a connector on the shape under the cursor,",
	"                   then press 'a' or Enter on the target shape",
	"  A                Toggle arrowheads at both ends",
	"",
	"Mouse:",
	"------",
	"  Click            Select; drag a shape to move it, a handle to resize",
	"  Drag             Draw when the draw tool is active (D, Tab)",
	"",
	"File Operations:",
	"----------------",
	"  s                Save chart (.flow is JSON, .flowb is compact)",
	"  S                Export as PNG, SVG or text",
	"  o                Open a saved chart",
	"  n                Start a new chart",
	"",
	"General:",
	"--------",
	"  u / Ctrl+Z       Undo last action",
	"  U / Ctrl+Y       Redo last undone action",
	"  Esc              Clear selection/cancel current operation",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) View() string {
	if m.mode == ModeStartup {
		return m.startupView()
	}
	if m.help {
		return m.helpView()
	}

	v := m.viewport()
	var result strings.Builder

	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		m.writeFileList(&result, v.Rows)
	} else {
		var o render.Overlay
		if draft, ok := m.ed.Draft(); ok {
			o.Draft = &draft
		}
		if link, ok := m.ed.PendingLink(); ok {
			o.Pending = &link
		}
		if m.mode != ModeFileInput {
			cursor := m.cursorPoint()
			o.Cursor = &cursor
		}
		result.WriteString(strings.Join(render.Terminal(m.store(), v, o).Lines(true), "\n"))
	}

	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) writeFileList(result *strings.Builder, rows int) {
	width := max(m.width, 1)
	result.WriteString("Select a saved chart:\n")
	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")

	used := 2
	if len(m.fileList) == 0 {
		result.WriteString("(No .flow or .flowb files found)\n")
		used++
	} else {
		maxFiles := max(rows-4, 1)
		startIdx := 0
		if m.selectedFileIndex >= maxFiles {
			startIdx = m.selectedFileIndex - maxFiles + 1
		}
		endIdx := min(startIdx+maxFiles, len(m.fileList))
		for i := startIdx; i < endIdx; i++ {
			if i == m.selectedFileIndex {
				result.WriteString("> " + m.fileList[i] + " <")
			} else {
				result.WriteString("  " + m.fileList[i])
			}
			result.WriteString("\n")
			used++
		}
	}

	for ; used < rows-2; used++ {
		result.WriteString("\n")
	}
	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")
	result.WriteString("Filename: " + m.fileInput + "█")
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeTextInput:
		return fmt.Sprintf("Mode: EDIT | Text: %s | ←/→=move cursor, Enter=newline, Ctrl+V=paste, Ctrl+S=save, Esc=cancel",
			textWithCursor(m.editText, m.editCursorPos))
	case ModeResize:
		return fmt.Sprintf("Mode: RESIZE | %s | hjkl/arrows=resize, Enter=finish, Esc=cancel", m.selectionString())
	case ModeMove:
		return fmt.Sprintf("Mode: MOVE | %s | hjkl/arrows=move, Enter=finish, Esc=cancel", m.selectionString())
	case ModeConnect:
		return "Mode: CONNECT | hjkl/arrows=aim, a/Enter=connect to shape under cursor, Esc=cancel"
	case ModeFileInput:
		if m.errorMessage != "" {
			return fmt.Sprintf("Mode: FILE | ERROR: %s | %s: %s | Enter=retry, Esc=cancel", m.errorMessage, m.fileOp, m.fileInput)
		}
		if m.fileOp == FileOpOpen {
			return fmt.Sprintf("Mode: FILE | %s | ↑/↓=navigate list, Type=enter name, Enter=confirm, Esc=cancel", m.fileOp)
		}
		return fmt.Sprintf("Mode: FILE | %s filename: %s█ | Enter=confirm, Esc=cancel", m.fileOp, m.fileInput)
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmDelete:
			message = fmt.Sprintf("Delete %s? (y/n)", m.selectionString())
		case ConfirmQuit:
			message = "Quit? Unsaved changes will be lost. (y/n)"
		case ConfirmNewChart:
			message = "Create new chart? Unsaved changes will be lost. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", filepath.Base(m.pendingPath))
		case ConfirmChooseExportType:
			message = "Export as (p)ng, (s)vg or (t)ext? Esc=cancel"
		}
		return fmt.Sprintf("Mode: CONFIRM | %s", message)
	}

	modeStr := m.modeString()
	if m.zPanMode {
		modeStr = "PAN"
	}
	p := m.cursorPoint()
	status := fmt.Sprintf("Mode: %s | %s | (%d,%d)", modeStr, m.toolString(), int(p.X), int(p.Y))
	if z := render.ClampZoom(m.zoom); z != 1 {
		status += fmt.Sprintf(" | %d%%", int(math.Round(z*100)))
	}
	if m.store().Selection().Kind != diagram.SelectedNone {
		status += " | " + m.selectionString()
	}
	name := "untitled"
	if m.filename != "" {
		name = filepath.Base(m.filename)
	}
	if m.dirty() {
		name += "*"
	}
	status += " | " + name
	if m.successMessage != "" {
		status += fmt.Sprintf(" | %s", m.successMessage)
	}
	if m.errorMessage != "" {
		status += fmt.Sprintf(" | ERROR: %s", m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) modeString() string {
	switch m.mode {
	case ModeStartup:
		return "STARTUP"
	case ModeNormal:
		return "NORMAL"
	case ModeTextInput:
		return "EDIT"
	case ModeResize:
		return "RESIZE"
	case ModeMove:
		return "MOVE"
	case ModeConnect:
		return "CONNECT"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) toolString() string {
	if m.ed.Tool() == editor.ToolDraw {
		return fmt.Sprintf("Tool: draw %s", m.ed.DrawKind())
	}
	return fmt.Sprintf("Tool: %s | Shape: %s", m.ed.Tool(), m.ed.DrawKind())
}

// selectionString describes the selection from the store notifications.
func (m model) selectionString() string {
	sel := m.store().Selection()
	info := m.selInfo
	switch sel.Kind {
	case diagram.SelectedShape:
		sh, _ := m.store().ShapeAt(sel.Index)
		return fmt.Sprintf("%s %d %gx%g fill %s stroke %s/%g text %d",
			sh.Kind, sel.Index, info.w, info.h,
			shape.FormatColor(info.info.Fill), shape.FormatColor(info.info.Stroke), info.info.StrokeWidth, info.textSize)
	case diagram.SelectedConnector:
		return fmt.Sprintf("connector %d %s/%g", sel.Index, shape.FormatColor(info.info.Stroke), info.info.StrokeWidth)
	}
	return "nothing selected"
}

func textWithCursor(text string, pos int) string {
	runes := []rune(strings.ReplaceAll(text, "\n", "⏎"))
	pos = min(max(pos, 0), len(runes))
	if pos == len(runes) {
		return string(runes) + "█"
	}
	runes[pos] = '█'
	return string(runes)
}

func (m model) startupView() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(render.TerminalColor(render.Highlight)).
		Padding(1, 3).
		Render("Welcome to flowdraw!\n\n'n' New chart\n'o' Open existing chart\n'q' Quit")
	if m.errorMessage != "" {
		box += "\n\nERROR: " + m.errorMessage
	}
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m model) helpView() string {
	visibleHeight := max(m.height-statusLines, 1)

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = max(len(helpLines)-visibleHeight, 0)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
