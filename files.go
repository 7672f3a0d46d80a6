package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"flowdraw/internal/document"
	"flowdraw/internal/editor"
	"flowdraw/internal/logging"
	"flowdraw/internal/render"
)

// fileDir is where charts are listed and relative names are resolved.
func (m *model) fileDir() string {
	if m.config.SaveDirectory != "" {
		return m.config.SaveDirectory
	}
	if dir, err := os.Getwd(); err == nil {
		return dir
	}
	return "."
}

func (m *model) scanFiles() {
	m.fileList = nil
	m.selectedFileIndex = -1

	entries, err := os.ReadDir(m.fileDir())
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := document.FormatFor(entry.Name()); err == nil {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.fileInput = m.fileList[0]
	}
}

func (m *model) beginFileInput(op FileOperation) {
	m.fileOp = op
	m.mode = ModeFileInput
	m.errorMessage = ""
	m.successMessage = ""

	base := strings.TrimSuffix(filepath.Base(m.filename), filepath.Ext(m.filename))
	if m.filename == "" {
		base = ""
	}
	m.fileInput = base
	if op == FileOpOpen {
		m.scanFiles()
	}
}

// fileExt is the extension appended to names typed without one.
func fileExt(op FileOperation) string {
	switch op {
	case FileOpSavePNG:
		return ".png"
	case FileOpSaveSVG:
		return ".svg"
	case FileOpSaveVisualTXT:
		return ".txt"
	}
	return document.ExtJSON
}

// targetPath resolves a typed name for op.
func (m *model) targetPath(name string, op FileOperation) string {
	switch op {
	case FileOpOpen:
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(m.fileDir(), name)
	case FileOpSave:
		if _, err := document.FormatFor(name); err != nil {
			name += document.ExtJSON
		}
	default:
		if !strings.EqualFold(filepath.Ext(name), fileExt(op)) {
			name += fileExt(op)
		}
	}
	return m.config.GetSavePath(name)
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		m.errorMessage = ""
		m.mode = ModeNormal
	case "enter":
		m.submitFile()
	case "up":
		if m.fileOp == FileOpOpen && m.selectedFileIndex > 0 {
			m.selectedFileIndex--
			m.fileInput = m.fileList[m.selectedFileIndex]
		}
	case "down":
		if m.fileOp == FileOpOpen && m.selectedFileIndex < len(m.fileList)-1 {
			m.selectedFileIndex++
			m.fileInput = m.fileList[m.selectedFileIndex]
		}
	case "backspace":
		if runes := []rune(m.fileInput); len(runes) > 0 {
			m.fileInput = string(runes[:len(runes)-1])
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.fileInput += string(msg.Runes)
		}
	}
}

func (m *model) submitFile() {
	name := strings.TrimSpace(m.fileInput)
	if name == "" {
		m.errorMessage = "Filename cannot be empty"
		return
	}
	path := m.targetPath(name, m.fileOp)
	if m.fileOp == FileOpOpen {
		if m.openFile(path) {
			m.mode = ModeNormal
		}
		return
	}
	if _, err := os.Stat(path); err == nil && m.config.Confirmations && path != m.filename {
		m.pendingPath = path
		m.confirm(ConfirmOverwriteFile)
		return
	}
	m.writeFile(path)
}

// writeFile saves or exports the diagram to path according to fileOp.
func (m *model) writeFile(path string) {
	var err error
	switch m.fileOp {
	case FileOpSave:
		err = document.Save(path, m.store())
	case FileOpSavePNG:
		err = render.WritePNG(path, m.store(), m.config.PNGScale)
	case FileOpSaveSVG:
		err = render.WriteSVG(path, m.store())
	case FileOpSaveVisualTXT:
		err = m.exportVisualTXT(path)
	}
	if err != nil {
		m.errorMessage = err.Error()
		m.mode = ModeFileInput
		return
	}

	m.errorMessage = ""
	m.mode = ModeNormal
	if m.fileOp == FileOpSave {
		m.filename = path
		m.markSaved()
		m.successMessage = fmt.Sprintf("Saved %s", filepath.Base(path))
	} else {
		m.successMessage = fmt.Sprintf("Exported %s", filepath.Base(path))
	}
	logging.Logger().Info("write", "path", path, "op", m.fileOp)
}

// openFile replaces the diagram with the chart at path. Records that fail
// to decode are skipped and reported.
func (m *model) openFile(path string) bool {
	m.ed.SetTool(editor.ToolSelect)
	warnings, err := document.Load(path, m.store(), document.Options{SkipInvalid: true})
	if err != nil {
		m.errorMessage = fmt.Sprintf("open %s: %v", filepath.Base(path), err)
		return false
	}
	m.ed.History().Reset()
	m.filename = path
	m.markSaved()
	m.resetView()

	if warnings != nil {
		m.errorMessage = fmt.Sprintf("Opened %s, skipped: %s", filepath.Base(path),
			strings.ReplaceAll(warnings.Error(), "\n", "; "))
	} else {
		m.successMessage = fmt.Sprintf("Opened %s", filepath.Base(path))
	}
	return true
}

func (m *model) newChart() {
	m.ed.NewDocument()
	m.filename = ""
	m.markSaved()
	m.resetView()
	m.successMessage = "New chart"
}
