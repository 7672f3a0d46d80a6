package main

import (
	"image/color"

	"flowdraw/internal/config"
	"flowdraw/internal/diagram"
	"flowdraw/internal/editor"
	"flowdraw/internal/geom"
)

type model struct {
	width      int
	height     int
	cursorX    int
	cursorY    int
	panX       int
	panY       int
	zPanMode   bool
	zoom       float64
	mode       Mode
	help       bool
	helpScroll int

	ed       *editor.Editor
	config   *config.Config
	selInfo  *selectionStatus
	filename string

	pageEdited   bool
	savedChanges uint64

	// dragTotal is how far a keyboard move or resize has gone.
	dragTotal geom.Point

	editText      string
	editCursorPos int
	startEditText string

	fileInput         string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	pendingPath       string
	confirmAction     ConfirmAction
	errorMessage      string
	successMessage    string
}

// selectionStatus mirrors the selection's style for the status line. It is
// fed by store notifications.
type selectionStatus struct {
	info      diagram.SelectionInfo
	w, h      float64
	textColor color.NRGBA
	textSize  int
}

func (s *selectionStatus) SelectionChanged(info diagram.SelectionInfo) { s.info = info }

func (s *selectionStatus) SizeChanged(w, h float64) { s.w, s.h = w, h }

func (s *selectionStatus) TextStyleChanged(c color.NRGBA, size int) {
	s.textColor, s.textSize = c, size
}
