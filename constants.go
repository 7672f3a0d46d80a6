package main

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeTextInput
	ModeResize
	ModeMove
	ModeConnect
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpSaveSVG
	FileOpSaveVisualTXT
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmDelete ConfirmAction = iota
	ConfirmQuit
	ConfirmNewChart
	ConfirmOverwriteFile
	ConfirmChooseExportType
)

const (
	// Step sizes for keyboard edits, in page units or degrees.
	strokeStep    = 0.5
	cornerStep    = 2.0
	angleStep     = 15.0
	thicknessStep = 2.0

	statusLines = 1
)

func (op FileOperation) String() string {
	switch op {
	case FileOpSave:
		return "Save"
	case FileOpSavePNG:
		return "Export PNG"
	case FileOpSaveSVG:
		return "Export SVG"
	case FileOpSaveVisualTXT:
		return "Export TXT"
	case FileOpOpen:
		return "Open"
	}
	return "Unknown"
}
