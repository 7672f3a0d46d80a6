package main

import (
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"flowdraw/internal/config"
	"flowdraw/internal/diagram"
	"flowdraw/internal/editor"
	"flowdraw/internal/history"
	"flowdraw/internal/logging"
)

func main() {
	cfg, cfgErr := config.Load()
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "flowdraw")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logging.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	m := initialModel(cfg)
	if cfgErr != nil {
		m.errorMessage = fmt.Sprintf("config: %v", cfgErr)
	}
	if len(os.Args) > 1 {
		m.mode = ModeNormal
		m.openFile(os.Args[1])
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(cfg *config.Config) model {
	store := diagram.NewStore()
	ed := editor.New(history.New(store, cfg.HistoryLimit))
	ed.SetDefaults(editor.Defaults{Fill: cfg.Fill(), Stroke: cfg.Stroke()})
	if clipboard.Unsupported {
		ed.SetClipboard(&editor.MemoryClipboard{})
	}
	// One terminal cell is the finest a pointer can aim.
	ed.HitTolerance = cfg.CellWidth / 2
	ed.HandleTolerance = math.Max(cfg.CellWidth, cfg.CellHeight) / 2

	sel := &selectionStatus{}
	store.Subscribe(sel)

	mode := ModeNormal
	if cfg.StartMenu {
		mode = ModeStartup
	}
	return model{
		ed:                ed,
		config:            cfg,
		selInfo:           sel,
		mode:              mode,
		zoom:              1,
		selectedFileIndex: -1,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.help && m.mode != ModeStartup {
			m.handleHelpKey(msg.String())
			return m, nil
		}

		var cmd tea.Cmd
		switch m.mode {
		case ModeStartup:
			cmd = m.handleStartupKey(msg.String())
		case ModeTextInput:
			m.handleTextInputKey(msg)
		case ModeMove, ModeResize:
			m.handleGestureKey(msg.String())
		case ModeConnect:
			m.handleConnectKey(msg.String())
		case ModeFileInput:
			m.handleFileInputKey(msg)
		case ModeConfirm:
			cmd = m.handleConfirmKey(msg.String())
		default:
			m.errorMessage = ""
			m.successMessage = ""
			cmd = m.handleNormalKey(msg.String())
		}
		return m, cmd
	}
	return m, nil
}

func (m *model) store() *diagram.Store { return m.ed.Store() }

// dirty reports whether the diagram changed since it was last saved or
// opened.
func (m *model) dirty() bool {
	return m.pageEdited || m.ed.History().Changes() != m.savedChanges
}

func (m *model) markSaved() {
	m.pageEdited = false
	m.savedChanges = m.ed.History().Changes()
}
