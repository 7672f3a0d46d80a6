package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"flowdraw/internal/render"
)

// exportVisualTXT writes the whole page as it looks in the terminal, without
// colour, selection or cursor.
func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	page := m.store().Page()
	v := render.Viewport{
		CellW: m.config.CellWidth,
		CellH: m.config.CellHeight,
		Cols:  int(math.Ceil(page.Width / m.config.CellWidth)),
		Rows:  int(math.Ceil(page.Height / m.config.CellHeight)),
	}
	rendered := render.Terminal(m.store(), v, render.Overlay{HideSelection: true})

	for _, line := range rendered.Lines(false) {
		if _, err := fmt.Fprintln(file, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return file.Close()
}
