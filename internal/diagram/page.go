package diagram

import (
	"image/color"

	"flowdraw/internal/geom"
)

// Page holds the attributes of the drawing surface.
type Page struct {
	Width, Height float64
	Background    color.NRGBA
	ShowGrid      bool
	GridStep      float64
}

// DefaultPage is a 1200x800 off-white page with a 20 unit grid shown.
func DefaultPage() Page {
	return Page{
		Width:      1200,
		Height:     800,
		Background: color.NRGBA{R: 0xfd, G: 0xfd, B: 0xfd, A: 0xff},
		ShowGrid:   true,
		GridStep:   20,
	}
}

// Rect returns the page area anchored at the origin.
func (p Page) Rect() geom.Rect {
	return geom.Rect{W: p.Width, H: p.Height}
}

// Valid reports whether the page has a positive size and grid step.
func (p Page) Valid() bool {
	return p.Width > 0 && p.Height > 0 && p.GridStep > 0
}
