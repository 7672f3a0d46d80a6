package render

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"flowdraw/internal/diagram"
	"flowdraw/internal/geom"
	"flowdraw/internal/logging"
	"flowdraw/internal/shape"
)

// ErrBadScale is returned for a non-positive export scale.
var ErrBadScale = errors.New("export scale must be positive")

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

func monoFace(size float64) (font.Face, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
	})
	if monoErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", monoErr)
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[size]; ok {
		return f, nil
	}
	f := truetype.NewFace(monoFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faces[size] = f
	return f, nil
}

// PNG paints the page of s at scale pixels per page unit.
func PNG(s *diagram.Store, scale float64) (image.Image, error) {
	if !(scale > 0) {
		return nil, ErrBadScale
	}
	page := s.Page()
	w := int(math.Ceil(page.Width * scale))
	h := int(math.Ceil(page.Height * scale))

	dc := gg.NewContext(w, h)
	dc.SetColor(page.Background)
	dc.Clear()
	dc.Scale(scale, scale)

	if page.ShowGrid {
		drawGridPNG(dc, page)
	}
	// Connectors sit beneath the shapes.
	for _, c := range connectors(s) {
		drawConnectorPNG(dc, c)
	}
	for _, sh := range s.Shapes() {
		if err := drawShapePNG(dc, &sh); err != nil {
			return nil, err
		}
	}
	return dc.Image(), nil
}

// WritePNG exports s to a PNG file.
func WritePNG(path string, s *diagram.Store, scale float64) error {
	img, err := PNG(s, scale)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("export png %s: %w", path, err)
	}
	logging.Logger().Info("exported png", "path", path, "scale", scale)
	return nil
}

func drawGridPNG(dc *gg.Context, page diagram.Page) {
	dc.SetColor(gridColor(page.Background))
	dc.SetLineWidth(0.5)
	for x := page.GridStep; x < page.Width; x += page.GridStep {
		dc.DrawLine(x, 0, x, page.Height)
	}
	for y := page.GridStep; y < page.Height; y += page.GridStep {
		dc.DrawLine(0, y, page.Width, y)
	}
	dc.Stroke()
}

func tracePath(dc *gg.Context, pts []geom.Point) {
	dc.NewSubPath()
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.ClosePath()
}

func drawShapePNG(dc *gg.Context, sh *shape.Shape) error {
	pts := sh.Outline(curveSteps)
	if len(pts) < 3 {
		return nil
	}
	tracePath(dc, pts)
	dc.SetColor(sh.FillColor)
	dc.FillPreserve()
	if sh.StrokeWidth > 0 {
		dc.SetColor(sh.StrokeColor)
		dc.SetLineWidth(sh.StrokeWidth)
		dc.Stroke()
	} else {
		dc.ClearPath()
	}

	lines := labelLines(sh)
	if len(lines) == 0 {
		return nil
	}
	// Glyphs go through the context transform like everything else.
	face, err := monoFace(float64(sh.TextSize))
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(sh.TextColor)
	lh := float64(sh.TextSize) * 1.2
	c := sh.InteriorPoint()
	top := c.Y - lh*float64(len(lines)-1)/2
	for i, line := range lines {
		dc.DrawStringAnchored(line, c.X, top+lh*float64(i), 0.5, 0.35)
	}
	return nil
}

func drawConnectorPNG(dc *gg.Context, c resolved) {
	dc.SetColor(c.style.Color)
	dc.SetLineWidth(c.style.Width)
	dc.DrawLine(c.geom.P1.X, c.geom.P1.Y, c.geom.P2.X, c.geom.P2.Y)
	dc.Stroke()
	for _, head := range c.geom.Heads {
		tracePath(dc, head[:])
		dc.Fill()
	}
}
