package render

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flowdraw/internal/connector"
	"flowdraw/internal/diagram"
	"flowdraw/internal/geom"
	"flowdraw/internal/shape"
)

// Viewport maps terminal cells onto the page. Cell (0,0) covers the page
// rectangle starting at Origin.
type Viewport struct {
	Origin       geom.Point
	CellW, CellH float64
	Cols, Rows   int
}

// CellCenter returns the page point at the middle of cell (col, row).
func (v Viewport) CellCenter(col, row int) geom.Point {
	return geom.Pt(
		v.Origin.X+(float64(col)+0.5)*v.CellW,
		v.Origin.Y+(float64(row)+0.5)*v.CellH,
	)
}

// CellOf returns the cell holding page point p. It may lie outside the
// viewport.
func (v Viewport) CellOf(p geom.Point) (col, row int) {
	return int(math.Floor((p.X - v.Origin.X) / v.CellW)), int(math.Floor((p.Y - v.Origin.Y) / v.CellH))
}

// Zoom bounds and the factor one zoom step applies.
const (
	MinZoom  = 0.25
	MaxZoom  = 4.0
	ZoomStep = 1.25
)

// ClampZoom limits z to [MinZoom, MaxZoom]. Zero, NaN and negative
// factors mean 1.
func ClampZoom(z float64) float64 {
	if !(z > 0) || math.IsInf(z, 0) {
		return 1
	}
	return math.Min(math.Max(z, MinZoom), MaxZoom)
}

// Zoomed returns v magnified by z: each cell covers 1/z of the page area
// it covered before. The origin is unchanged.
func (v Viewport) Zoomed(z float64) Viewport {
	z = ClampZoom(z)
	v.CellW /= z
	v.CellH /= z
	return v
}

// FitZoom returns the zoom at which b fills cols×rows cells of the given
// unzoomed size, clamped to the zoom bounds.
func FitZoom(b geom.Rect, cellW, cellH float64, cols, rows int) float64 {
	if b.W <= 0 || b.H <= 0 || cols <= 0 || rows <= 0 {
		return 1
	}
	return ClampZoom(math.Min(float64(cols)*cellW/b.W, float64(rows)*cellH/b.H))
}

func (v Viewport) inside(col, row int) bool {
	return col >= 0 && col < v.Cols && row >= 0 && row < v.Rows
}

// Cell is one character of the terminal view.
type Cell struct {
	Ch    rune
	FG    color.NRGBA
	BG    color.NRGBA
	HasFG bool
	HasBG bool
}

// Raster is a rendered terminal view.
type Raster struct {
	Cols, Rows int
	Cells      []Cell
}

func newRaster(cols, rows int) *Raster {
	r := &Raster{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	for i := range r.Cells {
		r.Cells[i].Ch = ' '
	}
	return r
}

// At returns the cell at (col, row).
func (r *Raster) At(col, row int) Cell {
	return r.Cells[row*r.Cols+col]
}

func (r *Raster) set(col, row int, ch rune, fg color.NRGBA) {
	c := &r.Cells[row*r.Cols+col]
	c.Ch, c.FG, c.HasFG = ch, fg, true
}

func (r *Raster) fill(col, row int, bg color.NRGBA) {
	c := &r.Cells[row*r.Cols+col]
	c.Ch, c.HasFG = ' ', false
	c.BG, c.HasBG = bg, true
}

// Overlay is the transient state drawn over the diagram.
type Overlay struct {
	Draft   *shape.Shape
	Pending *connector.Geometry
	Cursor  *geom.Point

	// HideSelection draws the diagram as if nothing were selected.
	HideSelection bool
}

// Terminal rasterises the part of s under v. Shapes are sampled at cell
// centres, so small features can vanish at coarse cell sizes.
func Terminal(s *diagram.Store, v Viewport, o Overlay) *Raster {
	r := newRaster(v.Cols, v.Rows)
	if v.Cols <= 0 || v.Rows <= 0 || v.CellW <= 0 || v.CellH <= 0 {
		return r
	}
	page := s.Page()
	pr := page.Rect()
	grid := gridColor(page.Background)

	for row := 0; row < v.Rows; row++ {
		for col := 0; col < v.Cols; col++ {
			p := v.CellCenter(col, row)
			if !pr.Contains(p) {
				continue
			}
			r.fill(col, row, page.Background)
			if page.ShowGrid && onGrid(p, v, page.GridStep) {
				r.set(col, row, '·', grid)
			}
		}
	}

	sel := s.Selection()
	if o.HideSelection {
		sel = diagram.Selection{Kind: diagram.SelectedNone, Index: -1}
	}
	for i, sh := range s.Shapes() {
		selected := sel.Kind == diagram.SelectedShape && sel.Index == i
		rasterShape(r, v, &sh, selected)
	}
	for _, c := range connectors(s) {
		col := c.style.Color
		if sel.Kind == diagram.SelectedConnector && sel.Index == c.index {
			col = Highlight
		}
		rasterLink(r, v, c.geom, col)
	}
	if sel.Kind == diagram.SelectedShape {
		sh, _ := s.ShapeAt(sel.Index)
		for _, h := range diagram.Handles() {
			if cc, rr := v.CellOf(diagram.HandlePoint(sh.Bounds, h)); v.inside(cc, rr) {
				r.set(cc, rr, '■', Highlight)
			}
		}
	}

	if o.Draft != nil {
		rasterOutline(r, v, o.Draft, '+', Highlight)
	}
	if o.Pending != nil {
		rasterLink(r, v, *o.Pending, Highlight)
	}
	if o.Cursor != nil {
		if cc, rr := v.CellOf(*o.Cursor); v.inside(cc, rr) {
			cell := r.At(cc, rr)
			ch := cell.Ch
			if ch == ' ' || ch == '·' {
				ch = '┼'
			}
			r.set(cc, rr, ch, Highlight)
		}
	}
	return r
}

// onGrid reports whether a grid intersection falls inside the cell at p.
func onGrid(p geom.Point, v Viewport, step float64) bool {
	near := func(x, half float64) bool {
		m := math.Mod(x, step)
		return m < half || step-m <= half
	}
	return near(p.X, v.CellW/2) && near(p.Y, v.CellH/2)
}

// edge reports whether the cell at (col, row) lies on sh's outline: it is
// inside while a 4-neighbour is not.
func edge(v Viewport, sh *shape.Shape, col, row int) bool {
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if !sh.Contains(v.CellCenter(col+d[0], row+d[1])) {
			return true
		}
	}
	return false
}

// span returns the cells covered by b, clipped to the viewport.
func span(v Viewport, b geom.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = v.CellOf(geom.Pt(b.Left(), b.Top()))
	c1, r1 = v.CellOf(geom.Pt(b.Right(), b.Bottom()))
	return max(c0, 0), max(r0, 0), min(c1, v.Cols-1), min(r1, v.Rows-1)
}

func rasterShape(r *Raster, v Viewport, sh *shape.Shape, selected bool) {
	stroke := sh.StrokeColor
	if selected {
		stroke = Highlight
	}
	c0, r0, c1, r1 := span(v, sh.Bounds)
	hit := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !sh.Contains(v.CellCenter(col, row)) {
				continue
			}
			hit = true
			if edge(v, sh, col, row) {
				r.set(col, row, '█', stroke)
			} else {
				r.fill(col, row, sh.FillColor)
			}
		}
	}
	if !hit {
		// Too small to cover a cell centre; mark where it is.
		if cc, rr := v.CellOf(sh.InteriorPoint()); v.inside(cc, rr) {
			r.set(cc, rr, '▪', stroke)
		}
		return
	}
	rasterLabel(r, v, sh)
}

func rasterOutline(r *Raster, v Viewport, sh *shape.Shape, ch rune, fg color.NRGBA) {
	c0, r0, c1, r1 := span(v, sh.Bounds)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if sh.Contains(v.CellCenter(col, row)) && edge(v, sh, col, row) {
				r.set(col, row, ch, fg)
			}
		}
	}
}

// rasterLabel centres the text on the shape, one line per row, clipped to
// the cells the shape fills.
func rasterLabel(r *Raster, v Viewport, sh *shape.Shape) {
	lines := labelLines(sh)
	if len(lines) == 0 {
		return
	}
	cc, cr := v.CellOf(sh.InteriorPoint())
	top := cr - (len(lines)-1)/2
	for i, line := range lines {
		row := top + i
		runes := []rune(line)
		left := cc - len(runes)/2
		for j, ch := range runes {
			col := left + j
			if !v.inside(col, row) || r.At(col, row).HasFG || !sh.Contains(v.CellCenter(col, row)) {
				continue
			}
			r.set(col, row, ch, sh.TextColor)
		}
	}
}

// lineRune picks the character that best follows direction d on screen.
func lineRune(d geom.Point, v Viewport) rune {
	// Compare in cell units; cells are usually twice as tall as wide.
	dx, dy := d.X/v.CellW, d.Y/v.CellH
	ang := math.Abs(math.Atan2(dy, dx)) * 180 / math.Pi
	switch {
	case ang < 22.5 || ang > 157.5:
		return '─'
	case ang > 67.5 && ang < 112.5:
		return '│'
	case dx*dy > 0:
		return '╲'
	}
	return '╱'
}

// arrowRune points along d.
func arrowRune(d geom.Point, v Viewport) rune {
	dx, dy := d.X/v.CellW, d.Y/v.CellH
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return '▶'
		}
		return '◀'
	}
	if dy >= 0 {
		return '▼'
	}
	return '▲'
}

func rasterLink(r *Raster, v Viewport, g connector.Geometry, fg color.NRGBA) {
	d := g.P2.Sub(g.P1)
	step := math.Min(v.CellW, v.CellH) / 2
	n := int(math.Ceil(d.Length() / step))
	ch := lineRune(d, v)
	for k := 0; k <= n; k++ {
		t := 0.0
		if n > 0 {
			t = float64(k) / float64(n)
		}
		if cc, rr := v.CellOf(g.P1.Add(d.Mul(t))); v.inside(cc, rr) {
			r.set(cc, rr, ch, fg)
		}
	}
	for _, head := range g.Heads {
		tip := head[0]
		base := head[1].Add(head[2]).Mul(0.5)
		if cc, rr := v.CellOf(tip); v.inside(cc, rr) {
			r.set(cc, rr, arrowRune(tip.Sub(base), v), fg)
		}
	}
}

// Lines renders the raster as text. With styled set, colours are applied
// through lipgloss; otherwise the result is plain characters, as written by
// the text export.
func (r *Raster) Lines(styled bool) []string {
	out := make([]string, r.Rows)
	for row := 0; row < r.Rows; row++ {
		var b strings.Builder
		run := strings.Builder{}
		var runStyle *Cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(cellStyle(runStyle).Render(run.String()))
			run.Reset()
		}
		for col := 0; col < r.Cols; col++ {
			cell := r.At(col, row)
			if !styled {
				b.WriteRune(cell.Ch)
				continue
			}
			if runStyle == nil || !sameStyle(*runStyle, cell) {
				flush()
				c := cell
				runStyle = &c
			}
			run.WriteRune(cell.Ch)
		}
		if styled {
			flush()
		}
		out[row] = b.String()
	}
	return out
}

// String renders the raster as plain text lines.
func (r *Raster) String() string {
	return strings.Join(r.Lines(false), "\n")
}

func sameStyle(a, b Cell) bool {
	return a.HasFG == b.HasFG && a.HasBG == b.HasBG &&
		(!a.HasFG || a.FG == b.FG) && (!a.HasBG || a.BG == b.BG)
}

// TerminalColor converts c for lipgloss. Alpha is dropped.
func TerminalColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(hexRGB(c))
}

func cellStyle(c *Cell) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c.HasFG {
		st = st.Foreground(TerminalColor(c.FG))
	}
	if c.HasBG {
		st = st.Background(TerminalColor(c.BG))
	}
	return st
}
