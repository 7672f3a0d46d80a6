package render

import (
	"bytes"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowdraw/internal/connector"
	"flowdraw/internal/diagram"
	"flowdraw/internal/geom"
	"flowdraw/internal/shape"
)

var red = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}

func newStore(t *testing.T, w, h float64) *diagram.Store {
	t.Helper()
	s := diagram.NewStore()
	p := s.Page()
	p.Width, p.Height, p.ShowGrid = w, h, false
	require.True(t, s.SetPage(p))
	return s
}

func addShape(t *testing.T, s *diagram.Store, k shape.Kind, b geom.Rect) int {
	t.Helper()
	i := s.AddShape(shape.New(k, b))
	require.GreaterOrEqual(t, i, 0)
	return i
}

func pixel(t *testing.T, img interface{ At(x, y int) color.Color }, x, y int) color.NRGBA {
	t.Helper()
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestPNGPaintsPageAndShapes(t *testing.T) {
	s := newStore(t, 200, 100)
	i := addShape(t, s, shape.Rect, geom.Rect{X: 20, Y: 20, W: 60, H: 40})
	require.True(t, s.SetShapeProperty(i, diagram.PropFill, red))
	require.True(t, s.SetShapeProperty(i, diagram.PropText, "box"))

	img, err := PNG(s, 2)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	assert.Equal(t, s.Page().Background, pixel(t, img, 390, 190))
	assert.Equal(t, red, pixel(t, img, 60, 60))
}

func TestConnectorsPaintBeneathShapes(t *testing.T) {
	s := newStore(t, 300, 100)
	a := addShape(t, s, shape.Rect, geom.Rect{X: 0, Y: 20, W: 40, H: 40})
	b := addShape(t, s, shape.Rect, geom.Rect{X: 260, Y: 20, W: 40, H: 40})
	style := connector.DefaultStyle()
	style.Width = 4
	require.Equal(t, 0, s.AddConnector(a, b, style))
	cover := addShape(t, s, shape.Rect, geom.Rect{X: 100, Y: 0, W: 60, H: 100})
	require.True(t, s.SetShapeProperty(cover, diagram.PropFill, red))

	img, err := PNG(s, 1)
	require.NoError(t, err)
	assert.Equal(t, shape.Black, pixel(t, img, 70, 40), "bare connector")
	assert.Equal(t, red, pixel(t, img, 130, 40), "shape covers the connector")

	var buf bytes.Buffer
	SVG(&buf, s)
	out := buf.String()
	assert.Less(t, strings.Index(out, "<line"), strings.Index(out, "<polygon"))
}

func TestPNGRejectsBadScale(t *testing.T) {
	_, err := PNG(diagram.NewStore(), 0)
	assert.ErrorIs(t, err, ErrBadScale)
}

func TestWritePNGAndSVG(t *testing.T) {
	s := newStore(t, 120, 80)
	addShape(t, s, shape.Ellipse, geom.Rect{X: 10, Y: 10, W: 40, H: 30})
	dir := t.TempDir()

	require.NoError(t, WritePNG(filepath.Join(dir, "out.png"), s, 1))
	require.NoError(t, WriteSVG(filepath.Join(dir, "out.svg"), s))
	for _, name := range []string{"out.png", "out.svg"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestSVGElements(t *testing.T) {
	s := newStore(t, 300, 100)
	a := addShape(t, s, shape.Hexagon, geom.Rect{X: 10, Y: 10, W: 60, H: 60})
	b := addShape(t, s, shape.Sector, geom.Rect{X: 200, Y: 10, W: 60, H: 60})
	require.True(t, s.SetShapeProperty(a, diagram.PropText, "a<b"))
	style := connector.DefaultStyle()
	style.Bidirectional = true
	require.Equal(t, 0, s.AddConnector(a, b, style))

	var buf bytes.Buffer
	SVG(&buf, s)
	out := buf.String()

	assert.Contains(t, out, `<svg width="300" height="100"`)
	assert.Equal(t, 4, strings.Count(out, "<polygon"), "two shapes and two arrowheads")
	assert.Contains(t, out, "a&lt;b")
	assert.Contains(t, out, "fill:#ffffff")
	assert.NotContains(t, out, "stroke-width:0.5", "grid is off")

	p := s.Page()
	p.ShowGrid = true
	require.True(t, s.SetPage(p))
	buf.Reset()
	SVG(&buf, s)
	assert.Contains(t, buf.String(), "stroke-width:0.5")
}

func TestViewportMapping(t *testing.T) {
	v := Viewport{Origin: geom.Pt(100, 50), CellW: 10, CellH: 20, Cols: 8, Rows: 4}
	assert.Equal(t, geom.Pt(105, 60), v.CellCenter(0, 0))
	col, row := v.CellOf(geom.Pt(137, 95))
	assert.Equal(t, 3, col)
	assert.Equal(t, 2, row)
	col, row = v.CellOf(geom.Pt(99, 49))
	assert.Equal(t, -1, col)
	assert.Equal(t, -1, row)
}

func TestViewportZoom(t *testing.T) {
	v := Viewport{Origin: geom.Pt(100, 50), CellW: 10, CellH: 20, Cols: 8, Rows: 4}

	in := v.Zoomed(2)
	assert.Equal(t, 5.0, in.CellW)
	assert.Equal(t, 10.0, in.CellH)
	assert.Equal(t, v.Origin, in.Origin)
	assert.Equal(t, geom.Pt(102.5, 55), in.CellCenter(0, 0))

	assert.Equal(t, 40.0, v.Zoomed(0.25).CellW)
	assert.Equal(t, v.CellW/MaxZoom, v.Zoomed(100).CellW)
	assert.Equal(t, v, v.Zoomed(0))
	assert.Equal(t, v, v.Zoomed(math.NaN()))
}

func TestFitZoom(t *testing.T) {
	tests := []struct {
		name string
		b    geom.Rect
		want float64
	}{
		{"wide", geom.Rect{W: 400, H: 40}, 0.5},
		{"tall", geom.Rect{W: 10, H: 400}, 0.5},
		{"small", geom.Rect{W: 20, H: 20}, 4},
		{"huge", geom.Rect{W: 100000, H: 100000}, MinZoom},
		{"empty", geom.Rect{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 20×10 cells of 10×20 cover 200×200.
			assert.InDelta(t, tt.want, FitZoom(tt.b, 10, 20, 20, 10), 1e-9)
		})
	}
}

func TestTerminalShapeCells(t *testing.T) {
	s := newStore(t, 200, 100)
	i := addShape(t, s, shape.Rect, geom.Rect{X: 20, Y: 20, W: 100, H: 60})
	require.True(t, s.SetShapeProperty(i, diagram.PropFill, red))
	v := Viewport{CellW: 10, CellH: 20, Cols: 20, Rows: 5}

	r := Terminal(s, v, Overlay{})
	inner := r.At(5, 2)
	assert.Equal(t, ' ', inner.Ch)
	assert.True(t, inner.HasBG)
	assert.Equal(t, red, inner.BG)

	assert.Equal(t, '█', r.At(2, 2).Ch)
	assert.Equal(t, ' ', r.At(0, 2).Ch)
	assert.Equal(t, s.Page().Background, r.At(0, 2).BG)

	lines := r.Lines(false)
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[2], "  █"))
	assert.Equal(t, strings.Join(lines, "\n"), r.String())
}

func TestTerminalConnectorAndLabel(t *testing.T) {
	s := newStore(t, 400, 100)
	a := addShape(t, s, shape.Rect, geom.Rect{X: 0, Y: 20, W: 60, H: 60})
	b := addShape(t, s, shape.Rect, geom.Rect{X: 200, Y: 20, W: 60, H: 60})
	require.True(t, s.SetShapeProperty(a, diagram.PropText, "hi"))
	require.Equal(t, 0, s.AddConnector(a, b, connector.DefaultStyle()))
	v := Viewport{CellW: 10, CellH: 20, Cols: 40, Rows: 5}

	r := Terminal(s, v, Overlay{})
	assert.Equal(t, '─', r.At(10, 2).Ch)
	assert.Equal(t, '▶', r.At(20, 2).Ch)
	assert.Equal(t, 'h', r.At(2, 2).Ch)
	assert.Equal(t, 'i', r.At(3, 2).Ch)
	assert.Equal(t, shape.Black, r.At(10, 2).FG)
	assert.Contains(t, r.Lines(true)[2], "hi")

	require.True(t, s.SelectConnector(0))
	r = Terminal(s, v, Overlay{})
	assert.Equal(t, Highlight, r.At(10, 2).FG)
}

func TestTerminalSelectionAndOverlay(t *testing.T) {
	s := newStore(t, 400, 200)
	i := addShape(t, s, shape.Rect, geom.Rect{X: 20, Y: 20, W: 100, H: 60})
	require.True(t, s.SelectShape(i))
	v := Viewport{CellW: 10, CellH: 20, Cols: 40, Rows: 10}

	draft := shape.New(shape.Ellipse, geom.Rect{X: 200, Y: 100, W: 100, H: 80})
	cursor := geom.Pt(385, 185)
	r := Terminal(s, v, Overlay{Draft: &draft, Cursor: &cursor})

	assert.Equal(t, '■', r.At(2, 1).Ch, "top-left handle")
	assert.Equal(t, Highlight, r.At(2, 2).FG, "selected outline")
	assert.Equal(t, '+', r.At(20, 7).Ch, "draft outline")
	assert.Equal(t, '┼', r.At(38, 9).Ch)

	r = Terminal(s, v, Overlay{HideSelection: true})
	assert.Equal(t, '█', r.At(2, 1).Ch)
	assert.Equal(t, shape.Black, r.At(2, 1).FG)
}

func TestTinyShapeStillShows(t *testing.T) {
	s := newStore(t, 200, 100)
	addShape(t, s, shape.Diamond, geom.Rect{X: 41, Y: 41, W: 2, H: 2})
	r := Terminal(s, Viewport{CellW: 10, CellH: 20, Cols: 20, Rows: 5}, Overlay{})
	assert.Equal(t, '▪', r.At(4, 2).Ch)
}

func TestTerminalEmptyViewport(t *testing.T) {
	r := Terminal(diagram.NewStore(), Viewport{}, Overlay{})
	assert.Empty(t, r.Lines(false))
}
