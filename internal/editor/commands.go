package editor

import (
	"image/color"

	"flowdraw/internal/diagram"
	"flowdraw/internal/geom"
	"flowdraw/internal/logging"
	"flowdraw/internal/shape"
)

// setShape applies p=v to the selected shape.
func (e *Editor) setShape(p diagram.Prop, v any) bool {
	i, ok := e.store.SelectedShape()
	if !ok {
		return false
	}
	return e.hist.SetShapeProperty(i, p, v)
}

func (e *Editor) setConnector(p diagram.ConnProp, v any) bool {
	i, ok := e.store.SelectedConnector()
	if !ok {
		return false
	}
	return e.hist.SetConnectorProperty(i, p, v)
}

func (e *Editor) SetFill(c color.NRGBA) bool       { return e.setShape(diagram.PropFill, c) }
func (e *Editor) SetText(t string) bool            { return e.setShape(diagram.PropText, t) }
func (e *Editor) SetTextColor(c color.NRGBA) bool  { return e.setShape(diagram.PropTextColor, c) }
func (e *Editor) SetTextSize(n int) bool           { return e.setShape(diagram.PropTextSize, n) }
func (e *Editor) SetWidth(w float64) bool          { return e.setShape(diagram.PropWidth, w) }
func (e *Editor) SetHeight(h float64) bool         { return e.setShape(diagram.PropHeight, h) }
func (e *Editor) SetCornerRadius(r float64) bool   { return e.setShape(diagram.PropCornerRadius, r) }
func (e *Editor) SetStartAngle(deg float64) bool   { return e.setShape(diagram.PropStartAngle, deg) }
func (e *Editor) SetSpanAngle(deg float64) bool    { return e.setShape(diagram.PropSpanAngle, deg) }
func (e *Editor) SetThickness(t float64) bool      { return e.setShape(diagram.PropThickness, t) }
func (e *Editor) SetBidirectional(on bool) bool    { return e.setConnector(diagram.ConnBidirectional, on) }
func (e *Editor) SetConnectorWidth(w float64) bool { return e.setConnector(diagram.ConnWidth, w) }
func (e *Editor) SetConnectorColor(c color.NRGBA) bool {
	return e.setConnector(diagram.ConnColor, c)
}

// SetStroke colours the selected shape's outline or the selected connector.
func (e *Editor) SetStroke(c color.NRGBA) bool {
	if e.setConnector(diagram.ConnColor, c) {
		return true
	}
	return e.setShape(diagram.PropStroke, c)
}

// SetStrokeWidth sets the outline width of the selected shape or the width
// of the selected connector.
func (e *Editor) SetStrokeWidth(w float64) bool {
	if e.setConnector(diagram.ConnWidth, w) {
		return true
	}
	return e.setShape(diagram.PropStrokeWidth, w)
}

// ToggleBidirectional flips the arrowheads of the selected connector.
func (e *Editor) ToggleBidirectional() bool {
	i, ok := e.store.SelectedConnector()
	if !ok {
		return false
	}
	c, _ := e.store.ConnectorAt(i)
	return e.hist.SetConnectorProperty(i, diagram.ConnBidirectional, !c.Style.Bidirectional)
}

// CycleFill advances the selected shape's fill through the palette.
func (e *Editor) CycleFill() bool {
	i, ok := e.store.SelectedShape()
	if !ok {
		return false
	}
	sh, _ := e.store.ShapeAt(i)
	return e.hist.SetShapeProperty(i, diagram.PropFill, shape.NextColor(sh.FillColor))
}

// CycleStroke advances the selection's stroke colour through the palette.
func (e *Editor) CycleStroke() bool {
	if i, ok := e.store.SelectedConnector(); ok {
		c, _ := e.store.ConnectorAt(i)
		return e.hist.SetConnectorProperty(i, diagram.ConnColor, shape.NextColor(c.Style.Color))
	}
	i, ok := e.store.SelectedShape()
	if !ok {
		return false
	}
	sh, _ := e.store.ShapeAt(i)
	return e.hist.SetShapeProperty(i, diagram.PropStroke, shape.NextColor(sh.StrokeColor))
}

// Nudge moves the selected shape by d as one undoable step.
func (e *Editor) Nudge(d geom.Point) bool {
	i, ok := e.store.SelectedShape()
	if !ok {
		return false
	}
	return e.hist.MoveShape(i, d)
}

// Grow resizes the selected shape from its bottom-right corner.
func (e *Editor) Grow(d geom.Point) bool {
	i, ok := e.store.SelectedShape()
	if !ok {
		return false
	}
	return e.hist.ResizeShape(i, diagram.HandleBottomRight, d)
}

// DeleteSelection removes the selected shape (with its connectors) or the
// selected connector.
func (e *Editor) DeleteSelection() bool {
	e.Cancel()
	if i, ok := e.store.SelectedConnector(); ok {
		return e.hist.DeleteConnector(i)
	}
	if i, ok := e.store.SelectedShape(); ok {
		return e.hist.DeleteShape(i)
	}
	return false
}

func (e *Editor) zOrder(op func(int) bool) bool {
	i, ok := e.store.SelectedShape()
	if !ok {
		return false
	}
	return op(i)
}

func (e *Editor) BringToFront() bool { return e.zOrder(e.hist.BringToFront) }
func (e *Editor) SendToBack() bool   { return e.zOrder(e.hist.SendToBack) }
func (e *Editor) MoveUp() bool       { return e.zOrder(e.hist.MoveUp) }
func (e *Editor) MoveDown() bool     { return e.zOrder(e.hist.MoveDown) }

// Copy puts the selected shape on the clipboard.
func (e *Editor) Copy() error {
	i, ok := e.store.SelectedShape()
	if !ok {
		return nil
	}
	sh, _ := e.store.ShapeAt(i)
	text, err := encodeShape(sh)
	if err != nil {
		return err
	}
	return e.clip.WriteAll(text)
}

// Cut copies the selected shape and deletes it.
func (e *Editor) Cut() error {
	if _, ok := e.store.SelectedShape(); !ok {
		return nil
	}
	if err := e.Copy(); err != nil {
		return err
	}
	e.DeleteSelection()
	return nil
}

// Paste adds the shape on the clipboard, offset from where it was copied,
// and selects it. It returns the new shape's index.
func (e *Editor) Paste() (int, error) {
	text, err := e.clip.ReadAll()
	if err != nil {
		return -1, err
	}
	sh, err := decodeShape(text)
	if err != nil {
		return -1, err
	}
	sh.Translate(geom.Pt(pasteOffset, pasteOffset))
	i := e.hist.AddShape(sh)
	if i >= 0 {
		e.store.SelectShape(i)
		// A second paste lands further along.
		next, err := encodeShape(sh)
		if err == nil {
			err = e.clip.WriteAll(next)
		}
		if err != nil {
			logging.Logger().Warn("paste: clipboard not advanced", "index", i, "err", err)
		}
	}
	return i, nil
}
