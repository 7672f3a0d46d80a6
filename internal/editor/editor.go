// Package editor turns pointer events and commands into diagram edits. All
// edits go through the history engine so they can be undone.
package editor

import (
	"image/color"

	"flowdraw/internal/connector"
	"flowdraw/internal/diagram"
	"flowdraw/internal/geom"
	"flowdraw/internal/history"
	"flowdraw/internal/logging"
	"flowdraw/internal/shape"
)

// Tool is the active pointer tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolDraw
	ToolConnector
)

func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "draw"
	case ToolConnector:
		return "connector"
	}
	return "select"
}

const (
	// DropWidth and DropHeight size a shape placed with Drop.
	DropWidth  = 100.0
	DropHeight = 60.0

	defaultHitTolerance    = 4.0
	defaultHandleTolerance = 5.0
)

// Defaults are the style given to newly created shapes.
type Defaults struct {
	Fill   color.NRGBA
	Stroke color.NRGBA
}

// Editor is the interactive front of a diagram. It is not safe for
// concurrent use.
type Editor struct {
	hist  *history.Engine
	store *diagram.Store
	clip  Clipboard

	tool     Tool
	drawKind shape.Kind
	defaults Defaults

	// Tolerances are in page units.
	HitTolerance    float64
	HandleTolerance float64

	pressed   bool
	pressAt   geom.Point
	draft     *shape.Shape
	linkFrom  diagram.ShapeID
	linkTo    geom.Point
	linking   bool
	connStyle connector.Style
}

// New returns an editor over the engine's store using the system clipboard.
func New(hist *history.Engine) *Editor {
	return &Editor{
		hist:            hist,
		store:           hist.Store(),
		clip:            SystemClipboard(),
		drawKind:        shape.Rect,
		defaults:        Defaults{Fill: shape.White, Stroke: shape.Black},
		HitTolerance:    defaultHitTolerance,
		HandleTolerance: defaultHandleTolerance,
		connStyle:       connector.DefaultStyle(),
	}
}

// SetClipboard replaces the clipboard used by Copy, Cut and Paste.
func (e *Editor) SetClipboard(c Clipboard) { e.clip = c }

// SetDefaults sets the style of shapes created from now on.
func (e *Editor) SetDefaults(d Defaults) { e.defaults = d }

func (e *Editor) Store() *diagram.Store    { return e.store }
func (e *Editor) History() *history.Engine { return e.hist }
func (e *Editor) Tool() Tool               { return e.tool }
func (e *Editor) DrawKind() shape.Kind     { return e.drawKind }

// SetTool switches tools, abandoning whatever the pointer was doing.
func (e *Editor) SetTool(t Tool) {
	e.Cancel()
	e.tool = t
}

// SetDrawKind selects the draw tool for kind k.
func (e *Editor) SetDrawKind(k shape.Kind) {
	if !k.Valid() {
		return
	}
	e.SetTool(ToolDraw)
	e.drawKind = k
}

func (e *Editor) newShape(k shape.Kind, b geom.Rect) shape.Shape {
	sh := shape.New(k, b)
	sh.FillColor = e.defaults.Fill
	sh.StrokeColor = e.defaults.Stroke
	return sh
}

// Press starts a pointer gesture at p.
func (e *Editor) Press(p geom.Point) {
	e.Cancel()
	e.pressed = true
	e.pressAt = p

	switch e.tool {
	case ToolDraw:
		sh := e.newShape(e.drawKind, geom.Rect{X: p.X, Y: p.Y})
		e.draft = &sh
	case ToolConnector:
		if i, ok := e.store.HitTestTopmost(p); ok {
			e.linkFrom, _ = e.store.ShapeID(i)
			e.linkTo = p
			e.linking = true
		}
	default:
		e.pressSelect(p)
	}
}

func (e *Editor) pressSelect(p geom.Point) {
	if i, ok := e.store.SelectedShape(); ok {
		if h := e.store.HandleAt(i, p, e.HandleTolerance); h != diagram.NoHandle {
			e.hist.BeginResize(i, h)
			return
		}
	}
	if i, ok := e.store.HitTestTopmost(p); ok {
		e.store.SelectShape(i)
		e.hist.BeginMove(i)
		return
	}
	if ci, ok := e.store.HitTestConnector(p, e.HitTolerance); ok {
		e.store.SelectConnector(ci)
		return
	}
	e.store.ClearSelection()
}

// Move tracks the pointer while a gesture is in progress.
func (e *Editor) Move(p geom.Point) {
	if !e.pressed {
		return
	}
	switch {
	case e.draft != nil:
		e.draft.Bounds = geom.RectFromPoints(e.pressAt, p)
	case e.linking:
		e.linkTo = p
	default:
		e.hist.UpdateGesture(p.Sub(e.pressAt))
	}
}

// Release ends the gesture at p. inside tells whether p is on the page; a
// gesture released off the page is cancelled.
func (e *Editor) Release(p geom.Point, inside bool) {
	if !e.pressed {
		return
	}
	if !inside {
		e.Cancel()
		return
	}
	e.Move(p)
	e.pressed = false

	switch {
	case e.draft != nil:
		e.finishDraw()
	case e.linking:
		e.finishLink(p)
	default:
		e.hist.EndGesture()
	}
}

func (e *Editor) finishDraw() {
	sh := *e.draft
	e.draft = nil
	e.tool = ToolSelect
	if sh.Bounds.W < shape.MinDrawSize || sh.Bounds.H < shape.MinDrawSize {
		logging.Logger().Debug("discard small draw", "w", sh.Bounds.W, "h", sh.Bounds.H)
		return
	}
	if i := e.hist.AddShape(sh); i >= 0 {
		e.store.SelectShape(i)
	}
}

func (e *Editor) finishLink(p geom.Point) {
	e.linking = false
	e.tool = ToolSelect
	src := e.store.IndexOf(e.linkFrom)
	dst, ok := e.store.HitTestTopmost(p)
	if src < 0 || !ok || dst == src {
		return
	}
	if ci := e.hist.AddConnector(src, dst, e.connStyle); ci >= 0 {
		e.store.SelectConnector(ci)
	}
}

// Cancel abandons the gesture in progress and restores the diagram to how
// it was before the press.
func (e *Editor) Cancel() {
	e.pressed = false
	e.draft = nil
	e.linking = false
	e.hist.CancelGesture()
}

// Draft returns the shape being drawn, if any.
func (e *Editor) Draft() (shape.Shape, bool) {
	if e.draft == nil {
		return shape.Shape{}, false
	}
	return *e.draft, true
}

// PendingLink returns the connector being drawn, ending at the pointer.
func (e *Editor) PendingLink() (connector.Geometry, bool) {
	if !e.linking {
		return connector.Geometry{}, false
	}
	i := e.store.IndexOf(e.linkFrom)
	src, ok := e.store.ShapeAt(i)
	if !ok {
		return connector.Geometry{}, false
	}
	return connector.Resolve(&src, nil, e.linkTo, e.connStyle.Bidirectional)
}

// Drop places a DropWidth x DropHeight shape of kind k centred on p and
// selects it.
func (e *Editor) Drop(k shape.Kind, p geom.Point) int {
	b := geom.Rect{X: p.X - DropWidth/2, Y: p.Y - DropHeight/2, W: DropWidth, H: DropHeight}
	i := e.hist.AddShape(e.newShape(k, b))
	if i >= 0 {
		e.store.SelectShape(i)
	}
	return i
}

// NewDocument empties the diagram and forgets all history.
func (e *Editor) NewDocument() {
	e.Cancel()
	e.tool = ToolSelect
	e.hist.Reset()
	e.store.Reset()
}

// Undo reverts the last edit.
func (e *Editor) Undo() bool {
	e.Cancel()
	return e.hist.Undo()
}

// Redo reapplies the last undone edit.
func (e *Editor) Redo() bool {
	e.Cancel()
	return e.hist.Redo()
}
