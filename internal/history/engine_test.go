package history

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowdraw/internal/connector"
	"flowdraw/internal/diagram"
	"flowdraw/internal/geom"
	"flowdraw/internal/shape"
)

type link struct {
	Src, Dst int
	Style    connector.Style
}

type snapshot struct {
	Shapes []shape.Shape
	Links  []link
}

func snap(s *diagram.Store) snapshot {
	out := snapshot{Shapes: s.Shapes()}
	for i := 0; i < s.ConnectorCount(); i++ {
		src, dst, _ := s.ConnectorEnds(i)
		c, _ := s.ConnectorAt(i)
		out.Links = append(out.Links, link{Src: src, Dst: dst, Style: c.Style})
	}
	return out
}

func newShape(k shape.Kind, x, y float64) shape.Shape {
	return shape.New(k, geom.Rect{X: x, Y: y, W: 80, H: 50})
}

func TestAddMoveDeleteUndoRedo(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	e.AddShape(newShape(shape.Ellipse, 0, 0))
	start := snap(e.Store())

	i := e.AddShape(newShape(shape.Rect, 100, 100))
	require.True(t, e.MoveShape(i, geom.Pt(20, 30)))
	require.True(t, e.DeleteShape(0))
	end := snap(e.Store())

	for n := 0; n < 3; n++ {
		require.True(t, e.Undo())
	}
	assert.Equal(t, start, snap(e.Store()))

	for n := 0; n < 3; n++ {
		require.True(t, e.Redo())
	}
	assert.Equal(t, end, snap(e.Store()))
}

func TestUndoDeleteRestoresConnectors(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	a := e.AddShape(newShape(shape.Rect, 0, 0))
	b := e.AddShape(newShape(shape.Diamond, 200, 0))
	c := e.AddShape(newShape(shape.Hexagon, 0, 200))
	e.AddConnector(a, b, connector.DefaultStyle())
	e.AddConnector(c, a, connector.Style{Color: shape.Black, Width: 3, Bidirectional: true})
	e.AddConnector(b, c, connector.DefaultStyle())
	before := snap(e.Store())

	require.True(t, e.DeleteShape(a))
	assert.Equal(t, 1, e.Store().ConnectorCount())

	require.True(t, e.Undo())
	assert.Equal(t, before, snap(e.Store()))

	g, ok := e.Store().ResolveConnector(1)
	require.True(t, ok)
	assert.Len(t, g.Heads, 2)
}

func TestZOrderUndo(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	for n := 0; n < 4; n++ {
		e.AddShape(newShape(shape.Rect, float64(n*10), 0))
	}
	id, _ := e.Store().ShapeID(1)

	require.True(t, e.BringToFront(1))
	assert.Equal(t, 3, e.Store().IndexOf(id))
	require.True(t, e.Undo())
	assert.Equal(t, 1, e.Store().IndexOf(id))

	for e.MoveUp(e.Store().IndexOf(id)) {
	}
	assert.Equal(t, 3, e.Store().IndexOf(id))
	undo, _ := e.Len()
	assert.False(t, e.MoveUp(3))
	after, _ := e.Len()
	assert.Equal(t, undo, after, "a no-op records nothing")
}

func TestZOrderReplayFollowsShape(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	for n := 0; n < 4; n++ {
		e.AddShape(newShape(shape.Rect, float64(n*10), 0))
	}
	id, _ := e.Store().ShapeID(1)
	require.True(t, e.BringToFront(1))

	// Shuffle underneath the history so the recorded index is stale.
	require.True(t, e.Store().Reorder(3, 2))
	require.True(t, e.Undo())
	assert.Equal(t, 1, e.Store().IndexOf(id))
	require.True(t, e.Redo())
	assert.Equal(t, 3, e.Store().IndexOf(id))
}

func TestNewMutationClearsRedo(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	e.AddShape(newShape(shape.Rect, 0, 0))
	e.AddShape(newShape(shape.Rect, 100, 0))
	e.Undo()
	assert.True(t, e.CanRedo())

	e.MoveShape(0, geom.Pt(5, 5))
	assert.False(t, e.CanRedo())
	assert.False(t, e.Redo())
}

func TestReplayDoesNotRecord(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	e.AddShape(newShape(shape.Rect, 0, 0))
	e.MoveShape(0, geom.Pt(5, 5))

	e.Undo()
	undo, redo := e.Len()
	assert.Equal(t, 1, undo)
	assert.Equal(t, 1, redo)

	e.Redo()
	undo, redo = e.Len()
	assert.Equal(t, 2, undo)
	assert.Equal(t, 0, redo)
}

func TestEmptyStacksAreNoops(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	assert.False(t, e.Undo())
	assert.False(t, e.Redo())
	assert.False(t, e.CanUndo())
}

func TestGestureRecordsOnce(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	i := e.AddShape(newShape(shape.Rect, 0, 0))
	undoBefore, _ := e.Len()

	require.True(t, e.BeginMove(i))
	for step := 1; step <= 10; step++ {
		e.UpdateGesture(geom.Pt(float64(step), float64(2*step)))
	}
	require.True(t, e.EndGesture())

	undo, _ := e.Len()
	assert.Equal(t, undoBefore+1, undo)
	sh, _ := e.Store().ShapeAt(i)
	assert.Equal(t, geom.Rect{X: 10, Y: 20, W: 80, H: 50}, sh.Bounds)

	require.True(t, e.Undo())
	sh, _ = e.Store().ShapeAt(i)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 80, H: 50}, sh.Bounds)
}

func TestResizeGesture(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	i := e.AddShape(newShape(shape.Rect, 0, 0))
	assert.False(t, e.BeginResize(i, diagram.NoHandle))

	require.True(t, e.BeginResize(i, diagram.HandleBottomRight))
	e.UpdateGesture(geom.Pt(-500, 10))
	require.True(t, e.EndGesture())
	sh, _ := e.Store().ShapeAt(i)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 10, H: 60}, sh.Bounds)

	r := e.undoStack[len(e.undoStack)-1]
	assert.Equal(t, Resize, r.Kind)
}

func TestGestureCancelAndNoop(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	i := e.AddShape(newShape(shape.Rect, 0, 0))
	orig, _ := e.Store().ShapeAt(i)

	e.BeginMove(i)
	e.UpdateGesture(geom.Pt(40, 40))
	e.CancelGesture()
	sh, _ := e.Store().ShapeAt(i)
	assert.Equal(t, orig, sh)

	e.BeginMove(i)
	e.UpdateGesture(geom.Pt(0, 0))
	assert.False(t, e.EndGesture())
	undo, _ := e.Len()
	assert.Equal(t, 1, undo)

	assert.False(t, e.EndGesture(), "no gesture")
	assert.False(t, e.UpdateGesture(geom.Pt(1, 1)))
}

func TestUndoCancelsGesture(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	i := e.AddShape(newShape(shape.Rect, 0, 0))
	e.BeginMove(i)
	e.UpdateGesture(geom.Pt(40, 40))
	require.True(t, e.Undo())
	assert.Equal(t, 0, e.Store().ShapeCount())
	_, active := e.Gesture()
	assert.False(t, active)
}

func TestPropertyChanges(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	i := e.AddShape(newShape(shape.Rect, 0, 0))
	red := color.NRGBA{R: 0xff, A: 0xff}

	require.True(t, e.SetShapeProperty(i, diagram.PropFill, red))
	require.True(t, e.SetShapeProperty(i, diagram.PropFill, red))
	undo, _ := e.Len()
	assert.Equal(t, 2, undo, "unchanged value is not recorded")

	assert.False(t, e.SetShapeProperty(i, diagram.PropFill, "red"))

	e.Undo()
	sh, _ := e.Store().ShapeAt(i)
	assert.Equal(t, shape.White, sh.FillColor)
	e.Redo()
	sh, _ = e.Store().ShapeAt(i)
	assert.Equal(t, red, sh.FillColor)
}

func TestConnectorRecords(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	a := e.AddShape(newShape(shape.Rect, 0, 0))
	b := e.AddShape(newShape(shape.Rect, 200, 0))
	ci := e.AddConnector(a, b, connector.DefaultStyle())
	require.Equal(t, 0, ci)
	assert.Equal(t, -1, e.AddConnector(a, a, connector.DefaultStyle()))

	require.True(t, e.SetConnectorProperty(ci, diagram.ConnBidirectional, true))
	r := e.undoStack[len(e.undoStack)-1]
	assert.Equal(t, ConnectorChange, r.Kind)
	assert.Equal(t, [2]int{a, b}, r.Ends)

	e.Undo()
	c, _ := e.Store().ConnectorAt(ci)
	assert.False(t, c.Style.Bidirectional)

	require.True(t, e.DeleteConnector(ci))
	assert.Equal(t, 0, e.Store().ConnectorCount())
	e.Undo()
	assert.Equal(t, 1, e.Store().ConnectorCount())
	e.Undo()
	assert.Equal(t, 0, e.Store().ConnectorCount())
	e.Redo()
	assert.Equal(t, 1, e.Store().ConnectorCount())
}

func TestLimitDropsOldest(t *testing.T) {
	e := New(diagram.NewStore(), 3)
	for n := 0; n < 5; n++ {
		e.AddShape(newShape(shape.Rect, float64(n), 0))
	}
	undo, _ := e.Len()
	assert.Equal(t, 3, undo)
	assert.Equal(t, uint64(5), e.Changes())
	for e.Undo() {
	}
	assert.Equal(t, 2, e.Store().ShapeCount())
	assert.Equal(t, uint64(8), e.Changes())
}

func TestReset(t *testing.T) {
	e := New(diagram.NewStore(), 0)
	e.AddShape(newShape(shape.Rect, 0, 0))
	e.BeginMove(0)
	e.Reset()
	assert.False(t, e.CanUndo())
	assert.Zero(t, e.Changes())
	_, active := e.Gesture()
	assert.False(t, active)
}

// TestRandomSequencesInvert applies random mutations and checks that undoing
// all of them restores the start state and redoing them restores the end.
func TestRandomSequencesInvert(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	kinds := shape.Kinds()

	for round := 0; round < 20; round++ {
		e := New(diagram.NewStore(), 0)
		for n := 0; n < 3; n++ {
			e.Store().AddShape(newShape(kinds[rng.Intn(len(kinds))], rng.Float64()*500, rng.Float64()*500))
		}
		e.Store().AddConnector(0, 1, connector.DefaultStyle())
		start := snap(e.Store())

		steps := 0
		for steps < 15 {
			n := e.Store().ShapeCount()
			i := rng.Intn(n + 1)
			var ok bool
			switch rng.Intn(9) {
			case 0:
				ok = e.AddShape(newShape(kinds[rng.Intn(len(kinds))], rng.Float64()*500, rng.Float64()*500)) >= 0
			case 1:
				ok = n > 1 && e.DeleteShape(i)
			case 2:
				ok = e.MoveShape(i, geom.Pt(rng.Float64()*50, -rng.Float64()*50))
			case 3:
				ok = e.ResizeShape(i, diagram.HandleBottomRight, geom.Pt(rng.Float64()*40-20, 5))
			case 4:
				ok = e.SetShapeProperty(i, diagram.PropText, "t")
			case 5:
				ok = e.Reorder(i, rng.Intn(n+1))
			case 6:
				ok = e.AddConnector(i, rng.Intn(n+1), connector.DefaultStyle()) >= 0
			case 7:
				ok = e.DeleteConnector(rng.Intn(e.Store().ConnectorCount() + 1))
			case 8:
				ok = e.SetConnectorProperty(rng.Intn(e.Store().ConnectorCount()+1), diagram.ConnWidth, 2+rng.Float64())
			}
			if ok {
				steps++
			}
		}
		end := snap(e.Store())
		undo, _ := e.Len()

		for n := 0; n < undo; n++ {
			require.True(t, e.Undo())
		}
		require.Equal(t, start, snap(e.Store()), "round %d undo", round)
		for n := 0; n < undo; n++ {
			require.True(t, e.Redo())
		}
		require.Equal(t, end, snap(e.Store()), "round %d redo", round)
	}
}
