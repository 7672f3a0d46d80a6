package diagram

import (
	"image/color"

	"flowdraw/internal/geom"
	"flowdraw/internal/shape"
)

// Prop names a settable shape attribute. The value passed with it must have
// the listed type.
type Prop int

const (
	PropFill         Prop = iota // color.NRGBA
	PropStroke                   // color.NRGBA
	PropStrokeWidth              // float64, >= 0
	PropText                     // string
	PropTextColor                // color.NRGBA
	PropTextSize                 // int, > 0
	PropWidth                    // float64, > 0
	PropHeight                   // float64, > 0
	PropCornerRadius             // float64, >= 0
	PropStartAngle               // float64
	PropSpanAngle                // float64, (0, 360]
	PropThickness                // float64, > 0
)

var propNames = map[Prop]string{
	PropFill:         "fill",
	PropStroke:       "stroke",
	PropStrokeWidth:  "width",
	PropText:         "text",
	PropTextColor:    "textColor",
	PropTextSize:     "textSize",
	PropWidth:        "w",
	PropHeight:       "h",
	PropCornerRadius: "cornerRadius",
	PropStartAngle:   "startAngle",
	PropSpanAngle:    "spanAngle",
	PropThickness:    "thickness",
}

func (p Prop) String() string {
	if n, ok := propNames[p]; ok {
		return n
	}
	return "unknown"
}

func applyShapeProp(sh *shape.Shape, p Prop, v any) bool {
	switch p {
	case PropFill, PropStroke, PropTextColor:
		c, ok := v.(color.NRGBA)
		if !ok {
			return false
		}
		switch p {
		case PropFill:
			sh.FillColor = c
		case PropStroke:
			sh.StrokeColor = c
		default:
			sh.TextColor = c
		}
	case PropText:
		t, ok := v.(string)
		if !ok {
			return false
		}
		sh.Text = t
	case PropTextSize:
		n, ok := v.(int)
		if !ok || n <= 0 {
			return false
		}
		sh.TextSize = n
	case PropStrokeWidth, PropCornerRadius:
		f, ok := v.(float64)
		if !ok || !geom.Finite(f) || f < 0 {
			return false
		}
		if p == PropStrokeWidth {
			sh.StrokeWidth = f
		} else {
			sh.CornerRadius = f
		}
	case PropWidth, PropHeight, PropThickness:
		f, ok := v.(float64)
		if !ok || !geom.Finite(f) || f <= 0 {
			return false
		}
		switch p {
		case PropWidth:
			sh.Bounds.W = f
		case PropHeight:
			sh.Bounds.H = f
		default:
			sh.Thickness = f
		}
	case PropStartAngle, PropSpanAngle:
		f, ok := v.(float64)
		if !ok || !geom.Finite(f) {
			return false
		}
		// A sweep is more than nothing and at most a full turn.
		if p == PropSpanAngle && (f <= 0 || f > 360) {
			return false
		}
		if p == PropStartAngle {
			sh.StartAngle = f
		} else {
			sh.SpanAngle = f
		}
	default:
		return false
	}
	return true
}

// ConnProp names a settable connector attribute.
type ConnProp int

const (
	ConnColor         ConnProp = iota // color.NRGBA
	ConnWidth                         // float64, > 0
	ConnBidirectional                 // bool
)

func applyConnProp(c *Connector, p ConnProp, v any) bool {
	switch p {
	case ConnColor:
		col, ok := v.(color.NRGBA)
		if !ok {
			return false
		}
		c.Style.Color = col
	case ConnWidth:
		f, ok := v.(float64)
		if !ok || !geom.Finite(f) || f <= 0 {
			return false
		}
		c.Style.Width = f
	case ConnBidirectional:
		b, ok := v.(bool)
		if !ok {
			return false
		}
		c.Style.Bidirectional = b
	default:
		return false
	}
	return true
}
