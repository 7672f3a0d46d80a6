package shape

import (
	"errors"
	"fmt"
	"image/color"

	"flowdraw/internal/geom"
)

var (
	ErrUnknownKind  = errors.New("unknown shape kind")
	ErrMissingField = errors.New("missing required field")
	ErrBadColor     = errors.New("malformed colour")
	ErrBadBounds    = errors.New("non-positive shape size")
	ErrBadNumber    = errors.New("non-finite number")
)

// Record is the serialized form of a shape. Required fields are pointers so a
// missing field can be told apart from a zero value.
type Record struct {
	Type *string  `json:"type" msgpack:"type"`
	X    *float64 `json:"x" msgpack:"x"`
	Y    *float64 `json:"y" msgpack:"y"`
	W    *float64 `json:"w" msgpack:"w"`
	H    *float64 `json:"h" msgpack:"h"`

	Fill      string  `json:"fill,omitempty" msgpack:"fill,omitempty"`
	Stroke    string  `json:"stroke,omitempty" msgpack:"stroke,omitempty"`
	Width     float64 `json:"width,omitempty" msgpack:"width,omitempty"`
	Text      string  `json:"text,omitempty" msgpack:"text,omitempty"`
	TextColor string  `json:"textColor,omitempty" msgpack:"textColor,omitempty"`
	TextSize  int     `json:"textSize,omitempty" msgpack:"textSize,omitempty"`

	CornerRadius *float64 `json:"cornerRadius,omitempty" msgpack:"cornerRadius,omitempty"`
	StartAngle   *float64 `json:"startAngle,omitempty" msgpack:"startAngle,omitempty"`
	SpanAngle    *float64 `json:"spanAngle,omitempty" msgpack:"spanAngle,omitempty"`
	Thickness    *float64 `json:"thickness,omitempty" msgpack:"thickness,omitempty"`
}

// ToRecord captures every attribute of s, kind parameters only for the kinds
// that use them.
func (s *Shape) ToRecord() Record {
	kind := s.Kind.String()
	x, y, w, h := s.Bounds.X, s.Bounds.Y, s.Bounds.W, s.Bounds.H
	r := Record{
		Type:      &kind,
		X:         &x,
		Y:         &y,
		W:         &w,
		H:         &h,
		Fill:      FormatColor(s.FillColor),
		Stroke:    FormatColor(s.StrokeColor),
		Width:     s.StrokeWidth,
		Text:      s.Text,
		TextColor: FormatColor(s.TextColor),
		TextSize:  s.TextSize,
	}
	switch s.Kind {
	case RoundedRect:
		cr := s.CornerRadius
		r.CornerRadius = &cr
	case Arc:
		th := s.Thickness
		r.Thickness = &th
		fallthrough
	case Sector:
		start, span := s.StartAngle, s.SpanAngle
		r.StartAngle, r.SpanAngle = &start, &span
	}
	return r
}

// FromRecord rebuilds a shape. Optional fields left out of the record take
// their defaults.
func FromRecord(r Record) (Shape, error) {
	if r.Type == nil {
		return Shape{}, fmt.Errorf("%w: type", ErrMissingField)
	}
	k, err := ParseKind(*r.Type)
	if err != nil {
		return Shape{}, err
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{{"x", r.X}, {"y", r.Y}, {"w", r.W}, {"h", r.H}} {
		if f.v == nil {
			return Shape{}, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if !geom.Finite(*r.X, *r.Y, *r.W, *r.H) {
		return Shape{}, fmt.Errorf("%w: bounds", ErrBadNumber)
	}
	if !(*r.W > 0) || !(*r.H > 0) {
		return Shape{}, fmt.Errorf("%w: %gx%g", ErrBadBounds, *r.W, *r.H)
	}

	s := New(k, geom.Rect{X: *r.X, Y: *r.Y, W: *r.W, H: *r.H})
	for _, c := range []struct {
		src string
		dst *color.NRGBA
	}{
		{r.Fill, &s.FillColor},
		{r.Stroke, &s.StrokeColor},
		{r.TextColor, &s.TextColor},
	} {
		if c.src == "" {
			continue
		}
		v, err := ParseColor(c.src)
		if err != nil {
			return Shape{}, err
		}
		*c.dst = v
	}
	if r.Width > 0 && geom.Finite(r.Width) {
		s.StrokeWidth = r.Width
	}
	s.Text = r.Text
	if r.TextSize > 0 {
		s.TextSize = r.TextSize
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{{"cornerRadius", r.CornerRadius}, {"startAngle", r.StartAngle}, {"spanAngle", r.SpanAngle}, {"thickness", r.Thickness}} {
		if f.v != nil && !geom.Finite(*f.v) {
			return Shape{}, fmt.Errorf("%w: %s", ErrBadNumber, f.name)
		}
	}
	if r.CornerRadius != nil {
		s.CornerRadius = *r.CornerRadius
	}
	if r.StartAngle != nil {
		s.StartAngle = *r.StartAngle
	}
	if r.SpanAngle != nil {
		s.SpanAngle = *r.SpanAngle
	}
	if r.Thickness != nil {
		s.Thickness = *r.Thickness
	}
	return s, nil
}
