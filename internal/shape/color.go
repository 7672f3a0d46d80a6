package shape

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts "#AARRGGBB" and "#RRGGBB". The short form is opaque.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	alpha := uint64(0xff)
	switch len(s) {
	case 9:
		if s[0] != '#' {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		alpha = a
		s = "#" + s[3:]
	case 7:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

// FormatColor renders c as "#AARRGGBB".
func FormatColor(c color.NRGBA) string {
	rgb := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return fmt.Sprintf("#%02x%s", c.A, strings.TrimPrefix(rgb.Hex(), "#"))
}

// Palette is the set of colours cycled through by the colour commands.
var Palette = []color.NRGBA{
	White,
	Black,
	{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
	{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff},
	{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff},
	{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff},
	{R: 0x34, G: 0x98, B: 0xdb, A: 0xff},
	{R: 0x9b, G: 0x59, B: 0xb6, A: 0xff},
	{R: 0x95, G: 0xa5, B: 0xa6, A: 0xff},
}

// NextColor returns the palette entry after c, or the first entry when c is
// not in the palette.
func NextColor(c color.NRGBA) color.NRGBA {
	for i, p := range Palette {
		if p == c {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}

// Blend mixes a toward b in Lab space; t=0 is a, t=1 is b.
func Blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: 0xff}
}
