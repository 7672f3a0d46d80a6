package shape

import "fmt"

// Kind is the closed set of shape variants.
type Kind int

const (
	Rect Kind = iota
	Ellipse
	Diamond
	Triangle
	RightTriangle
	Pentagon
	Hexagon
	Octagon
	RoundedRect
	Capsule
	Arc
	Sector

	numKinds
)

// Tags as they appear in saved documents.
var kindNames = [numKinds]string{
	Rect:          "rect",
	Ellipse:       "ellipse",
	Diamond:       "diamond",
	Triangle:      "triangle",
	RightTriangle: "recttriangle",
	Pentagon:      "pentagon",
	Hexagon:       "hexagon",
	Octagon:       "octagon",
	RoundedRect:   "roundedrect",
	Capsule:       "capsule",
	Arc:           "arc",
	Sector:        "sector",
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a document tag back to its kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
