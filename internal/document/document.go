// Package document converts a diagram to and from its saved form.
//
// Shapes are written in z-order and connectors refer to them by position in
// that list, so a document carries no store-internal IDs.
package document

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"flowdraw/internal/connector"
	"flowdraw/internal/diagram"
	"flowdraw/internal/logging"
	"flowdraw/internal/shape"
)

// Version is the format revision written by this package.
const Version = 1

// Page is the saved form of the page attributes.
type Page struct {
	Width      float64 `json:"width" msgpack:"width"`
	Height     float64 `json:"height" msgpack:"height"`
	Background string  `json:"background" msgpack:"background"`
	ShowGrid   bool    `json:"showGrid" msgpack:"showGrid"`
	GridStep   float64 `json:"gridStep" msgpack:"gridStep"`
}

// Connector is the saved form of a connector. Src and Dst index Shapes.
type Connector struct {
	Src           int     `json:"src" msgpack:"src"`
	Dst           int     `json:"dst" msgpack:"dst"`
	Color         string  `json:"color,omitempty" msgpack:"color,omitempty"`
	Width         float64 `json:"width,omitempty" msgpack:"width,omitempty"`
	Bidirectional bool    `json:"bidirectional,omitempty" msgpack:"bidirectional,omitempty"`
}

// Document is a complete saved diagram.
type Document struct {
	Version    int            `json:"version" msgpack:"version"`
	ID         string         `json:"id,omitempty" msgpack:"id,omitempty"`
	Page       *Page          `json:"page,omitempty" msgpack:"page,omitempty"`
	Shapes     []shape.Record `json:"shapes" msgpack:"shapes"`
	Connectors []Connector    `json:"connectors" msgpack:"connectors"`
}

// Options controls how a document is applied to a store.
type Options struct {
	// SkipInvalid drops bad records, and connectors touching dropped
	// shapes, instead of rejecting the whole document.
	SkipInvalid bool
}

// FromStore captures the current diagram.
func FromStore(s *diagram.Store) *Document {
	p := s.Page()
	d := &Document{
		Version: Version,
		ID:      s.ID(),
		Page: &Page{
			Width:      p.Width,
			Height:     p.Height,
			Background: shape.FormatColor(p.Background),
			ShowGrid:   p.ShowGrid,
			GridStep:   p.GridStep,
		},
		Shapes:     make([]shape.Record, 0, s.ShapeCount()),
		Connectors: make([]Connector, 0, s.ConnectorCount()),
	}
	for _, sh := range s.Shapes() {
		d.Shapes = append(d.Shapes, sh.ToRecord())
	}
	for i := 0; i < s.ConnectorCount(); i++ {
		src, dst, _ := s.ConnectorEnds(i)
		c, _ := s.ConnectorAt(i)
		d.Connectors = append(d.Connectors, Connector{
			Src:           src,
			Dst:           dst,
			Color:         shape.FormatColor(c.Style.Color),
			Width:         c.Style.Width,
			Bidirectional: c.Style.Bidirectional,
		})
	}
	return d
}

type link struct {
	src, dst int
	style    connector.Style
}

// Apply replaces the contents of s with the document. Without
// Options.SkipInvalid any bad record rejects the document and s is left
// untouched. With it, bad records are dropped and reported together as
// warnings.
func (d *Document) Apply(s *diagram.Store, opts Options) (warnings, err error) {
	if d.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}

	page := diagram.DefaultPage()
	if d.Page != nil {
		page, err = d.Page.decode()
		if err != nil {
			return nil, err
		}
	}

	var bad []error
	reject := func(e *RecordError) error {
		if !opts.SkipInvalid {
			return e
		}
		logging.Logger().Warn("skip record", "section", e.Section, "index", e.Index, "err", e.Err)
		bad = append(bad, e)
		return nil
	}

	// remap[i] is the store index of document shape i, or -1 if skipped.
	remap := make([]int, len(d.Shapes))
	shapes := make([]shape.Shape, 0, len(d.Shapes))
	for i, r := range d.Shapes {
		remap[i] = -1
		sh, err := shape.FromRecord(r)
		if err != nil {
			if err := reject(&RecordError{Section: "shapes", Index: i, Err: err}); err != nil {
				return nil, err
			}
			continue
		}
		remap[i] = len(shapes)
		shapes = append(shapes, sh)
	}

	links := make([]link, 0, len(d.Connectors))
	for i, c := range d.Connectors {
		l, err := c.decode(remap)
		if err != nil {
			if err := reject(&RecordError{Section: "connectors", Index: i, Err: err}); err != nil {
				return nil, err
			}
			continue
		}
		links = append(links, l)
	}

	s.Reset()
	if d.ID != "" {
		if _, perr := uuid.Parse(d.ID); perr == nil {
			s.SetID(d.ID)
		} else {
			logging.Logger().Warn("ignore malformed document id", "id", d.ID)
		}
	}
	s.SetPage(page)
	for _, sh := range shapes {
		s.AddShape(sh)
	}
	for _, l := range links {
		s.AddConnector(l.src, l.dst, l.style)
	}
	logging.Logger().Info("document applied", "id", s.ID(), "shapes", len(shapes), "connectors", len(links), "skipped", len(bad))
	return errors.Join(bad...), nil
}

func (p *Page) decode() (diagram.Page, error) {
	out := diagram.Page{
		Width:    p.Width,
		Height:   p.Height,
		ShowGrid: p.ShowGrid,
		GridStep: p.GridStep,
	}
	out.Background = diagram.DefaultPage().Background
	if p.Background != "" {
		c, err := shape.ParseColor(p.Background)
		if err != nil {
			return diagram.Page{}, fmt.Errorf("page background: %w", err)
		}
		out.Background = c
	}
	if !out.Valid() {
		return diagram.Page{}, fmt.Errorf("%w: %gx%g step %g", ErrBadPage, p.Width, p.Height, p.GridStep)
	}
	return out, nil
}

func (c Connector) decode(remap []int) (link, error) {
	if c.Src < 0 || c.Src >= len(remap) || c.Dst < 0 || c.Dst >= len(remap) || c.Src == c.Dst {
		return link{}, fmt.Errorf("%w: %d -> %d", ErrBadConnector, c.Src, c.Dst)
	}
	src, dst := remap[c.Src], remap[c.Dst]
	if src < 0 || dst < 0 {
		return link{}, fmt.Errorf("%w: endpoint shape was skipped", ErrBadConnector)
	}
	style := connector.DefaultStyle()
	if c.Color != "" {
		col, err := shape.ParseColor(c.Color)
		if err != nil {
			return link{}, err
		}
		style.Color = col
	}
	if c.Width > 0 {
		style.Width = c.Width
	}
	style.Bidirectional = c.Bidirectional
	return link{src: src, dst: dst, style: style}, nil
}
