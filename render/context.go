package render

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/dial"
	"github.com/teranos/arcana/errors"
	"github.com/teranos/arcana/template"
)

// Font is a scaled typeface reference.
type Font struct {
	Name string `json:"name" yaml:"name"`
	Size int    `json:"size" yaml:"size"`
}

// Element is one record handed to the painting backend.
type Element struct {
	Text     string `json:"text" yaml:"text"`
	Font     Font   `json:"font" yaml:"font"`
	Color    Color  `json:"color" yaml:"color"`
	Position Point  `json:"position" yaml:"position"`
}

// Context maps element keys to render records in paint order.
type Context = orderedmap.OrderedMap[string, Element]

// NewContext returns an empty Context.
func NewContext() *Context {
	return orderedmap.New[string, Element]()
}

// Merge appends every record of srcs to dst; later records win.
func Merge(dst *Context, srcs ...*Context) *Context {
	for _, src := range srcs {
		if src == nil {
			continue
		}
		for pair := src.Oldest(); pair != nil; pair = pair.Next() {
			dst.Set(pair.Key, pair.Value)
		}
	}
	return dst
}

type style struct {
	font  Font
	color Color
}

func newStyle(f template.Font, hex string, scale float64) (style, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return style{}, err
	}
	return style{
		font:  Font{Name: f.Name, Size: ScaleFont(f.Size, scale)},
		color: c,
	}, nil
}

// BuildRenderContext places labels on a fixed layout. Labels with no element
// and elements with no label are skipped; templates usually declare more
// slots than one page fills. Records follow element declaration order, so a
// later element paints over an earlier one.
func BuildRenderContext(elements *template.Elements, labels *arcane.Labels, scale float64) (*Context, error) {
	ctx := NewContext()
	for pair := elements.Oldest(); pair != nil; pair = pair.Next() {
		text, ok := labels.Get(pair.Key)
		if !ok {
			continue
		}
		el := pair.Value
		s, err := newStyle(el.Font, el.Color, scale)
		if err != nil {
			return nil, errors.Wrapf(err, "element %s", pair.Key)
		}
		ctx.Set(pair.Key, Element{
			Text:     text,
			Font:     s.font,
			Color:    s.color,
			Position: Scale(Pt(el.Position), scale),
		})
	}
	return ctx, nil
}

// BuildDialContext places labels around the dial. Every entry, main or
// inner, takes the next angular step; "main_" entries go on the outer ring.
func BuildDialContext(layout template.DialLayout, labels *arcane.Labels, scale float64) (*Context, error) {
	mainStyle, err := newStyle(layout.Fonts[template.MainDial], layout.Colors[template.MainDial], scale)
	if err != nil {
		return nil, errors.Wrap(err, "main dial style")
	}
	innerStyle, err := newStyle(layout.Fonts[template.InnerDial], layout.Colors[template.InnerDial], scale)
	if err != nil {
		return nil, errors.Wrap(err, "inner dial style")
	}

	geo := layout.Geometry
	center := Pt(geo.Center)
	ctx := NewContext()
	i := 0
	for pair := labels.Oldest(); pair != nil; pair = pair.Next() {
		s, radius := innerStyle, geo.InnerDial.Radius
		if strings.HasPrefix(pair.Key, dial.MainPrefix) {
			s, radius = mainStyle, geo.MainDial.Radius
		}
		angle := geo.StartAngle + float64(i)*geo.AngleStep
		ctx.Set(pair.Key, Element{
			Text:     pair.Value,
			Font:     s.font,
			Color:    s.color,
			Position: Scale(CirclePoint(center, radius, angle), scale),
		})
		i++
	}
	return ctx, nil
}

// BuildGridContext fills the Pythagorean grid row by row. The first cell
// is centred half a square in from initial_point.
func BuildGridContext(layout template.GridLayout, labels *arcane.Labels, scale float64) (*Context, error) {
	s, err := newStyle(layout.Fonts[template.Pythagorian], layout.Colors[template.Pythagorian], scale)
	if err != nil {
		return nil, errors.Wrap(err, "grid style")
	}

	side := layout.Geometry.Square
	anchor := Pt(layout.Geometry.InitialPoint).Add(Point{X: side / 2, Y: side / 2})
	ctx := NewContext()
	i := 0
	for pair := labels.Oldest(); pair != nil; pair = pair.Next() {
		ctx.Set(pair.Key, Element{
			Text:     pair.Value,
			Font:     s.font,
			Color:    s.color,
			Position: Scale(GridPoint(anchor, side, i), scale),
		})
		i++
	}
	return ctx, nil
}
