package template

import (
	"sort"

	"github.com/go-viper/mapstructure/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/teranos/arcana/errors"
)

// Font names a typeface and its size in template pixels.
type Font struct {
	Name string  `mapstructure:"name" json:"name" yaml:"name"`
	Size float64 `mapstructure:"size" json:"size" yaml:"size"`
}

// Element is one fixed-layout slot: a label is printed with this font and
// color at Position (template pixels).
type Element struct {
	Font     Font       `mapstructure:"font" json:"font" yaml:"font"`
	Color    string     `mapstructure:"color" json:"color" yaml:"color"`
	Position [2]float64 `mapstructure:"position" json:"position" yaml:"position"`
}

// Style keys used by computed layouts.
const (
	MainDial    = "main_dial"
	InnerDial   = "inner_dial"
	Pythagorian = "pythagorian"
)

// Ring is one circle of the dial.
type Ring struct {
	Radius float64 `mapstructure:"radius" json:"radius" yaml:"radius"`
}

// DialGeometry places entries on two concentric rings. Entry i sits at
// StartAngle + i*AngleStep degrees.
type DialGeometry struct {
	Center     [2]float64 `mapstructure:"center" json:"center" yaml:"center"`
	MainDial   Ring       `mapstructure:"main_dial" json:"main_dial" yaml:"main_dial"`
	InnerDial  Ring       `mapstructure:"inner_dial" json:"inner_dial" yaml:"inner_dial"`
	StartAngle float64    `mapstructure:"start_angle" json:"start_angle" yaml:"start_angle"`
	AngleStep  float64    `mapstructure:"angle_step" json:"angle_step" yaml:"angle_step"`
}

// DialLayout is the computed layout of the predict dial.
type DialLayout struct {
	Fonts    map[string]Font   `mapstructure:"fonts" json:"fonts" yaml:"fonts"`
	Colors   map[string]string `mapstructure:"colors" json:"colors" yaml:"colors"`
	Geometry DialGeometry      `mapstructure:"geometry" json:"geometry" yaml:"geometry"`
}

// GridGeometry anchors a 3-column grid of square cells.
type GridGeometry struct {
	InitialPoint [2]float64 `mapstructure:"initial_point" json:"initial_point" yaml:"initial_point"`
	Square       float64    `mapstructure:"square" json:"square" yaml:"square"`
}

// GridLayout is the computed layout of the Pythagorean table.
type GridLayout struct {
	Fonts    map[string]Font   `mapstructure:"fonts" json:"fonts" yaml:"fonts"`
	Colors   map[string]string `mapstructure:"colors" json:"colors" yaml:"colors"`
	Geometry GridGeometry      `mapstructure:"geometry" json:"geometry" yaml:"geometry"`
}

// Elements is the decoded elements section, keyed by label.
type Elements = orderedmap.OrderedMap[string, Element]

// Elements decodes the fixed-layout "elements" section in declaration
// order. Keys missing from OrderKey, as when the section came from a $ref,
// follow in sorted order.
func (d Document) Elements() (*Elements, error) {
	raw, err := d.section(ElementsKey)
	if err != nil {
		return nil, err
	}
	var byKey map[string]Element
	if err := decode(raw, &byKey); err != nil {
		return nil, errors.Wrap(err, "failed to decode elements")
	}

	out := orderedmap.New[string, Element]()
	if order, ok := d[OrderKey].([]any); ok {
		for _, k := range order {
			key, _ := k.(string)
			if el, ok := byKey[key]; ok {
				out.Set(key, el)
				delete(byKey, key)
			}
		}
	}
	rest := make([]string, 0, len(byKey))
	for key := range byKey {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	for _, key := range rest {
		out.Set(key, byKey[key])
	}
	return out, nil
}

// DialLayout decodes fonts, colors and geometry of a dial document.
func (d Document) DialLayout() (DialLayout, error) {
	var out DialLayout
	if err := d.computed(&out); err != nil {
		return DialLayout{}, err
	}
	if err := requireStyles(out.Fonts, out.Colors, MainDial, InnerDial); err != nil {
		return DialLayout{}, err
	}
	return out, nil
}

// GridLayout decodes fonts, colors and geometry of a grid document.
func (d Document) GridLayout() (GridLayout, error) {
	var out GridLayout
	if err := d.computed(&out); err != nil {
		return GridLayout{}, err
	}
	if err := requireStyles(out.Fonts, out.Colors, Pythagorian); err != nil {
		return GridLayout{}, err
	}
	if out.Geometry.Square <= 0 {
		return GridLayout{}, errors.NewInvalidArgumentError("geometry.square must be positive, got %v", out.Geometry.Square)
	}
	return out, nil
}

func (d Document) computed(out any) error {
	for _, key := range []string{"fonts", "colors", "geometry"} {
		if _, err := d.section(key); err != nil {
			return err
		}
	}
	if err := decode(map[string]any(d), out); err != nil {
		return errors.Wrap(err, "failed to decode layout")
	}
	return nil
}

func (d Document) section(key string) (any, error) {
	raw, ok := d[key]
	if !ok || raw == nil {
		return nil, errors.WithHintf(
			errors.NewNotFoundError("layout has no %q section", key),
			"computed layouts need fonts, colors and geometry; fixed layouts need elements",
		)
	}
	return raw, nil
}

func requireStyles(fonts map[string]Font, colors map[string]string, keys ...string) error {
	for _, k := range keys {
		if _, ok := fonts[k]; !ok {
			return errors.NewNotFoundError("layout has no font %q", k)
		}
		if _, ok := colors[k]; !ok {
			return errors.NewNotFoundError("layout has no color %q", k)
		}
	}
	return nil
}

func decode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
