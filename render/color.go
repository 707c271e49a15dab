package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/teranos/arcana/errors"
)

// Color is a template color in both notations the backend may want.
type Color struct {
	Hex string   `json:"hex" yaml:"hex"`
	RGB [3]uint8 `json:"rgb" yaml:"rgb"`
}

// ParseColor converts a "#rrggbb" (or "#rgb") string.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, errors.Wrapf(errors.Mark(err, errors.ErrInvalidArgument), "invalid color %q", hex)
	}
	r, g, b := c.RGB255()
	return Color{Hex: hex, RGB: [3]uint8{r, g, b}}, nil
}
