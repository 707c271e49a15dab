// Package render projects labeled numbers onto page templates. It produces
// per-element records (text, font, color, position) in physical units and
// leaves painting to the output backend.
package render

import "math"

// DefaultScale converts template pixels to millimetres on an A4 page
// (2380 × 3368 px ↔ 210 × 297 mm).
const DefaultScale = 0.0882

// Point is a position in template or page space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt builds a Point from a two-element template position.
func Pt(xy [2]float64) Point {
	return Point{X: xy[0], Y: xy[1]}
}

// Add returns p shifted by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// CirclePoint is the point at angleDeg degrees on the circle of the given
// radius around center. Angles grow clockwise in image space (y down).
func CirclePoint(center Point, radius, angleDeg float64) Point {
	rad := angleDeg * math.Pi / 180
	return Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// GridColumns is the width of the Pythagorean table.
const GridColumns = 3

// GridPoint is the position of cell i in a row-major grid of GridColumns
// columns whose first cell sits at anchor.
func GridPoint(anchor Point, side float64, i int) Point {
	return Point{
		X: anchor.X + side*float64(i%GridColumns),
		Y: anchor.Y + side*float64(i/GridColumns),
	}
}

// Scale multiplies both coordinates by factor.
func Scale(p Point, factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// ScaleFont scales a font size, truncating toward zero.
func ScaleFont(size, factor float64) int {
	return int(size * factor)
}
