// Package dial builds the numeric sequences of the "predict" page: the
// 80-entry circular dial and the inner star.
package dial

import (
	"fmt"
	"strconv"

	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/errors"
)

// MainPrefix marks primary dial entries; every other entry is an inner one.
const MainPrefix = "main_"

// Remap is one row of the dial table: a source label and its dial slot.
type Remap struct {
	From string
	To   string
}

// Mapping lists the 20 primary dial slots in clockwise order, starting at
// personality. Each arcanum is flanked by the inverted side vertices of the
// neighbouring triangles and followed by its error arcanum.
var Mapping = []Remap{
	{"personality", "main_1"},
	{"personality_inverted_right_vertex", "main_2"},
	{"err_personality", "main_3"},
	{"spirituality_inverted_left_vertex", "main_4"},
	{"spirituality", "main_5"},
	{"spirituality_inverted_right_vertex", "main_6"},
	{"err_spirituality", "main_7"},
	{"money_inverted_left_vertex", "main_8"},
	{"money", "main_9"},
	{"money_inverted_right_vertex", "main_10"},
	{"err_money", "main_11"},
	{"relationship_inverted_left_vertex", "main_12"},
	{"relationship", "main_13"},
	{"relationship_inverted_right_vertex", "main_14"},
	{"err_relationship", "main_15"},
	{"health_inverted_left_vertex", "main_16"},
	{"health", "main_17"},
	{"health_inverted_right_vertex", "main_18"},
	{"err_health", "main_19"},
	{"personality_inverted_left_vertex", "main_20"},
}

// Select remaps source labels onto the dial slots in Mapping order.
// Source labels that are absent are skipped; a sparse source is not an error.
func Select(source *arcane.Labels) *arcane.Labels {
	out := arcane.NewLabels()
	for _, row := range Mapping {
		if v, ok := source.Get(row.From); ok {
			out.Set(row.To, v)
		}
	}
	return out
}

// CountDialData walks the entries as a circle. For entry i and its successor
// j = (i+1) mod n it emits entry i followed by
//
//	inner_<key>_left   = R(v_i + middle)
//	inner_<key>_middle = R(v_i + v_j)
//	inner_<key>_right  = R(v_j + middle)
//
// so the result holds 4n entries in interleaved order.
func CountDialData(d *arcane.Labels) (*arcane.Labels, error) {
	keys := arcane.LabelKeys(d)
	values := make([]int, len(keys))
	for i, key := range keys {
		v, err := strconv.Atoi(d.Value(key))
		if err != nil {
			return nil, errors.Wrapf(errors.Mark(err, errors.ErrInvalidArgument), "dial entry %s is not a number", key)
		}
		values[i] = v
	}

	full := arcane.NewLabels()
	for i, key := range keys {
		current, next := values[i], values[(i+1)%len(values)]

		middle := arcane.ReduceArcana(current + next)
		left := arcane.ReduceArcana(current + middle)
		right := arcane.ReduceArcana(next + middle)

		full.Set(key, d.Value(key))
		full.Set(innerKey(key, "left"), strconv.Itoa(left))
		full.Set(innerKey(key, "middle"), strconv.Itoa(middle))
		full.Set(innerKey(key, "right"), strconv.Itoa(right))
	}
	return full, nil
}

func innerKey(key, side string) string {
	return fmt.Sprintf("inner_%s_%s", key, side)
}

// InnerStar merges main and error stars (no header) with the predicted side
// vertices (<pointer>_inverted_left_vertex, <pointer>_inverted_right_vertex)
// of every pointer's triangle. It is also the source of the dial.
func InnerStar(g *arcane.Graph, pointers []arcane.Pointer) (*arcane.Labels, error) {
	source := g.StarLabels()
	triangles, err := g.Triangles(pointers)
	if err != nil {
		return nil, err
	}
	for _, t := range triangles {
		arcane.MergeLabels(source, t.PredictedLabels())
	}
	return source, nil
}

// FullDial builds the 80-entry dial for g.
func FullDial(g *arcane.Graph, pointers []arcane.Pointer) (*arcane.Labels, error) {
	source, err := InnerStar(g, pointers)
	if err != nil {
		return nil, err
	}
	return CountDialData(Select(source))
}
