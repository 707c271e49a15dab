package arcane

import "github.com/teranos/arcana/errors"

// triangleSides maps a pointer to the ErrorStar attributes on its left and
// right: each vertex sits between the error of its predecessor and its own.
var triangleSides = map[Pointer][2]Pointer{
	Personality:  {Health, Personality},
	Spirituality: {Personality, Spirituality},
	Money:        {Spirituality, Money},
	Relationship: {Money, Relationship},
	Health:       {Relationship, Health},
}

// Triangle is the eight-vertex figure built around one primary arcanum.
type Triangle struct {
	Pointer Pointer

	Vertex      int
	LeftVertex  int
	RightVertex int

	InvertedVertex      int
	InvertedLeftVertex  int
	InvertedRightVertex int
	LeftMiddleVertex    int
	RightMiddleVertex   int
}

// NewTriangle resolves the triangle for pointer. An unknown pointer fails with
// an ErrInvalidArgument error before any vertex is computed.
func NewTriangle(s MainStar, e ErrorStar, pointer Pointer) (Triangle, error) {
	sides, ok := triangleSides[pointer]
	if !ok {
		return Triangle{}, errors.NewInvalidArgumentError("invalid triangle pointer %q", pointer)
	}

	t := Triangle{
		Pointer:     pointer,
		Vertex:      s.Get(pointer),
		LeftVertex:  e.Get(sides[0]),
		RightVertex: e.Get(sides[1]),
	}
	t.InvertedVertex = ReduceArcana(t.LeftVertex + t.RightVertex)
	t.InvertedLeftVertex = ReduceArcana(t.LeftVertex + t.Vertex)
	t.InvertedRightVertex = ReduceArcana(t.RightVertex + t.Vertex)
	t.RightMiddleVertex = ReduceArcana(t.Vertex + t.InvertedVertex)
	t.LeftMiddleVertex = ReduceArcana(t.InvertedLeftVertex + t.InvertedRightVertex)
	return t, nil
}

// MustTriangle is NewTriangle for pointers known at compile time.
// It panics on an invalid pointer.
func MustTriangle(s MainStar, e ErrorStar, pointer Pointer) Triangle {
	t, err := NewTriangle(s, e, pointer)
	if err != nil {
		panic(err)
	}
	return t
}

// Labels flattens all eight vertices for the triangle page.
func (t Triangle) Labels() *Labels {
	l := NewLabels()
	setInt(l, "vertex", t.Vertex)
	setInt(l, "left_vertex", t.LeftVertex)
	setInt(l, "right_vertex", t.RightVertex)
	setInt(l, "inverted_vertex", t.InvertedVertex)
	setInt(l, "inverted_left_vertex", t.InvertedLeftVertex)
	setInt(l, "inverted_right_vertex", t.InvertedRightVertex)
	setInt(l, "left_middle_vertex", t.LeftMiddleVertex)
	setInt(l, "right_middle_vertex", t.RightMiddleVertex)
	return l
}

// InvertedLabels flattens the inverted vertices prefixed with the pointer,
// e.g. "money_inverted_vertex".
func (t Triangle) InvertedLabels() *Labels {
	pref := string(t.Pointer)
	l := NewLabels()
	setInt(l, pref+"_inverted_vertex", t.InvertedVertex)
	setInt(l, pref+"_inverted_left_vertex", t.InvertedLeftVertex)
	setInt(l, pref+"_inverted_right_vertex", t.InvertedRightVertex)
	return l
}

// PredictedLabels flattens the two side inverted vertices used by the dial.
func (t Triangle) PredictedLabels() *Labels {
	pref := string(t.Pointer)
	l := NewLabels()
	setInt(l, pref+"_inverted_left_vertex", t.InvertedLeftVertex)
	setInt(l, pref+"_inverted_right_vertex", t.InvertedRightVertex)
	return l
}
