package arcane

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/arcana/errors"
)

func TestTriangle(t *testing.T) {
	g := NewGraph(client("Anna", 1990, time.May, 15))

	tests := []struct {
		pointer Pointer
		want    Triangle
	}{
		{Personality, Triangle{
			Pointer: Personality, Vertex: 15, LeftVertex: 21, RightVertex: 20,
			InvertedVertex: 5, InvertedLeftVertex: 9, InvertedRightVertex: 8,
			LeftMiddleVertex: 17, RightMiddleVertex: 20,
		}},
		{Money, Triangle{
			Pointer: Money, Vertex: 19, LeftVertex: 6, RightVertex: 4,
			InvertedVertex: 10, InvertedLeftVertex: 7, InvertedRightVertex: 5,
			LeftMiddleVertex: 12, RightMiddleVertex: 11,
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.pointer), func(t *testing.T) {
			got, err := g.Triangle(tt.pointer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTriangleSides(t *testing.T) {
	main := starOf([5]int{1, 2, 3, 4, 5})
	e := ErrorStar{values: [5]int{10, 20, 30, 40, 50}}

	want := map[Pointer][3]int{
		Personality:  {1, 50, 10},
		Spirituality: {2, 10, 20},
		Money:        {3, 20, 30},
		Relationship: {4, 30, 40},
		Health:       {5, 40, 50},
	}
	for p, sides := range want {
		tr := MustTriangle(main, e, p)
		assert.Equal(t, sides, [3]int{tr.Vertex, tr.LeftVertex, tr.RightVertex}, "pointer %s", p)
	}
}

func TestTriangleInvalidPointer(t *testing.T) {
	g := NewGraph(client("Anna", 1990, time.May, 15))

	tr, err := g.Triangle(Pointer("luck"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgumentError(err))
	assert.Equal(t, Triangle{}, tr)

	assert.Panics(t, func() { MustTriangle(g.Main, g.Error, "luck") })

	_, err = g.Triangles([]Pointer{Money, "luck"})
	assert.True(t, errors.IsInvalidArgumentError(err))
}

func TestTriangleLabelsRoundTrip(t *testing.T) {
	g := NewGraph(client("Anna", 1990, time.May, 15))

	for _, p := range Pointers {
		tr := MustTriangle(g.Main, g.Error, p)
		l := tr.Labels()
		require.Equal(t, 8, l.Len())

		left, err := strconv.Atoi(l.Value("left_vertex"))
		require.NoError(t, err)
		right, err := strconv.Atoi(l.Value("right_vertex"))
		require.NoError(t, err)

		assert.Equal(t, strconv.Itoa(ReduceArcana(left+right)), l.Value("inverted_vertex"), "pointer %s", p)
	}
}

func TestTriangleInvertedLabels(t *testing.T) {
	g := NewGraph(client("Anna", 1990, time.May, 15))
	tr := MustTriangle(g.Main, g.Error, Money)

	assert.Equal(t, []string{"money_inverted_vertex", "money_inverted_left_vertex", "money_inverted_right_vertex"}, LabelKeys(tr.InvertedLabels()))
	assert.Equal(t, []string{"money_inverted_left_vertex", "money_inverted_right_vertex"}, LabelKeys(tr.PredictedLabels()))
	assert.Equal(t, "10", tr.InvertedLabels().Value("money_inverted_vertex"))
}

func TestFullStar(t *testing.T) {
	g := NewGraph(client("Anna", 1990, time.May, 15))

	l, err := g.FullStar(Pointers)
	require.NoError(t, err)
	assert.Equal(t, 34, l.Len())

	keys := LabelKeys(l)
	assert.Equal(t, "header_text", keys[0])
	assert.Equal(t, "mission", keys[6])
	assert.Equal(t, "health_inverted_right_vertex", keys[len(keys)-1])
	assert.Equal(t, "9", l.Value("mission_full"))
	assert.Equal(t, "1", l.Value("foot_money"))

	_, err = g.FullStar([]Pointer{"luck"})
	assert.Error(t, err)
}

func TestStarLabels(t *testing.T) {
	g := NewGraph(client("Anna", 1990, time.May, 15))
	l := g.StarLabels()

	assert.Equal(t, 10, l.Len())
	_, ok := l.Get("header_text")
	assert.False(t, ok)
}
