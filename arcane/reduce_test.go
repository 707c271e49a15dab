package arcane

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		n, ceiling, want int
	}{
		{23, 22, 5},
		{1990, 22, 19},
		{21, 22, 21},
		{22, 22, 22},
		{24, 22, 6},
		{99, 22, 18},
		{100, 22, 1},
		{1990, 9, 1},
		{21, 20, 3},
		{0, 22, 0},
		{5, 3, 5},
		{48, 3, 3},
		{99, 1, 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Reduce(tt.n, tt.ceiling), "Reduce(%d, %d)", tt.n, tt.ceiling)
	}
}

func TestReduceProperties(t *testing.T) {
	for c := 1; c <= 30; c++ {
		for n := 0; n <= 5000; n++ {
			r := Reduce(n, c)
			switch {
			case n <= c:
				assert.Equal(t, n, r, "Reduce(%d, %d) must keep values at or below the ceiling", n, c)
			case c >= 9:
				assert.LessOrEqual(t, r, c, "Reduce(%d, %d)", n, c)
			default:
				assert.LessOrEqual(t, r, 9, "Reduce(%d, %d) must stop at a single digit", n, c)
			}
			assert.Equal(t, r, Reduce(r, c), "Reduce(%d, %d) is not idempotent", n, c)
		}
	}
}

func TestDigitSum(t *testing.T) {
	assert.Equal(t, 0, DigitSum(0))
	assert.Equal(t, 6, DigitSum(15))
	assert.Equal(t, 19, DigitSum(1990))
	assert.Equal(t, 2, DigitSum(2000))
	assert.Equal(t, 6, DigitSum(-15))
}

func TestReduceArcana(t *testing.T) {
	assert.Equal(t, 22, ReduceArcana(22))
	assert.Equal(t, 5, ReduceArcana(23))
}
