package arcane

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPythagorianTable(t *testing.T) {
	tests := []struct {
		name   string
		c      Client
		want   [5]int
		digits string
	}{
		{"before 2000", client("Anna", 1990, time.May, 15), [5]int{30, 3, 28, 1, 0}, "3032810"},
		{"after 2000", client("Ivan", 2019, time.February, 6), [5]int{20, 2, 19, 39, 3}, "20219393"},
		{"master 11", client("Lena", 2000, time.February, 7), [5]int{11, 11, 19, 30, 3}, "111119303"},
		{"master 22", client("Oleg", 1990, time.January, 2), [5]int{22, 22, 18, 9, 0}, "22221890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewPythagorianTable(tt.c)
			assert.Equal(t, tt.want, table.Numbers())
			assert.Equal(t, tt.digits, table.Digits())
		})
	}
}

func TestPythagorianTableEras(t *testing.T) {
	start := time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day := start; day.Year() < 2050; day = day.AddDate(0, 0, 11) {
		table := NewPythagorianTable(NewClient("X", day, GenderMale))
		if day.Year() >= 2000 {
			assert.Equal(t, 19, table.Number3, "%s", day)
		} else {
			assert.Equal(t, 0, table.Number5, "%s", day)
		}
	}
}

func TestPythagorianTableLabels(t *testing.T) {
	l := NewPythagorianTable(client("Anna", 1990, time.May, 15)).Labels()

	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, LabelKeys(l))
	assert.Equal(t, map[string]string{
		"1": "1",
		"2": "2",
		"3": "33",
		"4": EmptyCell,
		"5": EmptyCell,
		"6": EmptyCell,
		"7": EmptyCell,
		"8": "8",
		"9": EmptyCell,
	}, labelMap(l))

	l = NewPythagorianTable(client("Ivan", 2019, time.February, 6)).Labels()
	assert.Equal(t, "99", l.Value("9"))
	assert.Equal(t, "22", l.Value("2"))
}
