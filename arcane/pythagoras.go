package arcane

import (
	"strconv"
	"strings"
)

// EmptyCell marks a digit that never occurs in the Pythagorean square.
const EmptyCell = "—"

// masterNumbers are kept unreduced in the second working number.
var masterNumbers = map[int]bool{11: true, 22: true, 33: true}

// millennium splits the two formula eras of the working numbers.
const millennium = 2000

// PythagorianTable holds the five working numbers of the Pythagorean square.
type PythagorianTable struct {
	Number1 int
	Number2 int
	Number3 int
	Number4 int
	Number5 int
}

// NewPythagorianTable derives the working numbers from the birthday.
func NewPythagorianTable(c Client) PythagorianTable {
	day, month, year := c.Birthday.Day(), int(c.Birthday.Month()), c.Birthday.Year()

	var t PythagorianTable
	t.Number1 = DigitSum(day) + DigitSum(month) + DigitSum(year)

	if masterNumbers[t.Number1] {
		t.Number2 = t.Number1
	} else {
		t.Number2 = Reduce(t.Number1, FooterCeiling)
	}

	if year < millennium {
		t.Number3 = t.Number1 - 2*firstDigit(day)
		t.Number4 = Reduce(t.Number3, FooterCeiling)
		t.Number5 = 0
	} else {
		t.Number3 = 19
		t.Number4 = t.Number1 + 19
		t.Number5 = Reduce(t.Number4, FooterCeiling)
	}
	return t
}

// Numbers returns the five working numbers in order.
func (t PythagorianTable) Numbers() [5]int {
	return [5]int{t.Number1, t.Number2, t.Number3, t.Number4, t.Number5}
}

// Digits concatenates the decimal forms of the working numbers.
func (t PythagorianTable) Digits() string {
	var b strings.Builder
	for _, n := range t.Numbers() {
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// Labels maps "1".."9" to the digit repeated once per occurrence, or
// EmptyCell when the digit is absent. Keys are in digit order.
func (t PythagorianTable) Labels() *Labels {
	digits := t.Digits()
	l := NewLabels()
	for d := 1; d <= 9; d++ {
		key := strconv.Itoa(d)
		if count := strings.Count(digits, key); count > 0 {
			l.Set(key, strings.Repeat(key, count))
		} else {
			l.Set(key, EmptyCell)
		}
	}
	return l
}

func firstDigit(n int) int {
	for n >= 10 {
		n /= 10
	}
	return n
}
