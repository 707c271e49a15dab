package arcane

// MaxArcana is the inclusive ceiling for the major arcana scale.
const MaxArcana = 22

// FooterCeiling is the inclusive ceiling used by FooterStar and the
// Pythagorean table.
const FooterCeiling = 9

// DigitSum returns the sum of the decimal digits of n in a single pass.
// Negative numbers are summed by absolute value.
func DigitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// Reduce replaces n by its digit sum while n is above ceiling.
// The ceiling is inclusive: Reduce(22, 22) == 22, Reduce(23, 22) == 5.
// A single digit is its own digit sum, so reduction stops there even when
// the ceiling is lower: Reduce(5, 3) == 5.
func Reduce(n, ceiling int) int {
	for n > ceiling && n > 9 {
		n = DigitSum(n)
	}
	return n
}

// ReduceArcana reduces n onto the major arcana scale.
func ReduceArcana(n int) int {
	return Reduce(n, MaxArcana)
}
