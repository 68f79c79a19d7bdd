package utils

// CeilDiv returns the smallest integer >= a/b. b must be positive.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Percent returns v as a percentage of max, or 0 when max is not positive.
func Percent(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return v / max * 100
}
