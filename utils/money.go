package utils

import "math"

// Round2 rounds a currency amount to 2 decimal places for storage and display.
// Amounts are carried as float64 internally and only rounded at the edges.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
