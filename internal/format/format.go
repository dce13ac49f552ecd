// Package format holds the presentational formatting rules shared by every page.
package format

import (
	"math"
	"strconv"
)

const currencyPrefix = "R$ "

// Currency renders an amount with the "R$ " prefix and exactly two decimals.
func Currency(amount float64) string {
	cents := math.Round(amount * 100)
	if cents == 0 {
		cents = 0 // drop negative zero
	}
	return currencyPrefix + strconv.FormatFloat(cents/100, 'f', 2, 64)
}

// Progress returns 100*current/target clamped to [0, 100].
// A non-positive target yields 0.
func Progress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := 100 * current / target
	switch {
	case p > 100:
		return 100
	case p < 0:
		return 0
	}
	return p
}

// ProgressInt is Progress truncated to a whole percentage.
func ProgressInt(current, target int) int {
	return int(math.Floor(Progress(float64(current), float64(target))))
}

// Percent renders a whole percentage such as "65%".
func Percent(p int) string {
	return strconv.Itoa(p) + "%"
}

// DiscountPercent is the rounded saving of price against originalPrice.
func DiscountPercent(price, originalPrice float64) int {
	if originalPrice <= 0 || price >= originalPrice {
		return 0
	}
	return int(math.Round((originalPrice - price) / originalPrice * 100))
}
