// Package format renders numbers the way the dashboard displays them.
package format

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var spanish = message.NewPrinter(language.Spanish)

// Number abbreviates large values: >= 1,000,000 as "X.XM", >= 1,000 as
// "X.XK", anything else as the plain number.
func Number(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Percent renders v with two decimals and a percent sign: 12.345 -> "12.35%".
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Fixed2 renders v with two decimals, "0.00" for NaN.
func Fixed2(v float64) string {
	if math.IsNaN(v) {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", v)
}

// Thousands renders v with Spanish digit grouping: 1234567 -> "1.234.567".
func Thousands(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return spanish.Sprintf("%d", int64(v))
	}
	return spanish.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
