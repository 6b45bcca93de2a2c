package service

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// formatMoney renders an amount the way the storefront displays prices:
// "$1,234.50".
func formatMoney(v float64) string {
	v = roundCents(v)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + moneyPrinter.Sprint(number.Decimal(v, number.Scale(2)))
}

// roundCents rounds v to two decimals.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
