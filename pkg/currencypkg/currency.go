// Package currencypkg provides common money text handling for the terminal.
package currencypkg

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the only currency the terminal deals in.
const Symbol = "$"

// Places is the number of decimal places money is kept and shown with.
const Places = 2

// ErrNotANumber indicates that the text is not a decimal number.
var ErrNotANumber = errors.New("not a number")

// Format renders amount as "12.30".
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(Places)
}

// FormatWithSymbol renders amount as "$12.30".
func FormatWithSymbol(amount decimal.Decimal) string {
	return Symbol + Format(amount)
}

// Parse reads a user or file supplied amount, tolerating surrounding spaces
// and a leading currency symbol.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, Symbol))

	if s == "" {
		return decimal.Zero, ErrNotANumber
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}

	return d, nil
}

// WholeCents reports whether amount fits the kept number of places exactly.
func WholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(Places))
}
