// Package randompkg provides functionality for generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	digits   = "0123456789"
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// IntBetween generates a random integer in [min, max].
func IntBetween(min, max int) int {
	return min + int(Intn(max-min+1))
}

func fromAlphabet(a string, n int) string {
	var sb strings.Builder

	k := len(a)

	for i := 0; i < n; i++ {
		c := a[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// String generates a random string of length n.
func String(n int) string {
	return fromAlphabet(alphabet, n)
}

// Owner generates a random owner name.
func Owner() string {
	return String(6)
}

// AccountNumber generates a random ten digit account number.
func AccountNumber() string {
	return fromAlphabet(digits, 10)
}

// MoneyAmountBetween generates a random amount of money in [min, max] with cent precision.
func MoneyAmountBetween(min, max int64) decimal.Decimal {
	cents := min*100 + Intn(int((max-min)*100+1))
	return decimal.New(cents, -2)
}
