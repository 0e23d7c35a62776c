package randompkg

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyAmountBetween(t *testing.T) {
	t.Parallel()

	min, max := decimal.NewFromInt(1), decimal.NewFromInt(3)

	for i := 0; i < 100; i++ {
		got := MoneyAmountBetween(1, 3)

		if got.LessThan(min) || got.GreaterThan(max) {
			t.Fatalf("MoneyAmountBetween(1, 3) = %v, want value in [1, 3]", got)
		}

		if !got.Equal(got.Round(2)) {
			t.Fatalf("MoneyAmountBetween(1, 3) = %v, want at most 2 decimal places", got)
		}
	}
}

func TestIntBetween(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		if got := IntBetween(5, 7); got < 5 || got > 7 {
			t.Fatalf("IntBetween(5, 7) = %d, want value in [5, 7]", got)
		}
	}
}

func TestAccountNumber(t *testing.T) {
	t.Parallel()

	got := AccountNumber()
	if len(got) != 10 {
		t.Fatalf("len(AccountNumber()) = %d, want 10", len(got))
	}
}
