package test

import (
	"fmt"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
)

type eqDecimalMatcher struct {
	want decimal.Decimal
}

func (e eqDecimalMatcher) Matches(x interface{}) bool {
	got, ok := x.(decimal.Decimal)
	if !ok {
		return false
	}

	return got.Equal(e.want)
}

func (e eqDecimalMatcher) String() string {
	return fmt.Sprintf("is equal to decimal %v", e.want)
}

// EqDecimal matches a decimal.Decimal by value rather than representation.
func EqDecimal(want decimal.Decimal) gomock.Matcher {
	return eqDecimalMatcher{want}
}
