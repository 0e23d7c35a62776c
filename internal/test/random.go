// Package test provides shared test helpers.
package test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-atm/internal/domain"
	"github.com/go-petr/pet-atm/pkg/randompkg"
)

// RandomTransactions returns n consistent transactions, oldest first, starting
// from a zero balance. Withdrawals never exceed the running balance.
func RandomTransactions(n int) []domain.Transaction {
	txs := make([]domain.Transaction, 0, n)

	balance := decimal.Zero
	start := time.Date(2024, time.January, 2, 12, 0, 0, 0, time.Local)

	for i := 0; i < n; i++ {
		kind := domain.KindDeposit
		amount := randompkg.MoneyAmountBetween(1, 1000)

		if i%3 == 2 && balance.GreaterThan(decimal.Zero) {
			kind = domain.KindWithdraw
			amount = decimal.Min(amount, balance)
			balance = balance.Sub(amount)
		} else {
			balance = balance.Add(amount)
		}

		txs = append(txs, domain.Transaction{
			Kind:         kind,
			Amount:       amount,
			BalanceAfter: balance,
			CreatedAt:    start.Add(time.Duration(i) * time.Minute),
		})
	}

	return txs
}
