// Package domain provides definitions of all entities.
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates a zero or negative amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrFractionalCent indicates an amount with more than two decimal places.
	ErrFractionalCent = errors.New("amount has fractions of a cent")
	// ErrInsufficientFunds indicates that the account balance is lower than the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrMalformedBalance indicates that the stored balance cannot be read back.
	ErrMalformedBalance = errors.New("malformed balance")
)

// Account holds the session's account data. ID and Holder are taken as typed.
type Account struct {
	ID      string
	Holder  string
	Balance decimal.Decimal
}
