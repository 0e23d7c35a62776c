package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-atm/pkg/currencypkg"
)

// Kind is the type of a completed transaction.
type Kind string

// Supported transaction kinds.
const (
	KindDeposit  Kind = "DEPOSIT"
	KindWithdraw Kind = "WITHDRAW"
)

// TimestampLayout is how transaction times are written to the history file.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	fieldSep     = "|"
	balanceLabel = "Balance:"
	minFields    = 4
)

var (
	// ErrMalformedTransaction indicates a history line that cannot be read back.
	ErrMalformedTransaction = errors.New("malformed transaction")
	// ErrTooFewFields indicates a history line without enough fields to be a transaction.
	ErrTooFewFields = fmt.Errorf("%w: too few fields", ErrMalformedTransaction)
)

// Transaction holds one completed deposit or withdrawal.
type Transaction struct {
	Kind         Kind
	Amount       decimal.Decimal // always positive
	BalanceAfter decimal.Decimal
	CreatedAt    time.Time
}

// NewTransaction returns a transaction stamped with the current local time.
func NewTransaction(kind Kind, amount, balanceAfter decimal.Decimal) Transaction {
	return Transaction{
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		CreatedAt:    time.Now().Truncate(time.Second),
	}
}

// String renders the transaction as one history line.
func (t Transaction) String() string {
	return fmt.Sprintf("%-10s | $%8s | %s | %s $%s",
		t.Kind,
		currencypkg.Format(t.Amount),
		t.CreatedAt.Format(TimestampLayout),
		balanceLabel,
		currencypkg.Format(t.BalanceAfter),
	)
}

// ParseTransaction reads back a line produced by Transaction.String.
func ParseTransaction(line string) (Transaction, error) {
	var t Transaction

	parts := strings.Split(line, fieldSep)
	if len(parts) < minFields {
		return t, ErrTooFewFields
	}

	switch k := Kind(strings.TrimSpace(parts[0])); k {
	case KindDeposit, KindWithdraw:
		t.Kind = k
	default:
		return t, fmt.Errorf("%w: unknown kind %q", ErrMalformedTransaction, k)
	}

	amount, err := currencypkg.Parse(parts[1])
	if err != nil {
		return t, fmt.Errorf("%w: amount %q", ErrMalformedTransaction, strings.TrimSpace(parts[1]))
	}

	t.Amount = amount

	createdAt, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(parts[2]), time.Local)
	if err != nil {
		return t, fmt.Errorf("%w: timestamp %q", ErrMalformedTransaction, strings.TrimSpace(parts[2]))
	}

	t.CreatedAt = createdAt

	last := parts[len(parts)-1]

	_, after, found := strings.Cut(last, ":")
	if !found {
		return t, fmt.Errorf("%w: balance %q", ErrMalformedTransaction, strings.TrimSpace(last))
	}

	balance, err := currencypkg.Parse(after)
	if err != nil {
		return t, fmt.Errorf("%w: balance %q", ErrMalformedTransaction, strings.TrimSpace(last))
	}

	t.BalanceAfter = balance

	return t, nil
}

// Recent returns at most limit transactions, newest first.
func Recent(txs []Transaction, limit int) []Transaction {
	start := len(txs) - limit
	if start < 0 {
		start = 0
	}

	res := make([]Transaction, 0, len(txs)-start)

	for i := len(txs) - 1; i >= start; i-- {
		res = append(res, txs[i])
	}

	return res
}
