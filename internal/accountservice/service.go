// Package accountservice manages business logic layer of the account.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-atm/internal/domain"
	"github.com/go-petr/pet-atm/pkg/currencypkg"
)

// BalanceRepo provides balance persistence needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type BalanceRepo interface {
	Load(ctx context.Context) (decimal.Decimal, error)
	Save(ctx context.Context, balance decimal.Decimal) error
}

// TransactionRepo provides history persistence needed by account service layer.
type TransactionRepo interface {
	Load(ctx context.Context) ([]domain.Transaction, error)
	Save(ctx context.Context, txs []domain.Transaction) error
}

// Service is the single owner of the account balance and its history.
// Every mutation goes through it and is persisted before it returns.
type Service struct {
	account      domain.Account
	transactions []domain.Transaction

	balanceRepo     BalanceRepo
	transactionRepo TransactionRepo
}

// New loads the persisted state for the given account.
//
// Unreadable state is not an error: the balance falls back to zero and the
// history to empty, and a warning is logged.
func New(ctx context.Context, accountID, holder string, br BalanceRepo, tr TransactionRepo) *Service {
	l := zerolog.Ctx(ctx)

	balance, err := br.Load(ctx)
	if err != nil {
		l.Warn().Err(err).Msg("cannot load balance, starting with $0.00")
		balance = decimal.Zero
	}

	transactions, err := tr.Load(ctx)
	if err != nil {
		l.Warn().Err(err).Msg("cannot load transaction history, starting with empty history")
		transactions = []domain.Transaction{}
	}

	l.Debug().
		Str("account", accountID).
		Str("balance", currencypkg.Format(balance)).
		Int("transactions", len(transactions)).
		Msg("account loaded")

	return &Service{
		account: domain.Account{
			ID:      accountID,
			Holder:  holder,
			Balance: balance,
		},
		transactions:    transactions,
		balanceRepo:     br,
		transactionRepo: tr,
	}
}

// Account returns the account data including the current balance.
func (s *Service) Account() domain.Account {
	return s.account
}

// Balance returns the current balance.
func (s *Service) Balance() decimal.Decimal {
	return s.account.Balance
}

// History returns a copy of all transactions, oldest first.
func (s *Service) History() []domain.Transaction {
	res := make([]domain.Transaction, len(s.transactions))
	copy(res, s.transactions)

	return res
}

// Deposit adds amount to the balance and returns the recorded transaction.
func (s *Service) Deposit(ctx context.Context, amount decimal.Decimal) (domain.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		zerolog.Ctx(ctx).Info().Str("amount", amount.String()).Err(err).Send()
		return domain.Transaction{}, err
	}

	return s.commit(ctx, domain.KindDeposit, amount, s.account.Balance.Add(amount)), nil
}

// Withdraw takes amount from the balance and returns the recorded transaction.
func (s *Service) Withdraw(ctx context.Context, amount decimal.Decimal) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	if err := validateAmount(amount); err != nil {
		l.Info().Str("amount", amount.String()).Err(err).Send()
		return domain.Transaction{}, err
	}

	if amount.GreaterThan(s.account.Balance) {
		l.Info().Str("amount", amount.String()).Err(domain.ErrInsufficientFunds).Send()
		return domain.Transaction{}, domain.ErrInsufficientFunds
	}

	return s.commit(ctx, domain.KindWithdraw, amount, s.account.Balance.Sub(amount)), nil
}

// validateAmount accepts positive amounts in whole cents. Amounts are taken
// exactly as given, never rounded.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	if !currencypkg.WholeCents(amount) {
		return domain.ErrFractionalCent
	}

	return nil
}

func (s *Service) commit(ctx context.Context, kind domain.Kind, amount, balance decimal.Decimal) domain.Transaction {
	t := domain.NewTransaction(kind, amount, balance)

	s.account.Balance = balance
	s.transactions = append(s.transactions, t)

	s.persist(ctx)

	return t
}

// persist writes balance and history independently. A failed write is
// logged and leaves the in-memory state as is.
func (s *Service) persist(ctx context.Context) {
	l := zerolog.Ctx(ctx)

	if err := s.balanceRepo.Save(ctx, s.account.Balance); err != nil {
		l.Warn().Err(err).Msg("cannot save balance")
	}

	if err := s.transactionRepo.Save(ctx, s.transactions); err != nil {
		l.Warn().Err(err).Msg("cannot save transaction history")
	}
}
