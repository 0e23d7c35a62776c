// Package accountdelivery manages the console delivery layer of the account.
package accountdelivery

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-atm/internal/domain"
	"github.com/go-petr/pet-atm/internal/middleware"
	"github.com/go-petr/pet-atm/pkg/currencypkg"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source console.go -destination console_mock.go -package accountdelivery
type Service interface {
	Account() domain.Account
	History() []domain.Transaction
	Deposit(ctx context.Context, amount decimal.Decimal) (domain.Transaction, error)
	Withdraw(ctx context.Context, amount decimal.Decimal) (domain.Transaction, error)
}

// OpenFunc opens the account of the user who has just signed in.
type OpenFunc func(ctx context.Context, accountID, holder string) Service

// State is a step of the session.
type State int

// Session states, in the order a session normally walks through them.
const (
	StateAuthenticating State = iota
	StateMenu
	StateAwaitingChoice
	StateExecutingAction
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "AUTHENTICATING"
	case StateMenu:
		return "MENU"
	case StateAwaitingChoice:
		return "AWAITING_CHOICE"
	case StateExecutingAction:
		return "EXECUTING_ACTION"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Menu choices.
const (
	choiceBalance = iota + 1
	choiceDeposit
	choiceWithdraw
	choiceHistory
	choiceExit
)

const (
	choicePrompt = "Please select an option (1-5): "
	farewell     = "Thank you for using our ATM. Have a great day!"
	historyTitle = "Type       | Amount   | Date & Time         | Balance After"
)

// ErrReadConsole indicates that the console input could not be read.
var ErrReadConsole = errors.New("cannot read console")

// Options tunes the session.
type Options struct {
	// HistoryLimit is the number of transactions shown by the history action.
	HistoryLimit int
	// MaxChoiceAttempts is the number of invalid menu choices after which the menu is shown again.
	MaxChoiceAttempts int
}

// Handler drives one console session.
type Handler struct {
	open OpenFunc
	in   *bufio.Reader
	out  io.Writer
	opts Options

	service Service
	state   State
	choice  int
	actions map[int]middleware.Action

	banner  *color.Color
	success *color.Color
	failure *color.Color
}

// NewHandler returns a session reading from in and writing to out.
func NewHandler(open OpenFunc, in io.Reader, out io.Writer, opts Options) *Handler {
	if opts.HistoryLimit < 1 {
		opts.HistoryLimit = 10
	}

	if opts.MaxChoiceAttempts < 1 {
		opts.MaxChoiceAttempts = 5
	}

	h := &Handler{
		open:    open,
		in:      bufio.NewReader(in),
		out:     out,
		opts:    opts,
		state:   StateAuthenticating,
		banner:  color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}

	h.actions = map[int]middleware.Action{
		choiceBalance:  middleware.ActionLogger("balance", h.checkBalance),
		choiceDeposit:  middleware.ActionLogger("deposit", h.deposit),
		choiceWithdraw: middleware.ActionLogger("withdraw", h.withdraw),
		choiceHistory:  middleware.ActionLogger("history", h.history),
	}

	return h
}

// State returns the current session state.
func (h *Handler) State() State {
	return h.state
}

// Run walks the session until the user exits or the input ends.
// Only a failure to read the console is returned as an error.
func (h *Handler) Run(ctx context.Context) error {
	l := zerolog.Ctx(ctx)

	h.printWelcome()

	for h.state != StateTerminated {
		var err error

		switch h.state {
		case StateAuthenticating:
			err = h.authenticate(ctx)
		case StateMenu:
			h.printMenu()
			h.state = StateAwaitingChoice
		case StateAwaitingChoice:
			err = h.awaitChoice()
		case StateExecutingAction:
			err = h.execute(ctx)
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.Error().Err(err).Stringer("state", h.state).Send()
				return err
			}

			l.Info().Stringer("state", h.state).Msg("input closed")
			h.state = StateTerminated
		}
	}

	fmt.Fprintln(h.out, farewell)

	return nil
}

// readLine returns the next input line of any length. A last line without a
// trailing newline is still returned; io.EOF follows on the next call.
func (h *Handler) readLine() (string, error) {
	line, err := h.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %v", ErrReadConsole, err)
		}

		if line == "" {
			return "", io.EOF
		}
	}

	return strings.TrimSpace(line), nil
}

func (h *Handler) authenticate(ctx context.Context) error {
	fmt.Fprint(h.out, "Enter Account Number: ")

	accountID, err := h.readLine()
	if err != nil {
		return err
	}

	fmt.Fprint(h.out, "Enter Account Holder Name: ")

	holder, err := h.readLine()
	if err != nil {
		return err
	}

	h.service = h.open(ctx, accountID, holder)

	zerolog.Ctx(ctx).Info().Str("account", accountID).Msg("session authenticated")

	fmt.Fprintln(h.out)
	h.success.Fprintln(h.out, "Authentication successful!")
	fmt.Fprintf(h.out, "Welcome, %s!\n", holder)
	fmt.Fprintln(h.out, rule('-', 40))

	h.state = StateMenu

	return nil
}

func (h *Handler) awaitChoice() error {
	for attempts := 1; ; attempts++ {
		s, err := h.readLine()
		if err != nil {
			return err
		}

		choice, err := strconv.Atoi(s)

		switch {
		case err != nil:
			h.failure.Fprintln(h.out, "Invalid input. Please enter a number.")
		case choice < choiceBalance || choice > choiceExit:
			h.failure.Fprintln(h.out, "Invalid choice. Please select 1-5.")
		default:
			h.choice = choice
			h.state = StateExecutingAction

			return nil
		}

		if attempts >= h.opts.MaxChoiceAttempts {
			h.state = StateMenu
			return nil
		}

		fmt.Fprint(h.out, choicePrompt)
	}
}

func (h *Handler) execute(ctx context.Context) error {
	fmt.Fprintln(h.out)

	if h.choice == choiceExit {
		h.state = StateTerminated
		return nil
	}

	err := h.actions[h.choice](ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, ErrReadConsole) {
		return err
	}

	fmt.Fprint(h.out, "\nPress Enter to continue...")

	if _, err := h.readLine(); err != nil {
		return err
	}

	h.state = StateMenu

	return nil
}

func (h *Handler) checkBalance(ctx context.Context) error {
	account := h.service.Account()

	h.printHeader("BALANCE INQUIRY")
	fmt.Fprintf(h.out, "Account: %s\n", account.ID)
	fmt.Fprintf(h.out, "Holder: %s\n", account.Holder)
	fmt.Fprintf(h.out, "Current Balance: %s\n", currencypkg.FormatWithSymbol(account.Balance))
	fmt.Fprintln(h.out, rule('-', 30))

	return nil
}

func (h *Handler) deposit(ctx context.Context) error {
	h.printHeader("DEPOSIT MONEY")
	defer fmt.Fprintln(h.out, rule('-', 30))

	amount, err := h.readAmount("Enter deposit amount: $")
	if err != nil {
		return err
	}

	t, err := h.service.Deposit(ctx, amount)
	if err != nil {
		h.reportFailure(err)
		return err
	}

	h.success.Fprintf(h.out, "Successfully deposited %s\n", currencypkg.FormatWithSymbol(t.Amount))
	fmt.Fprintf(h.out, "Current balance: %s\n", currencypkg.FormatWithSymbol(t.BalanceAfter))

	return nil
}

func (h *Handler) withdraw(ctx context.Context) error {
	h.printHeader("WITHDRAW MONEY")
	defer fmt.Fprintln(h.out, rule('-', 30))

	fmt.Fprintf(h.out, "Current Balance: %s\n", currencypkg.FormatWithSymbol(h.service.Account().Balance))

	amount, err := h.readAmount("Enter withdrawal amount: $")
	if err != nil {
		return err
	}

	t, err := h.service.Withdraw(ctx, amount)
	if err != nil {
		h.reportFailure(err)
		return err
	}

	h.success.Fprintf(h.out, "Successfully withdrew %s\n", currencypkg.FormatWithSymbol(t.Amount))
	fmt.Fprintf(h.out, "Current balance: %s\n", currencypkg.FormatWithSymbol(t.BalanceAfter))

	return nil
}

func (h *Handler) history(ctx context.Context) error {
	fmt.Fprintln(h.out, rule('-', 70))
	fmt.Fprintln(h.out, strings.Repeat(" ", 20)+"TRANSACTION HISTORY")
	fmt.Fprintln(h.out, rule('-', 70))

	txs := h.service.History()

	if len(txs) == 0 {
		fmt.Fprintln(h.out, "No transactions found.")
	} else {
		fmt.Fprintln(h.out, historyTitle)
		fmt.Fprintln(h.out, rule('-', 70))

		for _, t := range domain.Recent(txs, h.opts.HistoryLimit) {
			fmt.Fprintln(h.out, t.String())
		}

		if len(txs) > h.opts.HistoryLimit {
			fmt.Fprintf(h.out, "\n(Showing last %d transactions)\n", h.opts.HistoryLimit)
		}
	}

	fmt.Fprintln(h.out, rule('-', 70))

	return nil
}

// readAmount prompts for an amount. A non-numeric answer is reported and
// returned as currencypkg.ErrNotANumber.
func (h *Handler) readAmount(prompt string) (decimal.Decimal, error) {
	fmt.Fprint(h.out, prompt)

	s, err := h.readLine()
	if err != nil {
		return decimal.Zero, err
	}

	amount, err := currencypkg.Parse(s)
	if err != nil {
		h.failure.Fprintln(h.out, "Invalid amount. Please enter a valid number.")
		return decimal.Zero, err
	}

	return amount, nil
}

func (h *Handler) reportFailure(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		h.failure.Fprintln(h.out, "Invalid amount. Please enter a positive value.")
	case errors.Is(err, domain.ErrFractionalCent):
		h.failure.Fprintln(h.out, "Invalid amount. Please enter whole cents (at most 2 decimal places).")
	case errors.Is(err, domain.ErrInsufficientFunds):
		h.failure.Fprintf(h.out, "Insufficient funds. Current balance: %s\n",
			currencypkg.FormatWithSymbol(h.service.Account().Balance))
	default:
		h.failure.Fprintln(h.out, "Operation failed. Please try again.")
	}
}

func (h *Handler) printWelcome() {
	title := "WELCOME TO MINI ATM"
	pad := strings.Repeat(" ", 12)

	h.banner.Fprintln(h.out, rule('*', 50))
	h.banner.Fprintln(h.out, "*"+pad+title+pad+"*")
	h.banner.Fprintln(h.out, rule('*', 50))
	fmt.Fprintln(h.out)
}

func (h *Handler) printMenu() {
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, rule('=', 40))
	fmt.Fprintln(h.out, "           ATM MAIN MENU")
	fmt.Fprintln(h.out, rule('=', 40))
	fmt.Fprintln(h.out, "1. Check Balance")
	fmt.Fprintln(h.out, "2. Deposit Money")
	fmt.Fprintln(h.out, "3. Withdraw Money")
	fmt.Fprintln(h.out, "4. Transaction History")
	fmt.Fprintln(h.out, "5. Exit")
	fmt.Fprintln(h.out, rule('=', 40))
	fmt.Fprint(h.out, choicePrompt)
}

// printHeader prints title centred in a 30 column block.
func (h *Handler) printHeader(title string) {
	pad := (30 - len(title)) / 2
	if pad < 0 {
		pad = 0
	}

	fmt.Fprintln(h.out, rule('-', 30))
	fmt.Fprintln(h.out, strings.Repeat(" ", pad)+title)
	fmt.Fprintln(h.out, rule('-', 30))
}

func rule(c rune, n int) string {
	return strings.Repeat(string(c), n)
}
