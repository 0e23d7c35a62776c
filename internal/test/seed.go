package test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/go-petr/pet-atm/internal/domain"
	"github.com/go-petr/pet-atm/pkg/currencypkg"
)

// SeedBalanceFile writes balance to path the way the balance store does.
func SeedBalanceFile(t *testing.T, fs afero.Fs, path string, balance decimal.Decimal) {
	t.Helper()

	if err := afero.WriteFile(fs, path, []byte(currencypkg.Format(balance)), 0o644); err != nil {
		t.Fatalf("afero.WriteFile(%v) returned error: %v", path, err)
	}
}

// SeedHistoryFile writes txs to path, one line each.
func SeedHistoryFile(t *testing.T, fs afero.Fs, path string, txs []domain.Transaction) {
	t.Helper()

	lines := make([]string, 0, len(txs))
	for _, tx := range txs {
		lines = append(lines, tx.String())
	}

	SeedRawFile(t, fs, path, lines...)
}

// SeedRawFile writes lines verbatim to path.
func SeedRawFile(t *testing.T, fs afero.Fs, path string, lines ...string) {
	t.Helper()

	var content string
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}

	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("afero.WriteFile(%v) returned error: %v", path, err)
	}
}
