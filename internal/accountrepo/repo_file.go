// Package accountrepo manages repository layer of the account balance.
package accountrepo

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/go-petr/pet-atm/internal/domain"
	"github.com/go-petr/pet-atm/pkg/currencypkg"
	"github.com/go-petr/pet-atm/pkg/errorspkg"
	"github.com/go-petr/pet-atm/pkg/filepkg"
)

// RepoFile keeps the balance as a single value in a plain text file.
type RepoFile struct {
	fs   afero.Fs
	path string
}

// NewRepoFile returns balance RepoFile stored at path.
func NewRepoFile(fs afero.Fs, path string) *RepoFile {
	return &RepoFile{
		fs:   fs,
		path: path,
	}
}

// Load returns the stored balance. A missing or empty file is a zero balance.
func (r *RepoFile) Load(ctx context.Context) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Debug().Str("path", r.path).Msg("no balance file, starting from zero")
			return decimal.Zero, nil
		}

		l.Error().Err(err).Str("path", r.path).Send()

		return decimal.Zero, errorspkg.ErrInternal
	}

	line, _, _ := bufio.NewReader(bytes.NewReader(data)).ReadLine()

	value := strings.TrimSpace(string(line))
	if value == "" {
		return decimal.Zero, nil
	}

	balance, err := currencypkg.Parse(value)
	if err != nil || balance.IsNegative() {
		l.Info().Str("path", r.path).Str("value", value).Msg("unreadable balance")
		return decimal.Zero, domain.ErrMalformedBalance
	}

	return balance, nil
}

// Save overwrites the stored balance.
func (r *RepoFile) Save(ctx context.Context, balance decimal.Decimal) error {
	l := zerolog.Ctx(ctx)

	if err := filepkg.WriteFile(r.fs, r.path, []byte(currencypkg.Format(balance))); err != nil {
		l.Error().Err(err).Str("path", r.path).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
