// Package transactionrepo manages repository layer of the transaction history.
package transactionrepo

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/go-petr/pet-atm/internal/domain"
	"github.com/go-petr/pet-atm/pkg/errorspkg"
	"github.com/go-petr/pet-atm/pkg/filepkg"
)

// RepoFile keeps the transaction history as one text line per transaction.
type RepoFile struct {
	fs   afero.Fs
	path string
	// skipMalformed makes Load drop unreadable lines instead of failing.
	skipMalformed bool
}

// NewRepoFile returns transaction RepoFile stored at path.
func NewRepoFile(fs afero.Fs, path string, skipMalformed bool) *RepoFile {
	return &RepoFile{
		fs:            fs,
		path:          path,
		skipMalformed: skipMalformed,
	}
}

// Load returns the stored history, oldest first.
//
// Lines with too few fields are ignored. Any other unreadable line fails the
// whole load, unless the repo was created with skipMalformed.
func (r *RepoFile) Load(ctx context.Context) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	f, err := r.fs.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Debug().Str("path", r.path).Msg("no history file, starting empty")
			return []domain.Transaction{}, nil
		}

		l.Error().Err(err).Str("path", r.path).Send()

		return nil, errorspkg.ErrInternal
	}
	defer f.Close()

	items := []domain.Transaction{}

	reader := bufio.NewReader(f)

	for lineNo := 1; ; lineNo++ {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			l.Error().Err(err).Str("path", r.path).Int("line", lineNo).Send()
			return nil, errorspkg.ErrInternal
		}

		if line == "" && err != nil {
			break
		}

		t, parseErr := domain.ParseTransaction(strings.TrimRight(line, "\r\n"))
		if parseErr != nil {
			if errors.Is(parseErr, domain.ErrTooFewFields) {
				l.Debug().Int("line", lineNo).Msg("skipping short history line")
				continue
			}

			if r.skipMalformed {
				l.Warn().Err(parseErr).Int("line", lineNo).Msg("skipping malformed history line")
				continue
			}

			return nil, fmt.Errorf("%s line %d: %w", r.path, lineNo, parseErr)
		}

		items = append(items, t)
	}

	return items, nil
}

// Save rewrites the whole history.
func (r *RepoFile) Save(ctx context.Context, txs []domain.Transaction) error {
	l := zerolog.Ctx(ctx)

	var buf bytes.Buffer

	for _, t := range txs {
		buf.WriteString(t.String())
		buf.WriteByte('\n')
	}

	if err := filepkg.WriteFile(r.fs, r.path, buf.Bytes()); err != nil {
		l.Error().Err(err).Str("path", r.path).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
