package transactionrepo_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-atm/internal/domain"
	"github.com/go-petr/pet-atm/internal/test"
	"github.com/go-petr/pet-atm/internal/transactionrepo"
	"github.com/go-petr/pet-atm/pkg/errorspkg"
)

const historyPath = "/atm/transactions.txt"

func TestLoad(t *testing.T) {
	txs := test.RandomTransactions(12)

	testCases := []struct {
		name          string
		skipMalformed bool
		seed          func(t *testing.T, fs afero.Fs)
		want          []domain.Transaction
		wantErr       error
	}{
		{
			name: "NoFile",
			seed: func(t *testing.T, fs afero.Fs) {},
			want: []domain.Transaction{},
		},
		{
			name: "EmptyFile",
			seed: func(t *testing.T, fs afero.Fs) {
				test.SeedRawFile(t, fs, historyPath)
			},
			want: []domain.Transaction{},
		},
		{
			name: "OK",
			seed: func(t *testing.T, fs afero.Fs) {
				test.SeedHistoryFile(t, fs, historyPath, txs)
			},
			want: txs,
		},
		{
			name: "ShortLinesIgnored",
			seed: func(t *testing.T, fs afero.Fs) {
				test.SeedRawFile(t, fs, historyPath,
					txs[0].String(),
					"",
					"not | enough",
					txs[1].String(),
				)
			},
			want: txs[:2],
		},
		{
			name: "VeryLongLines",
			seed: func(t *testing.T, fs afero.Fs) {
				test.SeedRawFile(t, fs, historyPath,
					txs[0].String(),
					strings.Repeat("x", 70000),
					strings.Replace(txs[1].String(), " | ", strings.Repeat(" ", 70000)+" | ", 1),
					txs[2].String(),
				)
			},
			want: txs[:3],
		},
		{
			name: "LastLineWithoutNewline",
			seed: func(t *testing.T, fs afero.Fs) {
				data := txs[0].String() + "\r\n" + txs[1].String()
				require.NoError(t, afero.WriteFile(fs, historyPath, []byte(data), 0o644))
			},
			want: txs[:2],
		},
		{
			name: "MalformedStrict",
			seed: func(t *testing.T, fs afero.Fs) {
				test.SeedRawFile(t, fs, historyPath,
					txs[0].String(),
					"DEPOSIT | $oops | 2024-01-02 03:04:05 | Balance: $1.00",
					txs[1].String(),
				)
			},
			wantErr: domain.ErrMalformedTransaction,
		},
		{
			name:          "MalformedLenient",
			skipMalformed: true,
			seed: func(t *testing.T, fs afero.Fs) {
				test.SeedRawFile(t, fs, historyPath,
					txs[0].String(),
					"DEPOSIT | $oops | 2024-01-02 03:04:05 | Balance: $1.00",
					txs[1].String(),
				)
			},
			want: txs[:2],
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			tc.seed(t, fs)
			repo := transactionrepo.NewRepoFile(fs, historyPath, tc.skipMalformed)

			got, err := repo.Load(context.Background())
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, got)
				require.Contains(t, err.Error(), "line 2")
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("repo.Load(context.Background()) returned unexpected difference (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSave(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	repo := transactionrepo.NewRepoFile(fs, historyPath, false)
	ctx := context.Background()
	txs := test.RandomTransactions(5)

	require.NoError(t, repo.Save(ctx, txs[:2]))
	require.NoError(t, repo.Save(ctx, txs))

	data, err := afero.ReadFile(fs, historyPath)
	require.NoError(t, err)

	var want string
	for _, tx := range txs {
		want += tx.String() + "\n"
	}

	require.Equal(t, want, string(data))

	got, err := repo.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(txs, got); diff != "" {
		t.Errorf("repo.Load(ctx) after Save returned unexpected difference (-want +got):\n%s", diff)
	}
}

func TestSaveEmpty(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	repo := transactionrepo.NewRepoFile(fs, historyPath, false)

	require.NoError(t, repo.Save(context.Background(), nil))

	data, err := afero.ReadFile(fs, historyPath)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestSaveReadOnly(t *testing.T) {
	t.Parallel()

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	repo := transactionrepo.NewRepoFile(fs, historyPath, false)

	err := repo.Save(context.Background(), test.RandomTransactions(1))
	require.ErrorIs(t, err, errorspkg.ErrInternal)
}
