// Package atmconsole wires the file stores, the account service and the console session.
package atmconsole

import (
	"context"
	"io"

	"github.com/spf13/afero"

	"github.com/go-petr/pet-atm/internal/accountdelivery"
	"github.com/go-petr/pet-atm/internal/accountrepo"
	"github.com/go-petr/pet-atm/internal/accountservice"
	"github.com/go-petr/pet-atm/internal/transactionrepo"
	"github.com/go-petr/pet-atm/pkg/configpkg"
)

// Console holds the session handler and the configuration it was built from.
type Console struct {
	Handler *accountdelivery.Handler
	Config  configpkg.Config
}

// Run runs the session until the user exits or the input ends.
func (c *Console) Run(ctx context.Context) error {
	return c.Handler.Run(ctx)
}

// New creates Console with file backed stores on fs.
func New(fs afero.Fs, in io.Reader, out io.Writer, config configpkg.Config) *Console {
	balanceRepo := accountrepo.NewRepoFile(fs, config.BalanceFile)
	transactionRepo := transactionrepo.NewRepoFile(fs, config.TransactionsFile, config.SkipMalformedRecords)

	open := func(ctx context.Context, accountID, holder string) accountdelivery.Service {
		return accountservice.New(ctx, accountID, holder, balanceRepo, transactionRepo)
	}

	handler := accountdelivery.NewHandler(open, in, out, accountdelivery.Options{
		HistoryLimit:      config.HistoryLimit,
		MaxChoiceAttempts: config.MaxChoiceAttempts,
	})

	return &Console{
		Handler: handler,
		Config:  config,
	}
}
