// Package main runs the mini ATM on the terminal.
package main

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/go-petr/pet-atm/cmd/atmconsole"
	"github.com/go-petr/pet-atm/internal/middleware"
	"github.com/go-petr/pet-atm/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger, closer := middleware.GetLogger(config, os.Stderr)
	defer closer.Close()

	color.NoColor = color.NoColor || !term.IsTerminal(int(os.Stdout.Fd()))

	console := atmconsole.New(afero.NewOsFs(), os.Stdin, os.Stdout, config)

	ctx, sessionID := middleware.SessionContext(context.Background(), logger)

	logger.Info().
		Str(middleware.SessionIDKey, sessionID).
		Str("balance_file", console.Config.BalanceFile).
		Str("transactions_file", console.Config.TransactionsFile).
		Bool("skip_malformed_records", console.Config.SkipMalformedRecords).
		Msg("ATM SESSION HAS STARTED")

	if err := console.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("session aborted")
		closer.Close()
		os.Exit(1)
	}
}
