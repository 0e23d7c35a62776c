// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from an optional config file or environment
// variables. Every key has a default, so the terminal runs with no setup.
type Config struct {
	BalanceFile          string `mapstructure:"BALANCE_FILE" validate:"required"`
	TransactionsFile     string `mapstructure:"TRANSACTIONS_FILE" validate:"required,nefield=BalanceFile"`
	HistoryLimit         int    `mapstructure:"HISTORY_LIMIT" validate:"min=1,max=100"`
	MaxChoiceAttempts    int    `mapstructure:"MAX_CHOICE_ATTEMPTS" validate:"min=1,max=100"`
	SkipMalformedRecords bool   `mapstructure:"SKIP_MALFORMED_RECORDS"`
	LogLevel             string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	LogFile              string `mapstructure:"LOG_FILE"`
	Environement         string `mapstructure:"GO_ENV"`
}

var defaults = map[string]any{
	"BALANCE_FILE":           "balance.txt",
	"TRANSACTIONS_FILE":      "transactions.txt",
	"HISTORY_LIMIT":          10,
	"MAX_CHOICE_ATTEMPTS":    5,
	"SKIP_MALFORMED_RECORDS": false,
	"LOG_LEVEL":              "info",
	"LOG_FILE":               "",
	"GO_ENV":                 "",
}

// Load reads configuration from path/app.env, ./.env and environment variables.
func Load(path string) (Config, error) {
	var c Config

	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, fmt.Errorf("cannot read .env: %w", err)
	}

	v := viper.New()

	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	if err := validator.New().Struct(c); err != nil {
		return c, err
	}

	return c, nil
}
