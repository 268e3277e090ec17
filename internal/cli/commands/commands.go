// Package commands implements the sqldojo subcommands.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqldojo-labs/sqldojo/internal/cli/config"
	"github.com/sqldojo-labs/sqldojo/internal/gateway"
)

// configKey is used to store config in the command context.
type configKey struct{}

// loggerKey is used to store the logger in the command context.
type loggerKey struct{}

// SetConfig stores the loaded config in the command context.
func SetConfig(cmd *cobra.Command, cfg *config.Config) {
	cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
}

// GetConfig retrieves the config from the command context.
func GetConfig(cmd *cobra.Command) *config.Config {
	if c, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return c
	}
	cfg, err := config.Load("", nil)
	if err != nil {
		return &config.Config{}
	}
	return cfg
}

// SetLogger stores the logger in the command context.
func SetLogger(cmd *cobra.Command, logger *slog.Logger) {
	cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
}

// GetLogger retrieves the logger from the command context.
func GetLogger(cmd *cobra.Command) *slog.Logger {
	if l, ok := cmd.Context().Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// openGateway opens the configured sample database.
func openGateway(cmd *cobra.Command) (*gateway.Gateway, *config.Config) {
	cfg := GetConfig(cmd)
	return gateway.New(cfg.Database, GetLogger(cmd)), cfg
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
