package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diewo77/faktury/internal/config"
)

func newRootCmd() *cobra.Command {
	var cfg *config.Config
	root := &cobra.Command{
		Use:           "faktury",
		Short:         "faktury is a small invoicing web application.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load environment variables from .env file
			_ = godotenv.Load()
			cfg = config.Load()
			setupLogging(cfg.App)
		},
	}
	serve := newServeCmd(func() *config.Config { return cfg })
	root.AddCommand(serve, newMigrateCmd(func() *config.Config { return cfg }))
	// serve is the default action
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

func setupLogging(app config.AppConfig) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(app.LogLevel))
	if app.Dev {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	} else {
		zlog.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
