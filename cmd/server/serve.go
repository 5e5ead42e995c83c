package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diewo77/faktury/internal/config"
	"github.com/diewo77/faktury/internal/db"
	"github.com/diewo77/faktury/internal/registry"
	"github.com/diewo77/faktury/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(cfg func() *config.Config) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default).",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if port != "" {
				c.Server.Port = port
			}
			return serve(cmd.Context(), c)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	conn, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if cfg.App.Migrations {
		if err := db.Migrate(conn); err != nil {
			return err
		}
		zlog.Info().Msg("migrations completed")
	}

	app := server.NewApp(conn, registry.New(cfg.Registry.BaseURL, cfg.Registry.Timeout), server.Options{
		DefaultLang: cfg.App.DefaultLang,
		Dev:         cfg.App.Dev,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info().Str("port", cfg.Server.Port).Bool("dev", cfg.App.Dev).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	zlog.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	zlog.Info().Msg("server stopped gracefully")
	return nil
}
