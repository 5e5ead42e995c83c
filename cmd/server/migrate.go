package main

import (
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diewo77/faktury/internal/config"
	"github.com/diewo77/faktury/internal/db"
)

func newMigrateCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.Connect(cfg().Database)
			if err != nil {
				return err
			}
			if err := db.Migrate(conn); err != nil {
				return err
			}
			zlog.Info().Msg("migrations completed successfully")
			return nil
		},
	}
}
