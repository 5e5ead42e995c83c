package db

import (
	"errors"
	"fmt"
	"time"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/faktury/internal/config"
)

// connectAttempts bounds the startup retry loop that waits for the database container.
const connectAttempts = 5

var retryDelay = 2 * time.Second

// Dialector returns the GORM dialector for the configured driver.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.DSN()
	switch cfg.Driver {
	case "postgres", "":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// Connect opens the database, retrying while the server is still starting.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	zlog.Info().Str("target", cfg.Redacted()).Msg("connecting to database")
	var conn *gorm.DB
	for i := 1; i <= connectAttempts; i++ {
		conn, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}
		zlog.Warn().Err(err).Int("attempt", i).Int("of", connectAttempts).Msg("database connection failed, retrying")
		if i < connectAttempts {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect database after %d attempts: %w", connectAttempts, err)
	}

	if err := conn.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	return conn, nil
}

// Migrate creates or updates the customers, users and invoices tables.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	for _, table := range []string{"customers", "users", "invoices"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}
