// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Registry RegistryConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string // postgres, sqlite or mysql
	Host     string
	Port     int
	User     string
	Password string
	DBName   string // file path for sqlite
	SSLMode  string
	RawDSN   string // DB_DSN, used as-is when set
	Debug    bool
}

// RegistryConfig holds settings of the business registry (ARES) client.
type RegistryConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev         bool
	Migrations  bool
	LogLevel    string
	DefaultLang string
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.RawDSN != "" {
		return d.RawDSN
	}
	switch d.Driver {
	case "sqlite":
		name := d.DBName
		if !strings.HasSuffix(name, ".db") && !strings.HasPrefix(name, "file:") {
			name += ".db"
		}
		return name + "?_foreign_keys=on"
	case "mysql":
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User, d.Password, d.Host, d.Port, d.DBName,
		)
	default:
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
		)
	}
}

// Redacted returns a loggable description of the target database.
func (d DatabaseConfig) Redacted() string {
	if d.Driver == "sqlite" {
		return "sqlite " + d.DBName
	}
	return fmt.Sprintf("%s host=%s port=%d dbname=%s user=%s", d.Driver, d.Host, d.Port, d.DBName, d.User)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			ReadTimeout:  v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetInt("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetInt("SERVER_IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			RawDSN:   v.GetString("DB_DSN"),
			Debug:    v.GetBool("DB_DEBUG"),
		},
		Registry: RegistryConfig{
			BaseURL: strings.TrimRight(v.GetString("REGISTRY_BASE_URL"), "/"),
			Timeout: v.GetDuration("REGISTRY_TIMEOUT"),
		},
		App: AppConfig{
			Dev:         v.GetBool("DEV"),
			Migrations:  v.GetBool("MIGRATIONS"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			DefaultLang: v.GetString("DEFAULT_LANG"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 60)

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "faktury")
	v.SetDefault("DB_PASSWORD", "faktury")
	v.SetDefault("DB_NAME", "faktury")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_DEBUG", false)

	v.SetDefault("REGISTRY_BASE_URL", "https://ares.gov.cz/ekonomicke-subjekty-v-be/rest")
	v.SetDefault("REGISTRY_TIMEOUT", "10s")

	v.SetDefault("DEV", true)
	v.SetDefault("MIGRATIONS", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEFAULT_LANG", "cs")
}
