package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	QUOTE_BASE_URL=https://query1.finance.yahoo.com
//	QUOTE_FETCH_TIMEOUT=5s
//	QUOTE_CACHE_TTL=30s
//	REFRESH_INTERVAL=30s
//	REFRESH_SYMBOL=AAPL
//	REFRESH_PERIOD=1d
//	REFRESH_SHOW_MA=true
//	JOURNAL_DRIVER=none
//	SQLITE_PATH=data/journal.db
//	POSTGRES_HOST=localhost
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Quote    QuoteConfig    // Quote source and cache
	Refresh  RefreshConfig  // Refresh driver cadence and initial selection
	Journal  JournalConfig  // Fetch journal backend
	Postgres PostgresConfig // PostgreSQL connection settings (JOURNAL_DRIVER=postgres)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // TCP port the HTTP server listens on (e.g., "8080")
	RequestTimeout time.Duration // Per-request context timeout
	RateLimit      int           // Requests per client IP per minute
}

// QuoteConfig configures the market data client and snapshot cache.
type QuoteConfig struct {
	BaseURL      string
	FetchTimeout time.Duration
	CacheTTL     time.Duration
}

// RefreshConfig configures the refresh driver.
type RefreshConfig struct {
	Interval time.Duration
	Symbol   string
	Period   string
	ShowMA   bool
}

// Journal drivers.
const (
	JournalNone     = "none"
	JournalPostgres = "postgres"
	JournalSQLite   = "sqlite"
)

// JournalConfig selects where fetch outcomes are recorded.
type JournalConfig struct {
	Driver     string // none | postgres | sqlite
	SQLitePath string
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance, populated once
// by LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates
//     the app with a descriptive log message.
func LoadConfig() {
	setDefaults()

	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
			RateLimit:      viper.GetInt("SERVER_RATE_LIMIT"),
		},
		Quote: QuoteConfig{
			BaseURL:      viper.GetString("QUOTE_BASE_URL"),
			FetchTimeout: viper.GetDuration("QUOTE_FETCH_TIMEOUT"),
			CacheTTL:     viper.GetDuration("QUOTE_CACHE_TTL"),
		},
		Refresh: RefreshConfig{
			Interval: viper.GetDuration("REFRESH_INTERVAL"),
			Symbol:   viper.GetString("REFRESH_SYMBOL"),
			Period:   viper.GetString("REFRESH_PERIOD"),
			ShowMA:   viper.GetBool("REFRESH_SHOW_MA"),
		},
		Journal: JournalConfig{
			Driver:     strings.ToLower(viper.GetString("JOURNAL_DRIVER")),
			SQLitePath: viper.GetString("SQLITE_PATH"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "10s")
	viper.SetDefault("SERVER_RATE_LIMIT", 120)

	viper.SetDefault("QUOTE_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("QUOTE_FETCH_TIMEOUT", "5s")
	viper.SetDefault("QUOTE_CACHE_TTL", "30s")

	viper.SetDefault("REFRESH_INTERVAL", "30s")
	viper.SetDefault("REFRESH_SYMBOL", "AAPL")
	viper.SetDefault("REFRESH_PERIOD", "1d")
	viper.SetDefault("REFRESH_SHOW_MA", true)

	viper.SetDefault("JOURNAL_DRIVER", JournalNone)
	viper.SetDefault("SQLITE_PATH", "data/journal.db")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "quotepulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
}

// validateConfig checks required and well-formed fields and terminates the
// application with log.Fatalf listing every problem found.
func validateConfig() {
	if problems := configProblems(AppConfig); len(problems) > 0 {
		log.Fatalf("❌ Invalid configuration: %v\n", problems)
	}
}

func configProblems(c Config) []string {
	var problems []string

	if c.Server.Port == "" {
		problems = append(problems, "SERVER_PORT is required")
	}
	if c.Quote.BaseURL == "" {
		problems = append(problems, "QUOTE_BASE_URL is required")
	}
	if c.Quote.FetchTimeout <= 0 {
		problems = append(problems, "QUOTE_FETCH_TIMEOUT must be positive")
	}
	if c.Quote.CacheTTL <= 0 {
		problems = append(problems, "QUOTE_CACHE_TTL must be positive")
	}
	if c.Refresh.Interval < time.Second {
		problems = append(problems, "REFRESH_INTERVAL must be at least 1s")
	}
	if strings.TrimSpace(c.Refresh.Symbol) == "" {
		problems = append(problems, "REFRESH_SYMBOL is required")
	}
	if c.Refresh.Period == "" {
		problems = append(problems, "REFRESH_PERIOD is required")
	}

	switch c.Journal.Driver {
	case JournalNone:
	case JournalSQLite:
		if c.Journal.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH is required for JOURNAL_DRIVER=sqlite")
		}
	case JournalPostgres:
		if c.Postgres.Host == "" {
			problems = append(problems, "POSTGRES_HOST is required")
		}
		if c.Postgres.Port == 0 {
			problems = append(problems, "POSTGRES_PORT is required")
		}
		if c.Postgres.User == "" {
			problems = append(problems, "POSTGRES_USER is required")
		}
		if c.Postgres.Password == "" {
			problems = append(problems, "POSTGRES_PASSWORD is required")
		}
		if c.Postgres.DBName == "" {
			problems = append(problems, "POSTGRES_DB is required")
		}
	default:
		problems = append(problems, fmt.Sprintf("JOURNAL_DRIVER %q is not one of none|postgres|sqlite", c.Journal.Driver))
	}

	return problems
}
