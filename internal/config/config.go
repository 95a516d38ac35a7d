package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Source    SourceConfig
	Database  DatabaseConfig
	Warehouse WarehouseConfig
	Search    SearchConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

// SourceConfig selects where the scored gold layer is read from.
type SourceConfig struct {
	Type          string // auto, parquet, csv or postgres
	Path          string
	Table         string
	Watch         bool
	WatchDebounce time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// WarehouseConfig controls the optional copy into a warehouse table.
type WarehouseConfig struct {
	Enabled  bool
	Table    string
	Truncate bool
}

type SearchConfig struct {
	MaxLimit int
}

type LoggerConfig struct {
	Level  string
	Format string
}

const (
	SourceAuto     = "auto"
	SourceParquet  = "parquet"
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("SOURCE_TYPE", SourceAuto)
	v.SetDefault("SOURCE_PATH", "data/gold_with_sentiment")
	v.SetDefault("SOURCE_TABLE", "gold_news_sentiment")
	v.SetDefault("SOURCE_WATCH", false)
	v.SetDefault("SOURCE_WATCH_DEBOUNCE", "2s")

	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_NAME", "news_sentiment")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	v.SetDefault("WAREHOUSE_ENABLED", false)
	v.SetDefault("WAREHOUSE_TABLE", "gold_news_sentiment")
	v.SetDefault("WAREHOUSE_TRUNCATE", true)

	v.SetDefault("SEARCH_MAX_LIMIT", 1000)

	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: parseDuration(v.GetString("SERVER_SHUTDOWN_TIMEOUT"), 10*time.Second),
		},
		Source: SourceConfig{
			Type:          strings.ToLower(strings.TrimSpace(v.GetString("SOURCE_TYPE"))),
			Path:          v.GetString("SOURCE_PATH"),
			Table:         v.GetString("SOURCE_TABLE"),
			Watch:         v.GetBool("SOURCE_WATCH"),
			WatchDebounce: parseDuration(v.GetString("SOURCE_WATCH_DEBOUNCE"), 2*time.Second),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: parseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"), 30*time.Minute),
		},
		Warehouse: WarehouseConfig{
			Enabled:  v.GetBool("WAREHOUSE_ENABLED"),
			Table:    v.GetString("WAREHOUSE_TABLE"),
			Truncate: v.GetBool("WAREHOUSE_TRUNCATE"),
		},
		Search: SearchConfig{
			MaxLimit: v.GetInt("SEARCH_MAX_LIMIT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks combinations that cannot work at runtime.
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceAuto, SourceParquet, SourceCSV:
		if strings.TrimSpace(c.Source.Path) == "" {
			return fmt.Errorf("SOURCE_PATH is required for source type %q", c.Source.Type)
		}
	case SourcePostgres:
		if strings.TrimSpace(c.Source.Table) == "" {
			return fmt.Errorf("SOURCE_TABLE is required for source type %q", c.Source.Type)
		}
		if c.Source.Watch {
			return fmt.Errorf("SOURCE_WATCH is not supported for source type %q", c.Source.Type)
		}
	default:
		return fmt.Errorf("invalid SOURCE_TYPE %q (use auto, parquet, csv or postgres)", c.Source.Type)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}
	if c.Search.MaxLimit <= 0 {
		return fmt.Errorf("SEARCH_MAX_LIMIT must be positive, got %d", c.Search.MaxLimit)
	}
	if c.Warehouse.Enabled && strings.TrimSpace(c.Warehouse.Table) == "" {
		return fmt.Errorf("WAREHOUSE_TABLE is required when WAREHOUSE_ENABLED is set")
	}
	return nil
}

// NeedsDatabase reports whether a connection pool must be opened.
func (c *Config) NeedsDatabase() bool {
	return c.Source.Type == SourcePostgres || c.Warehouse.Enabled
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
