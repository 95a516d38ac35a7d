// Package app wires adapters and services from configuration. It is shared
// by the HTTP server and the newsctl command line tool.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"news-sentiment-service/internal/adapters/secondary/csvfile"
	"news-sentiment-service/internal/adapters/secondary/exporter"
	"news-sentiment-service/internal/adapters/secondary/parquetfile"
	"news-sentiment-service/internal/adapters/secondary/postgres"
	"news-sentiment-service/internal/config"
	"news-sentiment-service/internal/core/domain"
	"news-sentiment-service/internal/core/ports/output"
	"news-sentiment-service/internal/core/services"
)

// App holds the wired core services.
type App struct {
	Config   *config.Config
	Source   ports.ArticleSource
	Sink     ports.ArticleSink // nil unless the warehouse is enabled
	Datasets *services.DatasetService
	Search   *services.SearchService
	Insights *services.InsightsService
	Export   *services.ExportService

	pool *pgxpool.Pool
}

// New opens the database pool when needed and builds every service. The
// dataset is not loaded yet; call Datasets.Reload.
func New(ctx context.Context, cfg *config.Config, metrics ports.MetricsRecorder) (*App, error) {
	a := &App{Config: cfg}

	if cfg.NeedsDatabase() {
		pool, err := OpenPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.pool = pool
	}

	source, err := NewSource(cfg.Source, a.pool)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Source = source

	if cfg.Warehouse.Enabled {
		repo, err := postgres.NewArticleRepository(a.pool, cfg.Warehouse.Table)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Sink = repo
	}

	a.Datasets = services.NewDatasetService(source, metrics)
	a.Search = services.NewSearchService(a.Datasets, cfg.Search.MaxLimit)
	a.Insights = services.NewInsightsService(a.Datasets)
	a.Export = services.NewExportService(a.Search, metrics, exporter.NewCSVWriter(), exporter.NewXLSXWriter())
	return a, nil
}

// Pool returns the database pool, or nil when no database is configured.
func (a *App) Pool() *pgxpool.Pool {
	return a.pool
}

// LoadWarehouse copies the current dataset into the warehouse table.
func (a *App) LoadWarehouse(ctx context.Context) (int64, error) {
	if a.Sink == nil {
		return 0, domain.ErrWarehouseDisabled
	}
	ds, err := a.Datasets.Current()
	if err != nil {
		return 0, err
	}
	n, err := a.Sink.Write(ctx, ds, a.Config.Warehouse.Truncate)
	if err != nil {
		return 0, fmt.Errorf("load warehouse: %w", err)
	}
	log.WithFields(log.Fields{
		"table":    a.Config.Warehouse.Table,
		"rows":     n,
		"truncate": a.Config.Warehouse.Truncate,
	}).Info("warehouse load completed")
	return n, nil
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// OpenPool creates and pings a pgx pool.
func OpenPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	log.Info("database connection established")
	return pool, nil
}

// NewSource picks the gold layer reader for cfg. With type auto, a directory
// or .parquet path selects parquet and a .csv path selects csv.
func NewSource(cfg config.SourceConfig, pool *pgxpool.Pool) (ports.ArticleSource, error) {
	typ := cfg.Type
	if typ == config.SourceAuto {
		detected, err := DetectFormat(cfg.Path)
		if err != nil {
			return nil, err
		}
		typ = detected
	}

	switch typ {
	case config.SourceParquet:
		return parquetfile.NewArticleSource(cfg.Path), nil
	case config.SourceCSV:
		return csvfile.NewArticleSource(cfg.Path), nil
	case config.SourcePostgres:
		if pool == nil {
			return nil, errors.New("postgres source requires a database pool")
		}
		repo, err := postgres.NewArticleRepository(pool, cfg.Table)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
	return nil, fmt.Errorf("%w: source type %q", domain.ErrUnsupportedFormat, typ)
}

// DetectFormat inspects path and returns the matching source type.
func DetectFormat(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrDataPathNotFound, path)
		}
		return "", fmt.Errorf("stat data path: %w", err)
	}
	if info.IsDir() {
		return config.SourceParquet, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return config.SourceParquet, nil
	case ".csv":
		return config.SourceCSV, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
}
