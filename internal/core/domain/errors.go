package domain

import "errors"

// ============================================================================
// Dataset Errors
// ============================================================================

var (
	ErrDatasetNotLoaded   = errors.New("dataset is not loaded")
	ErrDataPathNotFound   = errors.New("data path not found")
	ErrUnsupportedFormat  = errors.New("unsupported data file format")
	ErrNoDataFiles        = errors.New("no parquet files found in data directory")
	ErrMissingTableName   = errors.New("warehouse table name is required")
	ErrWarehouseDisabled  = errors.New("warehouse is not configured")
	ErrSourceNotWatchable = errors.New("source does not support watching")
)

// ============================================================================
// Search Errors
// ============================================================================

// Not found errors
var (
	ErrArticleNotFound = errors.New("article not found")
)

// Validation errors
var (
	ErrInvalidNewsID           = errors.New("news_id is required")
	ErrInvalidSentimentRange   = errors.New("sent_min must not be greater than sent_max")
	ErrUnsupportedExportFormat = errors.New("unsupported export format (use csv or xlsx)")
)
