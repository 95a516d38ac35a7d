package ports

import (
	"context"

	"news-sentiment-service/internal/core/domain"
)

// ArticleSource loads the scored gold layer into a dataset snapshot.
type ArticleSource interface {
	Load(ctx context.Context) (*domain.Dataset, error)
	// Describe returns a human-readable location, e.g. a path or table.
	Describe() string
}

// WatchableSource is a file-backed source whose location can be watched.
type WatchableSource interface {
	ArticleSource
	WatchPath() string
}

// ArticleSink writes a dataset into a warehouse table.
type ArticleSink interface {
	Write(ctx context.Context, ds *domain.Dataset, truncate bool) (int64, error)
}
