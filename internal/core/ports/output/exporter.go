package ports

import (
	"io"

	"news-sentiment-service/internal/core/domain"
)

// TableWriter renders search results as a downloadable table.
type TableWriter interface {
	Format() string
	ContentType() string
	Write(w io.Writer, columns []string, articles []*domain.Article) error
}
