package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"news-sentiment-service/internal/core/domain"
	"news-sentiment-service/internal/core/ports/output"
)

// ExportService renders every match of a query with one of the registered
// table writers.
type ExportService struct {
	search  *SearchService
	writers map[string]ports.TableWriter
	metrics ports.MetricsRecorder
}

func NewExportService(search *SearchService, metrics ports.MetricsRecorder, writers ...ports.TableWriter) *ExportService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	m := make(map[string]ports.TableWriter, len(writers))
	for _, w := range writers {
		m[w.Format()] = w
	}
	return &ExportService{search: search, writers: m, metrics: metrics}
}

// Writer returns the writer for format, or ErrUnsupportedExportFormat.
func (s *ExportService) Writer(format string) (ports.TableWriter, error) {
	w, ok := s.writers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, domain.ErrUnsupportedExportFormat
	}
	return w, nil
}

// Export writes the matches of q to out and returns the row count.
func (s *ExportService) Export(ctx context.Context, q SearchQuery, format string, out io.Writer) (int, error) {
	w, err := s.Writer(format)
	if err != nil {
		return 0, err
	}
	articles, columns, err := s.search.Matches(ctx, q)
	if err != nil {
		return 0, err
	}
	if err := w.Write(out, columns, articles); err != nil {
		return 0, fmt.Errorf("write %s export: %w", w.Format(), err)
	}
	s.metrics.ObserveExport(w.Format(), len(articles))
	return len(articles), nil
}
