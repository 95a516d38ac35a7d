package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-sentiment-service/internal/core/domain"
	"news-sentiment-service/internal/testutil"
)

// idWriter writes one news_id per line.
type idWriter struct{}

func (idWriter) Format() string      { return "ids" }
func (idWriter) ContentType() string { return "text/plain" }
func (idWriter) Write(w io.Writer, columns []string, articles []*domain.Article) error {
	lines := make([]string, 0, len(articles))
	for _, a := range articles {
		lines = append(lines, a.NewsID)
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func TestExportService_Export(t *testing.T) {
	search := NewSearchService(testutil.StaticDatasets{Dataset: testutil.SampleDataset()}, 2)
	metrics := new(testutil.MockMetrics)
	svc := NewExportService(search, metrics, idWriter{})

	metrics.On("ObserveExport", "ids", 5).Return()

	var buf bytes.Buffer
	// The search page cap does not apply to exports.
	n, err := svc.Export(context.Background(), SearchQuery{}, " IDS ", &buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "4\n3\n2\n1\n5", buf.String())
	metrics.AssertExpectations(t)
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	search := NewSearchService(testutil.StaticDatasets{Dataset: testutil.SampleDataset()}, 0)
	svc := NewExportService(search, nil, idWriter{})

	_, err := svc.Export(context.Background(), SearchQuery{}, "pdf", io.Discard)
	assert.ErrorIs(t, err, domain.ErrUnsupportedExportFormat)
}

func TestExportService_InvalidQuery(t *testing.T) {
	search := NewSearchService(testutil.StaticDatasets{Dataset: testutil.SampleDataset()}, 0)
	svc := NewExportService(search, nil, idWriter{})

	_, err := svc.Export(context.Background(), SearchQuery{SentMin: testutil.Score(2), SentMax: testutil.Score(1)}, "ids", io.Discard)
	assert.ErrorIs(t, err, domain.ErrInvalidSentimentRange)
}
