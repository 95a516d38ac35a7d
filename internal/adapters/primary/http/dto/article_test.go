package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-sentiment-service/internal/core/domain"
	"news-sentiment-service/internal/core/services"
)

func TestToSearchArticlesResponse(t *testing.T) {
	date := time.Date(2021, 5, 20, 0, 0, 0, 0, time.UTC)
	year := 2021
	score := -0.25
	a := &domain.Article{NewsID: "7", Date: &date, Year: &year, StockSymbol: "TSLA", Title: "Tesla", SentimentScoreSigned: &score}

	res := &services.SearchResult{
		Total:    12,
		Limit:    5,
		Offset:   5,
		Columns:  []string{domain.ColYear, domain.ColDate, domain.ColNewsID, domain.ColSentimentScoreSigned, domain.ColSentimentLabel},
		Articles: []*domain.Article{a},
	}

	got := ToSearchArticlesResponse(res)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 12, got.Total)
	assert.Equal(t, 6, got.NextOffset)

	item := got.Items[0]
	assert.Equal(t, 2021, item[domain.ColYear])
	assert.Equal(t, "2021-05-20T00:00:00Z", item[domain.ColDate])
	assert.Equal(t, "7", item[domain.ColNewsID])
	assert.Equal(t, -0.25, item[domain.ColSentimentScoreSigned])
	assert.Equal(t, "", item[domain.ColSentimentLabel])
	assert.NotContains(t, item, domain.ColStockSymbol)
}

func TestToSearchArticlesResponseNullNumbers(t *testing.T) {
	res := &services.SearchResult{
		Columns:  []string{domain.ColPosRatio},
		Articles: []*domain.Article{{NewsID: "1"}},
	}

	got := ToSearchArticlesResponse(res)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0][domain.ColPosRatio])
}

func TestToDatasetInfoResponse(t *testing.T) {
	info := &domain.DatasetInfo{
		Source:       "csv:/data/gold.csv",
		Rows:         3,
		Files:        1,
		Columns:      []string{"news_id"},
		LoadedAt:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		LoadDuration: 1500 * time.Millisecond,
	}

	got := ToDatasetInfoResponse(info)
	assert.Equal(t, "2024-01-02T03:04:05Z", got.LoadedAt)
	assert.Equal(t, int64(1500), got.LoadDurationMs)
}
