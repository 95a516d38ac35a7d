package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-sentiment-service/internal/core/domain"
	"news-sentiment-service/internal/testutil"
)

func ids(articles []*domain.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.NewsID)
	}
	return out
}

func newSearchService() *SearchService {
	return NewSearchService(testutil.StaticDatasets{Dataset: testutil.SampleDataset()}, 0)
}

func TestSearchService_NotLoaded(t *testing.T) {
	svc := NewSearchService(testutil.StaticDatasets{}, 0)

	_, err := svc.Search(context.Background(), SearchQuery{})
	assert.ErrorIs(t, err, domain.ErrDatasetNotLoaded)
}

func TestSearchService_Search(t *testing.T) {
	tests := []struct {
		name  string
		query SearchQuery
		want  []string
	}{
		{"no filters sorts newest first and drops unscored", SearchQuery{}, []string{"4", "3", "2", "1", "5"}},
		{"all year", SearchQuery{Year: "ALL"}, []string{"4", "3", "2", "1", "5"}},
		{"year", SearchQuery{Year: "2021"}, []string{"4", "3"}},
		{"unparseable year is ignored", SearchQuery{Year: "twenty"}, []string{"4", "3", "2", "1", "5"}},
		{"symbol is normalised", SearchQuery{Symbol: " aapl"}, []string{"3", "1"}},
		{"symbol matched after source trim", SearchQuery{Symbol: "MSFT"}, []string{"2"}},
		{"score range", SearchQuery{SentMin: testutil.Score(0), SentMax: testutil.Score(1)}, []string{"4", "1", "5"}},
		{"open upper bound", SearchQuery{SentMin: testutil.Score(0.5)}, []string{"1", "5"}},
		{"keyword is case-insensitive", SearchQuery{Keyword: "APPLE"}, []string{"3", "1"}},
		{"keyword is literal", SearchQuery{Keyword: "app.e"}, []string{}},
		{"news id", SearchQuery{NewsID: " 2 "}, []string{"2"}},
		{"combined", SearchQuery{Year: "2020", Symbol: "aapl", Keyword: "beats"}, []string{"1"}},
	}

	svc := newSearchService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Search(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res.Articles))
			assert.Equal(t, len(tt.want), res.Total)
		})
	}
}

func TestSearchService_DefaultRange(t *testing.T) {
	res, err := newSearchService().Search(context.Background(), SearchQuery{})
	require.NoError(t, err)

	require.NotNil(t, res.SentMin)
	require.NotNil(t, res.SentMax)
	assert.Equal(t, -0.6, *res.SentMin)
	assert.Equal(t, 0.9, *res.SentMax)
	assert.Equal(t, DefaultSearchLimit, res.Limit)
	assert.Equal(t, []string{
		domain.ColYear, domain.ColDate, domain.ColStockSymbol, domain.ColNewsID,
		domain.ColTitle, domain.ColSentimentLabel, domain.ColSentimentScoreSigned,
	}, res.Columns)
}

func TestSearchService_InvalidRange(t *testing.T) {
	_, err := newSearchService().Search(context.Background(), SearchQuery{SentMin: testutil.Score(1), SentMax: testutil.Score(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidSentimentRange)
}

func TestSearchService_Paging(t *testing.T) {
	svc := NewSearchService(testutil.StaticDatasets{Dataset: testutil.SampleDataset()}, 3)

	res, err := svc.Search(context.Background(), SearchQuery{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, []string{"3", "2"}, ids(res.Articles))

	res, err = svc.Search(context.Background(), SearchQuery{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Limit)
	assert.Len(t, res.Articles, 3)

	res, err = svc.Search(context.Background(), SearchQuery{Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Empty(t, res.Articles)
}

func TestSearchService_MissingScoreColumn(t *testing.T) {
	ds := testutil.SampleDataset()
	ds.Columns = domain.NewColumnSet(domain.ColNewsID, domain.ColDate, domain.ColYear, domain.ColTitle)
	svc := NewSearchService(testutil.StaticDatasets{Dataset: ds}, 0)

	res, err := svc.Search(context.Background(), SearchQuery{Symbol: "AAPL"})
	require.NoError(t, err)
	// Symbol column is absent, so the filter is skipped and unscored rows stay.
	assert.Equal(t, 6, res.Total)
	assert.Nil(t, res.SentMin)
}

func TestSearchService_Get(t *testing.T) {
	svc := newSearchService()

	detail, err := svc.Get(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Apple supply chain worries", detail.Article.Title)
	assert.Equal(t, []domain.Field{
		{Name: domain.ColSentimentLabel, Value: "negative"},
		{Name: domain.ColSentimentScoreSigned, Value: -0.4},
	}, detail.Sentiment)
	require.Len(t, detail.Metadata, 3)
	assert.Equal(t, domain.ColYear, detail.Metadata[0].Name)
	assert.Equal(t, 2021, detail.Metadata[0].Value)

	_, err = svc.Get(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)

	_, err = svc.Get(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidNewsID)
}

func TestParseYear(t *testing.T) {
	y, ok := ParseYear(" 2019 ")
	assert.True(t, ok)
	assert.Equal(t, 2019, y)

	for _, raw := range []string{"", "all", "All", "2019.5", "abc"} {
		_, ok := ParseYear(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseSentimentBounds(t *testing.T) {
	lo, hi := ParseSentimentBounds("-0.5", " 0.25 ")
	require.NotNil(t, lo)
	require.NotNil(t, hi)
	assert.Equal(t, -0.5, *lo)
	assert.Equal(t, 0.25, *hi)

	lo, hi = ParseSentimentBounds("", "0.3")
	assert.Nil(t, lo)
	require.NotNil(t, hi)
	assert.Equal(t, 0.3, *hi)

	// One bad bound drops both.
	lo, hi = ParseSentimentBounds("0.1", "high")
	assert.Nil(t, lo)
	assert.Nil(t, hi)

	lo, hi = ParseSentimentBounds("low", "0.9")
	assert.Nil(t, lo)
	assert.Nil(t, hi)
}
