package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-sentiment-service/internal/core/domain"
	"news-sentiment-service/internal/testutil"
)

func newInsightsService() *InsightsService {
	return NewInsightsService(testutil.StaticDatasets{Dataset: testutil.SampleDataset()})
}

func TestInsightsService_AnnualTrend(t *testing.T) {
	points, err := newInsightsService().AnnualTrend(context.Background())
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, 2020, points[0].Year)
	assert.InDelta(t, 0.15, points[0].AverageScore, 1e-9)
	assert.Equal(t, 2021, points[1].Year)
	assert.InDelta(t, -0.15, points[1].AverageScore, 1e-9)
}

func TestInsightsService_AnnualTrend_MissingColumns(t *testing.T) {
	ds := testutil.SampleDataset()
	ds.Columns = domain.NewColumnSet(domain.ColNewsID, domain.ColSentimentScoreSigned)
	svc := NewInsightsService(testutil.StaticDatasets{Dataset: ds})

	points, err := svc.AnnualTrend(context.Background())
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestInsightsService_YearlySummary_AllYears(t *testing.T) {
	summary, err := newInsightsService().YearlySummary(context.Background(), "all")
	require.NoError(t, err)

	assert.Equal(t, "Overall Trend for All Years", summary.Title)
	assert.Equal(t, 6, summary.TotalArticles)
	require.NotNil(t, summary.DominantLabel)
	// Three-way tie: labels are ordered alphabetically.
	assert.Equal(t, "negative", *summary.DominantLabel)
	assert.Equal(t, 33.3, *summary.DominantPct)
	assert.Equal(t, []domain.LabelCount{
		{Sentiment: "negative", Count: 2, Percentage: "33.3%"},
		{Sentiment: "neutral", Count: 2, Percentage: "33.3%"},
		{Sentiment: "positive", Count: 2, Percentage: "33.3%"},
	}, summary.Rows)
}

func TestInsightsService_YearlySummary_Year(t *testing.T) {
	summary, err := newInsightsService().YearlySummary(context.Background(), "2021")
	require.NoError(t, err)

	assert.Equal(t, "Overall Trend for 2021", summary.Title)
	assert.Equal(t, 3, summary.TotalArticles)
	assert.Equal(t, "neutral", *summary.DominantLabel)
	assert.Equal(t, 66.7, *summary.DominantPct)
	assert.Equal(t, []domain.LabelCount{
		{Sentiment: "neutral", Count: 2, Percentage: "66.7%"},
		{Sentiment: "negative", Count: 1, Percentage: "33.3%"},
	}, summary.Rows)
}

func TestInsightsService_YearlySummary_Empty(t *testing.T) {
	summary, err := newInsightsService().YearlySummary(context.Background(), "1999")
	require.NoError(t, err)

	assert.Equal(t, "Overall Trend for 1999", summary.Title)
	assert.Zero(t, summary.TotalArticles)
	assert.Nil(t, summary.DominantLabel)
	assert.Nil(t, summary.DominantPct)
	assert.Empty(t, summary.Rows)
}

func TestInsightsService_YearlySummary_NoLabelColumn(t *testing.T) {
	ds := testutil.SampleDataset()
	ds.Columns = domain.NewColumnSet(domain.ColNewsID, domain.ColDate, domain.ColYear)
	svc := NewInsightsService(testutil.StaticDatasets{Dataset: ds})

	summary, err := svc.YearlySummary(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, summary.TotalArticles)
	assert.Empty(t, summary.Rows)
}

func TestInsightsService_Options(t *testing.T) {
	opts, err := newInsightsService().Options(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{2021, 2020}, opts.Years)
	assert.Equal(t, []string{"AAPL", "MSFT", "TSLA"}, opts.Symbols)
	require.NotNil(t, opts.MinScore)
	assert.Equal(t, -0.6, *opts.MinScore)
	assert.Equal(t, 0.9, *opts.MaxScore)
}

func TestInsightsService_NotLoaded(t *testing.T) {
	svc := NewInsightsService(testutil.StaticDatasets{})

	_, err := svc.AnnualTrend(context.Background())
	assert.ErrorIs(t, err, domain.ErrDatasetNotLoaded)
	_, err = svc.YearlySummary(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrDatasetNotLoaded)
	_, err = svc.Options(context.Background())
	assert.ErrorIs(t, err, domain.ErrDatasetNotLoaded)
}

func TestInsightsService_YearlySummary_UnparsedYearKeepsTitle(t *testing.T) {
	summary, err := newInsightsService().YearlySummary(context.Background(), " abc ")
	require.NoError(t, err)

	assert.Equal(t, "Overall Trend for abc", summary.Title)
	// Every labelled article is counted, as for all years.
	assert.Equal(t, 6, summary.TotalArticles)
}
