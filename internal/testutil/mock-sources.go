package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"news-sentiment-service/internal/core/domain"
)

// MockArticleSource is a mock of ArticleSource.
type MockArticleSource struct {
	mock.Mock
}

func (m *MockArticleSource) Load(ctx context.Context) (*domain.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dataset), args.Error(1)
}

func (m *MockArticleSource) Describe() string {
	return "mock"
}

// MockMetrics is a mock of MetricsRecorder.
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) ObserveLoad(success bool, rows int, duration time.Duration) {
	m.Called(success, rows, duration)
}

func (m *MockMetrics) ObserveExport(format string, rows int) {
	m.Called(format, rows)
}

// StaticDatasets serves a fixed snapshot, or ErrDatasetNotLoaded when nil.
type StaticDatasets struct {
	Dataset *domain.Dataset
}

func (s StaticDatasets) Current() (*domain.Dataset, error) {
	if s.Dataset == nil {
		return nil, domain.ErrDatasetNotLoaded
	}
	return s.Dataset, nil
}

// Row is a compact fixture description of one gold layer row.
type Row struct {
	ID     string
	Date   string
	Symbol string
	Title  string
	Label  string
	Score  *float64
}

// Score returns a pointer for Row.Score.
func Score(v float64) *float64 { return &v }

// NewDataset builds a normalised dataset with the core columns present.
func NewDataset(rows ...Row) *domain.Dataset {
	ds := &domain.Dataset{
		Source: "fixture",
		Columns: domain.NewColumnSet(
			domain.ColNewsID, domain.ColDate, domain.ColStockSymbol,
			domain.ColTitle, domain.ColSentimentLabel, domain.ColSentimentScoreSigned,
		),
	}
	for _, r := range rows {
		a := &domain.Article{}
		a.Set(domain.ColNewsID, r.ID)
		a.Set(domain.ColDate, r.Date)
		a.Set(domain.ColStockSymbol, r.Symbol)
		a.Set(domain.ColTitle, r.Title)
		a.Set(domain.ColSentimentLabel, r.Label)
		if r.Score != nil {
			a.Set(domain.ColSentimentScoreSigned, *r.Score)
		}
		ds.Articles = append(ds.Articles, a)
	}
	ds.Normalize()
	return ds
}

// SampleDataset is a small gold layer spanning two years and three tickers.
func SampleDataset() *domain.Dataset {
	return NewDataset(
		Row{ID: "1", Date: "2020-03-01", Symbol: "aapl", Title: "Apple beats expectations", Label: "positive", Score: Score(0.9)},
		Row{ID: "2", Date: "2020-06-15", Symbol: " msft ", Title: "Microsoft cloud slows", Label: "negative", Score: Score(-0.6)},
		Row{ID: "3", Date: "2021-01-10", Symbol: "AAPL", Title: "Apple supply chain worries", Label: "negative", Score: Score(-0.4)},
		Row{ID: "4", Date: "2021-05-20", Symbol: "TSLA", Title: "Tesla deliveries steady", Label: "neutral", Score: Score(0.1)},
		Row{ID: "5", Date: "", Symbol: "TSLA", Title: "Undated tesla note", Label: "positive", Score: Score(0.5)},
		Row{ID: "6", Date: "2021-07-01", Symbol: "AAPL", Title: "Apple unscored item", Label: "neutral"},
	)
}
