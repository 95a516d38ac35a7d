package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"news-sentiment-service/internal/core/domain"
)

// InsightsService computes aggregate views over the whole dataset. Only the
// yearly summary honours a filter, and only the year.
type InsightsService struct {
	datasets DatasetReader
}

func NewInsightsService(datasets DatasetReader) *InsightsService {
	return &InsightsService{datasets: datasets}
}

// AnnualTrend returns the mean signed score per year, oldest first.
func (s *InsightsService) AnnualTrend(ctx context.Context) ([]domain.TrendPoint, error) {
	ds, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	points := []domain.TrendPoint{}
	if !ds.Columns.Has(domain.ColYear) || !ds.Columns.Has(domain.ColSentimentScoreSigned) {
		return points, nil
	}

	type acc struct {
		sum float64
		n   int
	}
	byYear := make(map[int]*acc)
	for _, a := range ds.Articles {
		if a.Year == nil || a.SentimentScoreSigned == nil {
			continue
		}
		g, ok := byYear[*a.Year]
		if !ok {
			g = &acc{}
			byYear[*a.Year] = g
		}
		g.sum += *a.SentimentScoreSigned
		g.n++
	}

	for y, g := range byYear {
		points = append(points, domain.TrendPoint{Year: y, AverageScore: round(g.sum/float64(g.n), 4)})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points, nil
}

// YearlySummary counts sentiment labels for one year, or for all years when
// year is empty, "all" or not a number.
func (s *InsightsService) YearlySummary(ctx context.Context, year string) (*domain.YearlySummary, error) {
	ds, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}

	y, byYear := ParseYear(year)
	summary := &domain.YearlySummary{Title: summaryTitle(year), Rows: []domain.LabelCount{}}
	byYear = byYear && ds.Columns.Has(domain.ColYear)

	if !ds.Columns.Has(domain.ColSentimentLabel) {
		return summary, nil
	}

	counts := make(map[string]int)
	total := 0
	for _, a := range ds.Articles {
		if byYear && (a.Year == nil || *a.Year != y) {
			continue
		}
		if a.SentimentLabel == "" {
			continue
		}
		counts[a.SentimentLabel]++
		total++
	}
	if total == 0 {
		return summary, nil
	}

	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	for _, l := range labels {
		summary.Rows = append(summary.Rows, domain.LabelCount{
			Sentiment:  l,
			Count:      counts[l],
			Percentage: fmt.Sprintf("%.1f%%", float64(counts[l])/float64(total)*100),
		})
	}
	dominant := labels[0]
	pct := round(float64(counts[dominant])/float64(total)*100, 1)
	summary.TotalArticles = total
	summary.DominantLabel = &dominant
	summary.DominantPct = &pct
	return summary, nil
}

// summaryTitle names the requested year as given. A value that is not a
// number still counts every year but keeps its own title.
func summaryTitle(year string) string {
	year = strings.TrimSpace(year)
	if year == "" || strings.EqualFold(year, "all") {
		return "Overall Trend for All Years"
	}
	return fmt.Sprintf("Overall Trend for %s", year)
}

// Options lists the distinct filter values present in the dataset.
func (s *InsightsService) Options(ctx context.Context) (*domain.FilterOptions, error) {
	ds, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}

	opts := &domain.FilterOptions{Years: []int{}, Symbols: []string{}}
	years := make(map[int]struct{})
	symbols := make(map[string]struct{})
	for _, a := range ds.Articles {
		if a.Year != nil {
			years[*a.Year] = struct{}{}
		}
		if a.StockSymbol != "" {
			symbols[a.StockSymbol] = struct{}{}
		}
	}
	if ds.Columns.Has(domain.ColYear) {
		for y := range years {
			opts.Years = append(opts.Years, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))
	}
	if ds.Columns.Has(domain.ColStockSymbol) {
		for sym := range symbols {
			opts.Symbols = append(opts.Symbols, sym)
		}
		sort.Strings(opts.Symbols)
	}
	if lo, hi, ok := ds.ScoreRange(); ok {
		opts.MinScore, opts.MaxScore = &lo, &hi
	}
	return opts, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
