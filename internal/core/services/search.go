package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"news-sentiment-service/internal/core/domain"
)

const (
	DefaultSearchLimit = 200
	DefaultMaxLimit    = 1000
)

// SearchQuery carries the raw filter values. Empty strings and nil bounds
// mean "no filter".
type SearchQuery struct {
	Year    string
	Symbol  string
	SentMin *float64
	SentMax *float64
	Keyword string
	NewsID  string
	Limit   int
	Offset  int
}

// SearchResult is one page of matches.
type SearchResult struct {
	Total    int
	Limit    int
	Offset   int
	Columns  []string
	SentMin  *float64
	SentMax  *float64
	Articles []*domain.Article
}

// SearchService filters the gold layer snapshot.
type SearchService struct {
	datasets DatasetReader
	maxLimit int
}

func NewSearchService(datasets DatasetReader, maxLimit int) *SearchService {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	return &SearchService{datasets: datasets, maxLimit: maxLimit}
}

func (s *SearchService) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	ds, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}

	matches, minScore, maxScore, err := filterArticles(ds, q)
	if err != nil {
		return nil, err
	}

	if q.Limit <= 0 {
		q.Limit = DefaultSearchLimit
	}
	if q.Limit > s.maxLimit {
		q.Limit = s.maxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	page := []*domain.Article{}
	if q.Offset < len(matches) {
		end := q.Offset + q.Limit
		if end > len(matches) {
			end = len(matches)
		}
		page = matches[q.Offset:end]
	}

	return &SearchResult{
		Total:    len(matches),
		Limit:    q.Limit,
		Offset:   q.Offset,
		Columns:  ds.Present(domain.VisibleColumns),
		SentMin:  minScore,
		SentMax:  maxScore,
		Articles: page,
	}, nil
}

// Matches returns every match without paging, plus the visible columns.
func (s *SearchService) Matches(ctx context.Context, q SearchQuery) ([]*domain.Article, []string, error) {
	ds, err := s.datasets.Current()
	if err != nil {
		return nil, nil, err
	}
	matches, _, _, err := filterArticles(ds, q)
	if err != nil {
		return nil, nil, err
	}
	return matches, ds.Present(domain.VisibleColumns), nil
}

// Get returns the first article with the given id.
func (s *SearchService) Get(ctx context.Context, newsID string) (*domain.ArticleDetail, error) {
	newsID = strings.TrimSpace(newsID)
	if newsID == "" {
		return nil, domain.ErrInvalidNewsID
	}
	ds, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	if !ds.Columns.Has(domain.ColNewsID) {
		return nil, domain.ErrArticleNotFound
	}
	for _, a := range ds.Articles {
		if a.NewsID == newsID {
			return &domain.ArticleDetail{
				Article:   a,
				Sentiment: fields(ds, a, domain.SentimentColumns),
				Metadata:  fields(ds, a, domain.MetadataColumns),
			}, nil
		}
	}
	return nil, domain.ErrArticleNotFound
}

func fields(ds *domain.Dataset, a *domain.Article, cols []string) []domain.Field {
	present := ds.Present(cols)
	out := make([]domain.Field, 0, len(present))
	for _, c := range present {
		out = append(out, domain.Field{Name: c, Value: a.Value(c)})
	}
	return out
}

// ParseYear interprets a year filter. ok is false for "", "all" and values
// that are not integers, all of which mean "every year".
func ParseYear(raw string) (year int, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return 0, false
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return y, true
}

// ParseSentimentBounds reads the sent_min and sent_max filter values. Blank
// values leave that bound open. If either value is not a number both bounds
// are dropped, so the filter falls back to the full dataset range.
func ParseSentimentBounds(rawMin, rawMax string) (minScore, maxScore *float64) {
	lo, okLo := parseBound(rawMin)
	hi, okHi := parseBound(rawMax)
	if !okLo || !okHi {
		return nil, nil
	}
	return lo, hi
}

func parseBound(raw string) (*float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func parseSymbol(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return "", false
	}
	return domain.NormalizeSymbol(raw), true
}

// filterArticles applies the filters in order and sorts newest first. It
// also returns the score bounds that were applied, if any.
func filterArticles(ds *domain.Dataset, q SearchQuery) ([]*domain.Article, *float64, *float64, error) {
	year, byYear := ParseYear(q.Year)
	byYear = byYear && ds.Columns.Has(domain.ColYear)

	symbol, bySymbol := parseSymbol(q.Symbol)
	bySymbol = bySymbol && ds.Columns.Has(domain.ColStockSymbol)

	var minScore, maxScore *float64
	if ds.Columns.Has(domain.ColSentimentScoreSigned) {
		lo, hi, _ := ds.ScoreRange()
		if q.SentMin != nil {
			lo = *q.SentMin
		}
		if q.SentMax != nil {
			hi = *q.SentMax
		}
		if lo > hi {
			return nil, nil, nil, domain.ErrInvalidSentimentRange
		}
		minScore, maxScore = &lo, &hi
	}

	keyword := strings.ToLower(strings.TrimSpace(q.Keyword))
	byKeyword := keyword != "" && ds.Columns.Has(domain.ColTitle)

	newsID := strings.TrimSpace(q.NewsID)
	byNewsID := newsID != "" && ds.Columns.Has(domain.ColNewsID)

	matches := make([]*domain.Article, 0, len(ds.Articles))
	for _, a := range ds.Articles {
		if byYear && (a.Year == nil || *a.Year != year) {
			continue
		}
		if bySymbol && a.StockSymbol != symbol {
			continue
		}
		if minScore != nil {
			if a.SentimentScoreSigned == nil {
				continue
			}
			if sc := *a.SentimentScoreSigned; sc < *minScore || sc > *maxScore {
				continue
			}
		}
		if byKeyword && !strings.Contains(strings.ToLower(a.Title), keyword) {
			continue
		}
		if byNewsID && a.NewsID != newsID {
			continue
		}
		matches = append(matches, a)
	}

	if ds.Columns.Has(domain.ColDate) {
		sortNewestFirst(matches)
	}
	return matches, minScore, maxScore, nil
}

func sortNewestFirst(articles []*domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i].Date, articles[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
