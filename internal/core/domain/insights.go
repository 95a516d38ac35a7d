package domain

import "time"

// TrendPoint is the mean signed sentiment score of one year.
type TrendPoint struct {
	Year         int     `json:"year"`
	AverageScore float64 `json:"average_score"`
}

// LabelCount is one row of the sentiment breakdown.
type LabelCount struct {
	Sentiment  string `json:"sentiment"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// YearlySummary is the label distribution for a year, or for all years.
type YearlySummary struct {
	Title         string       `json:"title"`
	TotalArticles int          `json:"total_articles"`
	DominantLabel *string      `json:"dominant_label"`
	DominantPct   *float64     `json:"dominant_pct"`
	Rows          []LabelCount `json:"summary_rows"`
}

// FilterOptions holds the values needed to build search controls.
type FilterOptions struct {
	Years    []int    `json:"years"`
	Symbols  []string `json:"symbols"`
	MinScore *float64 `json:"min_score"`
	MaxScore *float64 `json:"max_score"`
}

// DatasetInfo describes the loaded snapshot.
type DatasetInfo struct {
	Source       string        `json:"source"`
	Rows         int           `json:"rows"`
	Files        int           `json:"files"`
	Columns      []string      `json:"columns"`
	LoadedAt     time.Time     `json:"loaded_at"`
	LoadDuration time.Duration `json:"-"`
}

// Field is a named value in a detail view.
type Field struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ArticleDetail is a single article split into sentiment and metadata blocks.
type ArticleDetail struct {
	Article   *Article `json:"article"`
	Sentiment []Field  `json:"sentiment"`
	Metadata  []Field  `json:"metadata"`
}
