package domain

import (
	"strings"
	"time"
)

// ColumnSet is the ordered set of columns present in a loaded dataset.
type ColumnSet struct {
	order []string
	index map[string]struct{}
}

// NewColumnSet builds a set from names, dropping duplicates.
func NewColumnSet(names ...string) ColumnSet {
	var cs ColumnSet
	for _, n := range names {
		cs.Add(n)
	}
	return cs
}

// Add inserts name if it is not yet present.
func (cs *ColumnSet) Add(name string) {
	if cs.index == nil {
		cs.index = make(map[string]struct{})
	}
	if _, ok := cs.index[name]; ok {
		return
	}
	cs.index[name] = struct{}{}
	cs.order = append(cs.order, name)
}

// Has reports whether name was present.
func (cs ColumnSet) Has(name string) bool {
	_, ok := cs.index[name]
	return ok
}

// List returns the column names in insertion order.
func (cs ColumnSet) List() []string {
	out := make([]string, len(cs.order))
	copy(out, cs.order)
	return out
}

// Len returns the number of columns.
func (cs ColumnSet) Len() int {
	return len(cs.order)
}

// Dataset is an immutable snapshot of the gold layer.
type Dataset struct {
	Articles     []*Article
	Columns      ColumnSet
	Source       string
	Files        int
	LoadedAt     time.Time
	LoadDuration time.Duration
}

// Normalize derives Year from Date and canonicalises stock symbols.
func (d *Dataset) Normalize() {
	hasDate := d.Columns.Has(ColDate)
	if hasDate {
		d.Columns.Add(ColYear)
	}
	for _, a := range d.Articles {
		if hasDate && a.Date != nil {
			y := a.Date.Year()
			a.Year = &y
		} else {
			a.Year = nil
		}
		a.StockSymbol = NormalizeSymbol(a.StockSymbol)
	}
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ScoreRange returns the min and max signed sentiment score. ok is false
// when the column is missing or holds no values.
func (d *Dataset) ScoreRange() (minScore, maxScore float64, ok bool) {
	if !d.Columns.Has(ColSentimentScoreSigned) {
		return 0, 0, false
	}
	for _, a := range d.Articles {
		if a.SentimentScoreSigned == nil {
			continue
		}
		s := *a.SentimentScoreSigned
		if !ok {
			minScore, maxScore, ok = s, s, true
			continue
		}
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}
	return minScore, maxScore, ok
}

// VisibleColumns lists the result table columns, in display order.
var VisibleColumns = []string{
	ColYear, ColDate, ColStockSymbol, ColNewsID, ColTitle,
	ColSentimentLabel, ColSentimentScoreSigned, ColAvgSentimentScore,
	ColPosRatio, ColNegRatio, ColArticleCount, ColPublisherCount,
	ColAvgTitleLen, ColSentimentCategory,
}

// SentimentColumns and MetadataColumns group the fields of a detail view.
var (
	SentimentColumns = []string{
		ColSentimentLabel, ColSentimentScoreSigned, ColAvgSentimentScore,
		ColPosRatio, ColNegRatio, ColSentimentCategory,
	}
	MetadataColumns = []string{
		ColYear, ColDate, ColStockSymbol, ColPublisher, ColURL,
		ColSampleNewsID, ColArticleCount, ColPublisherCount, ColAvgTitleLen,
	}
)

// Present filters cols down to those in the dataset, keeping order.
func (d *Dataset) Present(cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if d.Columns.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
