package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Gold layer column names as written by the scoring notebook.
const (
	ColNewsID               = "news_id"
	ColDate                 = "Date"
	ColYear                 = "Year"
	ColStockSymbol          = "Stock_symbol"
	ColTitle                = "Article_title"
	ColPublisher            = "Publisher"
	ColURL                  = "Url"
	ColSampleNewsID         = "sample_news_id"
	ColSentimentLabel       = "sentiment_label"
	ColSentimentScoreSigned = "sentiment_score_signed"
	ColAvgSentimentScore    = "avg_sentiment_score"
	ColPosRatio             = "pos_ratio"
	ColNegRatio             = "neg_ratio"
	ColArticleCount         = "article_count"
	ColPublisherCount       = "publisher_count"
	ColAvgTitleLen          = "avg_title_len"
	ColSentimentCategory    = "sentiment_category"
)

// KnownColumns lists every column the service understands, in storage order.
var KnownColumns = []string{
	ColNewsID, ColDate, ColStockSymbol, ColTitle, ColPublisher, ColURL,
	ColSampleNewsID, ColSentimentLabel, ColSentimentScoreSigned,
	ColAvgSentimentScore, ColPosRatio, ColNegRatio, ColArticleCount,
	ColPublisherCount, ColAvgTitleLen, ColSentimentCategory,
}

// IsKnownColumn reports whether name is a gold layer column.
func IsKnownColumn(name string) bool {
	for _, c := range KnownColumns {
		if c == name {
			return true
		}
	}
	return false
}

// Article is one scored row of the gold layer. Pointer fields are nil when
// the source value was null or could not be parsed.
type Article struct {
	NewsID               string     `json:"news_id"`
	Date                 *time.Time `json:"date"`
	Year                 *int       `json:"year"`
	StockSymbol          string     `json:"stock_symbol"`
	Title                string     `json:"article_title"`
	Publisher            string     `json:"publisher"`
	URL                  string     `json:"url"`
	SampleNewsID         string     `json:"sample_news_id"`
	SentimentLabel       string     `json:"sentiment_label"`
	SentimentScoreSigned *float64   `json:"sentiment_score_signed"`
	AvgSentimentScore    *float64   `json:"avg_sentiment_score"`
	PosRatio             *float64   `json:"pos_ratio"`
	NegRatio             *float64   `json:"neg_ratio"`
	ArticleCount         *int64     `json:"article_count"`
	PublisherCount       *int64     `json:"publisher_count"`
	AvgTitleLen          *float64   `json:"avg_title_len"`
	SentimentCategory    string     `json:"sentiment_category"`
}

// Set assigns a raw source value to the field backing column. Values that
// cannot be coerced leave the field unset. Unknown columns are ignored.
func (a *Article) Set(column string, value any) {
	switch column {
	case ColNewsID:
		a.NewsID = coerceString(value)
	case ColDate:
		a.Date = coerceTime(value)
	case ColStockSymbol:
		a.StockSymbol = coerceString(value)
	case ColTitle:
		a.Title = coerceString(value)
	case ColPublisher:
		a.Publisher = coerceString(value)
	case ColURL:
		a.URL = coerceString(value)
	case ColSampleNewsID:
		a.SampleNewsID = coerceString(value)
	case ColSentimentLabel:
		a.SentimentLabel = coerceString(value)
	case ColSentimentScoreSigned:
		a.SentimentScoreSigned = coerceFloat(value)
	case ColAvgSentimentScore:
		a.AvgSentimentScore = coerceFloat(value)
	case ColPosRatio:
		a.PosRatio = coerceFloat(value)
	case ColNegRatio:
		a.NegRatio = coerceFloat(value)
	case ColArticleCount:
		a.ArticleCount = coerceInt(value)
	case ColPublisherCount:
		a.PublisherCount = coerceInt(value)
	case ColAvgTitleLen:
		a.AvgTitleLen = coerceFloat(value)
	case ColSentimentCategory:
		a.SentimentCategory = coerceString(value)
	}
}

// Value returns the field backing column in a form suitable for display or
// export. Nil is returned for null fields and unknown columns.
func (a *Article) Value(column string) any {
	switch column {
	case ColNewsID:
		return a.NewsID
	case ColDate:
		if a.Date == nil {
			return nil
		}
		return *a.Date
	case ColYear:
		if a.Year == nil {
			return nil
		}
		return *a.Year
	case ColStockSymbol:
		return a.StockSymbol
	case ColTitle:
		return a.Title
	case ColPublisher:
		return a.Publisher
	case ColURL:
		return a.URL
	case ColSampleNewsID:
		return a.SampleNewsID
	case ColSentimentLabel:
		return a.SentimentLabel
	case ColSentimentScoreSigned:
		return derefFloat(a.SentimentScoreSigned)
	case ColAvgSentimentScore:
		return derefFloat(a.AvgSentimentScore)
	case ColPosRatio:
		return derefFloat(a.PosRatio)
	case ColNegRatio:
		return derefFloat(a.NegRatio)
	case ColArticleCount:
		return derefInt(a.ArticleCount)
	case ColPublisherCount:
		return derefInt(a.PublisherCount)
	case ColAvgTitleLen:
		return derefFloat(a.AvgTitleLen)
	case ColSentimentCategory:
		return a.SentimentCategory
	}
	return nil
}

// FormatValue renders Value(column) as text. Null fields render as "".
func (a *Article) FormatValue(column string) string {
	switch v := a.Value(column).(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return cast.ToString(v)
	}
}

func coerceString(value any) string {
	if value == nil {
		return ""
	}
	if f, ok := value.(float64); ok && math.IsNaN(f) {
		return ""
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func coerceFloat(value any) *float64 {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		value = s
	}
	f, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func coerceInt(value any) *int64 {
	f := coerceFloat(value)
	if f == nil {
		return nil
	}
	n := int64(*f)
	return &n
}

func coerceTime(value any) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		return parseDate(v)
	}
	t, err := cast.ToTimeE(value)
	if err != nil || t.IsZero() {
		return nil
	}
	return &t
}

// dateLayouts are tried before cast's own list. They cover the text forms
// found in news datasets that cast does not accept, such as the
// "2023-12-16 22:00:00 UTC" timestamps of FNSPID and US-style dates.
var dateLayouts = []string{
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

func parseDate(s string) *time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	t, err := cast.ToTimeE(s)
	if err != nil {
		return nil
	}
	return &t
}

func derefFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func derefInt(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}
