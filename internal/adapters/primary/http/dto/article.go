package dto

import (
	"time"

	"news-sentiment-service/internal/core/domain"
	"news-sentiment-service/internal/core/services"
)

// ============================================================================
// Response DTOs
// ============================================================================

// SearchArticlesResponse is one page of search results. Each item holds the
// visible columns only, keyed by gold layer column name.
type SearchArticlesResponse struct {
	Items      []map[string]any `json:"items"`
	Columns    []string         `json:"columns"`
	Total      int              `json:"total"`
	PageSize   int              `json:"page_size"`
	Offset     int              `json:"offset"`
	NextOffset int              `json:"next_offset"`
	SentMin    *float64         `json:"sent_min"`
	SentMax    *float64         `json:"sent_max"`
}

type FieldResponse struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ArticleDetailResponse splits an article into sentiment metrics and
// metadata, like the detail panel of the viewer.
type ArticleDetailResponse struct {
	NewsID    string          `json:"news_id"`
	Title     string          `json:"article_title"`
	Sentiment []FieldResponse `json:"sentiment"`
	Metadata  []FieldResponse `json:"metadata"`
}

type TrendResponse struct {
	Items []domain.TrendPoint `json:"items"`
}

type DatasetInfoResponse struct {
	Source         string   `json:"source"`
	Rows           int      `json:"rows"`
	Files          int      `json:"files"`
	Columns        []string `json:"columns"`
	LoadedAt       string   `json:"loaded_at"`
	LoadDurationMs int64    `json:"load_duration_ms"`
}

// ============================================================================
// Mappers
// ============================================================================

func ToSearchArticlesResponse(res *services.SearchResult) SearchArticlesResponse {
	items := make([]map[string]any, 0, len(res.Articles))
	for _, a := range res.Articles {
		row := make(map[string]any, len(res.Columns))
		for _, c := range res.Columns {
			row[c] = jsonValue(a.Value(c))
		}
		items = append(items, row)
	}
	return SearchArticlesResponse{
		Items:      items,
		Columns:    res.Columns,
		Total:      res.Total,
		PageSize:   res.Limit,
		Offset:     res.Offset,
		NextOffset: res.Offset + len(items),
		SentMin:    res.SentMin,
		SentMax:    res.SentMax,
	}
}

func ToArticleDetailResponse(d *domain.ArticleDetail) ArticleDetailResponse {
	return ArticleDetailResponse{
		NewsID:    d.Article.NewsID,
		Title:     d.Article.Title,
		Sentiment: toFieldResponses(d.Sentiment),
		Metadata:  toFieldResponses(d.Metadata),
	}
}

func ToDatasetInfoResponse(info *domain.DatasetInfo) DatasetInfoResponse {
	return DatasetInfoResponse{
		Source:         info.Source,
		Rows:           info.Rows,
		Files:          info.Files,
		Columns:        info.Columns,
		LoadedAt:       info.LoadedAt.Format(time.RFC3339),
		LoadDurationMs: info.LoadDuration.Milliseconds(),
	}
}

func toFieldResponses(fields []domain.Field) []FieldResponse {
	out := make([]FieldResponse, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldResponse{Name: f.Name, Value: jsonValue(f.Value)})
	}
	return out
}

func jsonValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return v
}
