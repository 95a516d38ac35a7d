package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-sentiment-service/internal/core/domain"
)

const sample = "\ufeffnews_id,Date,Stock_symbol,Article_title,sentiment_label,sentiment_score_signed,extra\n" +
	"101,2020-06-05 06:30:54,aapl,\"Apple, Inc. rallies\",positive,0.82,x\n" +
	"102,,msft,Microsoft flat,neutral,,y\n"

func TestDecode(t *testing.T) {
	ds, err := Decode(context.Background(), strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{
		domain.ColNewsID, domain.ColDate, domain.ColStockSymbol,
		domain.ColTitle, domain.ColSentimentLabel, domain.ColSentimentScoreSigned,
	}, ds.Columns.List())
	require.Len(t, ds.Articles, 2)

	a := ds.Articles[0]
	assert.Equal(t, "101", a.NewsID)
	assert.Equal(t, "Apple, Inc. rallies", a.Title)
	require.NotNil(t, a.Date)
	assert.Equal(t, 2020, a.Date.Year())
	require.NotNil(t, a.SentimentScoreSigned)
	assert.Equal(t, 0.82, *a.SentimentScoreSigned)

	b := ds.Articles[1]
	assert.Nil(t, b.Date)
	assert.Nil(t, b.SentimentScoreSigned)
}

func TestDecode_Empty(t *testing.T) {
	ds, err := Decode(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, ds.Articles)
	assert.Zero(t, ds.Columns.Len())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gold.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	src := NewArticleSource(path)
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, ds.Articles, 2)
	assert.Equal(t, 1, ds.Files)
	assert.Equal(t, "csv:"+path, ds.Source)
	assert.Equal(t, path, src.WatchPath())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewArticleSource(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataPathNotFound)
}

func TestDecode_UTCSuffixDates(t *testing.T) {
	data := "Date,Article_title,Stock_symbol\n" +
		"2023-12-16 22:00:00 UTC,Nvidia hits record,NVDA\n" +
		"12/01/2023,Older note,NVDA\n"

	ds, err := Decode(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	ds.Normalize()
	require.Len(t, ds.Articles, 2)

	a := ds.Articles[0]
	require.NotNil(t, a.Date)
	assert.Equal(t, time.Date(2023, 12, 16, 22, 0, 0, 0, time.UTC), a.Date.UTC())
	require.NotNil(t, a.Year)
	assert.Equal(t, 2023, *a.Year)

	b := ds.Articles[1]
	require.NotNil(t, b.Date)
	assert.Equal(t, time.December, b.Date.Month())
	assert.Equal(t, 1, b.Date.Day())
}
