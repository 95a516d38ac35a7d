package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"news-sentiment-service/internal/core/domain"
)

// columnTypes maps gold layer columns to warehouse column types.
var columnTypes = map[string]string{
	domain.ColNewsID:               "TEXT",
	domain.ColDate:                 "TIMESTAMPTZ",
	domain.ColStockSymbol:          "TEXT",
	domain.ColTitle:                "TEXT",
	domain.ColPublisher:            "TEXT",
	domain.ColURL:                  "TEXT",
	domain.ColSampleNewsID:         "TEXT",
	domain.ColSentimentLabel:       "TEXT",
	domain.ColSentimentScoreSigned: "DOUBLE PRECISION",
	domain.ColAvgSentimentScore:    "DOUBLE PRECISION",
	domain.ColPosRatio:             "DOUBLE PRECISION",
	domain.ColNegRatio:             "DOUBLE PRECISION",
	domain.ColArticleCount:         "BIGINT",
	domain.ColPublisherCount:       "BIGINT",
	domain.ColAvgTitleLen:          "DOUBLE PRECISION",
	domain.ColSentimentCategory:    "TEXT",
}

// ArticleRepository reads and writes the gold layer in a warehouse table.
type ArticleRepository struct {
	pool  *pgxpool.Pool
	table pgx.Identifier
}

// NewArticleRepository accepts a table name, optionally schema-qualified.
func NewArticleRepository(pool *pgxpool.Pool, table string) (*ArticleRepository, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, domain.ErrMissingTableName
	}
	return &ArticleRepository{pool: pool, table: pgx.Identifier(strings.Split(table, "."))}, nil
}

func (r *ArticleRepository) Describe() string {
	return "postgres:" + strings.Join(r.table, ".")
}

func (r *ArticleRepository) Load(ctx context.Context) (*domain.Dataset, error) {
	query := fmt.Sprintf("SELECT * FROM %s", r.table.Sanitize())
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	ds := &domain.Dataset{Source: r.Describe()}
	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, fd := range fields {
		if domain.IsKnownColumn(fd.Name) {
			names[i] = fd.Name
			ds.Columns.Add(fd.Name)
		}
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		a := &domain.Article{}
		for i, v := range values {
			if names[i] == "" {
				continue
			}
			a.Set(names[i], fromPG(v))
		}
		ds.Articles = append(ds.Articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return ds, nil
}

// Write creates the table when missing and bulk-copies the dataset.
func (r *ArticleRepository) Write(ctx context.Context, ds *domain.Dataset, truncate bool) (int64, error) {
	columns := ds.Present(domain.KnownColumns)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, createTableSQL(r.table, columns)); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}
	if truncate {
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+r.table.Sanitize()); err != nil {
			return 0, fmt.Errorf("truncate table: %w", err)
		}
	}

	n, err := tx.CopyFrom(ctx, r.table, columns, pgx.CopyFromSlice(len(ds.Articles), func(i int) ([]any, error) {
		a := ds.Articles[i]
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = toPG(c, a.Value(c))
		}
		return row, nil
	}))
	if err != nil {
		return 0, fmt.Errorf("copy articles: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

func createTableSQL(table pgx.Identifier, columns []string) string {
	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		defs = append(defs, pgx.Identifier{c}.Sanitize()+" "+columnTypes[c])
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table.Sanitize(), strings.Join(defs, ", "))
}

func fromPG(v any) any {
	switch n := v.(type) {
	case pgtype.Numeric:
		f, err := n.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case float32:
		return float64(n)
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	}
	return v
}

func toPG(column string, v any) any {
	if s, ok := v.(string); ok && s == "" && columnTypes[column] == "TEXT" {
		return nil
	}
	return v
}
