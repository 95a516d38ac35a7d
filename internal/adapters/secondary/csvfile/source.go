package csvfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"news-sentiment-service/internal/core/domain"
	"news-sentiment-service/internal/core/ports/output"
)

const utf8BOM = "\ufeff"

type articleSource struct {
	path string
}

// NewArticleSource reads a gold layer CSV export with a header row.
func NewArticleSource(path string) ports.WatchableSource {
	return &articleSource{path: path}
}

func (s *articleSource) Describe() string { return "csv:" + s.path }

func (s *articleSource) WatchPath() string { return s.path }

func (s *articleSource) Load(ctx context.Context) (*domain.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDataPathNotFound, s.path)
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	ds, err := Decode(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	ds.Source = s.Describe()
	ds.Files = 1

	log.WithFields(log.Fields{"path": s.path, "rows": len(ds.Articles)}).Debug("csv decoded")
	return ds, nil
}

// Decode reads a header row followed by records. Header names are matched
// against the known gold layer columns; the rest are skipped.
func Decode(ctx context.Context, r io.Reader) (*domain.Dataset, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &domain.Dataset{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	ds := &domain.Dataset{}
	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if domain.IsKnownColumn(h) {
			columns[i] = h
			ds.Columns.Add(h)
		}
	}

	for line := 2; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		a := &domain.Article{}
		for i, v := range record {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			a.Set(columns[i], v)
		}
		ds.Articles = append(ds.Articles, a)
	}
	return ds, nil
}
