package parquetfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/deprecated"
	"github.com/parquet-go/parquet-go/format"
	log "github.com/sirupsen/logrus"

	"news-sentiment-service/internal/core/domain"
	"news-sentiment-service/internal/core/ports/output"
)

const readBatchSize = 256

// julianUnixEpoch is the Julian day number of 1970-01-01, used by INT96.
const julianUnixEpoch = 2440588

type articleSource struct {
	path string
}

// NewArticleSource reads a folder of parquet files, or a single file.
func NewArticleSource(path string) ports.WatchableSource {
	return &articleSource{path: path}
}

func (s *articleSource) Describe() string { return "parquet:" + s.path }

func (s *articleSource) WatchPath() string { return s.path }

func (s *articleSource) Load(ctx context.Context) (*domain.Dataset, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"path": s.path, "files": len(files)}).Info("loading parquet dataset")

	ds := &domain.Dataset{Source: s.Describe(), Files: len(files)}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readFile(f, ds); err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Base(f), err)
		}
	}
	return ds, nil
}

func (s *articleSource) files() ([]string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDataPathNotFound, s.path)
		}
		return nil, fmt.Errorf("stat data path: %w", err)
	}
	if !info.IsDir() {
		return []string{s.path}, nil
	}

	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".parquet") {
			continue
		}
		files = append(files, filepath.Join(s.path, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoDataFiles, s.path)
	}
	sort.Strings(files)
	return files, nil
}

// columnDecoder turns a leaf column value into a Go value for Article.Set.
type columnDecoder struct {
	name    string
	logical *format.LogicalType
}

func readFile(path string, ds *domain.Dataset) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return fmt.Errorf("open parquet: %w", err)
	}

	decoders := leafDecoders(pf.Schema())
	for _, d := range decoders {
		if d != nil {
			ds.Columns.Add(d.name)
		}
	}

	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(rg, decoders, ds); err != nil {
			return err
		}
	}
	return nil
}

func readRowGroup(rg parquet.RowGroup, decoders []*columnDecoder, ds *domain.Dataset) error {
	rows := rg.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, readBatchSize)
	for {
		n, err := rows.ReadRows(buf)
		for i := 0; i < n; i++ {
			a := &domain.Article{}
			for _, v := range buf[i] {
				c := v.Column()
				if c < 0 || c >= len(decoders) || decoders[c] == nil {
					continue
				}
				a.Set(decoders[c].name, decoders[c].decode(v))
			}
			ds.Articles = append(ds.Articles, a)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read rows: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}

// leafDecoders indexes decoders by leaf column index. Columns the service
// does not know about get a nil entry.
func leafDecoders(schema *parquet.Schema) []*columnDecoder {
	paths := schema.Columns()
	decoders := make([]*columnDecoder, len(paths))
	for _, path := range paths {
		leaf, ok := schema.Lookup(path...)
		if !ok {
			continue
		}
		name := strings.Join(path, ".")
		if !domain.IsKnownColumn(name) {
			continue
		}
		if leaf.ColumnIndex < 0 || leaf.ColumnIndex >= len(decoders) {
			continue
		}
		decoders[leaf.ColumnIndex] = &columnDecoder{
			name:    name,
			logical: leaf.Node.Type().LogicalType(),
		}
	}
	return decoders
}

func (d *columnDecoder) decode(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		if d.logical != nil && d.logical.Date != nil {
			return time.Unix(int64(v.Int32())*86400, 0).UTC()
		}
		return int64(v.Int32())
	case parquet.Int64:
		if d.logical != nil && d.logical.Timestamp != nil {
			return timestampToTime(v.Int64(), d.logical.Timestamp.Unit)
		}
		return v.Int64()
	case parquet.Int96:
		return int96ToTime(v.Int96())
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	}
	return nil
}

func timestampToTime(n int64, unit format.TimeUnit) time.Time {
	switch {
	case unit.Millis != nil:
		return time.UnixMilli(n).UTC()
	case unit.Micros != nil:
		return time.UnixMicro(n).UTC()
	default:
		return time.Unix(0, n).UTC()
	}
}

// int96ToTime decodes the legacy Impala timestamp: nanoseconds of the day in
// the low 8 bytes, Julian day in the high 4.
func int96ToTime(v deprecated.Int96) time.Time {
	nanos := int64(uint64(v[1])<<32 | uint64(v[0]))
	days := int64(v[2]) - julianUnixEpoch
	return time.Unix(days*86400, nanos).UTC()
}
