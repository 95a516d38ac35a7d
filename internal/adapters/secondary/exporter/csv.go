package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"news-sentiment-service/internal/core/domain"
)

// utf8BOM lets Excel detect UTF-8 when opening the file directly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter renders results as comma-separated text.
type CSVWriter struct {
	BOMPrefix bool
}

func NewCSVWriter() *CSVWriter {
	return &CSVWriter{BOMPrefix: true}
}

func (w *CSVWriter) Format() string      { return "csv" }
func (w *CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }

func (w *CSVWriter) Write(out io.Writer, columns []string, articles []*domain.Article) error {
	if w.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(columns))
	for i, a := range articles {
		for j, c := range columns {
			record[j] = a.FormatValue(c)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
