package exporter

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"news-sentiment-service/internal/core/domain"
)

// SheetName is the worksheet holding exported results.
const SheetName = "results"

// XLSXWriter renders results as an Excel workbook with one sheet.
type XLSXWriter struct{}

func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

func (w *XLSXWriter) Format() string { return "xlsx" }
func (w *XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (w *XLSXWriter) Write(out io.Writer, columns []string, articles []*domain.Article) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, a := range articles {
		row := make([]interface{}, len(columns))
		for j, c := range columns {
			row[j] = cellValue(a, c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	return f.Write(out)
}

// cellValue keeps numbers numeric so that spreadsheets can sort them.
func cellValue(a *domain.Article, column string) interface{} {
	switch v := a.Value(column).(type) {
	case nil:
		return nil
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return v
	}
}
