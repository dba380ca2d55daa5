package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/doc-extractor/internal/common"
	"github.com/joseph-ayodele/doc-extractor/internal/entity"
)

// spreadsheet structure is exact, no heuristic involved
const spreadsheetConfidence = 98

// SpreadsheetExtractor derives one table per non-empty sheet directly from the
// cells; one page per sheet.
type SpreadsheetExtractor struct {
	reader SheetReader
	logger *slog.Logger
}

func NewSpreadsheetExtractor(reader SheetReader, logger *slog.Logger) *SpreadsheetExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpreadsheetExtractor{reader: reader, logger: logger}
}

func (e *SpreadsheetExtractor) Extract(_ context.Context, path string) (ExtractionResult, error) {
	sheets, err := e.reader.ReadAllCells(path)
	if err != nil {
		e.logger.Error("spreadsheet read failed", "path", path, "error", err)
		return ExtractionResult{}, common.ExtractionFailedf(err)
	}

	var text strings.Builder
	var out []entity.Table
	for i, sheet := range sheets {
		rows := normalizeRows(sheet.Rows)
		if len(rows) == 0 {
			continue
		}
		// each sheet is its own page; one table per sheet, index 0
		out = append(out, entity.NewTable(i+1, 0, rows))

		text.WriteString(sheet.Name)
		text.WriteString("\n")
		for _, row := range rows {
			text.WriteString(strings.Join(row, "\t"))
			text.WriteString("\n")
		}
	}

	return ExtractionResult{
		Text:           text.String(),
		Tables:         out,
		PageCount:      len(sheets),
		Confidence:     spreadsheetConfidence,
		ProcessedPages: densePages(len(sheets)),
	}, nil
}

// normalizeRows pads ragged rows with empty strings to the sheet's widest row
// and drops rows that are entirely empty.
func normalizeRows(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	var out [][]string
	for _, row := range rows {
		filled := make([]string, width)
		empty := true
		for i := 0; i < width; i++ {
			if i < len(row) {
				filled[i] = row[i]
				if strings.TrimSpace(row[i]) != "" {
					empty = false
				}
			}
		}
		if !empty {
			out = append(out, filled)
		}
	}
	return out
}

// ExcelSheetReader reads workbooks via excelize.
type ExcelSheetReader struct{}

func (ExcelSheetReader) ReadAllCells(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}
