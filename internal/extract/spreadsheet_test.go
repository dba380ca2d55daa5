package extract

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/doc-extractor/internal/common"
)

type fakeSheetReader struct {
	sheets []Sheet
	err    error
}

func (f fakeSheetReader) ReadAllCells(string) ([]Sheet, error) { return f.sheets, f.err }

func TestSpreadsheetExtractorEmptySecondSheet(t *testing.T) {
	reader := fakeSheetReader{sheets: []Sheet{
		{Name: "Sheet1", Rows: [][]string{{"a", "b"}, {"1", "2"}}},
		{Name: "Sheet2", Rows: nil},
	}}

	res, err := NewSpreadsheetExtractor(reader, nil).Extract(context.Background(), "book.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PageCount != 2 {
		t.Errorf("pageCount = %d, want 2 (one page per sheet)", res.PageCount)
	}
	if !reflect.DeepEqual(res.ProcessedPages, []int{1, 2}) {
		t.Errorf("processedPages = %v, want [1 2]", res.ProcessedPages)
	}
	if len(res.Tables) != 1 {
		t.Fatalf("expected only the non-empty sheet to contribute a table, got %d", len(res.Tables))
	}
	if res.Tables[0].PageNumber != 1 || res.Tables[0].TableIndex != 0 {
		t.Errorf("table page/index = %d/%d, want 1/0", res.Tables[0].PageNumber, res.Tables[0].TableIndex)
	}
	if res.Confidence != 98 {
		t.Errorf("confidence = %d, want 98", res.Confidence)
	}
}

func TestSpreadsheetExtractorPadsRaggedRowsAndDropsEmptyOnes(t *testing.T) {
	reader := fakeSheetReader{sheets: []Sheet{
		{Name: "Sheet1", Rows: [][]string{
			{"h1", "h2", "h3"},
			{"x"},
			{"", "", ""},
			{"", " ", ""},
		}},
	}}

	res, err := NewSpreadsheetExtractor(reader, nil).Extract(context.Background(), "book.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"h1", "h2", "h3"}, {"x", "", ""}}
	if !reflect.DeepEqual(res.Tables[0].Data, want) {
		t.Errorf("data = %v, want %v", res.Tables[0].Data, want)
	}
	if res.Tables[0].Structure.Rows != 2 || res.Tables[0].Structure.Columns != 3 {
		t.Errorf("structure = %+v, want rows=2 columns=3", res.Tables[0].Structure)
	}
}

func TestSpreadsheetExtractorReadError(t *testing.T) {
	reader := fakeSheetReader{err: errors.New("corrupt workbook")}
	_, err := NewSpreadsheetExtractor(reader, nil).Extract(context.Background(), "book.xlsx")
	if !errors.Is(err, common.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExcelSheetReaderReadsWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")

	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "name"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "B1", "qty"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "A2", "apple"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "B2", "3"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Sheet2"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	sheets, err := ExcelSheetReader{}.ReadAllCells(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %d", len(sheets))
	}
	if sheets[0].Name != "Sheet1" {
		t.Errorf("sheet name = %q, want Sheet1", sheets[0].Name)
	}
	if len(sheets[0].Rows) != 2 || sheets[0].Rows[1][0] != "apple" {
		t.Errorf("unexpected rows: %v", sheets[0].Rows)
	}
	if len(sheets[1].Rows) != 0 {
		t.Errorf("Sheet2 should be empty, got %v", sheets[1].Rows)
	}
}
