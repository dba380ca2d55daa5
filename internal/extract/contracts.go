// Package extract turns supported document files into a uniform
// ExtractionResult. Each format family has one extractor wrapping a narrow
// raw-engine contract, so engines can be stubbed in tests.
package extract

import (
	"context"
	"strings"

	"github.com/joseph-ayodele/doc-extractor/internal/entity"
)

// ExtractionResult is the transient output of a format extractor. The
// orchestrator copies its fields into the document record on success.
type ExtractionResult struct {
	Text           string         `json:"text"`
	Tables         []entity.Table `json:"tables"`
	PageCount      int            `json:"pageCount"`
	Confidence     int            `json:"extractionConfidence"` // heuristic score 0..100
	ProcessedPages []int          `json:"processedPages"`
}

// Extractor is implemented once per supported format family.
type Extractor interface {
	Extract(ctx context.Context, path string) (ExtractionResult, error)
}

// RawTextConverter is the raw-extraction capability for word-processor
// documents: full text plus any converter warnings.
type RawTextConverter interface {
	ConvertText(ctx context.Context, path string) (text string, warnings []string, err error)
}

// Sheet is one worksheet read row-major.
type Sheet struct {
	Name string
	Rows [][]string
}

// SheetReader is the raw-extraction capability for spreadsheets.
type SheetReader interface {
	ReadAllCells(path string) ([]Sheet, error)
}

// PageContent is what a page-structured engine reports for a whole document.
// PageTables carries the engine's own per-page table detection; a nil slice
// means either "no tables" or "capability absent". The engine gives no way to
// tell those apart, and the extractor does not guess.
type PageContent struct {
	PageCount  int
	Text       string
	PageTables []entity.Table
}

// PageReader is the raw-extraction capability for page-structured documents.
type PageReader interface {
	ReadPages(ctx context.Context, path string) (PageContent, error)
}

// Recognizer is the OCR capability: recognized text plus the engine's own
// confidence in percent (0..100).
type Recognizer interface {
	Recognize(ctx context.Context, path, language string) (text string, confidence float64, err error)
}

const wordsPerPage = 500

// estimatePages approximates a page count for formats without native
// pagination: max(1, ceil(words/500)).
func estimatePages(text string) int {
	words := len(strings.Fields(text))
	pages := (words + wordsPerPage - 1) / wordsPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// densePages returns the sequence 1..n.
func densePages(n int) []int {
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
