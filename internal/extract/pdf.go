package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/joseph-ayodele/doc-extractor/internal/common"
)

// text layer is exact, no OCR uncertainty involved
const pdfConfidence = 95

// PDFExtractor wraps a page-structured engine. Page counts are exact and
// tables come from the engine's own per-page detector when it has one; an
// empty result is stored as-is, no heuristic fallback.
type PDFExtractor struct {
	reader PageReader
	logger *slog.Logger
}

func NewPDFExtractor(reader PageReader, logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{reader: reader, logger: logger}
}

func (e *PDFExtractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	content, err := e.reader.ReadPages(ctx, path)
	if err != nil {
		e.logger.Error("pdf read failed", "path", path, "error", err)
		return ExtractionResult{}, common.ExtractionFailedf(err)
	}

	pages := content.PageCount
	if pages < 1 {
		pages = 1
	}
	return ExtractionResult{
		Text:           content.Text,
		Tables:         content.PageTables,
		PageCount:      pages,
		Confidence:     pdfConfidence,
		ProcessedPages: densePages(pages),
	}, nil
}

// PopplerPageReader reads the PDF text layer with pdftotext and counts pages
// with pdfcpu. Poppler exposes no table detector, so PageTables is always nil.
type PopplerPageReader struct {
	pdftotext string
	runner    Runner
}

func NewPopplerPageReader(pdftotext string, runner Runner) *PopplerPageReader {
	if pdftotext == "" {
		pdftotext = "pdftotext"
	}
	return &PopplerPageReader{pdftotext: pdftotext, runner: runner}
}

func (r *PopplerPageReader) ReadPages(ctx context.Context, path string) (PageContent, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := r.runner.Run(ctx, r.pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return PageContent{}, fmt.Errorf("pdftotext: %s: %w", strings.TrimSpace(string(errb)), err)
	}
	text := string(out)

	pages, err := api.PageCountFile(path)
	if err != nil {
		// form feed is pdftotext's page separator
		pages = 1 + strings.Count(text, "\f")
	}

	return PageContent{PageCount: pages, Text: text}, nil
}
