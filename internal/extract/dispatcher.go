package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/doc-extractor/constants"
	"github.com/joseph-ayodele/doc-extractor/internal/common"
)

// Dispatcher maps a file-format tag to its extractor. Dispatch is a pure
// mapping over the closed format set: no retry, no fallback extractor.
type Dispatcher struct {
	extractors map[constants.FileFormat]Extractor
	logger     *slog.Logger
}

// NewDispatcher wires one extractor per supported format family.
func NewDispatcher(logger *slog.Logger, text, spreadsheet, word, pdf, image Extractor) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger: logger,
		extractors: map[constants.FileFormat]Extractor{
			constants.TEXT:        text,
			constants.SPREADSHEET: spreadsheet,
			constants.WORD:        word,
			constants.PDF:         pdf,
			constants.IMAGE:       image,
		},
	}
}

// NewDefaultDispatcher builds a dispatcher backed by the real engines.
func NewDefaultDispatcher(cfg common.ExtractConfig, logger *slog.Logger) *Dispatcher {
	runner := NewExecRunner(logger)
	return NewDispatcher(logger,
		NewTextExtractor(logger),
		NewSpreadsheetExtractor(ExcelSheetReader{}, logger),
		NewWordExtractor(DocconvConverter{}, logger),
		NewPDFExtractor(NewPopplerPageReader(cfg.Pdftotext, runner), logger),
		NewImageExtractor(NewTesseractRecognizer(cfg.Tesseract, cfg.TessdataDir, runner), cfg.TesseractLang, logger),
	)
}

// Resolve returns the extractor for a format, failing closed on unknown tags.
func (d *Dispatcher) Resolve(format constants.FileFormat) (Extractor, error) {
	e, ok := d.extractors[format]
	if !ok {
		d.logger.Error("no extractor for format", "format", string(format))
		return nil, common.UnsupportedFileTypef(string(format))
	}
	return e, nil
}

// Extract resolves the format's extractor and delegates to it.
func (d *Dispatcher) Extract(ctx context.Context, format constants.FileFormat, path string) (ExtractionResult, error) {
	e, err := d.Resolve(format)
	if err != nil {
		return ExtractionResult{}, err
	}
	return e.Extract(ctx, path)
}
