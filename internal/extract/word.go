package extract

import (
	"context"
	"fmt"
	"log/slog"

	"code.sajari.com/docconv"

	"github.com/joseph-ayodele/doc-extractor/internal/common"
	"github.com/joseph-ayodele/doc-extractor/internal/tables"
)

// WordExtractor wraps a word-processor converter and runs table detection on
// the extracted text. Confidence drops from 95 to 85 when the converter
// reported warnings.
type WordExtractor struct {
	conv   RawTextConverter
	logger *slog.Logger
}

func NewWordExtractor(conv RawTextConverter, logger *slog.Logger) *WordExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordExtractor{conv: conv, logger: logger}
}

func (e *WordExtractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	text, warnings, err := e.conv.ConvertText(ctx, path)
	if err != nil {
		e.logger.Error("word conversion failed", "path", path, "error", err)
		return ExtractionResult{}, common.ExtractionFailedf(err)
	}

	confidence := 95
	if len(warnings) > 0 {
		e.logger.Warn("word conversion produced warnings", "path", path, "warnings", warnings)
		confidence = 85
	}

	pages := estimatePages(text)
	return ExtractionResult{
		Text:           text,
		Tables:         tables.DetectText(text),
		PageCount:      pages,
		Confidence:     confidence,
		ProcessedPages: densePages(pages),
	}, nil
}

// DocconvConverter extracts the raw text layer of .doc/.docx files.
type DocconvConverter struct{}

func (DocconvConverter) ConvertText(_ context.Context, path string) (string, []string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", nil, fmt.Errorf("docconv: %w", err)
	}
	var warnings []string
	if res.Error != "" {
		warnings = append(warnings, res.Error)
	}
	return res.Body, warnings, nil
}
