package extract

import (
	"context"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/doc-extractor/internal/common"
)

// TextExtractor reads plain-text files. The source is deterministic, so
// confidence is always 100 and no table detection runs.
type TextExtractor struct {
	logger *slog.Logger
}

func NewTextExtractor(logger *slog.Logger) *TextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextExtractor{logger: logger}
}

func (e *TextExtractor) Extract(_ context.Context, path string) (ExtractionResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		e.logger.Error("read text file failed", "path", path, "error", err)
		return ExtractionResult{}, common.ExtractionFailedf(err)
	}

	text := string(b)
	pages := estimatePages(text)
	return ExtractionResult{
		Text:           text,
		PageCount:      pages,
		Confidence:     100,
		ProcessedPages: densePages(pages),
	}, nil
}
