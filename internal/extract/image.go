package extract

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/doc-extractor/internal/common"
)

// ImageExtractor wraps an OCR engine. Confidence is the engine's own score
// rounded to the nearest integer; OCR output never yields tables.
type ImageExtractor struct {
	rec      Recognizer
	language string
	logger   *slog.Logger
}

func NewImageExtractor(rec Recognizer, language string, logger *slog.Logger) *ImageExtractor {
	if language == "" {
		language = "eng"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageExtractor{rec: rec, language: language, logger: logger}
}

func (e *ImageExtractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	text, confidence, err := e.rec.Recognize(ctx, path, e.language)
	if err != nil {
		e.logger.Error("ocr failed", "path", path, "lang", e.language, "error", err)
		return ExtractionResult{}, common.ExtractionFailedf(err)
	}

	pages := estimatePages(text)
	return ExtractionResult{
		Text:           text,
		PageCount:      pages,
		Confidence:     int(math.Round(confidence)),
		ProcessedPages: densePages(pages),
	}, nil
}

// TesseractRecognizer shells out to tesseract, once for the text and once in
// TSV mode for the engine's word-level confidence.
type TesseractRecognizer struct {
	tesseract   string
	tessdataDir string
	runner      Runner
}

func NewTesseractRecognizer(tesseract, tessdataDir string, runner Runner) *TesseractRecognizer {
	if tesseract == "" {
		tesseract = "tesseract"
	}
	return &TesseractRecognizer{tesseract: tesseract, tessdataDir: tessdataDir, runner: runner}
}

func (r *TesseractRecognizer) Recognize(ctx context.Context, path, language string) (string, float64, error) {
	args := r.baseArgs(path, language)
	out, errb, err := r.runner.Run(ctx, r.tesseract, args...)
	if err != nil {
		return "", 0, fmt.Errorf("tesseract: %s: %w", strings.TrimSpace(string(errb)), err)
	}
	text := string(out)

	conf, err := r.tsvConfidence(ctx, path, language)
	if err != nil {
		// text already extracted; a confidence probe failure is not fatal
		conf = 0
	}
	return text, conf, nil
}

// tsvConfidence runs tesseract in TSV mode and returns mean word confidence in
// percent (0..100).
func (r *TesseractRecognizer) tsvConfidence(ctx context.Context, path, language string) (float64, error) {
	args := append(r.baseArgs(path, language), "tsv")
	out, errb, err := r.runner.Run(ctx, r.tesseract, args...)
	if err != nil {
		return 0, fmt.Errorf("tesseract TSV: %s: %w", strings.TrimSpace(string(errb)), err)
	}

	var sum, n float64
	for i, ln := range strings.Split(string(out), "\n") {
		if i == 0 || ln == "" {
			continue // header
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[10]
		if confStr == "" || confStr == "-1" {
			continue
		}
		if v, err := strconv.ParseFloat(confStr, 64); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / n, nil
}

func (r *TesseractRecognizer) baseArgs(path, language string) []string {
	args := []string{path, "stdout", "-l", language}
	if r.tessdataDir != "" {
		args = append(args, "--tessdata-dir", r.tessdataDir)
	}
	return args
}
