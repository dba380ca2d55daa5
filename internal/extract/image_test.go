package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joseph-ayodele/doc-extractor/internal/common"
)

type fakeRecognizer struct {
	text string
	conf float64
	err  error
}

func (f fakeRecognizer) Recognize(context.Context, string, string) (string, float64, error) {
	return f.text, f.conf, f.err
}

func TestImageExtractorRoundsEngineConfidence(t *testing.T) {
	rec := fakeRecognizer{text: "receipt total 12.50", conf: 87.6}

	res, err := NewImageExtractor(rec, "eng", nil).Extract(context.Background(), "scan.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Confidence != 88 {
		t.Errorf("confidence = %d, want 88 (rounded)", res.Confidence)
	}
	if len(res.Tables) != 0 {
		t.Errorf("OCR output must never yield tables, got %d", len(res.Tables))
	}
	if res.PageCount != 1 {
		t.Errorf("pageCount = %d, want 1", res.PageCount)
	}
}

func TestImageExtractorEngineError(t *testing.T) {
	rec := fakeRecognizer{err: errors.New("unreadable image")}

	_, err := NewImageExtractor(rec, "eng", nil).Extract(context.Background(), "scan.jpg")
	if !errors.Is(err, common.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

// fakeRunner serves canned stdout per trailing argument so the two tesseract
// invocations (text, tsv) can be told apart.
type fakeRunner struct {
	text string
	tsv  string
}

func (f fakeRunner) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	if len(args) > 0 && args[len(args)-1] == "tsv" {
		return []byte(f.tsv), nil, nil
	}
	return []byte(f.text), nil, nil
}

func TestTesseractRecognizerMeanTSVConfidence(t *testing.T) {
	header := strings.Join([]string{
		"level", "page_num", "block_num", "par_num", "line_num", "word_num",
		"left", "top", "width", "height", "conf", "text",
	}, "\t")
	row := func(conf, word string) string {
		return strings.Join([]string{"5", "1", "1", "1", "1", "1", "0", "0", "10", "10", conf, word}, "\t")
	}
	tsv := strings.Join([]string{header, row("90", "hello"), row("80", "world"), row("-1", "")}, "\n")

	rec := NewTesseractRecognizer("", "", fakeRunner{text: "hello world", tsv: tsv})
	text, conf, err := rec.Recognize(context.Background(), "scan.png", "eng")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello world" {
		t.Errorf("text = %q", text)
	}
	if conf != 85 {
		t.Errorf("confidence = %v, want 85 (mean of 90 and 80)", conf)
	}
}
