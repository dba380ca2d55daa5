package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/joseph-ayodele/doc-extractor/internal/common"
)

type fakeConverter struct {
	text     string
	warnings []string
	err      error
}

func (f fakeConverter) ConvertText(context.Context, string) (string, []string, error) {
	return f.text, f.warnings, f.err
}

func TestWordExtractorCleanConversion(t *testing.T) {
	conv := fakeConverter{text: "intro prose\ncol1\tcol2\n1\t2\noutro"}

	res, err := NewWordExtractor(conv, nil).Extract(context.Background(), "doc.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Confidence != 95 {
		t.Errorf("confidence = %d, want 95 without warnings", res.Confidence)
	}
	if len(res.Tables) != 1 {
		t.Fatalf("expected 1 detected table, got %d", len(res.Tables))
	}
	if res.PageCount != 1 {
		t.Errorf("pageCount = %d, want 1", res.PageCount)
	}
}

func TestWordExtractorWarningsLowerConfidence(t *testing.T) {
	conv := fakeConverter{text: "some text", warnings: []string{"unmapped style"}}

	res, err := NewWordExtractor(conv, nil).Extract(context.Background(), "doc.doc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Confidence != 85 {
		t.Errorf("confidence = %d, want 85 with warnings", res.Confidence)
	}
}

func TestWordExtractorConversionError(t *testing.T) {
	conv := fakeConverter{err: errors.New("unreadable encoding")}

	_, err := NewWordExtractor(conv, nil).Extract(context.Background(), "doc.docx")
	if !errors.Is(err, common.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}
