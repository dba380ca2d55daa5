package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/joseph-ayodele/doc-extractor/internal/entity"
)

func TestExtractionResultSerializesCamelCase(t *testing.T) {
	res := ExtractionResult{
		Text:           "hello",
		Tables:         []entity.Table{entity.NewTable(1, 0, [][]string{{"a", "b"}, {"1", "2"}})},
		PageCount:      1,
		Confidence:     95,
		ProcessedPages: []int{1},
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	for _, key := range []string{
		`"text"`, `"tables"`, `"pageCount"`, `"extractionConfidence"`, `"processedPages"`,
		`"pageNumber"`, `"tableIndex"`, `"data"`, `"structure"`,
	} {
		if !strings.Contains(out, key) {
			t.Errorf("missing key %s in %s", key, out)
		}
	}
	if strings.Contains(out, `"Text"`) || strings.Contains(out, `"PageCount"`) {
		t.Errorf("exported field names leaked into the wire shape: %s", out)
	}
}
