// Package tables detects tabular regions in unstructured text.
//
// The heuristic favors precision over recall: tab- or space-aligned tables are
// detected; merged-cell and ruled-line tables are not. That is a known
// limitation of line-oriented input, not a defect.
package tables

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/doc-extractor/internal/entity"
)

var (
	// cell separator: a literal tab or a run of two-or-more whitespace chars
	reCellSep    = regexp.MustCompile(`\t|\s{2,}`)
	reMultiSpace = regexp.MustCompile(`\s{2,}`)
)

// Detect scans an ordered sequence of text lines and returns the tables found,
// page number fixed at 1 (line-oriented input carries no page boundaries) and
// indices assigned in discovery order.
func Detect(lines []string) []entity.Table {
	var out []entity.Table
	var acc [][]string

	flush := func() {
		// single-row candidates are false positives
		if len(acc) > 1 {
			out = append(out, entity.NewTable(1, len(out), acc))
		}
		acc = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isRowCandidate(trimmed) {
			if cells := splitCells(trimmed); len(cells) > 1 {
				acc = append(acc, cells)
			}
			continue
		}
		if len(acc) > 0 {
			flush()
		}
	}
	flush()
	return out
}

// DetectText splits a document's full text on line breaks and runs Detect.
func DetectText(text string) []entity.Table {
	return Detect(strings.Split(text, "\n"))
}

// isRowCandidate classifies a trimmed line as a potential table row: it either
// contains a tab, or splitting on multi-space runs yields more than two segments.
func isRowCandidate(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	if strings.Contains(trimmed, "\t") {
		return true
	}
	return len(reMultiSpace.Split(trimmed, -1)) > 2
}

// splitCells splits a row line into its non-empty cells.
func splitCells(trimmed string) []string {
	parts := reCellSep.Split(trimmed, -1)
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}
