package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-extractor/constants"
)

// TableStructure summarizes a detected table's shape. Columns is the cell
// count of the first row (rows may be ragged).
type TableStructure struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Table is one detected table. PageNumber is 1-based; TableIndex is 0-based
// and unique within a page.
type Table struct {
	PageNumber int            `json:"pageNumber"`
	TableIndex int            `json:"tableIndex"`
	Data       [][]string     `json:"data"`
	Structure  TableStructure `json:"structure"`
}

// NewTable builds a Table with its structure derived from the data.
func NewTable(page, index int, data [][]string) Table {
	cols := 0
	if len(data) > 0 {
		cols = len(data[0])
	}
	return Table{
		PageNumber: page,
		TableIndex: index,
		Data:       data,
		Structure:  TableStructure{Rows: len(data), Columns: cols},
	}
}

// Metadata describes how an extraction went.
type Metadata struct {
	PageCount            int        `json:"pageCount"`
	ExtractionConfidence int        `json:"extractionConfidence"`
	ProcessedPages       []int      `json:"processedPages"`
	ExtractionDate       *time.Time `json:"extractionDate,omitempty"`
}

// Document is the durable record for one submitted file. Only the orchestrator
// mutates it after creation; it is the final source of truth once the progress
// tracker has been retired.
type Document struct {
	ID               uuid.UUID                  `json:"id"`
	Filename         string                     `json:"filename"`
	StoragePath      string                     `json:"storagePath"`
	FileType         constants.FileFormat       `json:"fileType"`
	SizeBytes        int64                      `json:"sizeBytes"`
	ProcessingStatus constants.ProcessingStatus `json:"processingStatus"`
	ExtractedText    string                     `json:"extractedText"`
	ExtractedTables  []Table                    `json:"extractedTables"`
	Metadata         Metadata                   `json:"metadata"`
	ErrorMessage     *string                    `json:"errorMessage"`
	UploadedAt       time.Time                  `json:"uploadedAt"`
}
