package constants

import "strings"

// FileFormat is the closed set of document families the pipeline can extract.
type FileFormat string

const (
	TEXT        FileFormat = "TEXT"
	SPREADSHEET FileFormat = "SPREADSHEET"
	WORD        FileFormat = "WORD"
	PDF         FileFormat = "PDF"
	IMAGE       FileFormat = "IMAGE"
)

// FileFormats holds every supported format, in a stable order.
var FileFormats = []FileFormat{TEXT, SPREADSHEET, WORD, PDF, IMAGE}

// extToFormat maps normalized file extensions to their format family.
var extToFormat = map[string]FileFormat{
	"txt":  TEXT,
	"xlsx": SPREADSHEET,
	"xls":  SPREADSHEET,
	"docx": WORD,
	"doc":  WORD,
	"pdf":  PDF,
	"jpg":  IMAGE,
	"jpeg": IMAGE,
	"png":  IMAGE,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the format family for an extension, or "" if the
// extension is not supported.
func MapExtToFormat(ext string) FileFormat {
	return extToFormat[NormalizeExt(ext)]
}
