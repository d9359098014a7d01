package report

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatFromFilename guesses the declared format from a file extension.
func FormatFromFilename(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", ".tsv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	case ".html", ".htm":
		return FormatHTML, true
	}
	return "", false
}

// ExtractTables parses the raw document into candidate tables.
// Spreadsheet-native formats yield exactly one table; HTML may yield
// several (literal table markup first, then the embedded structured-data
// payload as a fallback). Zero candidates is reported as
// ErrNoTableDetected, which callers treat as "no data", not as a fatal
// condition.
func ExtractTables(data []byte, format Format) ([]Table, error) {
	var (
		tables []Table
		err    error
	)
	switch format {
	case FormatCSV:
		tables, err = extractCSV(data)
	case FormatXLSX:
		tables, err = extractXLSX(data)
	case FormatHTML:
		tables, err = extractHTML(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrNoTableDetected
	}
	return tables, nil
}
