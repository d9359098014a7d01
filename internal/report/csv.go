package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText returns the document as UTF-8. Dashboard CSV exports come
// in three flavors: UTF-8 with BOM, plain UTF-8, and legacy EUC-KR.
func decodeText(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):], nil
	}
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decode euc-kr: %w", err)
	}
	return decoded, nil
}

// extractCSV parses a delimited-text document as exactly one table.
// Tab-separated exports are detected from the header line; ragged rows
// are tolerated (short rows read as empty trailing cells).
func extractCSV(data []byte) ([]Table, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if firstLine, _, _ := strings.Cut(string(text), "\n"); strings.Contains(firstLine, "\t") && !strings.Contains(firstLine, ",") {
		r.Comma = '\t'
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		records = append(records, rec)
	}
	if len(records) < 1 || len(records[0]) == 0 {
		return nil, nil
	}

	columns := make([]string, len(records[0]))
	for i, h := range records[0] {
		columns[i] = strings.TrimSpace(h)
	}
	return []Table{{Name: "csv", Columns: columns, Rows: records[1:]}}, nil
}
