package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTables_XLSX(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"상태", "캠페인명", "전환판매수", "전환매출", "광고비"},
		{"운영중", "가을 코트", 4, 520000, 96000},
		{"중지", "여름 샌들", 1, 30000, 12000},
	})

	tables, err := ExtractTables(data, FormatXLSX)
	if err != nil {
		t.Fatalf("ExtractTables: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}
	if len(tables[0].Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tables[0].Rows))
	}

	rows, err := ExtractActiveRows(tables[0], ResolveColumns(tables[0]))
	if err != nil {
		t.Fatalf("ExtractActiveRows: %v", err)
	}
	if len(rows) != 1 || rows[0].Campaign != "가을 코트" {
		t.Fatalf("active rows = %+v", rows)
	}
	if rows[0].AdCost == nil || *rows[0].AdCost != 96000 {
		t.Fatalf("ad cost = %v, want 96000", rows[0].AdCost)
	}
}

func TestExtractTables_XLSXEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	f.Close()

	if _, err := ExtractTables(buf.Bytes(), FormatXLSX); err != ErrNoTableDetected {
		t.Fatalf("err = %v, want ErrNoTableDetected", err)
	}
}

func TestExtractTables_XLSXGarbage(t *testing.T) {
	if _, err := ExtractTables([]byte("not a zip archive"), FormatXLSX); err == nil {
		t.Fatal("expected error for non-xlsx bytes")
	}
}
