package report

import "testing"

func TestExtractTables_HTMLTables(t *testing.T) {
	page := `<html><body>
	<table><tr><td>menu</td><td>link</td></tr></table>
	<table>
		<thead><tr><th>상태</th><th>캠페인명</th><th>광고비</th></tr></thead>
		<tbody>
			<tr><td>운영중</td><td>겨울 패딩</td><td>120,000</td></tr>
			<tr><td>중지</td><td>장갑</td><td>8,000</td></tr>
		</tbody>
	</table>
	</body></html>`

	tables, err := ExtractTables([]byte(page), FormatHTML)
	if err != nil {
		t.Fatalf("ExtractTables: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("tables = %d, want 2", len(tables))
	}

	best, ok := SelectBestTable(tables)
	if !ok {
		t.Fatal("expected a best table")
	}
	rows, err := ExtractActiveRows(best, ResolveColumns(best))
	if err != nil {
		t.Fatalf("ExtractActiveRows: %v", err)
	}
	if len(rows) != 1 || rows[0].Campaign != "겨울 패딩" {
		t.Fatalf("active rows = %+v", rows)
	}
}

func TestExtractTables_HTMLNextDataFallback(t *testing.T) {
	page := `<html><body><div id="app"></div>
	<script id="__NEXT_DATA__" type="application/json">
	{"props":{"pageProps":{"dashboard":{"campaigns":[
		{"status":"운영중","campaignName":"봄 원피스","convQty":9,"convValue":450000,"adCost":67000},
		{"status":"중지","campaignName":"코트","convQty":2,"convValue":80000,"adCost":30000}
	],"meta":{"page":1}}}}}
	</script></body></html>`

	tables, err := ExtractTables([]byte(page), FormatHTML)
	if err != nil {
		t.Fatalf("ExtractTables: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}

	mapping := ResolveColumns(tables[0])
	rows, err := ExtractActiveRows(tables[0], mapping)
	if err != nil {
		t.Fatalf("ExtractActiveRows: %v", err)
	}
	if len(rows) != 1 || rows[0].Campaign != "봄 원피스" {
		t.Fatalf("active rows = %+v", rows)
	}
	if rows[0].AdRev == nil || *rows[0].AdRev != 450000 {
		t.Fatalf("ad revenue = %v, want 450000", rows[0].AdRev)
	}
	if rows[0].AdCost == nil || *rows[0].AdCost != 67000 {
		t.Fatalf("ad cost = %v, want 67000", rows[0].AdCost)
	}
}

func TestExtractTables_HTMLNoData(t *testing.T) {
	page := `<html><body><p>주간 리포트가 아직 없습니다.</p></body></html>`
	if _, err := ExtractTables([]byte(page), FormatHTML); err != ErrNoTableDetected {
		t.Fatalf("err = %v, want ErrNoTableDetected", err)
	}
}

func TestTableFromRecords_RejectsNarrowLists(t *testing.T) {
	if _, ok := tableFromRecords([]interface{}{
		map[string]interface{}{"a": 1, "b": 2},
	}, 0); ok {
		t.Fatal("two-column record list should not qualify as a table")
	}
	if _, ok := tableFromRecords([]interface{}{"scalar", "list"}, 0); ok {
		t.Fatal("scalar list should not qualify as a table")
	}
	if _, ok := tableFromRecords(nil, 0); ok {
		t.Fatal("empty list should not qualify as a table")
	}
}
