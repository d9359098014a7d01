package report

import "testing"

func TestResolveColumns_KoreanDashboardHeaders(t *testing.T) {
	table := Table{
		Columns: []string{"캠페인명", "상태", "노출수", "전환판매수(14일)", "전환매출(14일)", "광고비(VAT미포함)"},
	}
	mapping := ResolveColumns(table)

	want := map[Field]string{
		FieldStatus:   "상태",
		FieldCampaign: "캠페인명",
		FieldAdQty:    "전환판매수(14일)",
		FieldAdRev:    "전환매출(14일)",
		FieldAdCost:   "광고비(VAT미포함)",
	}
	for f, col := range want {
		if mapping[f] != col {
			t.Fatalf("field %s resolved to %q, want %q", f, mapping[f], col)
		}
	}
}

func TestResolveColumns_TieBreakShortestRawName(t *testing.T) {
	table := Table{Columns: []string{"campaignName", "campaign"}}
	mapping := ResolveColumns(table)

	if mapping[FieldCampaign] != "campaign" {
		t.Fatalf("campaign resolved to %q, want the shorter raw header", mapping[FieldCampaign])
	}
}

func TestResolveColumns_TieBreakCountsRunes(t *testing.T) {
	// "캠페인" is 3 characters (9 bytes); it must beat 8-character ASCII
	// candidates regardless of encoding width.
	table := Table{Columns: []string{"campaign", "캠페인"}}
	mapping := ResolveColumns(table)

	if mapping[FieldCampaign] != "캠페인" {
		t.Fatalf("campaign resolved to %q, want %q (fewest characters)", mapping[FieldCampaign], "캠페인")
	}
}

func TestResolveColumns_EqualLengthKeepsFirst(t *testing.T) {
	table := Table{Columns: []string{"캠페인A", "캠페인B"}}
	mapping := ResolveColumns(table)

	if mapping[FieldCampaign] != "캠페인A" {
		t.Fatalf("equal-length tie resolved to %q, want first column", mapping[FieldCampaign])
	}
}

func TestResolveColumns_UnmatchedFieldAbsent(t *testing.T) {
	table := Table{Columns: []string{"campaign", "status"}}
	mapping := ResolveColumns(table)

	if _, ok := mapping[FieldAdCost]; ok {
		t.Fatalf("ad_cost should be unresolved, got %q", mapping[FieldAdCost])
	}
}

func TestSelectBestTable_HighestScoreWins(t *testing.T) {
	tables := []Table{
		{Name: "none", Columns: []string{"a", "b", "c"}},
		{Name: "both", Columns: []string{"캠페인명", "상태", "광고비"}},
		{Name: "one", Columns: []string{"campaign", "x"}},
	}
	best, ok := SelectBestTable(tables)
	if !ok {
		t.Fatal("expected a best table")
	}
	if best.Name != "both" {
		t.Fatalf("best table = %q, want %q", best.Name, "both")
	}
}

func TestSelectBestTable_TieKeepsFirst(t *testing.T) {
	tables := []Table{
		{Name: "first", Columns: []string{"campaign", "x"}},
		{Name: "second", Columns: []string{"캠페인명", "y"}},
	}
	best, ok := SelectBestTable(tables)
	if !ok {
		t.Fatal("expected a best table")
	}
	if best.Name != "first" {
		t.Fatalf("tie broken to %q, want first in extraction order", best.Name)
	}
}

func TestSelectBestTable_Empty(t *testing.T) {
	if _, ok := SelectBestTable(nil); ok {
		t.Fatal("no tables should yield ok=false")
	}
}
