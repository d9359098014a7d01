package report

import "strings"

// fieldAliases maps each canonical field to its ordered alias tokens.
// A column is a candidate for a field when ANY token is a substring of
// the column's normalized header. The table is data, not logic: new
// dashboard header variants are handled by adding tokens here.
var fieldAliases = map[Field][]string{
	FieldStatus: {
		"캠페인상태", "운영여부", "사용여부", "광고상태", "상태", "onoff", "status",
	},
	FieldCampaign: {
		"캠페인명", "캠페인이름", "캠페인", "광고명", "광고이름",
		"campaignname", "campaign", "title",
	},
	FieldAdQty: {
		"전환판매수", "전환수량", "전환수", "판매수량", "판매수", "주문수",
		"convqty", "conversions", "conversion",
	},
	FieldAdRev: {
		"전환매출", "전환가치", "전환금액", "광고매출", "매출액", "매출",
		"convvalue", "revenue", "sales",
	},
	FieldAdCost: {
		"광고집행비", "집행광고비", "광고비용", "광고비", "총비용", "비용", "집행금액",
		"adcost", "adspend", "spend", "cost",
	},
}

// displayLabels are the canonical column labels used when renaming
// columns discovered inside embedded structured data.
var displayLabels = map[Field]string{
	FieldStatus:   "상태",
	FieldCampaign: "캠페인명",
	FieldAdQty:    "전환판매수",
	FieldAdRev:    "전환매출",
	FieldAdCost:   "광고비",
}

// matchField returns the canonical field whose alias list matches the
// normalized header, or "" when none does. Fields are tried in canonical
// order so a header matching several fields resolves deterministically.
func matchField(normalized string) Field {
	if normalized == "" {
		return ""
	}
	for _, f := range Fields {
		if matchesField(normalized, f) {
			return f
		}
	}
	return ""
}

// matchesField reports whether any alias token of f occurs in the
// normalized header.
func matchesField(normalized string, f Field) bool {
	for _, token := range fieldAliases[f] {
		if token != "" && strings.Contains(normalized, token) {
			return true
		}
	}
	return false
}
