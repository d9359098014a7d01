package report

import "unicode/utf8"

// ResolveColumns maps each canonical field to the best-matching column
// name of the table, or leaves the field absent when no column matches.
// Among several candidates the column with the fewest characters in its
// RAW name wins: "campaign" beats "campaignName", approximating the most
// specific header. Length is counted in runes, not bytes, so Korean
// headers compete fairly with ASCII ones. Ties keep the earlier column
// (stable).
func ResolveColumns(t Table) map[Field]string {
	normalized := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		normalized[i] = NormalizeHeader(col)
	}

	mapping := make(map[Field]string, len(Fields))
	for _, f := range Fields {
		best := -1
		for i, col := range t.Columns {
			if !matchesField(normalized[i], f) {
				continue
			}
			if best < 0 || utf8.RuneCountInString(col) < utf8.RuneCountInString(t.Columns[best]) {
				best = i
			}
		}
		if best >= 0 {
			mapping[f] = t.Columns[best]
		}
	}
	return mapping
}

// SelectBestTable picks the candidate most likely to be the campaign
// report. Score counts only the two required fields (status, campaign);
// the highest score wins and ties keep the first table in extraction
// order.
func SelectBestTable(tables []Table) (Table, bool) {
	bestIdx, bestScore := -1, -1
	for i, t := range tables {
		score := 0
		mapping := ResolveColumns(t)
		if _, ok := mapping[FieldStatus]; ok {
			score++
		}
		if _, ok := mapping[FieldCampaign]; ok {
			score++
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return Table{}, false
	}
	return tables[bestIdx], true
}
