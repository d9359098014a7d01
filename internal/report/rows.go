package report

import "strings"

// truthyStatuses are exact matches (after case-folding and trimming)
// that mark a campaign as running.
var truthyStatuses = map[string]bool{
	"true": true,
	"1":    true,
	"y":    true,
	"yes":  true,
}

// activeTokens mark a campaign as running when they occur anywhere in
// the status cell. Language-mixed on purpose: dashboards localize the
// status column but not consistently.
var activeTokens = []string{
	"운영", "진행", "노출", "게재",
	"active", "running", "enabled", "live",
}

// isActiveStatus reports whether a raw status cell describes a running
// campaign.
func isActiveStatus(cell string) bool {
	s := strings.ToLower(strings.TrimSpace(cell))
	if truthyStatuses[s] {
		return true
	}
	for _, token := range activeTokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

// ExtractActiveRows converts the table into canonical rows using the
// resolved column mapping, keeping only rows with an active status.
// Status and campaign must be resolved; the numeric columns are
// optional. Row IDs are the 1-based positions AFTER filtering, in the
// table's original order (rows are only dropped, never reordered); they
// are stable for the life of one parsed document only.
func ExtractActiveRows(t Table, mapping map[Field]string) ([]Row, error) {
	statusCol, okStatus := mapping[FieldStatus]
	campaignCol, okCampaign := mapping[FieldCampaign]
	if !okStatus || !okCampaign {
		return nil, ErrMissingColumns
	}

	colIdx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, seen := colIdx[c]; !seen {
			colIdx[c] = i
		}
	}
	cell := func(row []string, col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	optional := func(row []string, f Field) *float64 {
		col, ok := mapping[f]
		if !ok {
			return nil
		}
		v, ok := ParseLooseNumber(cell(row, col))
		if !ok {
			return nil
		}
		return &v
	}

	var out []Row
	for _, raw := range t.Rows {
		status := cell(raw, statusCol)
		if !isActiveStatus(status) {
			continue
		}
		out = append(out, Row{
			RowID:    len(out) + 1,
			Status:   strings.TrimSpace(status),
			Campaign: strings.TrimSpace(cell(raw, campaignCol)),
			AdQty:    optional(raw, FieldAdQty),
			AdRev:    optional(raw, FieldAdRev),
			AdCost:   optional(raw, FieldAdCost),
		})
	}
	return out, nil
}
