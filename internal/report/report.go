// Package report turns messy ad-dashboard exports (CSV, XLSX, HTML) into
// canonical campaign rows. Headers vary wildly between dashboard versions
// and languages, so column identification is heuristic: alias token
// matching over aggressively normalized header strings.
package report

import "errors"

var (
	// ErrNoTableDetected means ingestion found zero candidate tables in
	// the document. The session continues; the caller shows "no data".
	ErrNoTableDetected = errors.New("no tabular data detected in document")

	// ErrMissingColumns means the status or campaign column could not be
	// resolved. Surfaced as an actionable message so the user can remap
	// columns manually; never aborts the session.
	ErrMissingColumns = errors.New("required status/campaign columns not found")
)

// Field names one of the five canonical ad-report attributes understood
// regardless of source header wording.
type Field string

const (
	FieldStatus   Field = "status"
	FieldCampaign Field = "campaign"
	FieldAdQty    Field = "ad_qty"
	FieldAdRev    Field = "ad_rev"
	FieldAdCost   Field = "ad_cost"
)

// Fields lists all canonical fields in resolution order.
var Fields = []Field{FieldStatus, FieldCampaign, FieldAdQty, FieldAdRev, FieldAdCost}

// Table is one candidate table extracted from an uploaded document:
// an ordered header row plus string cell rows (possibly ragged).
type Table struct {
	Name    string     `json:"Name"`
	Columns []string   `json:"Columns"`
	Rows    [][]string `json:"Rows"`
}

// Row is a canonical ad-report row after column resolution and
// active-status filtering. Numeric fields stay nil when the source cell
// was empty or unparseable; absent is never coerced to zero.
type Row struct {
	RowID    int      `json:"RowID"` // 1-based position after filtering
	Status   string   `json:"Status"`
	Campaign string   `json:"Campaign"`
	AdQty    *float64 `json:"AdQty"`
	AdRev    *float64 `json:"AdRev"`
	AdCost   *float64 `json:"AdCost"`
}

// Format declares the shape of an uploaded document.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)
