package report

import (
	"regexp"
	"strconv"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// ParseLooseNumber coerces a free-text numeric cell ("1,234.50원",
// "₩12,000") to a number. Every rune that is not a digit, dot or minus
// sign is stripped before parsing. Empty and punctuation-only cells
// ("-", ".") report absent, never zero.
func ParseLooseNumber(s string) (float64, bool) {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	switch cleaned {
	case "", "-", ".", "-.":
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
