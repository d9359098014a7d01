package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// strippedRunes are punctuation, bracket and dash characters removed from
// headers before comparison. NFKC folds most full-width forms into their
// ASCII counterparts first; the explicit full-width entries cover the
// ones it leaves alone.
const strippedRunes = "()[]{}<>-_.,:;/\\|'\"`~!?@#$%^&*+=" +
	"·ㆍ…‥―–—‐（）〔〕［］｛｝〈〉《》「」『』【】・，．"

// NormalizeHeader canonicalizes a raw column header for alias matching:
// Unicode compatibility composition, trim, lowercase, then removal of all
// whitespace and the fixed punctuation set. Cell values are never passed
// through this; it exists only for header comparison.
func NormalizeHeader(s string) string {
	s = norm.NFKC.String(strings.TrimSpace(s))
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(strippedRunes, r) {
			return -1
		}
		return r
	}, s)
}
