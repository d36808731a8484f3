package htmltable

import (
	"regexp"
	"strings"
)

var (
	footnotePattern   = regexp.MustCompile(`\[[^\]]*\]`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	cellReplacer = strings.NewReplacer(
		"\u00a0", " ", // no-break space
		"\u00ad", "", // soft hyphen
		"\u200b", "", // zero-width space
	)
)

// NormalizeCell removes the cosmetic noise Wikipedia puts in table cells:
// footnote markers such as "[1]" or "[noot 2]", invisible characters and
// repeated whitespace.
func NormalizeCell(text string) string {
	text = cellReplacer.Replace(text)
	text = footnotePattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
