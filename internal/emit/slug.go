// Package emit writes the location artifacts.
package emit

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SlugFallback is used when a name has no ASCII letters or digits left.
const SlugFallback = "item"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// asciiOnly decomposes accented characters and drops everything outside ASCII,
// so "Fryslân" becomes "Fryslan".
var asciiOnly = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > 0x7f })),
)

// Slugify turns a display name into a lowercase, filesystem-safe identifier
// made of [a-z0-9] runs joined by single hyphens.
func Slugify(value string) string {
	s, _, err := transform.String(asciiOnly, value)
	if err != nil {
		s = value
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return SlugFallback
	}
	return s
}
