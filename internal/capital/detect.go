// Package capital builds the location list for the capital city from a
// city-scoped CSV feed whose column layout is not known in advance.
package capital

import (
	"strconv"
	"strings"
)

// SampleSize is the number of non-empty values inspected per column when
// sniffing for code prefixes.
const SampleSize = 50

// DetectCodeColumn returns the column holding administrative codes. A column
// qualifies when at least half of its sampled values start with prefix
// (case-insensitive); the best ratio wins. Failing that, a header equal to one
// of labels is accepted.
func DetectCodeColumn(header []string, rows [][]string, prefix string, labels []string) (int, bool) {
	if prefix != "" {
		p := strings.ToUpper(prefix)
		best, bestRatio := -1, 0.0
		for col := range header {
			values := sample(rows, col, SampleSize)
			if len(values) == 0 {
				continue
			}
			hits := 0
			for _, v := range values {
				if strings.HasPrefix(strings.ToUpper(v), p) {
					hits++
				}
			}
			ratio := float64(hits) / float64(len(values))
			if ratio >= 0.5 && ratio > bestRatio {
				best, bestRatio = col, ratio
			}
		}
		if best >= 0 {
			return best, true
		}
	}

	if col := headerIndex(header, labels, -1); col >= 0 {
		return col, true
	}
	return -1, false
}

// DetectNameColumn returns the column holding display names. A header equal to
// one of labels wins. Otherwise the non-numeric column with the most distinct
// values is chosen, provided it has more than minCardinality of them. The
// exclude column (usually the code column, -1 for none) is never chosen.
func DetectNameColumn(header []string, rows [][]string, exclude int, labels []string, minCardinality int) (int, bool) {
	if col := headerIndex(header, labels, exclude); col >= 0 {
		return col, true
	}

	best, bestCard := -1, minCardinality
	for col := range header {
		if col == exclude {
			continue
		}
		values := sample(rows, col, len(rows))
		if len(values) == 0 || mostlyNumeric(values) {
			continue
		}
		card := distinct(values)
		if card > bestCard {
			best, bestCard = col, card
		}
	}
	return best, best >= 0
}

func headerIndex(header []string, labels []string, exclude int) int {
	for col, h := range header {
		if col == exclude {
			continue
		}
		h = strings.ToLower(strings.TrimSpace(h))
		for _, l := range labels {
			if h == strings.ToLower(l) {
				return col
			}
		}
	}
	return -1
}

// sample returns up to n non-empty trimmed values of col.
func sample(rows [][]string, col, n int) []string {
	var out []string
	for _, r := range rows {
		if len(out) >= n {
			break
		}
		if col >= len(r) {
			continue
		}
		if v := strings.TrimSpace(r[col]); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func mostlyNumeric(values []string) bool {
	n := 0
	for _, v := range values {
		if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64); err == nil {
			n++
		}
	}
	return n*2 > len(values)
}

func distinct(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
